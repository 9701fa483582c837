package dataset

import "errors"

var (
	// ErrUnsupportedFormat signals the file could not be parsed as tabular data.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyDataset signals the file parsed but contains zero data rows.
	ErrEmptyDataset = errors.New("dataset has no rows")
)

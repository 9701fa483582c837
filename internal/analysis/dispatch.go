package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/statloom/statloom-cli/internal/dataset"
	"github.com/statloom/statloom-cli/internal/logging"
)

// Engine is the external compute collaborator. The numeric implementations
// of every statistic and figure live behind it.
type Engine interface {
	Compute(ctx context.Context, typ Type, variables []string, options map[string]any, datasetID string) (*ComputeResult, error)
}

// Dispatcher maps a validated request to one compute call and normalizes
// the heterogeneous response into a ResultEnvelope. It does not persist
// results.
type Dispatcher struct {
	engine Engine
}

func NewDispatcher(e Engine) *Dispatcher {
	return &Dispatcher{engine: e}
}

// Dispatch re-validates defensively, runs the compute call, and normalizes
// the result. Compute failures come back as *AnalysisError; the caller's
// session stays usable.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, sch *dataset.Schema) (*ResultEnvelope, error) {
	// The sample-size calculation is options-driven and runs without a
	// dataset; everything else needs an active schema.
	if sch == nil && req.Type != TypeSampleSize {
		return nil, fmt.Errorf("%w: no active dataset", ErrInvalidRequest)
	}
	if err := Validate(req, sch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var datasetID string
	if sch != nil {
		datasetID = sch.DatasetID
	}
	logging.Debugf("dispatching %s on dataset %q with %d variables", req.Type, datasetID, len(req.Variables))
	res, err := d.engine.Compute(ctx, req.Type, req.Variables, req.Options, datasetID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &AnalysisError{Type: req.Type, Cause: err}
	}
	env, err := normalize(res)
	if err != nil {
		return nil, &AnalysisError{Type: req.Type, Cause: err}
	}
	return env, nil
}

// normalize folds the collaborator's response into exactly one of the
// canonical result shapes, in priority order image, table, text, raw.
func normalize(res *ComputeResult) (*ResultEnvelope, error) {
	switch {
	case res == nil:
		return nil, fmt.Errorf("compute returned no result")
	case res.ImagePath != "":
		return &ResultEnvelope{Kind: ResultImage, ImageRef: res.ImagePath}, nil
	case res.Table != nil:
		return &ResultEnvelope{Kind: ResultTable, Table: completeTable(res.Table)}, nil
	case res.Text != "":
		return &ResultEnvelope{Kind: ResultText, Text: res.Text}, nil
	case len(res.Raw) > 0:
		return &ResultEnvelope{Kind: ResultRaw, Raw: res.Raw}, nil
	}
	return nil, fmt.Errorf("compute returned an empty result")
}

// completeTable backfills key order for collaborators that send only the
// nested counts, keeping first-seen iteration deterministic.
func completeTable(t *TableData) *TableData {
	if len(t.RowKeys) > 0 && len(t.ColKeys) > 0 {
		return t
	}
	out := *t
	if len(out.RowKeys) == 0 {
		for rk := range t.Counts {
			out.RowKeys = append(out.RowKeys, rk)
		}
		sort.Strings(out.RowKeys)
	}
	if len(out.ColKeys) == 0 {
		seen := map[string]bool{}
		for _, rk := range out.RowKeys {
			for ck := range t.Counts[rk] {
				if !seen[ck] {
					seen[ck] = true
					out.ColKeys = append(out.ColKeys, ck)
				}
			}
		}
		sort.Strings(out.ColKeys)
	}
	return &out
}

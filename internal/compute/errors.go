package compute

import (
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the compute service.
type APIError struct {
	StatusCode int            `json:"-"`
	Code       string         `json:"code,omitempty"`
	Message    string         `json:"message,omitempty"`
	Raw        map[string]any `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		if e.Code != "" {
			return fmt.Sprintf("compute error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
		}
		return fmt.Sprintf("compute error: status=%d message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("compute error: status=%d", e.StatusCode)
}

// BadRequestError indicates the service rejected the analysis request.
type BadRequestError struct{ *APIError }

func (e *BadRequestError) Error() string { return fmt.Sprintf("bad request: %s", e.APIError.Error()) }

// DatasetNotFoundError indicates the referenced dataset is unknown to the service.
type DatasetNotFoundError struct{ *APIError }

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf("dataset not found: %s", e.APIError.Error())
}

// ServerError indicates a 5xx from the compute service.
type ServerError struct{ *APIError }

func (e *ServerError) Error() string {
	return fmt.Sprintf("compute service error: %s", e.APIError.Error())
}

// UnreachableError indicates the compute service is not reachable.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("compute service unreachable at %s: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("compute service unreachable: %v", e.Err)
}

// classifyAPIError maps generic APIError to typed errors for better UX.
func classifyAPIError(apiErr *APIError) error {
	switch {
	case apiErr.StatusCode == http.StatusNotFound:
		return &DatasetNotFoundError{APIError: apiErr}
	case apiErr.StatusCode == http.StatusBadRequest:
		return &BadRequestError{APIError: apiErr}
	case apiErr.StatusCode >= 500 && apiErr.StatusCode <= 599:
		return &ServerError{APIError: apiErr}
	}
	return apiErr
}

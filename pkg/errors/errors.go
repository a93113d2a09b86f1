package errors

import "fmt"

// Error codes
const (
	CodeNavigation = "NAVIGATION_ERROR"
	CodeLedger     = "LEDGER_ERROR"
	CodeArtifact   = "ARTIFACT_ERROR"
	CodeNotify     = "NOTIFY_ERROR"
	CodeValidation = "VALIDATION_ERROR"
)

type PipelineError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// NavigationError covers page loads and selector waits that never settled.
type NavigationError struct {
	*PipelineError
	URL string
}

func NewNavigationError(message, url string, cause error) *NavigationError {
	return &NavigationError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeNavigation,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
		URL: url,
	}
}

type LedgerError struct {
	*PipelineError
	Operation string
	Path      string
}

func NewLedgerError(message, operation, path string, cause error) *LedgerError {
	return &LedgerError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeLedger,
			Context: map[string]any{
				"operation": operation,
				"path":      path,
			},
			Cause: cause,
		},
		Operation: operation,
		Path:      path,
	}
}

type ArtifactError struct {
	*PipelineError
	Path string
}

func NewArtifactError(message, path string, cause error) *ArtifactError {
	return &ArtifactError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeArtifact,
			Context: map[string]any{
				"path": path,
			},
			Cause: cause,
		},
		Path: path,
	}
}

type NotifyError struct {
	*PipelineError
	Endpoint string
}

func NewNotifyError(message, endpoint string, cause error) *NotifyError {
	return &NotifyError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeNotify,
			Context: map[string]any{
				"endpoint": endpoint,
			},
			Cause: cause,
		},
		Endpoint: endpoint,
	}
}

type ValidationError struct {
	*PipelineError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

package jamfgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for common ingestion failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrFetchFailed indicates a request to the Jamf API failed.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrMissingDependency indicates required upstream step state was absent,
	// which means the declared step ordering was violated.
	ErrMissingDependency = errors.New("missing upstream step state")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindExecution represents errors that occur while executing an ingestion step.
	KindExecution = "execution"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindNetwork represents errors related to Jamf API calls.
	KindNetwork = "network"

	// KindInternal represents internal integration errors.
	KindInternal = "internal"
)

// Stable error codes surfaced to operators on step-level failures. Codes are
// part of the operational contract: alerting and runbooks match on them, so
// they must not change between releases.
const (
	// CodeComputerDetailFetch is raised after the computers step completes
	// with one or more per-computer detail fetch failures.
	CodeComputerDetailFetch = "ERROR_FETCH_COMPUTER_DETAILS"

	// CodeConfigurationDetailsNotFound is raised when the computers step runs
	// without the parsed configuration-profile map in job state.
	CodeConfigurationDetailsNotFound = "CONFIGURATION_PROFILE_DETAILS_NOT_FOUND"

	// CodeStepDependency is raised when a step declares a dependency on an
	// unknown step or the dependency graph contains a cycle.
	CodeStepDependency = "ERROR_STEP_DEPENDENCY"
)

// IngestError is a structured error type that wraps underlying errors with
// additional context about the operation that failed, the category of error,
// and an optional stable operator-facing code.
//
// IngestError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &IngestError{
//		Op:   "ingest.fetchComputers",
//		Kind: KindExecution,
//		Code: CodeComputerDetailFetch,
//		Err:  ErrFetchFailed,
//	}
type IngestError struct {
	// Op is the operation that failed (e.g., "ingest.fetchComputers").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindValidation).
	Kind string

	// Code is a stable string code for operator-facing step failures.
	// Empty for errors that never surface to operators directly.
	Code string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include resource IDs, counters, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, code, and underlying error.
func (e *IngestError) Error() string {
	msg := fmt.Sprintf("jamfgraph: %s (%s)", e.Op, e.Kind)
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg = fmt.Sprintf("%s [context: %+v]", msg, e.Context)
	}
	return msg
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *IngestError) Unwrap() error {
	return e.Err
}

// Is implements error matching for IngestError, allowing comparison based on
// Kind and Code or on the underlying error.
func (e *IngestError) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*IngestError); ok {
		if t.Code != "" {
			return e.Code == t.Code
		}
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context merged in.
func (e *IngestError) WithContext(ctx map[string]any) *IngestError {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// ErrorCode extracts the stable code from err if it is (or wraps) an
// IngestError, or returns the empty string.
func ErrorCode(err error) string {
	var ie *IngestError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// NewNotFoundError creates a new IngestError with KindNotFound.
func NewNotFoundError(op string, err error) *IngestError {
	return &IngestError{Op: op, Kind: KindNotFound, Err: err}
}

// NewValidationError creates a new IngestError with KindValidation.
func NewValidationError(op string, err error) *IngestError {
	return &IngestError{Op: op, Kind: KindValidation, Err: err}
}

// NewExecutionError creates a new IngestError with KindExecution and the
// given operator-facing code.
func NewExecutionError(op, code string, err error) *IngestError {
	return &IngestError{Op: op, Kind: KindExecution, Code: code, Err: err}
}

// NewConfigurationError creates a new IngestError with KindConfiguration.
func NewConfigurationError(op string, err error) *IngestError {
	return &IngestError{Op: op, Kind: KindConfiguration, Err: err}
}

// NewNetworkError creates a new IngestError with KindNetwork.
func NewNetworkError(op string, err error) *IngestError {
	return &IngestError{Op: op, Kind: KindNetwork, Err: err}
}

// NewInternalError creates a new IngestError with KindInternal.
func NewInternalError(op string, err error) *IngestError {
	return &IngestError{Op: op, Kind: KindInternal, Err: err}
}

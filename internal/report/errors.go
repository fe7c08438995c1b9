package report

import "fmt"

// ConfigurationError means neither a dataset nor a usable cache was
// supplied. It is raised before any computation is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("report configuration: %s", e.Reason)
}

// EmptyListPreconditionError means the traversal hit an empty (not null)
// list of records. The walker has no defined behavior for empty lists;
// the data must be normalized before building the report.
type EmptyListPreconditionError struct {
	Cause error
}

func (e *EmptyListPreconditionError) Error() string {
	return fmt.Sprintf("empty list-of-record encountered: %v; "+
		"replace empty lists with null (dataset.NormalizeEmptyLists) before building the report", e.Cause)
}

func (e *EmptyListPreconditionError) Unwrap() error {
	return e.Cause
}

// ComputationFailureError wraps any other failure of the aggregation
// pass. These failures are deterministic functions of the schema and
// data, so no retry is attempted.
type ComputationFailureError struct {
	Cause error
}

func (e *ComputationFailureError) Error() string {
	return fmt.Sprintf("missingness computation failed: %v", e.Cause)
}

func (e *ComputationFailureError) Unwrap() error {
	return e.Cause
}

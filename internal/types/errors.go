package types

import "fmt"

// PipelineError is implemented by every terminal error of the parsing
// pipeline. Kind returns a stable identifier for API responses.
type PipelineError interface {
	error
	Kind() string
}

// EmptyInputError means the input was empty or whitespace-only after
// boilerplate stripping.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string { return "input data cannot be empty" }
func (e *EmptyInputError) Kind() string  { return "empty_input" }

// InsufficientRowsError means fewer than a header row plus one data row
// remained after blank-line filtering.
type InsufficientRowsError struct {
	Lines int
}

func (e *InsufficientRowsError) Error() string {
	return fmt.Sprintf("input must contain a header row and at least one data row (found %d non-blank line(s))", e.Lines)
}
func (e *InsufficientRowsError) Kind() string { return "insufficient_rows" }

// MissingHeaderError means no header detection strategy found an identifier
// column.
type MissingHeaderError struct{}

func (e *MissingHeaderError) Error() string {
	return `missing required header column: "ID" or "RDQuota"`
}
func (e *MissingHeaderError) Kind() string { return "missing_header" }

// MissingColumnError means a required field has no resolvable column.
type MissingColumnError struct {
	Field string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required header column: %q", e.Field)
}
func (e *MissingColumnError) Kind() string { return "missing_column" }

// EmptyResultError means every data row was filtered out.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "no valid data rows could be processed, please check your input"
}
func (e *EmptyResultError) Kind() string { return "empty_result" }

// UnknownParseError wraps any other failure during parsing.
type UnknownParseError struct {
	Cause error
}

func (e *UnknownParseError) Error() string {
	if e.Cause == nil {
		return "unexpected parse failure"
	}
	return fmt.Sprintf("unexpected parse failure: %v", e.Cause)
}
func (e *UnknownParseError) Kind() string  { return "unknown" }
func (e *UnknownParseError) Unwrap() error { return e.Cause }

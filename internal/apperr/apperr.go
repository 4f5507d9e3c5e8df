// Package apperr defines the error taxonomy shared by the pipeline stages and
// the HTTP layer. Stages wrap causes with one of these types; the server maps
// them to status codes.
package apperr

import "fmt"

// ValidationError rejects a bad upload (size or media type) before any
// pipeline work starts. It is the only failure a client sees synchronously.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}

// ExternalToolError wraps a failed external process invocation
// (transcoder, scene detector, speech-to-text, archiver).
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// RefinementError reports an LLM call that exhausted its retries. A chunk-level
// refinement failure degrades to an empty contribution and is never fatal.
type RefinementError struct {
	Goal string
	Err  error
}

func (e *RefinementError) Error() string {
	return fmt.Sprintf("refine %s: %v", e.Goal, e.Err)
}

func (e *RefinementError) Unwrap() error { return e.Err }

// NotFoundError reports a missing job or artifact on a status or download query.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.What)
}

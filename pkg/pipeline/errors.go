package pipeline

import "fmt"

// The three per-candidate error kinds. All are non-fatal: the driver logs
// the candidate identifier, increments the failure counter and moves on to
// the next candidate.

// FetchError wraps a transport failure or non-success status from upstream.
type FetchError struct {
	Candidate string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Candidate, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError wraps an unparseable title/body or a missing required field.
type ExtractionError struct {
	Candidate string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Candidate, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// FileWriteError wraps an unwritable destination.
type FileWriteError struct {
	Candidate string
	Err       error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Candidate, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

package feed

import "fmt"

// RequestError reports that the feed was unreachable or answered with a
// non-success status.
type RequestError struct {
	StatusCode int
	Snippet    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed request failed: %v", e.Err)
	}
	return fmt.Sprintf("feed returned status %d body: %s", e.StatusCode, e.Snippet)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError reports that the feed answered but the payload did not have
// the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode feed payload: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

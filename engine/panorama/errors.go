package panorama

import "fmt"

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	// Field names the offending input.
	Field string
	// Reason describes the problem.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a reference to an unregistered panorama.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("panorama %q is not registered", e.URL)
}

// LoadError reports a failed texture fetch or decode. It is delivered through the
// texture future returned at registration.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load panorama %q: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

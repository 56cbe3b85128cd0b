package paramspace

import "fmt"

//////
// Exported functionalities.
//////

// ApplyTransform runs the configured transform on the assignment and
// returns the result. With no transform set, the assignment is returned
// unchanged.
//
// Any failure raised by the transform, an error return as well as a panic,
// is wrapped in a *TransformError carrying the assignment that triggered
// it. Inactive parameters are absent from the assignment, so a transform
// that dereferences a gated key without a presence check fails only on the
// draws where that branch is inactive. The assignment in the error is what
// makes that intermittent failure diagnosable.
func (s *SearchSpace) ApplyTransform(a Assignment) (result Assignment, err error) {
	s.mu.RLock()
	fn := s.transform
	s.mu.RUnlock()

	if fn == nil {
		return a, nil
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &TransformError{
				Assignment: a,
				Err:        fmt.Errorf("panic: %v", r),
			}
		}
	}()

	out, ferr := fn(a)
	if ferr != nil {
		return nil, &TransformError{Assignment: a, Err: ferr}
	}

	return out, nil
}

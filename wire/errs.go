package wire

import "fmt"

// UnknownShapeError reports a wire object whose single key starts with
// '@' but matches no known variant wrapper.
type UnknownShapeError struct {
	Key string
}

func (e *UnknownShapeError) Error() string {
	return fmt.Sprintf("unknown wire shape %q", e.Key)
}

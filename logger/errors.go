package logger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrArgumentShape matches every *ArgumentShapeError via errors.Is.
var ErrArgumentShape = errors.New("invalid arguments")

// ArgumentShapeError reports an Xf call whose first two arguments hold no string message.
type ArgumentShapeError struct {
	Args []any
}

// Error renders the offending argument list as JSON when possible.
func (e *ArgumentShapeError) Error() string {
	encoded, err := json.Marshal(e.Args)
	if err != nil {
		return fmt.Sprintf("%s: %v", ErrArgumentShape, e.Args)
	}
	return fmt.Sprintf("%s: %s", ErrArgumentShape, encoded)
}

// Is reports whether target is ErrArgumentShape.
func (e *ArgumentShapeError) Is(target error) bool {
	return target == ErrArgumentShape
}

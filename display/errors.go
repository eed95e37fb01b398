package display

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyBuilt = errors.New("display already built, clean the manager first")
	ErrNoWindow     = errors.New("window could not be created")
)

// Error reports a failed display operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "display: " + e.Op
	}
	return fmt.Sprintf("display: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

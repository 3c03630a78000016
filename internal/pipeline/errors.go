package pipeline

import (
	"errors"
	"fmt"
)

// InputError is returned when the caller-supplied text is invalid. It is
// the only error class the pipeline surfaces for reachable input states;
// collaborator failures degrade into the report instead.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// IsInputError reports whether err is an InputError
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

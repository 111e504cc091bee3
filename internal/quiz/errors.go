package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrNotStarted      = errors.New("quiz is not in progress")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
)

const validationMessage = "Please select an option before continuing."

// ValidationError is returned when the user tries to move on without answering.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %q: %s", e.Key, validationMessage)
}

// Message is the notice shown to the user.
func (e *ValidationError) Message() string {
	return validationMessage
}

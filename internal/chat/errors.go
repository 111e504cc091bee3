package chat

import (
	"errors"
	"fmt"
)

// ErrRequestInFlight is returned by Submit while an earlier message is unanswered.
var ErrRequestInFlight = errors.New("a chat request is already in flight")

// ServiceError describes a failed exchange with the completion service.
type ServiceError struct {
	Status int
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("chat service: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("chat service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

package quiz

import "maps"

// Phase is the lifecycle stage of a quiz run.
type Phase int

const (
	NotStarted Phase = iota
	InProgress
	Completed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// State is the mutable part of a quiz run.
type State struct {
	Phase        Phase
	CurrentIndex int
	Answers      map[string]string
}

func newState() State {
	return State{Phase: NotStarted, Answers: make(map[string]string)}
}

func (s State) clone() State {
	s.Answers = maps.Clone(s.Answers)
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	return s
}

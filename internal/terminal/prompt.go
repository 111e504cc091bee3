package terminal

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// errQuit means the user asked to leave the current screen.
var errQuit = errors.New("quit requested")

type prompter interface {
	Select(label string, items []string, cursor int) (int, error)
	Input(label string) (string, error)
}

type promptUI struct{}

func (p promptUI) Select(label string, items []string, cursor int) (int, error) {
	s := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: max(cursor, 0),
		Size:      len(items),
	}

	i, _, err := s.Run()
	return i, translate(err)
}

func (p promptUI) Input(label string) (string, error) {
	s := promptui.Prompt{
		Label: label,
	}

	text, err := s.Run()
	return text, translate(err)
}

func translate(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errQuit
	}
	return err
}

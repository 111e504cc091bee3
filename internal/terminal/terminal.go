package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/mindmate/internal/app"
	"github.com/spigell/mindmate/internal/chat"
	"github.com/spigell/mindmate/internal/navigation"
	"github.com/spigell/mindmate/internal/quiz"
)

const (
	menuQuiz     = "Take the career quiz"
	menuChat     = "Chat with the AI mentor"
	menuFeatures = "What can MindMate do?"
	menuQuit     = "Quit"
	menuBack     = "Back to menu"

	chatExit = "/back"
)

// action is what a row of the quiz menu does when chosen.
type action int

const (
	actionOption action = iota
	actionPrevious
	actionNext
	actionBack
)

// Terminal renders the widget in a terminal and drives it from user input.
type Terminal struct {
	out     io.Writer
	prompt  prompter
	widget  *app.Widget
	logger  *zap.Logger
	timeout time.Duration

	total   int
	current quiz.View
}

var _ app.Host = (*Terminal)(nil)

func New(logger *zap.Logger, timeout time.Duration) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Terminal{
		out:     os.Stdout,
		prompt:  promptUI{},
		logger:  logger,
		timeout: timeout,
	}
}

// Attach binds the widget the terminal drives.
func (t *Terminal) Attach(w *app.Widget) { t.widget = w }

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) Reveal() {
	t.printf("\n")
}

func (t *Terminal) SetTotalQuestions(n int) { t.total = n }

func (t *Terminal) SetActive(section string, active bool) {
	if !active {
		return
	}
	if title, ok := sectionTitles[section]; ok {
		t.printf("%s\n", title)
	}
}

func (t *Terminal) ScrollTop() {
	t.printf("%s\n", strings.Repeat("=", 60))
}

func (t *Terminal) RenderQuestion(v quiz.View) { t.current = v }

func (t *Terminal) Highlight(key string, index int) {
	if t.current.Key != key {
		return
	}
	for i := range t.current.Options {
		t.current.Options[i].Selected = t.current.Options[i].Index == index
	}
}

func (t *Terminal) Notify(message string) {
	t.printf("! %s\n", message)
}

func (t *Terminal) Append(e chat.Entry) {
	t.printf("%s\n", formatEntry(e))
}

func (t *Terminal) Remove(int) {}

func (t *Terminal) ClearInput() {}

// Run shows the main menu until the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	if t.widget == nil {
		return errors.New("terminal has no widget attached")
	}

	t.widget.Init()

	items := []string{menuQuiz, menuChat, menuFeatures, menuQuit}
	for {
		i, err := t.prompt.Select("What would you like to do?", items, 0)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("main menu: %w", err)
		}

		switch items[i] {
		case menuQuiz:
			err = t.runQuiz()
		case menuChat:
			err = t.runChat(ctx)
		case menuFeatures:
			t.widget.Home()
			continue
		case menuQuit:
			return nil
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		t.widget.Home()
	}
}

func (t *Terminal) runQuiz() error {
	engine := t.widget.Quiz
	engine.Start()

	for engine.Phase() == quiz.InProgress {
		v := t.current
		t.printf("\n%s\n", questionHeader(v))

		items, actions := quizItems(v)
		i, err := t.prompt.Select("Choose an answer", items, max(v.SelectedIndex(), 0))
		if err != nil {
			return err
		}

		switch actions[i] {
		case actionOption:
			err = engine.SelectOption(v.Options[i].Index)
		case actionPrevious:
			err = engine.Retreat()
		case actionNext:
			err = engine.Advance()
		case actionBack:
			return nil
		}

		var vErr *quiz.ValidationError
		if err != nil && !errors.As(err, &vErr) {
			return fmt.Errorf("quiz: %w", err)
		}
	}

	if t.widget.Nav.IsActive(navigation.SectionRoadmap) {
		t.printf("\n%s", formatRoadmap(engine.Questions(), engine.Answers()))
	}
	return nil
}

func (t *Terminal) runChat(ctx context.Context) error {
	t.widget.OpenChat()
	t.printf("Type %s to return to the menu.\n", chatExit)

	for {
		text, err := t.prompt.Input("You")
		if err != nil {
			return err
		}

		if strings.TrimSpace(text) == chatExit {
			return nil
		}

		if err := t.send(ctx, text); err != nil {
			t.logger.Warn("message not sent", zap.Error(err))
		}
	}
}

func (t *Terminal) send(ctx context.Context, text string) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.widget.Send(ctx, text)
}

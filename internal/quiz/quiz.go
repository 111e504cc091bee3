package quiz

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/mindmate/internal/logger"
	"github.com/spigell/mindmate/internal/navigation"
)

// Navigator switches the visible section of the page.
type Navigator interface {
	Show(name string) bool
}

// Renderer draws the quiz for the user. Implementations must tolerate being
// called with the same view repeatedly.
type Renderer interface {
	RenderQuestion(v View)
	Highlight(key string, index int)
	Notify(message string)
}

// Engine drives a quiz run over a fixed list of questions.
type Engine struct {
	questions []Question
	index     map[string]int
	state     State

	nav      Navigator
	renderer Renderer
	logger   *zap.Logger
}

func New(questions []Question, nav Navigator, renderer Renderer, log *zap.Logger) (*Engine, error) {
	if len(questions) == 0 {
		return nil, errors.New("at least one question is required")
	}

	index := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.Key == "" {
			return nil, fmt.Errorf("question %d has an empty key", i)
		}
		if _, ok := index[q.Key]; ok {
			return nil, fmt.Errorf("duplicate question key %q", q.Key)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %q has no options", q.Key)
		}
		index[q.Key] = i
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		questions: append([]Question(nil), questions...),
		index:     index,
		state:     newState(),
		nav:       nav,
		renderer:  renderer,
		logger:    log,
	}, nil
}

func (e *Engine) Questions() []Question {
	return append([]Question(nil), e.questions...)
}

func (e *Engine) Total() int { return len(e.questions) }

func (e *Engine) Phase() Phase { return e.state.Phase }

func (e *Engine) CurrentIndex() int { return e.state.CurrentIndex }

// Answers returns a copy of the collected answers.
func (e *Engine) Answers() map[string]string { return e.state.clone().Answers }

// Start resets the run and shows the first question.
func (e *Engine) Start() {
	if e.nav != nil {
		e.nav.Show(navigation.SectionQuiz)
	}

	e.state = State{
		Phase:        InProgress,
		CurrentIndex: 0,
		Answers:      make(map[string]string),
	}

	e.logger.Debug("quiz started", zap.Int("questions", len(e.questions)))
	e.render()
}

// Render returns the view for the given question using the live answers.
func (e *Engine) Render(index int) (View, bool) {
	return Render(e.questions, e.state.Answers, index)
}

// Current returns the view of the question being shown.
func (e *Engine) Current() (View, bool) {
	if e.state.Phase != InProgress {
		return View{}, false
	}
	return e.Render(e.state.CurrentIndex)
}

// Select records value as the answer for key, replacing any earlier answer.
// Answers are frozen outside of a run.
func (e *Engine) Select(key, value string) error {
	if e.state.Phase != InProgress {
		return ErrNotStarted
	}

	i, ok := e.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, key)
	}

	opt := e.questions[i].OptionIndex(value)
	if opt < 0 {
		return fmt.Errorf("%w: %q for question %q", ErrUnknownOption, value, key)
	}

	e.state.Answers[key] = value
	e.logger.Debug("answer selected", logger.QuestionFields(key, value)...)

	if e.renderer != nil && e.questions[e.state.CurrentIndex].Key == key {
		e.renderer.Highlight(key, opt)
	}

	return nil
}

// SelectOption answers the current question with the option at position i.
func (e *Engine) SelectOption(i int) error {
	if e.state.Phase != InProgress {
		return ErrNotStarted
	}

	q := e.questions[e.state.CurrentIndex]
	if i < 0 || i >= len(q.Options) {
		return fmt.Errorf("%w: index %d for question %q", ErrUnknownOption, i, q.Key)
	}

	return e.Select(q.Key, q.Options[i])
}

// Advance moves to the next question, or completes the quiz from the last one.
// It fails with *ValidationError while the current question is unanswered.
func (e *Engine) Advance() error {
	if e.state.Phase != InProgress {
		return ErrNotStarted
	}

	key := e.questions[e.state.CurrentIndex].Key
	if _, ok := e.state.Answers[key]; !ok {
		err := &ValidationError{Key: key}
		if e.renderer != nil {
			e.renderer.Notify(err.Message())
		}
		return err
	}

	if e.state.CurrentIndex < len(e.questions)-1 {
		e.state.CurrentIndex++
		e.render()
		return nil
	}

	e.complete()
	return nil
}

// Retreat goes back one question. Answers are kept.
func (e *Engine) Retreat() error {
	if e.state.Phase != InProgress {
		return ErrNotStarted
	}

	if e.state.CurrentIndex == 0 {
		return nil
	}

	e.state.CurrentIndex--
	e.render()
	return nil
}

func (e *Engine) complete() {
	e.state.Phase = Completed
	e.logger.Info("quiz completed", zap.Any("answers", e.state.Answers))

	if e.nav != nil {
		e.nav.Show(navigation.SectionRoadmap)
	}
}

func (e *Engine) render() {
	v, ok := e.Render(e.state.CurrentIndex)
	if !ok || e.renderer == nil {
		return
	}
	e.renderer.RenderQuestion(v)
}

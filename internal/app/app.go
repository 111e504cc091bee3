package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/mindmate/internal/chat"
	"github.com/spigell/mindmate/internal/navigation"
	"github.com/spigell/mindmate/internal/quiz"
)

// Host is the environment the widget is drawn in. It combines the
// collaborators of every component plus the page-level operations.
type Host interface {
	navigation.Host
	quiz.Renderer
	chat.View

	// Reveal hides the loading placeholder and shows the main content.
	Reveal()
	SetTotalQuestions(n int)
}

// Config configures the widget.
type Config struct {
	ChatURL   string
	Questions []quiz.Question
}

// Widget wires navigation, quiz and chat together.
type Widget struct {
	Nav  *navigation.Controller
	Quiz *quiz.Engine
	Chat *chat.Client

	host   Host
	logger *zap.Logger
}

func New(cfg Config, host Host, logger *zap.Logger) (*Widget, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	questions := cfg.Questions
	if len(questions) == 0 {
		questions = quiz.DefaultQuestions()
	}

	nav := navigation.New(navigation.DefaultSections, host, logger.Named("navigation"))

	engine, err := quiz.New(questions, nav, host, logger.Named("quiz"))
	if err != nil {
		return nil, fmt.Errorf("creating quiz: %w", err)
	}

	client := chat.New(cfg.ChatURL, chat.NewTranscript(host), logger.Named("chat"))

	return &Widget{
		Nav:    nav,
		Quiz:   engine,
		Chat:   client,
		host:   host,
		logger: logger,
	}, nil
}

// Init is the page-ready entry point.
func (w *Widget) Init() {
	w.logger.Info("initializing widget")

	if w.host != nil {
		w.host.Reveal()
	}

	w.Nav.Show(navigation.SectionHome)

	if w.host != nil {
		w.host.SetTotalQuestions(w.Quiz.Total())
	}

	w.logger.Info("widget initialized", zap.Int("questions", w.Quiz.Total()))
}

// StartQuiz begins a fresh quiz run.
func (w *Widget) StartQuiz() { w.Quiz.Start() }

// OpenChat switches to the chat panel.
func (w *Widget) OpenChat() { w.Nav.Show(navigation.SectionChat) }

// Home returns to the landing section.
func (w *Widget) Home() { w.Nav.Show(navigation.SectionHome) }

// Send submits a chat message as if Enter had been pressed in the input.
func (w *Widget) Send(ctx context.Context, text string) error {
	return w.Chat.HandleKey(ctx, chat.KeyEnter, text)
}

package terminal

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/mindmate/internal/app"
	"github.com/spigell/mindmate/internal/chat"
	"github.com/spigell/mindmate/internal/navigation"
	"github.com/spigell/mindmate/internal/quiz"
)

// scriptedPrompter answers select menus by item label and inputs in order.
type scriptedPrompter struct {
	t       *testing.T
	choices []string
	inputs  []string
	seen    [][]string
}

func (s *scriptedPrompter) Select(_ string, items []string, _ int) (int, error) {
	s.seen = append(s.seen, items)
	if len(s.choices) == 0 {
		return 0, errQuit
	}
	choice := s.choices[0]
	s.choices = s.choices[1:]

	for i, item := range items {
		if item == choice || strings.HasSuffix(item, " "+choice) {
			return i, nil
		}
	}
	s.t.Fatalf("choice %q not among %v", choice, items)
	return 0, nil
}

func (s *scriptedPrompter) Input(string) (string, error) {
	if len(s.inputs) == 0 {
		return "", errQuit
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	return in, nil
}

func newTestTerminal(t *testing.T, chatURL string, p *scriptedPrompter) (*Terminal, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	term := &Terminal{out: &out, prompt: p, logger: zap.NewNop()}

	w, err := app.New(app.Config{ChatURL: chatURL}, term, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	term.Attach(w)
	return term, &out
}

func TestQuizFlow(t *testing.T) {
	questions := quiz.DefaultQuestions()
	p := &scriptedPrompter{t: t, choices: []string{
		menuQuiz,
		quiz.LabelNext, // unanswered, blocked
		questions[0].Options[2],
		quiz.LabelNext,
		questions[1].Options[0],
		quiz.LabelPrevious,
		quiz.LabelNext,
		quiz.LabelNext,
		questions[2].Options[1],
		quiz.LabelNext,
		questions[3].Options[5],
		quiz.LabelComplete,
		menuQuit,
	}}

	term, out := newTestTerminal(t, "", p)
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "! Please select an option before continuing.") {
		t.Fatalf("expected validation notice, got:\n%s", text)
	}
	if !strings.Contains(text, "Your Career Roadmap") {
		t.Fatalf("expected roadmap section, got:\n%s", text)
	}
	if !strings.Contains(text, "Research and Development") {
		t.Fatalf("expected answers in roadmap, got:\n%s", text)
	}

	want := map[string]string{
		"subjects":    questions[0].Options[2],
		"activities":  questions[1].Options[0],
		"environment": questions[2].Options[1],
		"careerTrack": questions[3].Options[5],
	}
	got := term.widget.Quiz.Answers()
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("answer %s: expected %q, got %q", k, v, got[k])
		}
	}

	if active := term.widget.Nav.Active(); !slices.Equal(active, []string{navigation.SectionHome, navigation.SectionFeatures}) {
		t.Fatalf("expected to return home, got %v", active)
	}
}

func TestChatFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"response":"Start with an internship.","fallback":true}`))
	}))
	defer srv.Close()

	p := &scriptedPrompter{
		t:       t,
		choices: []string{menuChat, menuQuit},
		inputs:  []string{"   ", "How do I start?", chatExit},
	}

	term, out := newTestTerminal(t, srv.URL, p)
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{"You: How do I start?", typingText, "AI Mentor: Start with an internship.", "AI Mentor: " + chat.FallbackNote} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}

	if n := term.widget.Chat.Transcript().Len(); n != 3 {
		t.Fatalf("expected 3 transcript entries, got %d", n)
	}
}

func TestQuizItems(t *testing.T) {
	v, _ := quiz.Render(quiz.DefaultQuestions(), map[string]string{"activities": "Leading and organizing"}, 1)

	items, actions := quizItems(v)
	if len(items) != len(v.Options)+3 {
		t.Fatalf("unexpected items: %v", items)
	}
	if items[3] != "(*) Leading and organizing" || !strings.HasPrefix(items[0], "( ) ") {
		t.Fatalf("unexpected option rows: %v", items)
	}
	if items[6] != quiz.LabelPrevious || actions[6] != actionPrevious {
		t.Fatalf("expected previous control, got %q", items[6])
	}
	if items[7] != quiz.LabelNext || items[8] != menuBack {
		t.Fatalf("unexpected controls: %v", items[6:])
	}

	want := []action{
		actionOption, actionOption, actionOption, actionOption, actionOption, actionOption,
		actionPrevious, actionNext, actionBack,
	}
	if !slices.Equal(actions, want) {
		t.Fatalf("expected actions %v, got %v", want, actions)
	}

	first, _ := quiz.Render(quiz.DefaultQuestions(), nil, 0)
	_, actions = quizItems(first)
	if slices.Contains(actions, actionPrevious) {
		t.Fatalf("expected no previous control on the first question, got %v", actions)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(25); got != "[#####---------------]" {
		t.Fatalf("unexpected bar: %s", got)
	}
	if got := progressBar(100); got != "["+strings.Repeat("#", progressWidth)+"]" {
		t.Fatalf("unexpected bar: %s", got)
	}
}

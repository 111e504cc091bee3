package terminal

import (
	"fmt"
	"strings"

	"github.com/spigell/mindmate/internal/chat"
	"github.com/spigell/mindmate/internal/navigation"
	"github.com/spigell/mindmate/internal/quiz"
)

const (
	progressWidth = 20
	typingText    = "AI Mentor is typing..."
)

var sectionTitles = map[string]string{
	navigation.SectionHome:     "MindMate - your AI career guide",
	navigation.SectionFeatures: "Take a short quiz to discover your path, or chat with the AI mentor.",
	navigation.SectionQuiz:     "Career Quiz",
	navigation.SectionRoadmap:  "Your Career Roadmap",
	navigation.SectionChat:     "AI Mentor Chat",
}

func progressBar(percent float64) string {
	filled := int(percent / 100 * progressWidth)
	filled = min(max(filled, 0), progressWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
}

func questionHeader(v quiz.View) string {
	return fmt.Sprintf("Question %d of %d %s %.0f%%\n%s", v.Number, v.Total, progressBar(v.Progress), v.Progress, v.Prompt)
}

// quizItems lists the select menu rows for a question: options first, then
// navigation controls.
func quizItems(v quiz.View) ([]string, []action) {
	items := make([]string, 0, len(v.Options)+3)
	actions := make([]action, 0, len(v.Options)+3)

	for _, o := range v.Options {
		mark := "( )"
		if o.Selected {
			mark = "(*)"
		}
		items = append(items, mark+" "+o.Text)
		actions = append(actions, actionOption)
	}

	if v.HasPrevious {
		items = append(items, quiz.LabelPrevious)
		actions = append(actions, actionPrevious)
	}

	items = append(items, v.NextLabel)
	actions = append(actions, actionNext)

	items = append(items, menuBack)
	actions = append(actions, actionBack)

	return items, actions
}

func formatEntry(e chat.Entry) string {
	if e.Typing {
		return typingText
	}
	switch e.Sender {
	case chat.SenderUser:
		return "You: " + e.Text
	default:
		return "AI Mentor: " + e.Text
	}
}

func formatRoadmap(questions []quiz.Question, answers map[string]string) string {
	var b strings.Builder
	for _, q := range questions {
		a, ok := answers[q.Key]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s\n    -> %s\n", q.Prompt, a)
	}

	if track, ok := answers["careerTrack"]; ok {
		fmt.Fprintf(&b, "\nSuggested next step: ask the AI mentor how to get started in %s.\n", track)
	}

	return b.String()
}

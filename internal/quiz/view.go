package quiz

const (
	LabelPrevious = "Previous"
	LabelNext     = "Next"
	LabelComplete = "Complete Quiz"
)

// Option is a rendered answer choice. Index ties it back to Question.Options.
type Option struct {
	Index    int
	Text     string
	Selected bool
}

// View is everything a host needs to draw one question.
type View struct {
	Key         string
	Prompt      string
	Options     []Option
	Number      int
	Total       int
	Progress    float64
	HasPrevious bool
	NextLabel   string
}

// SelectedIndex returns the index of the selected option or -1.
func (v View) SelectedIndex() int {
	for _, o := range v.Options {
		if o.Selected {
			return o.Index
		}
	}
	return -1
}

// Progress is the completion percentage shown while on the given question.
func Progress(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(index+1) / float64(total) * 100
}

// Render builds the view for questions[index] from the live answers.
func Render(questions []Question, answers map[string]string, index int) (View, bool) {
	if index < 0 || index >= len(questions) {
		return View{}, false
	}

	q := questions[index]
	selected, answered := answers[q.Key]

	options := make([]Option, len(q.Options))
	for i, text := range q.Options {
		options[i] = Option{
			Index:    i,
			Text:     text,
			Selected: answered && text == selected,
		}
	}

	// Duplicate option texts must still highlight a single entry.
	seen := false
	for i := range options {
		if options[i].Selected {
			if seen {
				options[i].Selected = false
			}
			seen = true
		}
	}

	next := LabelNext
	if index == len(questions)-1 {
		next = LabelComplete
	}

	return View{
		Key:         q.Key,
		Prompt:      q.Prompt,
		Options:     options,
		Number:      index + 1,
		Total:       len(questions),
		Progress:    Progress(index, len(questions)),
		HasPrevious: index > 0,
		NextLabel:   next,
	}, true
}

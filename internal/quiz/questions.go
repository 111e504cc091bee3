package quiz

// Question is a single quiz step. Key is the stable identity used for answers.
type Question struct {
	Key     string   `mapstructure:"key"`
	Prompt  string   `mapstructure:"prompt"`
	Options []string `mapstructure:"options"`
}

// OptionIndex returns the position of value among the options or -1.
func (q Question) OptionIndex(value string) int {
	for i, o := range q.Options {
		if o == value {
			return i
		}
	}
	return -1
}

// DefaultQuestions returns the career preference questions.
func DefaultQuestions() []Question {
	return []Question{
		{
			Key:    "subjects",
			Prompt: "Which subjects interest you the most?",
			Options: []string{
				"Mathematics and Science",
				"Languages and Literature",
				"Arts and Design",
				"Business and Economics",
				"Technology and Computers",
				"Social Sciences and History",
			},
		},
		{
			Key:    "activities",
			Prompt: "What activities do you enjoy doing?",
			Options: []string{
				"Solving complex problems",
				"Creating and designing",
				"Helping and teaching others",
				"Leading and organizing",
				"Researching and analyzing",
				"Building and fixing things",
			},
		},
		{
			Key:    "environment",
			Prompt: "What work environment do you prefer?",
			Options: []string{
				"Office with team collaboration",
				"Creative studio or workshop",
				"Remote or flexible work",
				"Outdoor or field work",
				"Laboratory or research facility",
				"Client-facing or customer service",
			},
		},
		{
			Key:    "careerTrack",
			Prompt: "Which career track appeals to you most?",
			Options: []string{
				"Engineering and Technology",
				"Healthcare and Medicine",
				"Business and Management",
				"Arts and Creative Industries",
				"Education and Training",
				"Research and Development",
			},
		},
	}
}

package server

import "strings"

type cannedReply struct {
	keywords []string
	text     string
}

var cannedReplies = []cannedReply{
	{
		keywords: []string{"resume", "cv"},
		text: "A strong resume leads with measurable results. Keep it to one or two pages, " +
			"tailor the summary to each role and list the skills the job posting asks for.",
	},
	{
		keywords: []string{"interview"},
		text: "Prepare for interviews by researching the company, practicing answers with the STAR method " +
			"and preparing two or three questions of your own.",
	},
	{
		keywords: []string{"skill", "learn", "course"},
		text: "Pick one skill that appears in most postings for your target role, learn it through a small project " +
			"and add the project to your portfolio.",
	},
	{
		keywords: []string{"switch", "change", "transition"},
		text: "When changing careers, map the skills you already have to the new field, take on a side project " +
			"there and talk to people who already do the job.",
	},
	{
		keywords: []string{"salary", "pay", "negotiat"},
		text: "Research market ranges for the role and location before negotiating, and anchor the conversation " +
			"on the value you bring.",
	},
}

const defaultReply = "I'm here to help you explore careers! Ask me about career paths, " +
	"the skills a role needs, resumes, interviews or job search strategies."

// fallbackReply answers locally when the AI backend cannot.
func fallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, r := range cannedReplies {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.text
			}
		}
	}
	return defaultReply
}

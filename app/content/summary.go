package content

import "strings"

const (
	// SummaryWords is the number of words kept in a post summary.
	SummaryWords = 40
	// Ellipsis marks a truncated summary.
	Ellipsis = "..."
)

// Summarize returns the first SummaryWords words of the raw Markdown body.
func Summarize(body string) string {
	words := strings.Fields(body)
	if len(words) <= SummaryWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:SummaryWords], " ") + Ellipsis
}

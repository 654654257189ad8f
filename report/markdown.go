package report

import (
	"fmt"
	"strings"
	"time"
)

func Markdown(doc Document) string {
	var b strings.Builder
	r := doc.Result

	fmt.Fprintf(&b, "# %s\n\n", doc.title())
	if t := doc.Teacher; t != nil {
		fmt.Fprintf(&b, "- Teacher: %s\n", t.Name())
		if t.Email != "" {
			fmt.Fprintf(&b, "- Email: %s\n", t.Email)
		}
		if t.EducationDetails != "" {
			fmt.Fprintf(&b, "- Educational details: %s\n", strings.TrimSpace(t.EducationDetails))
		}
	}
	fmt.Fprintf(&b, "- Source: `%s`\n", doc.source())
	if !doc.Generated.IsZero() {
		fmt.Fprintf(&b, "- Generated: %s\n", doc.Generated.Format(time.RFC3339))
	}
	b.WriteString("\n## Scores\n\n")
	b.WriteString("| Measure | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Clarity | %.1f/10 |\n", r.ClarityScore)
	fmt.Fprintf(&b, "| Engagement | %.1f/10 |\n", r.EngagementScore)
	fmt.Fprintf(&b, "| Words per minute | %.1f |\n", r.WordsPerMinute)
	fmt.Fprintf(&b, "| Filler words | %d |\n", r.FillerCount)
	fmt.Fprintf(&b, "| Lexical diversity | %.3f |\n", r.LexicalDiversity)

	fmt.Fprintf(&b, "\n## Summary\n\n%s\n", r.Summary)
	writeList(&b, "Strengths", r.Strengths)
	writeList(&b, "Weaknesses", r.Weaknesses)
	writeList(&b, "Suggestions", r.Suggestions)

	if len(doc.Pacing) > 0 {
		b.WriteString("\n## Pacing\n\n| Window | Words | WPM | Fillers |\n|---|---|---|---|\n")
		for _, p := range doc.Pacing {
			fmt.Fprintf(&b, "| %s | %d | %.1f | %d |\n", p.Span(), p.Words, p.WPM, p.Fillers)
		}
	}
	if len(doc.Warnings) > 0 {
		writeList(&b, "Warnings", doc.Warnings)
	}
	if ex := excerpt(doc.Transcript); ex != "" {
		fmt.Fprintf(&b, "\n## Transcript (excerpt)\n\n%s\n", ex)
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	if len(items) == 0 {
		b.WriteString("_None._\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

package report

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// Console prints a compact terminal view of the document.
func Console(w io.Writer, doc Document, colorize bool) {
	r := doc.Result
	paint := func(s color.Style, text string) string {
		if !colorize {
			return text
		}
		return s.Render(text)
	}

	header := doc.title()
	if doc.Source != "" {
		header += " - " + doc.Source
	}
	fmt.Fprintln(w, paint(color.New(color.OpBold), header))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Measure", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk([][]string{
		{"Clarity", fmt.Sprintf("%.1f/10", r.ClarityScore)},
		{"Engagement", fmt.Sprintf("%.1f/10", r.EngagementScore)},
		{"Words per minute", fmt.Sprintf("%.1f", r.WordsPerMinute)},
		{"Filler words", fmt.Sprintf("%d", r.FillerCount)},
		{"Lexical diversity", fmt.Sprintf("%.3f", r.LexicalDiversity)},
	})
	table.Render()

	list := func(title string, s color.Style, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintln(w, paint(color.New(color.OpBold), title))
		for _, it := range items {
			fmt.Fprintln(w, "  "+paint(s, "• "+it))
		}
	}
	list("Strengths", color.New(color.FgGreen), r.Strengths)
	list("Weaknesses", color.New(color.FgRed), r.Weaknesses)
	list("Suggestions", color.New(color.FgCyan), r.Suggestions)
	list("Warnings", color.New(color.FgYellow), doc.Warnings)
	fmt.Fprintln(w, r.Summary)
}

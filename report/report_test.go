package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teachlens/teachlens-pipeline/analysis"
)

func sampleDoc() Document {
	res := analysis.DefaultRubric().Score(
		analysis.SentimentScores{Negative: 0.05, Neutral: 0.8, Positive: 0.15, Compound: 0.42},
		analysis.Metrics{WordsPerMinute: 118.4, FillerCount: 7, LexicalDiversity: 0.52},
	)
	return Document{
		Teacher: &TeacherInfo{
			FirstName:        "Ada",
			LastName:         "Lovelace",
			Email:            "ada@school.test",
			EducationDetails: "MSc Mathematics, 12 years teaching",
		},
		Source:     "algebra.mp4",
		Generated:  time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Result:     res,
		Transcript: "Um, so today we solve equations.",
		Pacing:     []PaceRow{{Start: 0, End: 60, Words: 120, WPM: 120, Fillers: 3}, {Start: 60, End: 95, Words: 70, WPM: 120, Fillers: 4}},
		Warnings:   []string{"transcript language looks like Dutch"},
	}
}

func TestMarkdown(t *testing.T) {
	req := require.New(t)
	md := Markdown(sampleDoc())

	req.True(strings.HasPrefix(md, "# "+DefaultTitle+"\n"))
	for _, want := range []string{
		"- Teacher: Ada Lovelace",
		"- Email: ada@school.test",
		"- Source: `algebra.mp4`",
		"- Generated: 2026-03-02T09:30:00Z",
		"| Filler words | 7 |",
		"| Lexical diversity | 0.520 |",
		"## Strengths\n\n- " + analysis.StrengthLowNegative,
		"- Filler words detected (7)",
		"| 00:00-01:00 | 120 | 120.0 | 3 |",
		"| 01:00-01:35 | 70 | 120.0 | 4 |",
		"## Warnings",
		"## Transcript (excerpt)\n\nUm, so today we solve equations.",
	} {
		req.Contains(md, want)
	}

	// Then sections keep the report order
	idx := func(s string) int { return strings.Index(md, s) }
	req.Less(idx("## Summary"), idx("## Strengths"))
	req.Less(idx("## Strengths"), idx("## Weaknesses"))
	req.Less(idx("## Weaknesses"), idx("## Suggestions"))
	req.Less(idx("## Suggestions"), idx("## Transcript"))
}

func TestMarkdown_Minimal(t *testing.T) {
	req := require.New(t)
	md := Markdown(Document{Result: analysis.DefaultRubric().Score(analysis.SentimentScores{Negative: 0.5}, analysis.Metrics{LexicalDiversity: 1})})

	req.Contains(md, "- Source: `lesson.mp4`")
	req.Contains(md, "## Weaknesses\n\n_None._")
	req.NotContains(md, "Teacher:")
	req.NotContains(md, "## Pacing")
	req.NotContains(md, "## Transcript")
}

func TestExcerpt(t *testing.T) {
	req := require.New(t)
	long := strings.Repeat("é", ExcerptLimit+50)

	req.Len([]rune(excerpt(long)), ExcerptLimit)
	req.Equal("short", excerpt("  short \n"))
}

func TestPDF(t *testing.T) {
	req := require.New(t)
	doc := sampleDoc()

	out, err := PDF(doc)
	req.NoError(err)
	req.True(bytes.HasPrefix(out, []byte("%PDF-")))
	req.Equal(1, build(doc).PageNo())

	// Then a long transcript flows onto more pages
	doc.Transcript = strings.Repeat("Fractions are parts of a whole and we compare them carefully. ", 150)
	p := build(doc)
	req.NoError(p.Error())
	req.Greater(p.PageNo(), 1)
}

func TestPDF_NoTeacherEmptyLists(t *testing.T) {
	req := require.New(t)
	out, err := PDF(Document{Result: analysis.EvaluationResult{Summary: "n/a"}})
	req.NoError(err)
	req.NotEmpty(out)
}

func TestEncoders(t *testing.T) {
	req := require.New(t)
	res := sampleDoc().Result

	j, err := JSON(res)
	req.NoError(err)
	var flat map[string]any
	req.NoError(json.Unmarshal(j, &flat))
	for _, k := range []string{"clarity_score", "engagement_score", "strengths", "weaknesses", "suggestions", "summary", "sentiment", "wpm", "filler_count", "lexical_diversity"} {
		req.Contains(flat, k)
	}

	y, err := YAML(res)
	req.NoError(err)
	var back analysis.EvaluationResult
	req.NoError(yaml.Unmarshal(y, &back))
	req.Equal(res, back)
	req.Contains(string(y), "filler_count: 7")
}

func TestConsole(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	Console(&buf, sampleDoc(), false)
	out := buf.String()

	req.Contains(out, DefaultTitle+" - algebra.mp4")
	req.Contains(out, "Clarity")
	req.Contains(out, "118.4")
	req.Contains(out, "• "+analysis.SuggestionFiller)
	req.Contains(out, "transcript language looks like Dutch")
	req.NotContains(out, "\x1b[")
}

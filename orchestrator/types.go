package orchestrator

import (
	"time"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/report"
)

type Utterance struct {
	Start float64 // sec
	End   float64 // sec
	Text  string
}

type Window struct {
	T0, T1 float64
	Utts   []Utterance
	// Aggregates
	Words   int
	WPM     float64
	Fillers int
}

// Meta describes where an input came from.
type Meta struct {
	Source  string // display name, e.g. the uploaded filename
	Teacher *report.TeacherInfo
}

// Bundle is everything one run produced. It is written as report.json.
type Bundle struct {
	ID           string                    `json:"id"`
	SessionID    string                    `json:"session_id"`
	Source       string                    `json:"source"`
	GeneratedAt  time.Time                 `json:"generated_at"`
	Language     string                    `json:"language,omitempty"`
	AudioSeconds float64                   `json:"audio_seconds"`
	Warnings     []string                  `json:"warnings,omitempty"`
	Transcript   string                    `json:"transcript"`
	Result       analysis.EvaluationResult `json:"result"`
	Pacing       []report.PaceRow          `json:"pacing,omitempty"`
	RenderedPath string                    `json:"rendered_path,omitempty"`
	Dir          string                    `json:"-"`

	teacher *report.TeacherInfo
}

// Document turns the bundle into a renderable report.
func (b *Bundle) Document() report.Document {
	return report.Document{
		Teacher:    b.teacher,
		Source:     b.Source,
		Generated:  b.GeneratedAt,
		Result:     b.Result,
		Transcript: b.Transcript,
		Pacing:     b.Pacing,
		Warnings:   b.Warnings,
	}
}

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/teachlens/teachlens-pipeline/analysis"
)

const (
	DefaultTitle = "Teacher Lesson Evaluation Report"
	// ExcerptLimit caps the transcript printed in a report, in characters.
	ExcerptLimit = 8000
)

type TeacherInfo struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	EducationDetails string `json:"education_details"`
}

func (t TeacherInfo) Name() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// PaceRow is one pacing window of the lesson.
type PaceRow struct {
	Start   float64 `json:"start" yaml:"start"`
	End     float64 `json:"end" yaml:"end"`
	Words   int     `json:"words" yaml:"words"`
	WPM     float64 `json:"wpm" yaml:"wpm"`
	Fillers int     `json:"fillers" yaml:"fillers"`
}

func (p PaceRow) Span() string {
	return clock(p.Start) + "-" + clock(p.End)
}

type Document struct {
	Title      string
	Teacher    *TeacherInfo
	Source     string
	Generated  time.Time
	Result     analysis.EvaluationResult
	Transcript string
	Pacing     []PaceRow
	Warnings   []string
}

func (d Document) title() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

func (d Document) source() string {
	if d.Source == "" {
		return "lesson.mp4"
	}
	return d.Source
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= ExcerptLimit {
		return s
	}
	return string(r[:ExcerptLimit])
}

func clock(sec float64) string {
	d := time.Duration(sec*1000) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

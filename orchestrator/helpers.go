package orchestrator

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/report"
	"github.com/teachlens/teachlens-pipeline/transcribe"
)

// utterances keeps only segments with usable timings.
func utterances(segs []transcribe.Segment) []Utterance {
	timed := lo.Filter(segs, func(s transcribe.Segment, _ int) bool {
		return s.End > s.Start && strings.TrimSpace(s.Text) != ""
	})
	return lo.Map(timed, func(s transcribe.Segment, _ int) Utterance {
		return Utterance{Start: s.Start, End: s.End, Text: s.Text}
	})
}

// window slices the session into fixed windows stepping by size-overlap.
// An utterance belongs to every window that holds its midpoint.
func (p *Pipeline) window(utts []Utterance) []Window {
	if len(utts) == 0 {
		return nil
	}
	// compute session bounds
	start := utts[0].Start
	end := utts[len(utts)-1].End
	for _, u := range utts {
		start = math.Min(start, u.Start)
		end = math.Max(end, u.End)
	}
	w := float64(p.cfg.Features.TimeWindow)
	o := float64(p.cfg.Features.Overlap)
	step := w - o
	if w <= 0 || step <= 0 {
		w, step = end-start, end-start
	}

	var out []Window
	for t0 := start; t0 < end; t0 += step {
		t1 := math.Min(t0+w, end)
		var slice []Utterance
		for _, u := range utts {
			mid := (u.Start + u.End) / 2
			last := t1 == end && mid == end
			if (mid >= t0 && mid < t1) || last {
				slice = append(slice, u)
			}
		}
		out = append(out, Window{T0: t0, T1: t1, Utts: slice})
	}
	return out
}

func (p *Pipeline) aggregate(w *Window) {
	text := strings.Join(lo.Map(w.Utts, func(u Utterance, _ int) string { return u.Text }), " ")
	w.Words = len(strings.Fields(text))
	w.Fillers = analysis.FillerCount(text)
	if w.T1 > w.T0 {
		w.WPM = analysis.WordsPerMinute(text, w.T1-w.T0)
	}
}

func (p *Pipeline) toRow(w Window) report.PaceRow {
	return report.PaceRow{Start: w.T0, End: w.T1, Words: w.Words, WPM: w.WPM, Fillers: w.Fillers}
}

func (p *Pipeline) pacing(segs []transcribe.Segment) []report.PaceRow {
	windows := p.window(utterances(segs))
	rows := make([]report.PaceRow, 0, len(windows))
	for i := range windows {
		p.aggregate(&windows[i])
		rows = append(rows, p.toRow(windows[i]))
	}
	return rows
}

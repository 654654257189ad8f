package analysis

import (
	"fmt"
	"math"
)

const (
	StrengthPositive    = "Generally positive / encouraging language"
	StrengthLowNegative = "Low negative phrasing"
	StrengthFallback    = "Clear wording in parts of the lesson"

	WeaknessNeutral   = "High neutral content — may lack emotional engagement"
	WeaknessFillerFmt = "Filler words detected (%d) — reduces clarity"
	WeaknessLexical   = "Limited lexical variety"

	SuggestionNeutral  = "Add more interactive questions and expressive cues to increase engagement."
	SuggestionFiller   = "Reduce fillers by pausing intentionally between ideas."
	SuggestionLexical  = "Use varied examples and vocabulary to explain concepts."
	SuggestionFallback = "Encourage student interaction; add concrete examples; slow down for clarity if needed."

	DefaultSummary = "This evaluation provides clarity and engagement scores based on transcript sentiment and speech patterns. " +
		"Use the suggestions to improve interaction and explanation clarity."

	minScore = 1.0
	maxScore = 10.0
)

// Rubric holds the calibration constants of the scorer. The defaults are
// hand-picked heuristics, not fitted values; change them through config
// rather than in code.
type Rubric struct {
	PositiveStrength  float64
	NegativeStrength  float64
	NeutralWeakness   float64
	FillerWeakness    int
	DiversityWeakness float64
	Summary           string
}

func DefaultRubric() Rubric {
	return Rubric{
		PositiveStrength:  0.3,
		NegativeStrength:  0.2,
		NeutralWeakness:   0.6,
		FillerWeakness:    5,
		DiversityWeakness: 0.3,
		Summary:           DefaultSummary,
	}
}

func (r Rubric) Validate() error {
	ratios := []struct {
		name string
		v    float64
	}{
		{"positive_strength", r.PositiveStrength},
		{"negative_strength", r.NegativeStrength},
		{"neutral_weakness", r.NeutralWeakness},
		{"diversity_weakness", r.DiversityWeakness},
	}
	for _, ratio := range ratios {
		if ratio.v < 0 || ratio.v > 1 || math.IsNaN(ratio.v) {
			return fmt.Errorf("rubric %s must be within [0,1], got %v", ratio.name, ratio.v)
		}
	}
	if r.FillerWeakness < 0 {
		return fmt.Errorf("rubric filler_weakness must be >= 0, got %d", r.FillerWeakness)
	}
	return nil
}

// Score turns sentiment and metrics into bounded scores and narrative.
func (r Rubric) Score(s SentimentScores, m Metrics) EvaluationResult {
	res := EvaluationResult{
		ClarityScore:    clamp(round(((s.Compound+1)/2)*10, 1)),
		EngagementScore: clamp(round((s.Positive-s.Negative+0.5)*10/1.5, 1)),
		Strengths:       make([]string, 0, 2),
		Weaknesses:      make([]string, 0, 3),
		Suggestions:     make([]string, 0, 3),
		Summary:         r.Summary,
		Sentiment:       s,
		Metrics:         m,
	}
	if res.Summary == "" {
		res.Summary = DefaultSummary
	}

	if s.Positive > r.PositiveStrength {
		res.Strengths = append(res.Strengths, StrengthPositive)
	}
	if s.Negative < r.NegativeStrength {
		res.Strengths = append(res.Strengths, StrengthLowNegative)
	}

	if s.Neutral > r.NeutralWeakness {
		res.Weaknesses = append(res.Weaknesses, WeaknessNeutral)
		res.Suggestions = append(res.Suggestions, SuggestionNeutral)
	}
	if m.FillerCount > r.FillerWeakness {
		res.Weaknesses = append(res.Weaknesses, fmt.Sprintf(WeaknessFillerFmt, m.FillerCount))
		res.Suggestions = append(res.Suggestions, SuggestionFiller)
	}
	if m.LexicalDiversity < r.DiversityWeakness {
		res.Weaknesses = append(res.Weaknesses, WeaknessLexical)
		res.Suggestions = append(res.Suggestions, SuggestionLexical)
	}

	if len(res.Strengths) == 0 {
		res.Strengths = append(res.Strengths, StrengthFallback)
	}
	if len(res.Suggestions) == 0 {
		res.Suggestions = append(res.Suggestions, SuggestionFallback)
	}
	return res
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return minScore
	}
	return math.Max(minScore, math.Min(maxScore, v))
}

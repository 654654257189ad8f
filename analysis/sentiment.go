package analysis

import (
	"strings"
	"sync"

	"github.com/jonreiter/govader"
)

type SentimentModel interface {
	PolarityScores(text string) SentimentScores
}

// vaderModel wraps the VADER lexicon analyzer. Building it loads the full
// lexicon and emoji tables, so it is done once per process.
type vaderModel struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

var (
	vaderOnce sync.Once
	vader     *vaderModel
)

// DefaultSentimentModel returns the process-wide VADER model, building it on
// first use. Calls are serialized; the analyzer keeps no per-call state but
// does not promise reentrancy either.
func DefaultSentimentModel() SentimentModel {
	vaderOnce.Do(func() {
		vader = &vaderModel{analyzer: govader.NewSentimentIntensityAnalyzer()}
	})
	return vader
}

// PolarityScores is all zeros when text has no tokens.
func (v *vaderModel) PolarityScores(text string) SentimentScores {
	if strings.TrimSpace(text) == "" {
		return SentimentScores{}
	}
	v.mu.Lock()
	s := v.analyzer.PolarityScores(text)
	v.mu.Unlock()
	return SentimentScores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}

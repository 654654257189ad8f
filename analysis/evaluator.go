package analysis

import "sync"

// Evaluator runs the metric extractor and the rubric scorer on one transcript.
// It holds no per-call state and is safe for concurrent use.
type Evaluator struct {
	sentiment SentimentModel
	rubric    Rubric
}

type Option func(*Evaluator)

func WithSentimentModel(m SentimentModel) Option {
	return func(e *Evaluator) { e.sentiment = m }
}

func WithRubric(r Rubric) Option {
	return func(e *Evaluator) { e.rubric = r }
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{rubric: DefaultRubric()}
	for _, o := range opts {
		o(e)
	}
	if e.sentiment == nil {
		e.sentiment = DefaultSentimentModel()
	}
	return e
}

func (e *Evaluator) Rubric() Rubric { return e.rubric }

func (e *Evaluator) Sentiment(text string) SentimentScores {
	return e.sentiment.PolarityScores(text)
}

func (e *Evaluator) ExtractMetrics(text string, audioSeconds float64) Metrics {
	return ExtractMetrics(text, audioSeconds)
}

// Evaluate scores a transcript. audioSeconds <= 0 means the duration is unknown.
func (e *Evaluator) Evaluate(text string, audioSeconds float64) EvaluationResult {
	return e.rubric.Score(e.Sentiment(text), e.ExtractMetrics(text, audioSeconds))
}

var (
	defaultOnce sync.Once
	defaultEval *Evaluator
)

// Evaluate scores a transcript with the default rubric and VADER model.
func Evaluate(text string, audioSeconds float64) EvaluationResult {
	defaultOnce.Do(func() { defaultEval = NewEvaluator() })
	return defaultEval.Evaluate(text, audioSeconds)
}

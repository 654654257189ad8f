package analysis

// SentimentScores is the polarity breakdown produced by the sentiment model.
type SentimentScores struct {
	Negative float64 `json:"neg" yaml:"neg"`
	Neutral  float64 `json:"neu" yaml:"neu"`
	Positive float64 `json:"pos" yaml:"pos"`
	Compound float64 `json:"compound" yaml:"compound"`
}

type Metrics struct {
	WordsPerMinute   float64 `json:"wpm" yaml:"wpm"`
	FillerCount      int     `json:"filler_count" yaml:"filler_count"`
	LexicalDiversity float64 `json:"lexical_diversity" yaml:"lexical_diversity"`
}

// EvaluationResult is the rubric output handed to report renderers.
// Metrics is embedded so its fields sit next to the scores when encoded.
type EvaluationResult struct {
	ClarityScore    float64         `json:"clarity_score" yaml:"clarity_score"`
	EngagementScore float64         `json:"engagement_score" yaml:"engagement_score"`
	Strengths       []string        `json:"strengths" yaml:"strengths"`
	Weaknesses      []string        `json:"weaknesses" yaml:"weaknesses"`
	Suggestions     []string        `json:"suggestions" yaml:"suggestions"`
	Summary         string          `json:"summary" yaml:"summary"`
	Sentiment       SentimentScores `json:"sentiment" yaml:"sentiment"`
	Metrics         `yaml:",inline"`
}

package transcribe

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/teachlens/teachlens-pipeline/clients"
	"github.com/teachlens/teachlens-pipeline/errs"
)

//go:generate mockgen -source=transcribe.go -destination=../mocks/mock_transcriber.go -package=mocks

// Segment is a timed slice of speech. Start and End are seconds from the
// beginning of the audio; both are 0 when the backend gives no timings.
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Text  string  `json:"text" yaml:"text"`
}

type Transcript struct {
	Text     string    `json:"text" yaml:"text"`
	Language string    `json:"language,omitempty" yaml:"language,omitempty"`
	Segments []Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
	// Duration in seconds as reported by the backend, 0 when unknown.
	Duration float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Transcriber turns an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Transcript, error)
}

const (
	BackendASR    = "asr"
	BackendOpenAI = "openai"
	BackendGoogle = "google"
)

type Config struct {
	Backend string
	ASRURL  string
	OpenAI  OpenAIConfig
	Google  GoogleConfig
}

// New picks the backend named by cfg.Backend. The google backend holds a gRPC
// connection; callers should close it through io.Closer when done.
func New(cfg Config, hc *clients.HTTP, log logrus.FieldLogger) (Transcriber, error) {
	log = log.WithField("component", "transcribe")
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendASR:
		if cfg.ASRURL == "" {
			return nil, fmt.Errorf("asr backend: services.asr.url is empty")
		}
		if hc == nil {
			hc = clients.NewHTTP()
		}
		return NewASR(hc, cfg.ASRURL), nil
	case BackendOpenAI:
		return NewOpenAI(cfg.OpenAI, log)
	case BackendGoogle:
		return NewGoogle(cfg.Google, log)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownBackend, cfg.Backend)
	}
}

func joinSegments(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

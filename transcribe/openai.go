package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// openAIBackend calls an OpenAI compatible audio.transcriptions endpoint.
type openAIBackend struct {
	cfg OpenAIConfig
	hc  *http.Client
	log logrus.FieldLogger
}

type openAIResp struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func NewOpenAI(cfg OpenAIConfig, log logrus.FieldLogger) (Transcriber, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai backend: api key is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Minute
	}
	return &openAIBackend{cfg: cfg, hc: &http.Client{Timeout: cfg.Timeout}, log: log}, nil
}

func (o *openAIBackend) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return Transcript{}, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", o.cfg.Model); err != nil {
		return Transcript{}, err
	}
	// verbose_json carries segment timings, language and duration
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return Transcript{}, err
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return Transcript{}, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return Transcript{}, err
	}
	if err := mw.Close(); err != nil {
		return Transcript{}, err
	}

	url := strings.TrimRight(o.cfg.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return Transcript{}, err
	}
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := o.hc.Do(req)
	if err != nil {
		return Transcript{}, fmt.Errorf("openai transcribe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return Transcript{}, fmt.Errorf("openai http %d: %s", resp.StatusCode, string(b))
	}
	var or openAIResp
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return Transcript{}, fmt.Errorf("openai decode: %w", err)
	}
	o.log.WithFields(logrus.Fields{"model": o.cfg.Model, "took": time.Since(start).String()}).Debug("openai transcription done")

	t := Transcript{
		Language: or.Language,
		Duration: or.Duration,
		Segments: make([]Segment, 0, len(or.Segments)),
	}
	for _, s := range or.Segments {
		t.Segments = append(t.Segments, Segment{Start: s.Start, End: s.End, Text: s.Text})
	}
	t.Text = strings.TrimSpace(or.Text)
	if t.Text == "" {
		t.Text = joinSegments(t.Segments)
	}
	return t, nil
}

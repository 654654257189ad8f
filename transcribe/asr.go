package transcribe

import (
	"context"
	"fmt"

	"github.com/teachlens/teachlens-pipeline/clients"
)

// asrBackend forwards audio to the self-hosted ASR service.
type asrBackend struct {
	http *clients.HTTP
	url  string
}

func NewASR(hc *clients.HTTP, url string) Transcriber {
	return &asrBackend{http: hc, url: url}
}

func (a *asrBackend) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	resp, err := a.http.ASR(ctx, a.url, audioPath)
	if err != nil {
		return Transcript{}, fmt.Errorf("asr transcribe: %w", err)
	}
	t := Transcript{
		Text:     resp.Transcript(),
		Language: resp.Language,
		Duration: resp.Duration,
		Segments: make([]Segment, 0, len(resp.Segments)),
	}
	for _, s := range resp.Segments {
		t.Segments = append(t.Segments, Segment{Start: s.Start, End: s.End, Text: s.Text})
	}
	return t, nil
}

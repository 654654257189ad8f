package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
)

type GoogleConfig struct {
	LanguageCode    string
	Model           string
	SampleRateHertz int
	CredentialsFile string
	// Bucket, when set, stages local audio in GCS so lessons past the
	// inline size limit can be recognized.
	Bucket          string
	Timeout         time.Duration
}

// recognizer is the slice of the Speech API the backend needs.
type recognizer interface {
	Recognize(ctx context.Context, req *speechpb.LongRunningRecognizeRequest) (*speechpb.LongRunningRecognizeResponse, error)
	Close() error
}

type speechRecognizer struct{ c *speech.Client }

func (s speechRecognizer) Recognize(ctx context.Context, req *speechpb.LongRunningRecognizeRequest) (*speechpb.LongRunningRecognizeResponse, error) {
	op, err := s.c.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

func (s speechRecognizer) Close() error { return s.c.Close() }

// googleBackend runs Cloud Speech long-running recognition on LINEAR16 audio.
type googleBackend struct {
	rec        recognizer
	stage      stager
	cfg        GoogleConfig
	log        logrus.FieldLogger
	maxRetries int
	backoff    time.Duration
}

func NewGoogle(cfg GoogleConfig, log logrus.FieldLogger) (Transcriber, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	ctx := context.Background()
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	g := newGoogleBackend(speechRecognizer{c: c}, cfg, log)
	if cfg.Bucket != "" {
		st, err := newGCSStager(ctx, cfg.Bucket, opts...)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		g.stage = st
	}
	return g, nil
}

func newGoogleBackend(rec recognizer, cfg GoogleConfig, log logrus.FieldLogger) *googleBackend {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en-US"
	}
	if cfg.SampleRateHertz <= 0 {
		cfg.SampleRateHertz = 16000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &googleBackend{rec: rec, cfg: cfg, log: log, maxRetries: 4, backoff: 750 * time.Millisecond}
}

func (g *googleBackend) Close() error {
	if g.stage != nil {
		_ = g.stage.Close()
	}
	return g.rec.Close()
}

// Transcribe accepts a local WAV path or a gs:// URI. Inline audio is
// limited by the API to about 10MB, so long lessons should go through GCS.
func (g *googleBackend) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	if g.stage != nil && !strings.HasPrefix(audioPath, "gs://") {
		if fi, err := os.Stat(audioPath); err != nil {
			return Transcript{}, err
		} else if fi.Size() == 0 {
			return Transcript{Language: g.cfg.LanguageCode}, nil
		}
		uri, cleanup, err := g.stage.Stage(ctx, audioPath)
		if err != nil {
			return Transcript{}, fmt.Errorf("stage audio: %w", err)
		}
		defer cleanup()
		g.log.WithField("uri", uri).Debug("audio staged")
		audioPath = uri
	}

	audio := &speechpb.RecognitionAudio{}
	if strings.HasPrefix(audioPath, "gs://") {
		audio.AudioSource = &speechpb.RecognitionAudio_Uri{Uri: audioPath}
	} else {
		b, err := os.ReadFile(audioPath)
		if err != nil {
			return Transcript{}, err
		}
		if len(b) == 0 {
			return Transcript{Language: g.cfg.LanguageCode}, nil
		}
		audio.AudioSource = &speechpb.RecognitionAudio_Content{Content: b}
	}

	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            int32(g.cfg.SampleRateHertz),
			AudioChannelCount:          1,
			LanguageCode:               g.cfg.LanguageCode,
			Model:                      g.cfg.Model,
			EnableAutomaticPunctuation: true,
			EnableWordTimeOffsets:      true,
		},
		Audio: audio,
	}

	resp, err := g.retry(ctx, func() (*speechpb.LongRunningRecognizeResponse, error) {
		return g.rec.Recognize(ctx, req)
	})
	if err != nil {
		return Transcript{}, fmt.Errorf("speech longrunningrecognize: %w", err)
	}
	return parseSpeechResponse(resp, g.cfg.LanguageCode), nil
}

func (g *googleBackend) retry(ctx context.Context, fn func() (*speechpb.LongRunningRecognizeResponse, error)) (*speechpb.LongRunningRecognizeResponse, error) {
	backoff := g.backoff
	var last error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == g.maxRetries {
			break
		}
		g.log.WithError(err).WithField("attempt", attempt+1).Warn("speech call failed, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, last
}

type speechWord struct {
	w    string
	s, e float64
}

// segmentWindow groups word timings into segments of roughly this many seconds.
const segmentWindow = 10.0

func parseSpeechResponse(resp *speechpb.LongRunningRecognizeResponse, lang string) Transcript {
	out := Transcript{Language: lang}
	if resp == nil {
		return out
	}

	var words []speechWord
	var full []string
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		if r.LanguageCode != "" {
			out.Language = r.LanguageCode
		}
		alt := r.Alternatives[0]
		if t := strings.TrimSpace(alt.Transcript); t != "" {
			full = append(full, t)
		}
		for _, w := range alt.Words {
			if w == nil {
				continue
			}
			words = append(words, speechWord{w: w.Word, s: durToSec(w.StartTime), e: durToSec(w.EndTime)})
		}
	}
	out.Text = strings.Join(full, " ")

	if len(words) == 0 {
		if out.Text != "" {
			out.Segments = []Segment{{Text: out.Text}}
		}
		return out
	}
	out.Segments = groupByTime(words, segmentWindow)
	out.Duration = words[len(words)-1].e
	return out
}

func groupByTime(words []speechWord, windowSec float64) []Segment {
	var segs []Segment
	cur := Segment{Start: words[0].s, End: words[0].e}
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		cur.Text = strings.Join(buf, " ")
		segs = append(segs, cur)
		buf = buf[:0]
	}

	for _, w := range words {
		if w.s-cur.Start >= windowSec && len(buf) > 0 {
			flush()
			cur = Segment{Start: w.s, End: w.e}
		}
		buf = append(buf, w.w)
		if w.e > cur.End {
			cur.End = w.e
		}
	}
	flush()
	return segs
}

func durToSec(d *durationpb.Duration) float64 {
	if d == nil {
		return 0
	}
	return d.AsDuration().Seconds()
}

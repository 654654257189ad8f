package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/teachlens/teachlens-pipeline/clients"
	"github.com/teachlens/teachlens-pipeline/errs"
)

func writeWav(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "lesson_audio_16k.wav")
	require.NoError(t, os.WriteFile(p, []byte("RIFF....WAVE"), 0o644))
	return p
}

func TestNew(t *testing.T) {
	log, _ := test.NewNullLogger()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		errText string
	}{
		{"Default is asr", Config{ASRURL: "http://asr:8000"}, nil, ""},
		{"Explicit asr", Config{Backend: "ASR", ASRURL: "http://asr:8000"}, nil, ""},
		{"Asr without url", Config{Backend: BackendASR}, nil, "services.asr.url"},
		{"Openai", Config{Backend: BackendOpenAI, OpenAI: OpenAIConfig{APIKey: "k"}}, nil, ""},
		{"Openai without key", Config{Backend: BackendOpenAI}, nil, "api key"},
		{"Unknown backend", Config{Backend: "carrier-pigeon"}, errs.ErrUnknownBackend, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			tr, err := New(tt.cfg, nil, log)
			switch {
			case tt.wantErr != nil:
				req.ErrorIs(err, tt.wantErr)
			case tt.errText != "":
				req.ErrorContains(err, tt.errText)
			default:
				req.NoError(err)
				req.NotNil(tr)
			}
		})
	}
}

func TestASRBackend(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(clients.ASRResp{
			Language: "en",
			Duration: 12.5,
			Segments: []clients.TransSeg{
				{Start: 0, End: 6, Text: "Today we look at fractions."},
				{Start: 6, End: 12.5, Text: "Who remembers halves?"},
			},
		})
	}))
	defer srv.Close()

	tr := NewASR(clients.NewHTTP(), srv.URL)
	got, err := tr.Transcribe(context.Background(), writeWav(t))
	req.NoError(err)
	req.Equal("Today we look at fractions. Who remembers halves?", got.Text)
	req.Equal("en", got.Language)
	req.Equal(12.5, got.Duration)
	req.Equal(Segment{Start: 6, End: 12.5, Text: "Who remembers halves?"}, got.Segments[1])
}

func TestOpenAIBackend(t *testing.T) {
	req := require.New(t)
	var gotAuth, gotModel, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		_, _ = w.Write([]byte(`{"text":" Good morning class. ","language":"english","duration":3.2,
			"segments":[{"start":0,"end":3.2,"text":" Good morning class."}]}`))
	}))
	defer srv.Close()
	log, _ := test.NewNullLogger()

	tr, err := NewOpenAI(OpenAIConfig{BaseURL: srv.URL + "/v1/", APIKey: "secret"}, log)
	req.NoError(err)
	got, err := tr.Transcribe(context.Background(), writeWav(t))
	req.NoError(err)

	req.Equal("Bearer secret", gotAuth)
	req.Equal("whisper-1", gotModel)
	req.Equal("verbose_json", gotFormat)
	req.Equal("Good morning class.", got.Text)
	req.Equal("english", got.Language)
	req.Equal(3.2, got.Duration)
	req.Len(got.Segments, 1)
}

func TestOpenAIBackend_HTTPError(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()
	log, _ := test.NewNullLogger()

	tr, err := NewOpenAI(OpenAIConfig{BaseURL: srv.URL, APIKey: "bad"}, log)
	req.NoError(err)
	_, err = tr.Transcribe(context.Background(), writeWav(t))
	req.ErrorContains(err, "openai http 401")
}

type fakeRecognizer struct {
	errs   []error
	resp   *speechpb.LongRunningRecognizeResponse
	calls  int
	lastRq *speechpb.LongRunningRecognizeRequest
}

func (f *fakeRecognizer) Recognize(_ context.Context, req *speechpb.LongRunningRecognizeRequest) (*speechpb.LongRunningRecognizeResponse, error) {
	f.lastRq = req
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.resp, nil
}

func (f *fakeRecognizer) Close() error { return nil }

func word(w string, s, e float64) *speechpb.WordInfo {
	return &speechpb.WordInfo{
		Word:      w,
		StartTime: durationpb.New(time.Duration(s * float64(time.Second))),
		EndTime:   durationpb.New(time.Duration(e * float64(time.Second))),
	}
}

func TestGoogleBackend(t *testing.T) {
	req := require.New(t)
	log, _ := test.NewNullLogger()
	rec := &fakeRecognizer{
		errs: []error{status.Error(codes.Unavailable, "try again")},
		resp: &speechpb.LongRunningRecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{
			{
				LanguageCode: "en-us",
				Alternatives: []*speechpb.SpeechRecognitionAlternative{{
					Transcript: "Open your books",
					Words:      []*speechpb.WordInfo{word("Open", 0, 0.5), word("your", 0.5, 0.8), word("books", 0.8, 1.4)},
				}},
			},
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{{
					Transcript: "to page ten",
					Words:      []*speechpb.WordInfo{word("to", 11, 11.2), word("page", 11.2, 11.6), word("ten", 11.6, 12)},
				}},
			},
		}},
	}
	g := newGoogleBackend(rec, GoogleConfig{}, log)
	g.backoff = time.Millisecond

	got, err := g.Transcribe(context.Background(), writeWav(t))
	req.NoError(err)
	req.Equal(2, rec.calls)
	req.Equal(speechpb.RecognitionConfig_LINEAR16, rec.lastRq.Config.Encoding)
	req.EqualValues(16000, rec.lastRq.Config.SampleRateHertz)
	req.Equal("en-US", rec.lastRq.Config.LanguageCode)

	req.Equal("Open your books to page ten", got.Text)
	req.Equal("en-us", got.Language)
	req.Len(got.Segments, 2)
	req.Equal("Open your books", got.Segments[0].Text)
	req.InDelta(11.0, got.Segments[1].Start, 1e-9)
	req.InDelta(12.0, got.Duration, 1e-9)
}

func TestGoogleBackend_GCSAndPermanentError(t *testing.T) {
	req := require.New(t)
	log, _ := test.NewNullLogger()
	rec := &fakeRecognizer{errs: []error{status.Error(codes.PermissionDenied, "no access")}}
	g := newGoogleBackend(rec, GoogleConfig{LanguageCode: "nl-NL"}, log)

	_, err := g.Transcribe(context.Background(), "gs://lessons/a.wav")
	req.Error(err)
	req.Equal(codes.PermissionDenied, status.Code(errors.Unwrap(err)))
	req.Equal(1, rec.calls)
	req.Equal("gs://lessons/a.wav", rec.lastRq.Audio.GetUri())
}

type fakeStager struct {
	err      error
	staged   []string
	cleanups int
	closed   bool
}

func (f *fakeStager) Stage(_ context.Context, localPath string) (string, func(), error) {
	if f.err != nil {
		return "", nil, f.err
	}
	f.staged = append(f.staged, localPath)
	return "gs://staging/" + filepath.Base(localPath), func() { f.cleanups++ }, nil
}

func (f *fakeStager) Close() error {
	f.closed = true
	return nil
}

func TestGoogleBackend_StagesLocalAudio(t *testing.T) {
	req := require.New(t)
	log, _ := test.NewNullLogger()
	rec := &fakeRecognizer{resp: &speechpb.LongRunningRecognizeResponse{}}
	st := &fakeStager{}
	g := newGoogleBackend(rec, GoogleConfig{}, log)
	g.stage = st

	wav := writeWav(t)
	_, err := g.Transcribe(context.Background(), wav)
	req.NoError(err)
	req.Equal([]string{wav}, st.staged)
	req.Equal(1, st.cleanups)
	req.Equal("gs://staging/lesson_audio_16k.wav", rec.lastRq.Audio.GetUri())
	req.Nil(rec.lastRq.Audio.GetContent())

	// gs:// input is not staged again
	_, err = g.Transcribe(context.Background(), "gs://lessons/b.wav")
	req.NoError(err)
	req.Len(st.staged, 1)

	st.err = errors.New("bucket gone")
	_, err = g.Transcribe(context.Background(), wav)
	req.ErrorContains(err, "stage audio")

	req.NoError(g.Close())
	req.True(st.closed)
}

func TestGoogleBackend_RetryStopsOnCancel(t *testing.T) {
	req := require.New(t)
	log, _ := test.NewNullLogger()
	rec := &fakeRecognizer{errs: []error{
		status.Error(codes.Unavailable, "busy"),
		status.Error(codes.Unavailable, "busy"),
	}}
	g := newGoogleBackend(rec, GoogleConfig{}, log)
	g.backoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := g.Transcribe(ctx, "gs://lessons/c.wav")
	req.ErrorIs(err, context.DeadlineExceeded)
	req.Less(time.Since(start), 5*time.Second)
	req.Equal(1, rec.calls)
}

func TestParseSpeechResponse_NoWordTimings(t *testing.T) {
	req := require.New(t)
	got := parseSpeechResponse(&speechpb.LongRunningRecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: " hello class "}}},
		nil,
	}}, "en-US")
	req.Equal("hello class", got.Text)
	req.Equal([]Segment{{Text: "hello class"}}, got.Segments)
	req.Zero(got.Duration)

	req.Equal(Transcript{Language: "en-US"}, parseSpeechResponse(nil, "en-US"))
}

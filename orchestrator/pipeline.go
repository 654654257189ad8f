package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/clients"
	cfg "github.com/teachlens/teachlens-pipeline/config"
	"github.com/teachlens/teachlens-pipeline/media"
	"github.com/teachlens/teachlens-pipeline/transcribe"
)

//go:generate mockgen -source=pipeline.go -destination=../mocks/mock_pipeline.go -package=mocks

type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, outDir string) (string, error)
}

type Evaluator interface {
	Evaluate(text string, audioSeconds float64) analysis.EvaluationResult
}

// Deps are the collaborators of a run. Nil Sniff defaults to media.Sniff.
type Deps struct {
	Extractor   AudioExtractor
	Transcriber transcribe.Transcriber
	Prober      media.DurationProber
	Evaluator   Evaluator
	Sniff       func(path string) (media.Kind, string, error)
}

type Pipeline struct {
	cfg  *cfg.Root
	http *clients.HTTP
	deps Deps
	log  logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, deps Deps, log logrus.FieldLogger) *Pipeline {
	if deps.Sniff == nil {
		deps.Sniff = media.Sniff
	}
	if deps.Extractor == nil || deps.Prober == nil {
		tools := media.NewTools(c.MediaOptions(), log)
		if deps.Extractor == nil {
			deps.Extractor = tools
		}
		if deps.Prober == nil {
			deps.Prober = tools
		}
	}
	if deps.Evaluator == nil {
		deps.Evaluator = analysis.NewEvaluator(analysis.WithRubric(c.AnalysisRubric()))
	}
	return &Pipeline{cfg: c, http: clients.NewHTTP(), deps: deps, log: log.WithField("component", "pipeline")}
}

// Run evaluates one lesson recording, audio or video, and persists the result.
func (p *Pipeline) Run(ctx context.Context, inputPath string, meta Meta) (*Bundle, error) {
	if meta.Source == "" {
		meta.Source = filepath.Base(inputPath)
	}
	id := uuid.NewString()
	log := p.log.WithFields(logrus.Fields{"report_id": id, "source": meta.Source})
	start := time.Now()

	kind, mime, err := p.deps.Sniff(inputPath)
	if err != nil {
		return nil, err
	}
	log.WithField("mime", mime).Debug("input sniffed")

	wav := inputPath
	if kind == media.KindVideo {
		tmp, err := os.MkdirTemp("", "teachlens-*")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmp)
		if wav, err = p.deps.Extractor.ExtractAudio(ctx, inputPath, tmp); err != nil {
			return nil, fmt.Errorf("extract audio: %w", err)
		}
	}

	tr, err := p.deps.Transcriber.Transcribe(ctx, wav)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	text := strings.TrimSpace(tr.Text)

	var warnings []string
	seconds := media.AudioDuration(ctx, p.deps.Prober, wav, p.cfg.Media.ProbeTimeout, log)
	if seconds <= 0 && tr.Duration > 0 {
		seconds = tr.Duration
	}
	if seconds <= 0 {
		warnings = append(warnings, fmt.Sprintf("audio duration unknown; words per minute assumes a %.0f minute lesson", analysis.FallbackMinutes))
	}

	result := p.deps.Evaluator.Evaluate(text, seconds)

	if text == "" {
		warnings = append(warnings, "transcript is empty; scores reflect silence")
	} else if info := whatlanggo.Detect(text); info.IsReliable() && info.Lang != whatlanggo.Eng {
		warnings = append(warnings, fmt.Sprintf("transcript language looks like %s; scoring assumes English", info.Lang.String()))
	}

	b := &Bundle{
		ID:           id,
		Source:       meta.Source,
		GeneratedAt:  time.Now().UTC(),
		Language:     tr.Language,
		AudioSeconds: seconds,
		Transcript:   text,
		Result:       result,
		Pacing:       p.pacing(tr.Segments),
		teacher:      meta.Teacher,
	}
	if b.SessionID, b.Dir, err = mkSessionDir(p.cfg.Paths.Outputs, id); err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}

	if url := p.cfg.Services.Renderer.URL; url != "" {
		resp, err := p.http.Render(ctx, url, clients.RenderReq{
			ReportID:   id,
			Source:     meta.Source,
			Rubric:     result,
			Transcript: text,
			OutputDir:  b.Dir,
		})
		if err != nil {
			log.WithError(err).Warn("renderer failed, continuing without it")
		} else {
			b.RenderedPath = resp.Path
		}
	}
	b.Warnings = warnings

	reportPath, err := persist(b)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"clarity":    result.ClarityScore,
		"engagement": result.EngagementScore,
		"report":     reportPath,
		"took":       time.Since(start).String(),
	}).Info("lesson evaluated")
	return b, nil
}

package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teachlens/teachlens-pipeline/errs"
)

//go:generate mockgen -source=probe.go -destination=../mocks/mock_prober.go -package=mocks

// DurationProber reports the length of a media file in seconds.
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (t *Tools) ProbeDuration(ctx context.Context, path string) (float64, error) {
	if _, err := exec.LookPath(t.opts.FFprobePath); err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrToolMissing, t.opts.FFprobePath)
	}
	cmd := exec.CommandContext(ctx, t.opts.FFprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbeOutput(out)
}

func parseProbeOutput(b []byte) (float64, error) {
	var p probeOutput
	if err := json.Unmarshal(b, &p); err != nil {
		return 0, fmt.Errorf("ffprobe decode: %w", err)
	}
	raw := strings.TrimSpace(p.Format.Duration)
	if raw == "" {
		return 0, errors.New("ffprobe: missing format.duration")
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration %q: %w", raw, err)
	}
	return d, nil
}

// AudioDuration probes path and never fails: a missing tool, a broken file,
// missing metadata, a non-positive value or a timeout all yield 0, which the
// metric extractor treats as an unknown duration.
func AudioDuration(ctx context.Context, prober DurationProber, path string, timeout time.Duration, log logrus.FieldLogger) float64 {
	if prober == nil || path == "" {
		return 0
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		d   float64
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := prober.ProbeDuration(ctx, path)
		done <- result{d, err}
	}()

	var r result
	select {
	case r = <-done:
	case <-ctx.Done():
		r.err = ctx.Err()
	}

	fields := logrus.Fields{"path": path}
	if r.err != nil {
		log.WithFields(fields).WithError(r.err).Warn("audio duration unavailable, assuming fallback lesson length")
		return 0
	}
	if r.d <= 0 {
		fields["duration"] = r.d
		log.WithFields(fields).Warn("audio duration not positive, assuming fallback lesson length")
		return 0
	}
	return r.d
}

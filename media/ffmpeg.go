package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teachlens/teachlens-pipeline/errs"
)

type Options struct {
	FFmpegPath     string
	FFprobePath    string
	SampleRate     int
	Channels       int
	ExtractTimeout time.Duration
}

// Tools wraps the ffmpeg and ffprobe binaries.
type Tools struct {
	opts Options
	log  logrus.FieldLogger
}

func NewTools(opts Options, log logrus.FieldLogger) *Tools {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.FFprobePath == "" {
		opts.FFprobePath = "ffprobe"
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 16000
	}
	if opts.Channels <= 0 {
		opts.Channels = 1
	}
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = 10 * time.Minute
	}
	return &Tools{opts: opts, log: log.WithField("component", "media")}
}

// ExtractAudio writes a mono 16kHz WAV into outDir and returns its path.
func (t *Tools) ExtractAudio(ctx context.Context, videoPath, outDir string) (string, error) {
	if _, err := exec.LookPath(t.opts.FFmpegPath); err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrToolMissing, t.opts.FFmpegPath)
	}
	if outDir == "" {
		outDir = os.TempDir()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir outDir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	out := filepath.Join(outDir, base+"_audio_16k.wav")

	ctx, cancel := context.WithTimeout(ctx, t.opts.ExtractTimeout)
	defer cancel()

	// ffmpeg -y -i input -vn -ac 1 -ar 16000 -f wav output
	cmd := exec.CommandContext(ctx, t.opts.FFmpegPath,
		"-y", "-i", videoPath,
		"-vn",
		"-ac", strconv.Itoa(t.opts.Channels),
		"-ar", strconv.Itoa(t.opts.SampleRate),
		"-f", "wav",
		out,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w; out=%s", err, tail(string(b), 512))
	}
	t.log.WithFields(logrus.Fields{"video": videoPath, "audio": out}).Debug("audio extracted")
	return out, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teachlens/teachlens-pipeline/analysis"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	req.NoError(err)
	req.Equal("teachlens", cfg.Pipeline.Name)
	req.Equal(16000, cfg.Audio.SampleRate)
	req.Equal("asr", cfg.Transcription.Backend)
	req.Equal(5*time.Second, cfg.Media.ProbeTimeout)
	req.Equal(24*time.Hour, cfg.Server.TokenTTL)
	req.Equal(int64(500<<20), cfg.MaxUploadBytes())
	req.Equal([]string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSOrigins)
	req.Equal(analysis.DefaultRubric(), cfg.AnalysisRubric())
	req.Equal(filepath.Join("data", "teachlens.db"), cfg.DatabasePath())

	cfg.Paths.Database = "/var/lib/teachlens/reports.db"
	req.Equal("/var/lib/teachlens/reports.db", cfg.DatabasePath())
}

func TestLoad_GuessedFileAndEnv(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "prod")
	writeFile(t, filepath.Join(dir, "config", "prod", "config.yaml"), `
pipeline:
  log_level: debug
features:
  time_window: 30
  overlap: 10
rubric:
  filler_weakness: 8
services:
  renderer:
    url: http://renderer:9000
`)
	t.Setenv("TEACHLENS_SERVER_ADDR", ":9999")
	t.Setenv("TEACHLENS_RUBRIC_NEUTRAL_WEAKNESS", "0.75")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	req.NoError(err)
	req.Equal("debug", cfg.Pipeline.LogLvl)
	req.Equal(30, cfg.Features.TimeWindow)
	req.Equal(10, cfg.Features.Overlap)
	req.Equal("http://renderer:9000", cfg.Services.Renderer.URL)
	req.Equal(":9999", cfg.Server.Addr)
	req.Equal("sk-test", cfg.TranscriberConfig().OpenAI.APIKey)

	r := cfg.AnalysisRubric()
	req.Equal(8, r.FillerWeakness)
	req.Equal(0.75, r.NeutralWeakness)
	req.Equal(0.3, r.PositiveStrength)
}

func TestLoad_DotEnv(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "custom.env"), "TEACHLENS_SERVER_JWT_SECRET=from-dotenv-file-123\n")
	t.Setenv("TEACHLENS_ENV", filepath.Join(dir, "custom.env"))
	// registered with t.Setenv so the value loaded by godotenv is reset afterwards
	t.Setenv("TEACHLENS_SERVER_JWT_SECRET", "")
	req.NoError(os.Unsetenv("TEACHLENS_SERVER_JWT_SECRET"))

	cfg, err := Load("")
	req.NoError(err)
	req.Equal("from-dotenv-file-123", cfg.Server.JWTSecret)
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".env"), "TEACHLENS_SERVER_ADDR=:7070\nbad-line\n")

	_, err := Load("")
	req.ErrorContains(err, "load env file .env")
}

func TestLoad_Explicit(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	t.Chdir(dir)

	good := filepath.Join(dir, "teachlens.yaml")
	writeFile(t, good, "transcription:\n  backend: google\nmedia:\n  probe_timeout: 2s\n")
	cfg, err := Load(good)
	req.NoError(err)
	req.Equal("google", cfg.TranscriberConfig().Backend)
	req.Equal(16000, cfg.TranscriberConfig().Google.SampleRateHertz)
	req.Equal(2*time.Second, cfg.Media.ProbeTimeout)
	req.Equal(1, cfg.MediaOptions().Channels)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	req.Error(err)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := []struct {
		name string
		body string
	}{
		{"Overlap not below window", "features:\n  time_window: 30\n  overlap: 30\n"},
		{"Unknown backend", "transcription:\n  backend: fax\n"},
		{"Ratio above one", "rubric:\n  neutral_weakness: 1.5\n"},
		{"Negative filler threshold", "rubric:\n  filler_weakness: -1\n"},
		{"Bad log format", "pipeline:\n  log_format: xml\n"},
		{"Bad CORS origin", "server:\n  cors_origins: [\"not a url\"]\n"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			p := filepath.Join(dir, "bad", tt.name+".yaml")
			writeFile(t, p, tt.body)
			_, err := Load(p)
			req.Error(err, "case %d", i)
		})
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/media"
	"github.com/teachlens/teachlens-pipeline/transcribe"
)

const EnvPrefix = "TEACHLENS"

type Service struct {
	URL string `yaml:"url" mapstructure:"url"`
}
type Services struct {
	ASR      Service `yaml:"asr" mapstructure:"asr"`
	Renderer Service `yaml:"renderer" mapstructure:"renderer"`
}
type Audio struct {
	SampleRate int    `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gt=0"`
	Channels   int    `yaml:"channels" mapstructure:"channels" validate:"gt=0"`
	Format     string `yaml:"format" mapstructure:"format"`
}

// Features sizes the pacing windows, in seconds.
type Features struct {
	TimeWindow int `yaml:"time_window" mapstructure:"time_window" validate:"gt=0"`
	Overlap    int `yaml:"overlap" mapstructure:"overlap" validate:"gte=0,ltfield=TimeWindow"`
}
type Transcription struct {
	Backend string        `yaml:"backend" mapstructure:"backend" validate:"oneof=asr openai google"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	OpenAI  struct {
		BaseURL string `yaml:"base_url" mapstructure:"base_url"`
		APIKey  string `yaml:"api_key" mapstructure:"api_key"`
		Model   string `yaml:"model" mapstructure:"model"`
	} `yaml:"openai" mapstructure:"openai"`
	Google struct {
		LanguageCode    string `yaml:"language_code" mapstructure:"language_code"`
		Model           string `yaml:"model" mapstructure:"model"`
		CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
		Bucket          string `yaml:"bucket" mapstructure:"bucket"`
	} `yaml:"google" mapstructure:"google"`
}
type Media struct {
	FFmpeg         string        `yaml:"ffmpeg" mapstructure:"ffmpeg"`
	FFprobe        string        `yaml:"ffprobe" mapstructure:"ffprobe"`
	ProbeTimeout   time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout" validate:"gt=0"`
	ExtractTimeout time.Duration `yaml:"extract_timeout" mapstructure:"extract_timeout" validate:"gt=0"`
}
type Rubric struct {
	PositiveStrength  float64 `yaml:"positive_strength" mapstructure:"positive_strength" validate:"gte=0,lte=1"`
	NegativeStrength  float64 `yaml:"negative_strength" mapstructure:"negative_strength" validate:"gte=0,lte=1"`
	NeutralWeakness   float64 `yaml:"neutral_weakness" mapstructure:"neutral_weakness" validate:"gte=0,lte=1"`
	FillerWeakness    int     `yaml:"filler_weakness" mapstructure:"filler_weakness" validate:"gte=0"`
	DiversityWeakness float64 `yaml:"diversity_weakness" mapstructure:"diversity_weakness" validate:"gte=0,lte=1"`
	Summary           string  `yaml:"summary" mapstructure:"summary"`
}
type Server struct {
	Addr        string        `yaml:"addr" mapstructure:"addr"`
	JWTSecret   string        `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	MaxUploadMB int64         `yaml:"max_upload_mb" mapstructure:"max_upload_mb" validate:"gt=0"`
	CORSOrigins []string      `yaml:"cors_origins" mapstructure:"cors_origins" validate:"dive,url"`
}
type Root struct {
	Pipeline struct {
		Name      string `yaml:"name" mapstructure:"name"`
		Version   string `yaml:"version" mapstructure:"version"`
		LogLvl    string `yaml:"log_level" mapstructure:"log_level"`
		LogFormat string `yaml:"log_format" mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Audio         Audio         `yaml:"audio" mapstructure:"audio"`
	Services      Services      `yaml:"services" mapstructure:"services"`
	Features      Features      `yaml:"features" mapstructure:"features"`
	Transcription Transcription `yaml:"transcription" mapstructure:"transcription"`
	Media         Media         `yaml:"media" mapstructure:"media"`
	Rubric        Rubric        `yaml:"rubric" mapstructure:"rubric"`
	Paths         struct {
		Data     string `yaml:"data" mapstructure:"data"`
		Outputs  string `yaml:"outputs" mapstructure:"outputs"`
		Uploads  string `yaml:"uploads" mapstructure:"uploads"`
		Database string `yaml:"database" mapstructure:"database"`
	} `yaml:"paths" mapstructure:"paths"`
	Server Server `yaml:"server" mapstructure:"server"`
}

var validate = validator.New()

// Load reads path, or the first config file found in the usual places when
// path is empty. No config file at all is fine; defaults and env apply.
// Env vars look like TEACHLENS_SERVER_ADDR.
func Load(path string) (*Root, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("transcription.openai.api_key", EnvPrefix+"_TRANSCRIPTION_OPENAI_API_KEY", "OPENAI_API_KEY")

	if path == "" {
		path = guess()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Root) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Rubric.toAnalysis().Validate()
}

func guess() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	for _, p := range []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
		"config.yaml",
	} {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// loadDotEnv never overrides variables already set in the process.
func loadDotEnv() error {
	for _, p := range []string{os.Getenv(EnvPrefix + "_ENV"), ".env"} {
		if p == "" {
			continue
		}
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	r := analysis.DefaultRubric()
	defaults := map[string]any{
		"pipeline.name":       "teachlens",
		"pipeline.version":    "0.1.0",
		"pipeline.log_level":  "info",
		"pipeline.log_format": "text",

		"audio.sample_rate": 16000,
		"audio.channels":    1,
		"audio.format":      "wav",

		"services.asr.url":      "http://localhost:8000",
		"services.renderer.url": "",

		"features.time_window": 60,
		"features.overlap":     0,

		"transcription.backend":                 transcribe.BackendASR,
		"transcription.timeout":                 "30m",
		"transcription.openai.base_url":         "https://api.openai.com/v1",
		"transcription.openai.api_key":          "",
		"transcription.openai.model":            "whisper-1",
		"transcription.google.language_code":    "en-US",
		"transcription.google.model":            "",
		"transcription.google.credentials_file": "",
		"transcription.google.bucket":           "",

		"media.ffmpeg":          "ffmpeg",
		"media.ffprobe":         "ffprobe",
		"media.probe_timeout":   "5s",
		"media.extract_timeout": "10m",

		"rubric.positive_strength":  r.PositiveStrength,
		"rubric.negative_strength":  r.NegativeStrength,
		"rubric.neutral_weakness":   r.NeutralWeakness,
		"rubric.filler_weakness":    r.FillerWeakness,
		"rubric.diversity_weakness": r.DiversityWeakness,
		"rubric.summary":            r.Summary,

		"paths.data":     "data",
		"paths.outputs":  "outputs",
		"paths.uploads":  "uploads",
		"paths.database": "",

		"server.addr":          ":8080",
		"server.jwt_secret":    "",
		"server.token_ttl":     "24h",
		"server.max_upload_mb": 500,
		"server.cors_origins":  []string{"http://localhost:3000", "http://localhost:5173"},
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

func (r Rubric) toAnalysis() analysis.Rubric {
	return analysis.Rubric{
		PositiveStrength:  r.PositiveStrength,
		NegativeStrength:  r.NegativeStrength,
		NeutralWeakness:   r.NeutralWeakness,
		FillerWeakness:    r.FillerWeakness,
		DiversityWeakness: r.DiversityWeakness,
		Summary:           r.Summary,
	}
}

func (c *Root) AnalysisRubric() analysis.Rubric { return c.Rubric.toAnalysis() }

func (c *Root) MediaOptions() media.Options {
	return media.Options{
		FFmpegPath:     c.Media.FFmpeg,
		FFprobePath:    c.Media.FFprobe,
		SampleRate:     c.Audio.SampleRate,
		Channels:       c.Audio.Channels,
		ExtractTimeout: c.Media.ExtractTimeout,
	}
}

func (c *Root) TranscriberConfig() transcribe.Config {
	t := c.Transcription
	return transcribe.Config{
		Backend: t.Backend,
		ASRURL:  c.Services.ASR.URL,
		OpenAI: transcribe.OpenAIConfig{
			BaseURL: t.OpenAI.BaseURL,
			APIKey:  t.OpenAI.APIKey,
			Model:   t.OpenAI.Model,
			Timeout: t.Timeout,
		},
		Google: transcribe.GoogleConfig{
			LanguageCode:    t.Google.LanguageCode,
			Model:           t.Google.Model,
			SampleRateHertz: c.Audio.SampleRate,
			CredentialsFile: t.Google.CredentialsFile,
			Bucket:          t.Google.Bucket,
			Timeout:         t.Timeout,
		},
	}
}

// DatabasePath is paths.database, or teachlens.db under paths.data.
func (c *Root) DatabasePath() string {
	if c.Paths.Database != "" {
		return c.Paths.Database
	}
	return filepath.Join(c.Paths.Data, "teachlens.db")
}

// MaxUploadBytes is the upload size limit derived from server.max_upload_mb.
func (c *Root) MaxUploadBytes() int64 { return c.Server.MaxUploadMB << 20 }

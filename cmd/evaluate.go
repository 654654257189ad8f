package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/media"
	"github.com/teachlens/teachlens-pipeline/report"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		text, transcriptPath, audioPath, format string
		audioSeconds                            float64
		noColor                                 bool
	)
	c := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a transcript (from --text, --transcript or stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readTranscript(cmd.InOrStdin(), text, transcriptPath)
			if err != nil {
				return err
			}
			seconds := audioSeconds
			if seconds <= 0 && audioPath != "" {
				tools := media.NewTools(a.cfg.MediaOptions(), a.log)
				seconds = media.AudioDuration(rootContext(cmd), tools, audioPath, a.cfg.Media.ProbeTimeout, a.log)
			}
			ev := analysis.NewEvaluator(analysis.WithRubric(a.cfg.AnalysisRubric()))
			res := ev.Evaluate(in, seconds)
			return writeResult(cmd.OutOrStdout(), format, report.Document{Result: res, Transcript: in, Source: sourceName(transcriptPath, audioPath)}, !noColor)
		},
	}
	c.Flags().StringVar(&text, "text", "", "transcript text")
	c.Flags().StringVar(&transcriptPath, "transcript", "", "read the transcript from a file")
	c.Flags().StringVar(&audioPath, "audio", "", "probe this audio file for the lesson duration")
	c.Flags().Float64Var(&audioSeconds, "audio-seconds", 0, "lesson duration in seconds (0 = unknown)")
	c.Flags().StringVarP(&format, "format", "f", "json", "json, yaml, markdown or table")
	c.Flags().BoolVar(&noColor, "no-color", false, "disable colors in table output")
	c.MarkFlagsMutuallyExclusive("text", "transcript")
	return c
}

func readTranscript(stdin io.Reader, text, path string) (string, error) {
	switch {
	case text != "":
		return text, nil
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}

func sourceName(paths ...string) string {
	for _, p := range paths {
		if p != "" {
			return p
		}
	}
	return ""
}

func writeResult(w io.Writer, format string, doc report.Document, color bool) error {
	switch strings.ToLower(format) {
	case "json":
		b, err := report.JSON(doc.Result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml", "yml":
		b, err := report.YAML(doc.Result)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "markdown", "md":
		_, err := io.WriteString(w, report.Markdown(doc))
		return err
	case "table":
		report.Console(w, doc, color)
		return nil
	default:
		return errors.New("unknown format " + format + " (json, yaml, markdown, table)")
	}
}

// rootContext falls back to Background when cobra was run without one.
func rootContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/teachlens/teachlens-pipeline/clients"
	"github.com/teachlens/teachlens-pipeline/orchestrator"
	"github.com/teachlens/teachlens-pipeline/report"
	"github.com/teachlens/teachlens-pipeline/transcribe"
)

func newProcessCmd(a *app) *cobra.Command {
	var (
		source  string
		noPDF   bool
		console bool
	)
	c := &cobra.Command{
		Use:   "process <video-or-audio>",
		Short: "Run the full pipeline on a lesson recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closeFn, err := a.pipeline()
			if err != nil {
				return err
			}
			defer closeFn()

			b, err := p.Run(rootContext(cmd), args[0], orchestrator.Meta{Source: source})
			if err != nil {
				return err
			}
			doc := b.Document()
			md := filepath.Join(b.Dir, "report.md")
			if err := os.WriteFile(md, []byte(report.Markdown(doc)), 0o644); err != nil {
				return err
			}
			if !noPDF {
				pdf, err := report.PDF(doc)
				if err != nil {
					return err
				}
				if err := os.WriteFile(filepath.Join(b.Dir, "report.pdf"), pdf, 0o644); err != nil {
					return err
				}
			}
			if console {
				report.Console(cmd.OutOrStdout(), doc, true)
			}
			a.log.WithFields(logrus.Fields{"report_id": b.ID, "dir": b.Dir}).Info("report written")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), b.Dir)
			return err
		},
	}
	c.Flags().StringVar(&source, "source", "", "display name of the recording in the report")
	c.Flags().BoolVar(&noPDF, "no-pdf", false, "skip writing report.pdf")
	c.Flags().BoolVar(&console, "print", false, "also print a summary table")
	return c
}

// pipeline wires the configured transcription backend into a Pipeline.
func (a *app) pipeline() (*orchestrator.Pipeline, func(), error) {
	hc := clients.NewHTTPWithTimeout(a.cfg.Transcription.Timeout)
	tr, err := transcribe.New(a.cfg.TranscriberConfig(), hc, a.log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if c, ok := tr.(io.Closer); ok {
			_ = c.Close()
		}
	}
	return orchestrator.NewPipeline(a.cfg, orchestrator.Deps{Transcriber: tr}, a.log), closeFn, nil
}

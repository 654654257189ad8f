package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/auth"
	"github.com/teachlens/teachlens-pipeline/server"
	"github.com/teachlens/teachlens-pipeline/store"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			if a.cfg.Server.JWTSecret == "" {
				return errors.New("server.jwt_secret is required (TEACHLENS_SERVER_JWT_SECRET)")
			}
			tokens, err := auth.NewTokens(a.cfg.Server.JWTSecret, a.cfg.Server.TokenTTL, a.cfg.Pipeline.Name)
			if err != nil {
				return err
			}
			st, err := store.Open(a.cfg.DatabasePath(), a.log)
			if err != nil {
				return err
			}
			defer st.Close()

			p, closeFn, err := a.pipeline()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, stop := signal.NotifyContext(rootContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Deps{
				Config:    a.cfg,
				Store:     st,
				Tokens:    tokens,
				Runner:    p,
				Evaluator: analysis.NewEvaluator(analysis.WithRubric(a.cfg.AnalysisRubric())),
				Log:       a.log,
			})
			return srv.ListenAndServe(ctx)
		},
	}
	c.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return c
}

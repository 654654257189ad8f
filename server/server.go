package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/auth"
	cfg "github.com/teachlens/teachlens-pipeline/config"
	"github.com/teachlens/teachlens-pipeline/orchestrator"
	"github.com/teachlens/teachlens-pipeline/store"
)

// Runner runs the lesson pipeline on a saved upload.
type Runner interface {
	Run(ctx context.Context, inputPath string, meta orchestrator.Meta) (*orchestrator.Bundle, error)
}

type Evaluator interface {
	Evaluate(text string, audioSeconds float64) analysis.EvaluationResult
}

type Deps struct {
	Config    *cfg.Root
	Store     *store.Store
	Tokens    *auth.Tokens
	Runner    Runner
	Evaluator Evaluator
	Log       logrus.FieldLogger
}

type Server struct {
	cfg    *cfg.Root
	store  *store.Store
	tokens *auth.Tokens
	runner Runner
	eval   Evaluator
	log    logrus.FieldLogger
}

func New(d Deps) *Server {
	return &Server{
		cfg:    d.Config,
		store:  d.Store,
		tokens: d.Tokens,
		runner: d.Runner,
		eval:   d.Evaluator,
		log:    d.Log.WithField("component", "server"),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	if origins := s.cfg.Server.CORSOrigins; len(origins) > 0 {
		r.Use(CORS(origins))
	}
	r.MaxMultipartMemory = 32 << 20

	r.GET("/health", s.health)
	r.POST("/register", s.register)
	r.POST("/login", s.login)

	protected := r.Group("/")
	protected.Use(RequireAuth(s.tokens))
	{
		protected.POST("/evaluate", s.evaluate)
		protected.POST("/upload", s.upload)
		protected.GET("/reports", s.listReports)
		protected.GET("/report/:id", s.getReport)
	}
	return r
}

// ListenAndServe blocks until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

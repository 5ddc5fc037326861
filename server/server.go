// Package server exposes the clustering pipeline and the guide over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	cfg "github.com/maastricht-university/clusterd/config"
	"github.com/maastricht-university/clusterd/orchestrator"
)

type Server struct {
	cfg      *cfg.Root
	log      *logrus.Logger
	pipeline *orchestrator.Pipeline
	limiter  *rate.Limiter // nil when unlimited
	mux      *http.ServeMux
}

func New(c *cfg.Root, log *logrus.Logger) *Server {
	s := &Server{
		cfg:      c,
		log:      log,
		pipeline: orchestrator.NewPipeline(c, log),
		mux:      http.NewServeMux(),
	}
	if c.Server.RateLimit > 0 {
		burst := c.Server.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(c.Server.RateLimit), burst)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("POST /cluster", s.limit(s.HandleCluster))
	s.mux.HandleFunc("GET /clustering-guide", s.HandleGuide)
	s.mux.HandleFunc("GET /health", s.HandleHealth)
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run serves on the configured address until ctx is cancelled, then
// drains in-flight requests for up to the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.DurSeconds(s.cfg.Server.ReadTimeout),
		WriteTimeout: cfg.DurSeconds(s.cfg.Server.WriteTimeout),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.DurSeconds(s.cfg.Server.ShutdownTimeout))
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

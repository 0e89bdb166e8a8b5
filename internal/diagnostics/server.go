// Package diagnostics exposes a small read-only HTTP surface over the
// decoder dictionaries the extractor most recently published: operator
// visibility only, never scheme transport or persistence (both explicit
// Non-goals, spec §1). Grounded on internal/api/router.go's Router type
// (gin.Engine + logrus.Logger + middleware chain + Setup/Engine).
package diagnostics

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server is the diagnostics HTTP surface.
type Server struct {
	engine   *gin.Engine
	log      *logrus.Logger
	snapshot *Snapshot
	http     *http.Server
}

// NewServer builds a diagnostics Server backed by snapshot, which should
// also be registered with the notifier.Registry the extractor publishes
// through.
func NewServer(log *logrus.Logger, snapshot *Snapshot) *Server {
	if log == nil {
		log = logrus.New()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:   gin.New(),
		log:      log,
		snapshot: snapshot,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.engine.Use(correlationID())
	s.engine.Use(requestLogger(s.log))
	s.engine.Use(recovery(s.log))

	s.engine.GET("/healthz", s.handleHealthz)
	s.engine.GET("/dictionaries", s.handleDictionaries)
	s.engine.GET("/dictionaries/:protocol", s.handleDictionary)
}

// Engine returns the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts serving on addr until ctx is canceled, mirroring the
// teacher's cmd/api/main.go's "construct dependencies, then block serving"
// shape.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.http.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Package server serves the fire dashboard over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/charts"
	"github.com/KaramelBytes/firedash/internal/dataset"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Config holds the server settings.
type Config struct {
	Addr            string
	Render          analysis.RenderOptions
	ChartSize       charts.Size
	ShutdownTimeout time.Duration
}

// Server renders views of one loaded table. The table is shared read-only
// across requests.
type Server struct {
	table  *dataset.Table
	cfg    Config
	log    zerolog.Logger
	engine *gin.Engine
}

// New builds the router. It does not start listening.
func New(t *dataset.Table, cfg Config, log zerolog.Logger) (*Server, error) {
	if t == nil {
		return nil, errors.New("server: nil table")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ChartSize.Width <= 0 || cfg.ChartSize.Height <= 0 {
		cfg.ChartSize = charts.DefaultSize()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	tmpl, err := template.New("dashboard.html").Funcs(funcs).ParseFS(templatesFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{table: t, cfg: cfg, log: log}
	s.engine = s.setupRouter(tmpl)
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", s.cfg.Addr).Int("rows", s.table.Len()).Msg("dashboard listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

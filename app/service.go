// Package app assembles the scheduling service from its configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/wardplan/wardplan/api/schedule"
	"github.com/wardplan/wardplan/config"
	coremetrics "github.com/wardplan/wardplan/core/metrics"
	"github.com/wardplan/wardplan/core/roster"
	"github.com/wardplan/wardplan/core/rules"
	"github.com/wardplan/wardplan/infra/llm"
	"github.com/wardplan/wardplan/infra/logger"
	"github.com/wardplan/wardplan/infra/metrics"
	"github.com/wardplan/wardplan/infra/sandbox"
	"github.com/wardplan/wardplan/infra/solver"
)

// Service holds the wired engine and the HTTP surface around it.
type Service struct {
	engine      *roster.Engine
	cfg         *config.Config
	log         logger.Logger
	promEnabled bool
	promPort    int
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Logging.Options())
	logg := logger.New("service")

	var sinks []coremetrics.SolveSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.SolveSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var translator rules.Translator
	if cfg.Translator.Enabled {
		tr, err := llm.NewTranslator(cfg.Translator, logger.New("translator"))
		if err != nil {
			return nil, fmt.Errorf("translator: %w", err)
		}
		translator = tr
	}
	executor := sandbox.New(logger.New("sandbox"))
	backend := solver.New(logger.New("solver"))

	engine := roster.NewEngine(translator, executor, backend, cfg.Solver.Params(), sink, logger.New("engine"))
	engine.SetTranslatorTimeout(time.Duration(cfg.Solver.TranslatorTimeoutSeconds) * time.Second)

	return &Service{
		engine:      engine,
		cfg:         cfg,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Engine exposes the wired scheduling engine for one-shot callers.
func (s *Service) Engine() *roster.Engine { return s.engine }

// Run serves the HTTP API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/schedule", schedule.NewHandler(s.engine, logger.New("api")))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.promEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", s.promPort)
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: mux}
	errc := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Package api exposes the projection engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/compare"
	"github.com/rgehrsitz/wealthpath/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	maxBodySize         = 1 << 20
)

// Server routes HTTP requests to the calculation engine.
type Server struct {
	// ShutdownTimeout bounds the graceful shutdown in ListenAndServe.
	ShutdownTimeout time.Duration

	engine  *calculation.CalculationEngine
	compare *compare.CompareEngine
	parser  *config.InputParser
	logger  *logrus.Logger
	routes  map[string]route
}

type route struct {
	method  string
	handler fasthttp.RequestHandler
}

// NewServer creates a server around a copy of engine that logs through
// logger. The caller's engine is left as it was.
func NewServer(engine *calculation.CalculationEngine, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	own := *engine
	own.SetLogger(logger.WithField("component", "engine"))
	engine = &own

	s := &Server{
		ShutdownTimeout: 5 * time.Second,
		engine:          engine,
		compare:         compare.NewCompareEngine(engine),
		parser:          config.NewInputParser(),
		logger:          logger,
	}
	s.routes = map[string]route{
		"/healthz":            {fasthttp.MethodGet, s.handleHealth},
		"/v1/plan":            {fasthttp.MethodPost, s.handlePlan},
		"/v1/social-security": {fasthttp.MethodPost, s.handleSocialSecurity},
		"/v1/debt-payoff":     {fasthttp.MethodPost, s.handleDebtPayoff},
		"/v1/compare":         {fasthttp.MethodPost, s.handleCompare},
	}
	return s
}

// Handler returns the root request handler: request id, access log, routing.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.withRequestID(s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	r, ok := s.routes[string(ctx.Path())]
	if !ok {
		s.writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", ctx.Path()))
		return
	}
	if string(ctx.Method()) != r.method {
		ctx.Response.Header.Set("Allow", r.method)
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", ctx.Method()))
		return
	}
	r.handler(ctx)
}

func (s *Server) withRequestID(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		id := string(ctx.Request.Header.Peek(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		ctx.SetUserValue(RequestIDHeader, id)
		ctx.Response.Header.Set(RequestIDHeader, id)

		next(ctx)

		s.logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     string(ctx.Method()),
			"path":       string(ctx.Path()),
			"status":     ctx.Response.StatusCode(),
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	}
}

func requestID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(RequestIDHeader).(string)
	return id
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "wealthpath",
		ReadTimeout:        defaultReadTimeout,
		WriteTimeout:       defaultWriteTimeout,
		MaxRequestBodySize: maxBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}

// Package server is the thin request/response surface over the analysis
// engine: quality scoring without full report generation.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quantrail/edascan/internal/quality"
)

// Server hosts the quality-scoring endpoints. It holds no mutable state
// beyond its configuration; every request allocates fresh engine output.
type Server struct {
	router   *gin.Engine
	log      *zap.Logger
	defaults quality.Thresholds
	missing  []string
}

// New builds a Server with the given structured logger and default
// thresholds (applied when a request does not override them). missingTokens
// configures the missing-marker convention for uploaded datasets.
func New(log *zap.Logger, defaults quality.Thresholds, missingTokens []string) *Server {
	s := &Server{
		log:      log,
		defaults: defaults,
		missing:  missingTokens,
	}
	r := gin.New()
	r.Use(RequestID(), Logger(log), gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.POST("/quality", s.handleQuality)
	r.POST("/quality-from-csv", s.handleQualityFromCSV)
	r.POST("/quality-flags-from-csv", s.handleQualityFlagsFromCSV)

	s.router = r
	return s
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	if s.log != nil {
		s.log.Info("listening", zap.String("addr", addr))
	}
	return s.router.Run(addr)
}

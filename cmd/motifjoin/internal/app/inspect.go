package app

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/katalvlaran/motifjoin/plan"
)

// status is the --inspect endpoint's per-batch reporting payload
// (SPEC_FULL §B: "a small read-only HTTP endpoint exposing the shared
// match counters, rather than only stdout printing").
type status struct {
	RunID           string           `json:"run_id"`
	BatchesFinished int              `json:"batches_finished"`
	TotalMatches    int64            `json:"total_matches"`
	Labeled         map[string]int64 `json:"labeled,omitempty"`
}

// inspectServer serves GET /status with the run's live counters.
type inspectServer struct {
	server  *http.Server
	runID   string
	counter *plan.Counter

	batchesFinished atomic.Int64
}

func newInspectServer(addr, runID string, counter *plan.Counter, log *zap.Logger) *inspectServer {
	s := &inspectServer{runID: runID, counter: counter}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, status{
			RunID:           s.runID,
			BatchesFinished: int(s.batchesFinished.Load()),
			TotalMatches:    s.counter.Total(),
			Labeled:         s.counter.Labeled(),
		})
	})

	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("inspect server stopped", zap.Error(err))
		}
	}()

	return s
}

// RecordBatch bumps the completed-batch count the status endpoint
// reports.
func (s *inspectServer) RecordBatch() { s.batchesFinished.Add(1) }

// Shutdown stops the HTTP listener.
func (s *inspectServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

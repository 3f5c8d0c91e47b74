package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zikalyze-engine/internal/market"
	"zikalyze-engine/internal/verdict"
)

// handleHealth reports liveness
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyze runs the full pipeline over a posted snapshot
func (s *Server) handleAnalyze(c *gin.Context) {
	if !s.rateLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	var snap market.MarketSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot: " + err.Error()})
		return
	}
	if snap.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	start := time.Now()
	result := s.engine.Analyze(&snap)

	if s.recorder != nil {
		s.recorder.RecordAnalysis(snap.Symbol, string(result.Bias))
		s.recorder.RecordLatency(snap.Symbol, time.Since(start).Seconds())
		if result.Consensus.SkipTrade {
			s.recorder.RecordVeto("safety_filter")
		} else if result.TriModal.PositionSize == verdict.SizeAvoid {
			s.recorder.RecordVeto("tri_modal")
		}
	}

	c.JSON(http.StatusOK, result)
}

package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studiopulse/domain/core"
	"studiopulse/domain/insight"
	"studiopulse/internal/report"
)

var knownInsightTypes = map[insight.Type]bool{
	insight.TypeRetention:   true,
	insight.TypeRevenue:     true,
	insight.TypeConversion:  true,
	insight.TypeRisk:        true,
	insight.TypeOpportunity: true,
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"last_run": s.engine.LastRun(),
	})
}

// handleAnalyze loads the current client snapshot and runs a full analysis.
func (s *Server) handleAnalyze(c *gin.Context) {
	clients, err := s.source.ListClients(c.Request.Context())
	if err != nil {
		s.log.Error("Failed to load client snapshot: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "client source unavailable"})
		return
	}

	result, err := s.engine.Analyze(c.Request.Context(), clients)
	if err != nil {
		s.log.Error("Analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	s.log.Info("Analyzed %d clients: %d insights, %d recommendations",
		result.Funnel.TotalClients, len(result.Insights), len(result.Recommendations))

	c.JSON(http.StatusOK, gin.H{
		"analysis_id":     result.ID,
		"generated_at":    result.GeneratedAt,
		"clients":         result.Funnel.TotalClients,
		"insights":        len(result.Insights),
		"predictions":     len(result.Predictions),
		"recommendations": len(result.Recommendations),
	})
}

// handleInsights serves the last-generated insights, optionally filtered
// by ?type=.
func (s *Server) handleInsights(c *gin.Context) {
	if raw := c.Query("type"); raw != "" {
		t := insight.Type(raw)
		if !knownInsightTypes[t] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown insight type: " + raw})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insights": s.engine.InsightsByType(t)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": s.engine.Insights()})
}

// handleRecommendations serves the last-generated recommendations;
// ?priority=high narrows to the high-priority queue.
func (s *Server) handleRecommendations(c *gin.Context) {
	if c.Query("priority") == "high" {
		c.JSON(http.StatusOK, gin.H{"recommendations": s.engine.HighPriorityRecommendations()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": s.engine.Recommendations()})
}

func (s *Server) handlePrediction(c *gin.Context) {
	clientID, err := core.ParseClientID(c.Param("clientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := s.engine.ClientPrediction(clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no prediction for client " + clientID.String()})
		return
	}
	c.JSON(http.StatusOK, model)
}

func (s *Server) handleFunnel(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Funnel())
}

// handleReport renders the insight digest as HTML.
func (s *Server) handleReport(c *gin.Context) {
	result, err := s.engine.LastAnalysis()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analysis has been run yet"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.RenderHTML(result))
}

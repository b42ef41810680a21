package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"studiopulse/domain/core"
	"studiopulse/internal/engine"
	"studiopulse/internal/report"
	"studiopulse/internal/testkit"
)

// App is the demo application: the dashboard API served over a seeded
// synthetic client book, for local development and sales demos. It runs
// one analysis at startup so every endpoint has data immediately.
type App struct {
	router  *chi.Mux
	testkit *testkit.TestKit
	engine  *engine.Engine
	port    string
}

// AppConfig holds demo application configuration
type AppConfig struct {
	Port       string
	Seed       int64
	ClientBook int
}

// NewApp creates a new demo application
func NewApp(config AppConfig) (*App, error) {
	genConfig := testkit.DefaultClientConfig()
	genConfig.ReferenceDay = time.Now()
	if config.Seed != 0 {
		genConfig.Seed = config.Seed
	}
	if config.ClientBook > 0 {
		genConfig.ClientCount = config.ClientBook
	}

	kit, err := testkit.NewTestKitWithConfig(genConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test kit: %w", err)
	}

	app := &App{
		router:  chi.NewRouter(),
		testkit: kit,
		engine:  engine.NewEngine(nil),
		port:    config.Port,
	}

	if _, err := app.engine.Analyze(context.Background(), kit.Clients()); err != nil {
		return nil, fmt.Errorf("initial analysis failed: %w", err)
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleAppHealth)

	a.router.Post("/api/analyze", a.handleReanalyze)
	a.router.Get("/api/insights", a.handleAppInsights)
	a.router.Get("/api/recommendations", a.handleAppRecommendations)
	a.router.Get("/api/predictions/{clientID}", a.handleAppPrediction)
	a.router.Get("/api/funnel", a.handleAppFunnel)
	a.router.Get("/api/report", a.handleAppReport)
}

// Start runs the demo application
func (a *App) Start() error {
	return http.ListenAndServe(":"+a.port, a.router)
}

// Router exposes the underlying router for tests.
func (a *App) Router() *chi.Mux {
	return a.router
}

func (a *App) handleAppHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"demo":     true,
		"last_run": a.engine.LastRun(),
	})
}

func (a *App) handleReanalyze(w http.ResponseWriter, r *http.Request) {
	result, err := a.engine.Analyze(r.Context(), a.testkit.Clients())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analysis failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analysis_id":     result.ID,
		"clients":         result.Funnel.TotalClients,
		"insights":        len(result.Insights),
		"recommendations": len(result.Recommendations),
	})
}

func (a *App) handleAppInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"insights": a.engine.Insights()})
}

func (a *App) handleAppRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("priority") == "high" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"recommendations": a.engine.HighPriorityRecommendations(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"recommendations": a.engine.Recommendations()})
}

func (a *App) handleAppPrediction(w http.ResponseWriter, r *http.Request) {
	clientID := core.ClientID(chi.URLParam(r, "clientID"))
	model, err := a.engine.ClientPrediction(clientID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "no prediction for client " + clientID.String(),
		})
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (a *App) handleAppFunnel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.engine.Funnel())
}

func (a *App) handleAppReport(w http.ResponseWriter, r *http.Request) {
	result, err := a.engine.LastAnalysis()
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no analysis has been run yet"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.RenderHTML(result))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

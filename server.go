package aynaanalytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/senan-sh/ayna-analytics/analytics"
	"github.com/senan-sh/ayna-analytics/ayna"
	"github.com/senan-sh/ayna-analytics/checkin"
	"github.com/senan-sh/ayna-analytics/config"
	"github.com/senan-sh/ayna-analytics/prefs"
	"github.com/senan-sh/ayna-analytics/routegeo"
)

// Service wires the pipeline packages behind the HTTP surface.
type Service struct {
	cfg        config.AppConfig
	source     *ayna.Source
	prefStore  *prefs.Store
	httpClient *http.Client
	logger     *slog.Logger
	server     *http.Server
}

func NewService(cfg config.AppConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.Ayna.TimeoutMS) * time.Millisecond
	client := ayna.NewClient(cfg.Ayna.BaseURLs, timeout, logger)
	source := ayna.NewSource(client, ayna.NewSnapshotStore(cfg.Ayna.SnapshotDir), ayna.Options{
		ListTTL:    time.Duration(cfg.Ayna.ListCacheTTLSeconds) * time.Second,
		DetailsTTL: time.Duration(cfg.Ayna.DetailsCacheTTLSeconds) * time.Second,
		BatchSize:  cfg.Ayna.DetailsBatchSize,
		Logger:     logger,
	})

	prefPath := cfg.LanguageFile
	if prefPath == "" {
		prefPath = "language.pref"
	}
	return &Service{
		cfg:        cfg,
		source:     source,
		prefStore:  prefs.NewStore(prefPath),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Source exposes the data façade for background refresh wiring.
func (s *Service) Source() *ayna.Source { return s.source }

// Router builds the HTTP surface.
func (s *Service) Router() http.Handler {
	router := httprouter.New()
	router.GET("/api/health", s.handleHealth)
	router.GET("/api/analytics/summary", s.handleSummary)
	router.GET("/api/buses", s.handleBusList)
	router.GET("/api/buses/:id", s.handleBusByID)
	router.GET("/api/routes", s.handleRoutes)
	router.POST("/api/cache/clear", s.handleCacheClear)
	router.GET("/api/preferences/language", s.handleGetLanguage)
	router.PUT("/api/preferences/language", s.handlePutLanguage)
	return router
}

// Start begins serving in the background.
func (s *Service) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()
	s.logger.Info("server listening", "addr", addr)
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then drains the server.
func (s *Service) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Error("server shutdown error", "error", err.Error())
		} else {
			s.logger.Info("server shut down")
		}
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Language string `json:"language"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Language: s.prefStore.Language()})
}

type summaryResponse struct {
	Dataset *checkin.Dataset  `json:"dataset"`
	Summary analytics.Summary `json:"summary"`
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	csvURL := r.URL.Query().Get("csv")
	if csvURL == "" {
		csvURL = s.cfg.Analytics.CSVURL
	}
	if csvURL == "" {
		writeError(w, http.StatusBadRequest, "missing csv parameter and no configured default")
		return
	}

	text, err := checkin.FetchCSV(r.Context(), s.httpClient, csvURL)
	if err != nil {
		s.logger.Warn("summary: fetch failed", "url", csvURL, "error", err.Error())
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	ds, err := checkin.Normalize(text)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Dataset: ds, Summary: analytics.Summarize(ds)})
}

func (s *Service) handleBusList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.source.LoadBusList(r.Context()))
}

func (s *Service) handleBusByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bus id must be an integer")
		return
	}
	force := r.URL.Query().Get("refresh") == "1"
	details, err := s.source.LoadBusDetails(r.Context(), id, force)
	if err != nil {
		if errors.Is(err, ayna.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, details)
}

type routesResponse struct {
	Source   ayna.Origin        `json:"source"`
	Features []routegeo.Feature `json:"features"`
}

type latLngRoute struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Paths [][][2]float64 `json:"paths"`
}

type latLngRoutesResponse struct {
	Source ayna.Origin   `json:"source"`
	Routes []latLngRoute `json:"routes"`
}

func (s *Service) handleRoutes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	features, origin := s.source.LoadRouteFeatures(r.Context())

	if r.URL.Query().Get("order") == "latlng" {
		routes := make([]latLngRoute, 0, len(features))
		for _, f := range features {
			routes = append(routes, latLngRoute{ID: f.ID, Name: f.Name, Paths: f.LatLngPaths()})
		}
		writeJSON(w, http.StatusOK, latLngRoutesResponse{Source: origin, Routes: routes})
		return
	}
	writeJSON(w, http.StatusOK, routesResponse{Source: origin, Features: features})
}

func (s *Service) handleCacheClear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.source.ClearCache()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type languageBody struct {
	Language string `json:"language"`
}

func (s *Service) handleGetLanguage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, languageBody{Language: s.prefStore.Language()})
}

func (s *Service) handlePutLanguage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body languageBody
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.prefStore.SetLanguage(body.Language); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, languageBody{Language: s.prefStore.Language()})
}

// Package server exposes the station recommendation service over HTTP:
// POST /recommend ranks stored stations for a request payload, GET /status
// reports database freshness, GET /metrics serves prometheus metrics.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fueladvisor/internal/stationdb"
	"fueladvisor/pkg/advisor"
	"fueladvisor/pkg/recommend"
)

const (
	defaultTop      = 10
	rateLimitPerMin = 20
)

// Server wires storage, logging and metrics behind the HTTP routes.
type Server struct {
	storage  *stationdb.Storage
	logger   *httplog.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// New creates a server on top of the given storage.
func New(storage *stationdb.Storage, logger *httplog.Logger) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		storage:  storage,
		logger:   logger,
		registry: registry,
		metrics:  newMetrics(registry),
	}
}

// Router builds the chi router with the service middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(rateLimitPerMin, time.Minute))

	r.Post("/recommend", s.handleRecommend)
	r.Get("/status", s.handleStatus)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.metrics.Requests.Inc()
	defer func() {
		s.metrics.Latency.Observe(time.Since(start).Seconds())
	}()

	var req recommend.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.Errors.Inc()
		http.Error(w, "invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	candidates, err := s.storage.Nearby(r.Context(), req.Latitude, req.Longitude, float64(req.MaxDistanceMiles))
	if err != nil {
		s.metrics.Errors.Inc()
		s.logger.Error("Error querying nearby stations", "error", err)
		http.Error(w, "error finding nearby stations", http.StatusInternalServerError)
		return
	}

	cfg := req.SelectionConfig()

	// In budget mode the price cap is a hard filter, on top of the
	// ranking filters.
	budgetCap := req.Setting.PriceCap()
	if cfg.Mode == advisor.ModeBudget && budgetCap > 0 {
		capped := candidates[:0:0]
		for _, st := range candidates {
			if st.Price <= budgetCap {
				capped = append(capped, st)
			}
		}
		candidates = capped
	}

	top := req.Top
	if top <= 0 {
		top = defaultTop
	}
	ranked := advisor.Top(advisor.Rank(candidates, cfg), top)
	reasons := advisor.Explain(ranked, cfg, budgetCap)

	results := make([]recommend.Station, len(ranked))
	for i, st := range ranked {
		results[i] = recommend.Station{
			ID:            st.ID,
			Name:          st.Name,
			Brand:         st.Brand,
			Price:         st.Price,
			DistanceMiles: st.DistanceMiles,
			IsOpen:        st.IsOpen,
			Why:           reasons[i],
			Nearby:        st.Amenities,
			Latitude:      st.Coordinate.Latitude,
			Longitude:     st.Coordinate.Longitude,
		}
	}

	writeJSON(w, http.StatusOK, results)
}

type statusResponse struct {
	Stations   int        `json:"stations"`
	LastImport *time.Time `json:"lastImport,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.storage.Count(r.Context())
	if err != nil {
		s.logger.Error("Error counting stations", "error", err)
		http.Error(w, "error reading station database", http.StatusInternalServerError)
		return
	}

	lastImport, err := s.storage.LastImport(r.Context())
	if err != nil {
		s.logger.Error("Error getting last import date", "error", err)
	}

	writeJSON(w, http.StatusOK, statusResponse{Stations: count, LastImport: lastImport})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already out if encoding fails; nothing useful to return.
	_ = json.NewEncoder(w).Encode(v)
}

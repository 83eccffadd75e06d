package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runadvisor/internal/advisor"
	"runadvisor/internal/heat"
	"runadvisor/internal/models"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Assessor produces reports; *advisor.Advisor implements it
type Assessor interface {
	Assess(ctx context.Context, loc models.Location, opts ...advisor.AssessOption) (*advisor.Report, error)
	AssessHere(ctx context.Context, opts ...advisor.AssessOption) (*advisor.Report, error)
}

// LocationFinder resolves configured location names; *config.Config implements it
type LocationFinder interface {
	FindLocation(name string) (models.Location, bool)
}

// Server represents the HTTP server
type Server struct {
	advisor   Assessor
	locations LocationFinder
	logger    *slog.Logger
	mux       *http.ServeMux
}

// NewServer creates a new HTTP server
func NewServer(a Assessor, locations LocationFinder, logger *slog.Logger) *Server {
	s := &Server{
		advisor:   a,
		locations: locations,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/advice", s.handleAdvice)
	s.mux.HandleFunc("/plan", s.handlePlan)
	s.mux.Handle("/metrics", promhttp.Handler())

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth returns the server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().String(),
	})
}

// handleAdvice returns the full running report
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	report, ok := s.assess(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handlePlan returns only the multi-day planner
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	report, ok := s.assess(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Location   models.Location `json:"location"`
		ThresholdC float64         `json:"threshold_c"`
		Strict     bool            `json:"strict"`
		Planner    heat.Plan       `json:"planner"`
	}{report.Location, report.ThresholdC, report.StrictPlan, report.Planner})
}

// assess validates the query, runs the assessment and writes any error response
func (s *Server) assess(w http.ResponseWriter, r *http.Request) (*advisor.Report, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	q := r.URL.Query()

	var opts []advisor.AssessOption
	if v := q.Get("threshold"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold <= 0 {
			http.Error(w, "threshold must be a positive number", http.StatusBadRequest)
			return nil, false
		}
		opts = append(opts, advisor.WithThreshold(threshold))
	}
	if v := q.Get("strict"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "strict must be true or false", http.StatusBadRequest)
			return nil, false
		}
		opts = append(opts, advisor.WithStrictPlan(strict))
	}

	loc, here, status, err := s.resolveLocation(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return nil, false
	}

	var report *advisor.Report
	if here {
		report, err = s.advisor.AssessHere(r.Context(), opts...)
	} else {
		report, err = s.advisor.Assess(r.Context(), loc, opts...)
	}
	if err != nil {
		s.writeAssessError(w, err)
		return nil, false
	}
	return report, true
}

// resolveLocation reads ?location=, or ?lat=&lon=[&name=]. With neither, here is true
// and the caller's location is detected.
func (s *Server) resolveLocation(r *http.Request) (loc models.Location, here bool, status int, err error) {
	q := r.URL.Query()

	if name := q.Get("location"); name != "" {
		if s.locations != nil {
			if found, ok := s.locations.FindLocation(name); ok {
				return found, false, 0, nil
			}
		}
		return loc, false, http.StatusNotFound, fmt.Errorf("unknown location %q", name)
	}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return loc, true, 0, nil
	}
	if latStr == "" || lonStr == "" {
		return loc, false, http.StatusBadRequest, errors.New("lat and lon must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return loc, false, http.StatusBadRequest, errors.New("latitude must be between -90 and 90")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return loc, false, http.StatusBadRequest, errors.New("longitude must be between -180 and 180")
	}

	name := q.Get("name")
	if name == "" {
		name = fmt.Sprintf("%.4f,%.4f", lat, lon)
	}
	return models.Location{Name: name, Latitude: lat, Longitude: lon}, false, 0, nil
}

func (s *Server) writeAssessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, heat.ErrEmptySeries),
		errors.Is(err, advisor.ErrMisalignedSeries),
		errors.Is(err, advisor.ErrUnorderedSeries):
		http.Error(w, "cannot determine current conditions: "+err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, advisor.ErrNoLocator):
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
	case errors.Is(err, advisor.ErrFetchFailed):
		http.Error(w, "Failed to fetch weather. Try again later.", http.StatusBadGateway)
	default:
		s.logger.Error("assessment failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

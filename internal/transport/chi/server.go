// Package chi exposes the search pipeline over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scout/internal/domain"
	"github.com/kailas-cloud/scout/internal/domain/query"
	"github.com/kailas-cloud/scout/internal/domain/result"
	healthuc "github.com/kailas-cloud/scout/internal/usecase/health"
	scoutuc "github.com/kailas-cloud/scout/internal/usecase/scout"
)

// Error codes returned to clients.
const (
	codeInvalidRequest   = "invalid_request"
	codeRateLimited      = "rate_limited"
	codeModelUnavailable = "model_unavailable"
	codeInternalError    = "internal_error"
)

// SearchRequest is the POST /api/v1/search body.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResultItem is one enriched match in the search response.
type SearchResultItem struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Location   string   `json:"location"`
	Price      float64  `json:"price"`
	Tags       []string `json:"tags"`
	Reasoning  string   `json:"reasoning"`
	MatchScore float64  `json:"matchScore"`
}

// SearchResponse is the successful search payload.
type SearchResponse struct {
	Results       []SearchResultItem `json:"results"`
	NoMatchReason *string            `json:"noMatchReason"`
	Total         int                `json:"total"`
}

// ErrorResponse is the error payload for every failure status.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server wires the search and health services to HTTP handlers.
type Server struct {
	search        *scoutuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *scoutuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidRequest,
			"Invalid request. Query must be a non-empty string (max 500 characters)."),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited,
			"Too many requests. Please wait a moment before trying again."),
		modelUnavailableHandler,
		sentinelHandler(domain.ErrMalformedReply, http.StatusInternalServerError, codeInternalError,
			"The model returned malformed data."),
		sentinelHandler(domain.ErrSchemaViolation, http.StatusInternalServerError, codeInternalError,
			"The model returned an unexpected response format."),
	}
	return s
}

// Register mounts the API routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/v1/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "Invalid JSON body.")
		return
	}

	q, err := query.New(req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, noMatchReason, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}

	resp := SearchResponse{
		Results: items,
		Total:   len(items),
	}
	if noMatchReason != "" {
		resp.NoMatchReason = &noMatchReason
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToItem(r *result.Result) SearchResultItem {
	return SearchResultItem{
		ID:         r.ID(),
		Title:      r.Title(),
		Location:   r.Location(),
		Price:      r.Price(),
		Tags:       r.Tags(),
		Reasoning:  r.Reasoning(),
		MatchScore: r.Score(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
// and answers with a fixed client-safe message.
func sentinelHandler(sentinel error, status int, code, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message)
		return true
	}
}

// modelUnavailableHandler reports 503 with the provider cause. The gateway
// sanitizes its errors, so the chain carries no raw model output.
func modelUnavailableHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrModelUnavailable) {
		return false
	}
	writeError(w, http.StatusServiceUnavailable, codeModelUnavailable, "AI error: "+err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

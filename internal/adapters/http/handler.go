package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quillnotes/reflect-api/internal/app/reflection"
	"github.com/quillnotes/reflect-api/internal/domain"
)

type Server struct {
	svc *reflection.Service
}

func NewServer(svc *reflection.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/reflect", s.handleReflect)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type reflectRequest struct {
	Content     string         `json:"content"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

type reflectionResponse struct {
	Summary    string           `json:"summary"`
	Pattern    string           `json:"pattern"`
	Suggestion string           `json:"suggestion"`
	Metadata   metadataResponse `json:"metadata"`
}

type metadataResponse struct {
	Model            string    `json:"model"`
	ProcessedAt      time.Time `json:"processedAt"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter,omitempty"`
	Details    string `json:"details,omitempty"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

// /api/reflect
func (s *Server) handleReflect(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateReflection(w, r)
	default:
		writeError(w, &domain.ReflectionError{
			Code:    domain.ErrValidation,
			Status:  http.StatusMethodNotAllowed,
			Message: "Method not allowed. Use POST to submit a journal entry for reflection.",
		})
	}
}

func (s *Server) handleCreateReflection(w http.ResponseWriter, r *http.Request) {
	var req reflectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A non-string content value is valid JSON but still a
		// validation failure, same as an absent field.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "content" {
			writeError(w, domain.NewValidationError("Content field is required"))
			return
		}
		writeError(w, domain.NewValidationError("Invalid JSON in request body"))
		return
	}

	resp, rerr := s.svc.Reflect(r.Context(), clientID(r), domain.ReflectionRequest{
		Content:     req.Content,
		Preferences: req.Preferences,
	})
	if rerr != nil {
		writeError(w, rerr)
		return
	}

	writeJSON(w, http.StatusOK, toReflectionResponse(resp))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// clientID derives the rate-limit identifier: first hop of
// X-Forwarded-For, then X-Real-IP, else a shared "unknown" bucket. All
// unidentified clients sharing one budget is a deliberate policy
// simplification.
func clientID(r *http.Request) string {
	if v := r.Header.Get("X-Forwarded-For"); v != "" {
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		return strings.TrimSpace(v)
	}
	if v := r.Header.Get("X-Real-IP"); v != "" {
		return v
	}
	return "unknown"
}

func toReflectionResponse(r *domain.Reflection) reflectionResponse {
	return reflectionResponse{
		Summary:    r.Summary,
		Pattern:    r.Pattern,
		Suggestion: r.Suggestion,
		Metadata: metadataResponse{
			Model:            r.Metadata.Model,
			ProcessedAt:      r.Metadata.ProcessedAt,
			ProcessingTimeMs: r.Metadata.ProcessingTimeMs,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, rerr *domain.ReflectionError) {
	if rerr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rerr.RetryAfter))
	}
	writeJSON(w, rerr.Status, errorResponse{
		Error:      string(rerr.Code),
		Message:    rerr.Message,
		RetryAfter: rerr.RetryAfter,
	})
}

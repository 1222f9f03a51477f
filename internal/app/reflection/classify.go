package reflection

import (
	"net/http"
	"strings"
	"time"

	"github.com/quillnotes/reflect-api/internal/domain"
)

// Classify maps an arbitrary provider failure onto the closed error
// taxonomy. Matching is substring-based over an unstructured upstream
// message and therefore best-effort; the taxonomy and status codes are the
// stable contract, not the matching mechanism. First match wins.
func Classify(err error, providerTimeout time.Duration) *domain.ReflectionError {
	var msg string
	if err != nil {
		msg = strings.ToLower(err.Error())
	}

	switch {
	case strings.Contains(msg, "content_filter") || strings.Contains(msg, "policy"):
		return &domain.ReflectionError{
			Code:    domain.ErrContentPolicy,
			Status:  http.StatusBadRequest,
			Message: "Your entry could not be processed due to content guidelines. Please rephrase and try again.",
		}
	case strings.Contains(msg, "timeout"):
		return &domain.ReflectionError{
			Code:       domain.ErrTimeout,
			Status:     http.StatusGatewayTimeout,
			Message:    "The reflection took too long to generate. Please try again.",
			RetryAfter: int(providerTimeout.Seconds()),
		}
	case strings.Contains(msg, "rate") || strings.Contains(msg, "quota") || strings.Contains(msg, "billing"):
		return &domain.ReflectionError{
			Code:       domain.ErrAPIError,
			Status:     http.StatusServiceUnavailable,
			Message:    "The reflection service is temporarily unavailable. Please try again later.",
			RetryAfter: 300,
		}
	default:
		return &domain.ReflectionError{
			Code:    domain.ErrInternal,
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong while generating your reflection. Please try again.",
		}
	}
}

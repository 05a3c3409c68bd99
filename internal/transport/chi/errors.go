package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/index"
	logpkg "github.com/kailas-cloud/redisearch/internal/logger"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeUnauthorized     = "unauthorized"
	CodeIndexNotFound    = "index_not_found"
	CodeDocumentNotFound = "document_not_found"
	CodeInvalidQuery     = "invalid_query"
	CodeInvalidDocument  = "invalid_document"
	CodeUnavailable      = "engine_unavailable"
	CodeInternal         = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle an error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(index.ErrIndexNotFound, http.StatusNotFound, CodeIndexNotFound),
		sentinelHandler(index.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(query.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
		sentinelHandler(document.ErrInvalidDocument, http.StatusBadRequest, CodeInvalidDocument),
		sentinelHandler(index.ErrConnectivity, http.StatusServiceUnavailable, CodeUnavailable),
	}
}

// sentinelHandler matches a single sentinel and replies with its message only.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("Request failed", zap.Error(err))
			return
		}
	}
	log.Error("Internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

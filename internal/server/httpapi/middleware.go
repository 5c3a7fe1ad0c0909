package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/jumpaku/accountd/internal/apperr"
)

// statusRecorder captures the status code written by a handler so the
// logging middleware can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// wrap adds request-id assignment, request logging and panic recovery around
// a handler. Panics become UnexpectedError responses; expected failures never
// reach this recover.
func (s *Server) wrap(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log := s.logger.With("request_id", requestID)
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				log.Error(r.Context(), "panic in handler", "panic", p)
				writeFailure(rec, apperr.New(apperr.UnexpectedError, "Internal server error"))
			}
			log.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).String(),
			)
		}()

		h(rec, r, p)
	}
}

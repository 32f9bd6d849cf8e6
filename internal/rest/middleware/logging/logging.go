package logging

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

type requestIDCtxKey struct{}

// FromRequestID retrieves the request id from context.
func FromRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware assigns request ids and logs completed requests.
type Middleware struct {
	logger *zap.Logger
}

// New creates a new logging middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{
		logger: logger.Named("http"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler that logs each request.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		requestID := req.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(req.Context(), requestIDCtxKey{}, requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		err := next(rec, req.WithContext(ctx))

		fields := []zap.Field{
			zap.String("requestID", requestID),
			zap.String("method", req.Method),
			zap.String("route", req.Route()),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remoteAddr", req.RemoteAddr),
		}

		switch {
		case err != nil:
			m.logger.Error("Request failed", append(fields, zap.Error(err))...)
		case rec.status >= http.StatusInternalServerError:
			m.logger.Warn("Request completed with server error", fields...)
		default:
			m.logger.Debug("Request completed", fields...)
		}

		return err
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxLoggedBody = 2048

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// LogMiddleware writes one line per request. Bodies and headers carrying
// credentials are not logged.
func LogMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var body []byte
			if r.Body != nil {
				body, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
			}

			lw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lw, r)

			logger.Infof("method=%s uri=%s status=%d duration=%s size=%d request_id=%s body=%s outputheaders=%v",
				r.Method,
				r.RequestURI,
				lw.status,
				time.Since(start),
				lw.size,
				RequestIDFromContext(r.Context()),
				loggableBody(body),
				loggableHeaders(w.Header()),
			)
		})
	}
}

// credentialHeaders carry the visitor token, which unlocks the visitor's session.
var credentialHeaders = []string{"Set-Cookie", VisitorHeader}

func loggableHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range credentialHeaders {
		if len(out.Values(name)) > 0 {
			out.Set(name, "[redacted]")
		}
	}
	return out
}

func loggableBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if gjson.ValidBytes(body) && (gjson.GetBytes(body, "password").Exists() || gjson.GetBytes(body, "otp").Exists()) {
		return "[redacted]"
	}
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}

package api

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"slices"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/bsd-portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// recordingWriter remembers the status and size of a response
type recordingWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func newRecordingWriter(w http.ResponseWriter) *recordingWriter {
	return &recordingWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *recordingWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// RecoverPanics turns a panicking handler into an error envelope and logs every 500
func RecoverPanics(next http.Handler) http.Handler {
	responder := NewResponder(log.With().Str("handlerName", "recoverPanics").Logger())

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newRecordingWriter(w)

		defer func() {
			rec := recover()
			if rec == nil {
				if rw.status == http.StatusInternalServerError {
					log.Error().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("request_id", middleware.GetReqID(r.Context())).
						Msg("500 error response")
				}
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", middleware.GetReqID(r.Context())).
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic")

			if !rw.wroteHeader {
				responder.WriteError(rw, errs.NewInternalErrorWithCause("internal server error", fmt.Errorf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(rw, r)
	})
}

// CORSCheckMiddleware rejects preflight requests from origins outside allowedOrigins with a
// JSON error instead of a bare response. "*" allows every origin.
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	responder := NewResponder(log.With().Str("handlerName", "corsCheck").Logger())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && r.Method == http.MethodOptions && !originAllowed(allowedOrigins, origin) {
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
}

// RequestLogger logs one line per request, colored by status. Health probes are logged at debug.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newRecordingWriter(w)

			next.ServeHTTP(rw, r)

			var event *zerolog.Event
			switch {
			case rw.status >= 500:
				event = logger.Error()
			case rw.status >= 400:
				event = logger.Warn()
			case r.URL.Path == "/health":
				event = logger.Debug()
			default:
				event = logger.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Int("bytes", rw.bytes).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP Request")
		})
	}
}

// consoleLogger is the colored request logger used outside tests
func consoleLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

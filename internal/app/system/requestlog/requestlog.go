// Package requestlog holds the request-scoped middleware the API adds on top
// of chi's RequestID and WAFFLE's request logger: echoing the request id to
// the client and recovering panics into a generic JSON 500.
package requestlog

import (
	"errors"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HeaderRequestID is read by chi's RequestID and echoed on the response.
const HeaderRequestID = "X-Request-Id"

// EchoRequestID copies the id assigned by middleware.RequestID onto the
// response. It must run after middleware.RequestID.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			w.Header().Set(HeaderRequestID, rid)
		}
		next.ServeHTTP(w, r)
	})
}

// Recoverer turns a panic in a handler into a logged, generic JSON 500.
// WAFFLE's logging.Recoverer answers in plain text, which API clients can't parse.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logger.Error("panic serving request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"))
				jsonutil.Error(w, http.StatusInternalServerError, jsonutil.InternalErrorMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

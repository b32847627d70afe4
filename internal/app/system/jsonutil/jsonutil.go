// Package jsonutil holds the JSON request/response helpers shared by the API
// handlers, including the single place where classified errors become HTTP
// status codes.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps request bodies when the caller passes 0.
const DefaultMaxBodyBytes int64 = 1 << 20

// InternalErrorMessage is the only text a client ever sees for a 5xx.
const InternalErrorMessage = "internal server error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorBody{Error: msg})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError translates err into a status and JSON body. Client faults carry
// their message; everything else is logged and answered with a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("kind", apperr.KindOf(err).String()),
			zap.Error(err))
		Error(w, status, InternalErrorMessage)
		return
	}
	logger.Debug("client error",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	Error(w, status, apperr.Message(err))
}

// Decode reads a single JSON object from the request body into dst.
//
// An empty body decodes as {} so handlers fall through to field validation.
// Malformed JSON, unknown fields, wrong types, trailing data, and bodies over
// maxBytes are returned as InvalidArgument.
func Decode(w http.ResponseWriter, r *http.Request, dst any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	if r.Body == nil {
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.InvalidArgument("request body must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.InvalidArgument("malformed JSON body")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return apperr.InvalidArgument("request body must be a JSON object")
		}
		return apperr.InvalidArgument(fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String()))
	case errors.As(err, &maxErr):
		return apperr.InvalidArgument("request body too large")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return apperr.InvalidArgument("unknown field " + field)
	default:
		return apperr.InvalidArgument("malformed JSON body")
	}
}

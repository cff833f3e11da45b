// internal/app/system/respond/respond.go
//
// Package respond writes the API's JSON envelope:
//
//	{ "success": true,  ...payload }
//	{ "success": false, "message": "...", "errors": [...] }
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/limits"
	"go.uber.org/zap"
)

// M is a response payload merged into the envelope.
type M map[string]any

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func envelope(success bool, fields M) M {
	out := make(M, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = success
	return out
}

// OK writes 200 with success=true.
func OK(w http.ResponseWriter, fields M) {
	JSON(w, http.StatusOK, envelope(true, fields))
}

// Created writes 201 with success=true.
func Created(w http.ResponseWriter, fields M) {
	JSON(w, http.StatusCreated, envelope(true, fields))
}

// Fail writes a failure envelope with a single message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope(false, M{"message": message}))
}

func BadRequest(w http.ResponseWriter, message string)   { Fail(w, http.StatusBadRequest, message) }
func Unauthorized(w http.ResponseWriter, message string) { Fail(w, http.StatusUnauthorized, message) }
func Forbidden(w http.ResponseWriter, message string)    { Fail(w, http.StatusForbidden, message) }
func NotFound(w http.ResponseWriter, message string)     { Fail(w, http.StatusNotFound, message) }

// Validation writes 400 with every field error.
func Validation(w http.ResponseWriter, res *inputval.Result) {
	errs := res.Errors
	if errs == nil {
		errs = []inputval.FieldError{}
	}
	JSON(w, http.StatusBadRequest, envelope(false, M{
		"message": "Validation failed",
		"errors":  errs,
	}))
}

// ServerError logs err and writes a generic 500. The error text is not
// sent to the client.
func ServerError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error(op, zap.Error(err))
	}
	Fail(w, http.StatusInternalServerError, "Server error")
}

// ErrBadBody is returned by Decode for malformed or oversized JSON.
var ErrBadBody = errors.New("invalid request body")

// Decode reads a JSON body into dst. An empty body decodes to the zero value.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrBadBody
	}
	return nil
}

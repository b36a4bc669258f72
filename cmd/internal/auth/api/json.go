package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/DibuBaj/Backend/cmd/identity"
	"github.com/DibuBaj/Backend/cmd/internal/auth/session"
)

// successResponse is the uniform success envelope.
type successResponse struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// errorResponse is the uniform error envelope. No data field on purpose.
type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, status int, data any, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successResponse{Status: status, Data: data, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Status: status, Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer func() { _ = r.Body.Close() }()

	body := http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Ensure there is no extra data after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after JSON object")
	}
	return nil
}

// writeDomainError maps a service or store error onto the envelope.
// The internal cause is logged by the caller, never echoed to the client.
func (h *Handler) writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, session.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, session.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized request")
	case identity.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, trimOpPrefix(err))
	case identity.IsConflict(err):
		writeError(w, http.StatusConflict, "resource already exists")
	case identity.IsNotFound(err):
		writeError(w, http.StatusNotFound, "resource not found")
	default:
		h.log.Error(op, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// trimOpPrefix strips the "pkg.Operation: invalid_input: " prefix so the
// client sees only the human-readable part of a validation error.
func trimOpPrefix(err error) string {
	msg := err.Error()
	for i := len(msg) - 1; i >= 0; i-- {
		if msg[i] == ':' {
			tail := msg[i+1:]
			for len(tail) > 0 && tail[0] == ' ' {
				tail = tail[1:]
			}
			if tail != "" {
				return tail
			}
			break
		}
	}
	return "invalid request"
}

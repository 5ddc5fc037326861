package server

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/maastricht-university/clusterd/clustering"
	"github.com/maastricht-university/clusterd/dataset"
)

// ErrInvalidRequest marks malformed form values.
var ErrInvalidRequest = errors.New("invalid request")

// badInput lists the sentinels that are the caller's fault.
var badInput = []error{
	ErrInvalidRequest,
	clustering.ErrInvalidMethod,
	clustering.ErrInvalidParams,
	dataset.ErrUnsupportedFormat,
	dataset.ErrUnreadable,
	dataset.ErrMissingColumn,
	dataset.ErrNotNumeric,
	dataset.ErrEmpty,
	dataset.ErrNoFeatures,
}

func NewInvalidRequestError(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidRequest)
}

func statusFor(err error) int {
	if errors.IsAny(err, badInput...) {
		return http.StatusBadRequest
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with {"error": ...}. Internal errors are logged and
// replaced by a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		body.Hint = hints[0]
	}
	if status == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		body = errorBody{Error: "internal error"}
	}
	writeJSON(w, status, body)
}

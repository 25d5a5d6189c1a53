package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/store"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

const maxBodyBytes = 1 << 20

// errBadRequest marks malformed input that is not a record validation failure.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// apiError is the body of every non-2xx JSON response.
type apiError struct {
	Status    int      `json:"status"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`
	Retryable bool     `json:"retryable,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Status: status, Message: msg})
}

// classify maps an error to the response the dashboard expects.
func classify(err error) apiError {
	var verr *transit.ValidationError
	switch {
	case errors.As(err, &verr):
		return apiError{Status: http.StatusBadRequest, Message: err.Error(), Fields: verr.Fields}
	case errors.Is(err, errBadRequest):
		return apiError{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, store.ErrNotFound):
		return apiError{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, store.ErrConflict), errors.Is(err, transit.ErrTransition), errors.Is(err, store.ErrNoChanges):
		return apiError{Status: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, store.ErrUnavailable):
		return apiError{Status: http.StatusServiceUnavailable, Message: err.Error(), Retryable: true}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apiError{Status: http.StatusServiceUnavailable, Message: "request cancelled", Retryable: true}
	}
	return apiError{Status: http.StatusInternalServerError, Message: "Internal server error"}
}

// fail writes err as a JSON error. Server faults are logged here and nowhere else.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	e := classify(err)
	if e.Status >= http.StatusInternalServerError && !e.Retryable {
		s.log.Error("request failed", logx.String("method", r.Method), logx.String("path", r.URL.Path), logx.Err(err))
	} else {
		s.log.Debug("request rejected", logx.String("path", r.URL.Path), logx.Int("status", e.Status), logx.Err(err))
	}
	writeJSON(w, e.Status, e)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, badRequest("read body: %v", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, badRequest("empty request body")
	}
	return body, nil
}

// decodeStrict decodes body onto v and rejects unknown fields. Fields absent from
// body keep their current value in v.
func decodeStrict(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON: %v", err)
	}
	return nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, badRequest("invalid %s %q", key, raw)
	}
	return n, nil
}

func queryBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

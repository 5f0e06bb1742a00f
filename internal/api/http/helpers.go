package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/formhive/formhive/internal/audit"
	"github.com/formhive/formhive/internal/quiz"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}

// auditAppend records an event best effort: a failed append is logged and
// never fails the request.
func auditAppend(r *http.Request, events *audit.EventRepo, typ, key, actor string, data any) {
	if err := events.Append(r.Context(), typ, key, actor, data); err != nil {
		log.Printf("audit append %s %s: %v", typ, key, err)
	}
}

// errStatus maps store sentinel errors to HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, quiz.ErrNotFound), errors.Is(err, quiz.ErrResponseNotFound),
		errors.Is(err, quiz.ErrNotPublished):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrBadAccessCode):
		return http.StatusForbidden
	case errors.Is(err, quiz.ErrAlreadyResponded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-service/internal/domain/errs"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError is the single place where error kinds become HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	respondJSON(w, statusForKind(kind), map[string]string{
		"kind":  kind.String(),
		"error": errs.MessageOf(err),
	})
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation, errs.KindParse:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Parse("Invalid request body", err)
	}
	return nil
}

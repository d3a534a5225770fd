package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

const (
	msgInvalidJSON    = "Invalid JSON data"
	msgInvalidData    = "Invalid data"
	msgLemmaRequired  = "Lemma is required."
	msgEntrySaved     = "Entry saved successfully."
	msgEntryDeleted   = "Entry deleted successfully."
	msgEntryNotFound  = "Entry not found."
	msgExportedToXLSX = "Data saved to Excel."
)

// Result is the envelope of every mutating endpoint.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResponse is the body of GET /get_data.
type DataResponse struct {
	Data         *dictionary.Dictionary `json:"data"`
	InitialEntry *string                `json:"initialEntry"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to encode response", "path", r.URL.Path, "err", err)
	}
}

func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, Result{Success: status < http.StatusBadRequest, Message: message})
}

// writeStoreError maps a repository error to its status code.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dictionary.ErrNotFound):
		h.writeResult(w, r, http.StatusNotFound, msgEntryNotFound)
	case errors.Is(err, dictionary.ErrInvalidEntry):
		h.writeResult(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "err", err)
		h.writeResult(w, r, http.StatusInternalServerError, err.Error())
	}
}

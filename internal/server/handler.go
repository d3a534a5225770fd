// Package server provides the HTTP handlers of the dictionary editor.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/wordbook/internal/assets"
	"github.com/at-ishikawa/wordbook/internal/dictionary"
	"github.com/at-ishikawa/wordbook/internal/store"
)

const (
	maxRequestBytes = 1 << 20
	pageTitle       = "Wordbook"
)

type saveEntryRequest struct {
	Lemma string           `json:"lemma" validate:"required"`
	Entry dictionary.Entry `json:"entry" validate:"required,min=1"`
}

type deleteEntryRequest struct {
	Lemma string `json:"lemma" validate:"required"`
}

// Handler serves the dictionary pages and JSON endpoints.
type Handler struct {
	repo     store.Repository
	pages    *assets.Pages
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(repo store.Repository, pages *assets.Pages, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		repo:     repo,
		pages:    pages,
		validate: validator.New(),
		logger:   logger,
	}
}

// Routes registers every endpoint on a new ServeMux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /entry/{word}", h.Home)
	mux.HandleFunc("GET /templates/docs.html", h.Docs)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(assets.Static())))
	mux.HandleFunc("GET /get_data", h.GetData)
	mux.HandleFunc("POST /save_entry", h.SaveEntry)
	mux.HandleFunc("POST /delete_entry", h.DeleteEntry)
	mux.HandleFunc("POST /save_on_exit", h.SaveOnExit)
	return mux
}

// Home renders the editor page. The word in /entry/{word} is resolved client-side.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, h.pages.Index)
}

// Docs renders the documentation page.
func (h *Handler) Docs(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, h.pages.Docs)
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page executor) {
	snapshot, err := h.repo.Snapshot(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to read dictionary", "err", err)
		http.Error(w, "failed to read dictionary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := assets.PageData{Title: pageTitle, Columns: snapshot.Dictionary.Columns()}
	if err := page.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page", "path", r.URL.Path, "err", err)
	}
}

// GetData returns the whole dictionary and the lemma to show first.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.repo.Snapshot(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, DataResponse{
		Data:         snapshot.Dictionary,
		InitialEntry: snapshot.InitialEntry,
	})
}

// SaveEntry inserts or replaces one entry.
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var req saveEntryRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeResult(w, r, http.StatusBadRequest, msgInvalidData)
		return
	}

	if err := h.repo.Upsert(r.Context(), req.Lemma, req.Entry); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.writeResult(w, r, http.StatusOK, msgEntrySaved)
}

// DeleteEntry removes one entry.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	var req deleteEntryRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeResult(w, r, http.StatusBadRequest, msgLemmaRequired)
		return
	}

	if err := h.repo.Remove(r.Context(), req.Lemma); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.writeResult(w, r, http.StatusOK, msgEntryDeleted)
}

// SaveOnExit exports the dictionary to the spreadsheet. The body is ignored since
// browsers send it with navigator.sendBeacon on page unload.
func (h *Handler) SaveOnExit(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ExportSnapshot(r.Context()); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.writeResult(w, r, http.StatusOK, msgExportedToXLSX)
}

// decodeBody decodes a JSON object body into v, writing a 400 response on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeResult(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		h.writeResult(w, r, http.StatusBadRequest, msgInvalidJSON)
		return false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		h.writeResult(w, r, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		h.logger.DebugContext(r.Context(), "Malformed request body", "path", r.URL.Path, "err", err)
		h.writeResult(w, r, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

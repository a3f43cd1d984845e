package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

// ParseKPIsRequest for POST /api/v1/parse-unstructured-kpis
type ParseKPIsRequest struct {
	NotesText string `json:"notes_text"`
}

// ParseDictionaryRequest for POST /api/v1/parse-unstructured-dictionary
type ParseDictionaryRequest struct {
	NotesText    string `json:"notes_text"`
	TableContext string `json:"table_context,omitempty"`
}

// NotesHandler handles unstructured notes parsing requests.
type NotesHandler struct {
	notesService services.NotesService
	logger       *zap.Logger
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(notesService services.NotesService, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		notesService: notesService,
		logger:       logger,
	}
}

// RegisterRoutes registers the notes parsing routes on the given mux.
func (h *NotesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/parse-unstructured-kpis", h.ParseKPIs)
	mux.HandleFunc("POST /api/v1/parse-unstructured-dictionary", h.ParseDictionary)
}

// ParseKPIs handles POST /api/v1/parse-unstructured-kpis.
func (h *NotesHandler) ParseKPIs(w http.ResponseWriter, r *http.Request) {
	var req ParseKPIsRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.notesService.ParseKPIs(r.Context(), req.NotesText)
	if err != nil {
		h.logger.Error("KPI parsing failed", zap.Error(err))
		_ = ErrorResponse(w, StatusForError(err), "kpi_parsing_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode KPI response", zap.Error(err))
	}
}

// ParseDictionary handles POST /api/v1/parse-unstructured-dictionary.
func (h *NotesHandler) ParseDictionary(w http.ResponseWriter, r *http.Request) {
	var req ParseDictionaryRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.notesService.ParseDictionary(r.Context(), req.NotesText, req.TableContext)
	if err != nil {
		h.logger.Error("Dictionary parsing failed", zap.Error(err))
		_ = ErrorResponse(w, StatusForError(err), "dictionary_parsing_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode dictionary response", zap.Error(err))
	}
}

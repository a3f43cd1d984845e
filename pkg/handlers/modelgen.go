package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

// ModelGenHandler handles DDL-to-model conversion requests.
type ModelGenHandler struct {
	modelGenService services.ModelGenService
	logger          *zap.Logger
}

// NewModelGenHandler creates a new model generation handler.
func NewModelGenHandler(modelGenService services.ModelGenService, logger *zap.Logger) *ModelGenHandler {
	return &ModelGenHandler{
		modelGenService: modelGenService,
		logger:          logger,
	}
}

// RegisterRoutes registers the model generation routes on the given mux.
func (h *ModelGenHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/generate-model", h.GenerateModel)
}

// GenerateModel handles POST /api/v1/generate-model.
func (h *ModelGenHandler) GenerateModel(w http.ResponseWriter, r *http.Request) {
	var req services.ModelGenRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.modelGenService.GenerateModel(r.Context(), req)
	if err != nil {
		h.logger.Error("Model generation failed", zap.Error(err))
		_ = ErrorResponse(w, StatusForError(err), "model_generation_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode model response", zap.Error(err))
	}
}

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

// SprintHandler handles sprint plan generation requests.
type SprintHandler struct {
	sprintService services.SprintService
	logger        *zap.Logger
}

// NewSprintHandler creates a new sprint handler.
func NewSprintHandler(sprintService services.SprintService, logger *zap.Logger) *SprintHandler {
	return &SprintHandler{
		sprintService: sprintService,
		logger:        logger,
	}
}

// RegisterRoutes registers the sprint routes on the given mux.
func (h *SprintHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/generate-sprint", h.GenerateSprint)
}

// GenerateSprint handles POST /api/v1/generate-sprint.
func (h *SprintHandler) GenerateSprint(w http.ResponseWriter, r *http.Request) {
	var req services.SprintRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.sprintService.GenerateSprint(r.Context(), req)
	if err != nil {
		h.logger.Error("Sprint generation failed", zap.Error(err))
		_ = ErrorResponse(w, StatusForError(err), "sprint_generation_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode sprint response", zap.Error(err))
	}
}

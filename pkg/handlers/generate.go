package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

// ValidateModelRequest for POST /api/v1/validate-model
type ValidateModelRequest struct {
	ModelMetadata any `json:"model_metadata"`
}

// ValidateModelResponse for POST /api/v1/validate-model
type ValidateModelResponse struct {
	Valid      bool     `json:"valid"`
	Warnings   []string `json:"warnings"`
	Errors     []string `json:"errors"`
	Complexity string   `json:"complexity"`
	Tables     int      `json:"table_count"`
	Columns    int      `json:"column_count"`
}

// GenerateHandler handles layout and data-prep generation requests.
type GenerateHandler struct {
	generateService services.GenerateService
	normalizer      *schema.Normalizer
	thresholds      analysis.Thresholds
	logger          *zap.Logger
}

// NewGenerateHandler creates a new generation handler.
func NewGenerateHandler(
	generateService services.GenerateService,
	normalizer *schema.Normalizer,
	thresholds analysis.Thresholds,
	logger *zap.Logger,
) *GenerateHandler {
	return &GenerateHandler{
		generateService: generateService,
		normalizer:      normalizer,
		thresholds:      thresholds,
		logger:          logger,
	}
}

// RegisterRoutes registers the generation routes on the given mux.
func (h *GenerateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/generate-layout", h.GenerateLayout)
	mux.HandleFunc("POST /api/v1/validate-model", h.ValidateModel)
}

// GenerateLayout handles POST /api/v1/generate-layout.
// The data_prep_only flag routes to the data preparation pipeline;
// otherwise the full layout pipeline runs.
func (h *GenerateHandler) GenerateLayout(w http.ResponseWriter, r *http.Request) {
	var req services.GenerateRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var (
		result *services.GenerateResult
		err    error
	)
	if req.DataPrepOnly {
		result, err = h.generateService.GenerateDataPrep(r.Context(), req)
	} else {
		result, err = h.generateService.GenerateLayout(r.Context(), req)
	}
	if err != nil {
		h.logger.Error("Generation failed",
			zap.Bool("data_prep_only", req.DataPrepOnly),
			zap.Error(err))
		_ = ErrorResponse(w, StatusForError(err), "generation_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode generate response", zap.Error(err))
	}
}

// ValidateModel handles POST /api/v1/validate-model.
// Normalizes the supplied metadata and returns structural warnings and
// errors without calling the AI service.
func (h *GenerateHandler) ValidateModel(w http.ResponseWriter, r *http.Request) {
	var req ValidateModelRequest
	if err := DecodeJSON(r, &req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	model := h.normalizer.Normalize(req.ModelMetadata)
	report := schema.Validate(model)
	result := analysis.Analyze(model, h.thresholds)

	response := ValidateModelResponse{
		Valid:      report.Valid,
		Warnings:   report.Warnings,
		Errors:     report.Errors,
		Complexity: result.Complexity.String(),
		Tables:     result.TableCount,
		Columns:    result.ColumnCount,
	}
	if response.Warnings == nil {
		response.Warnings = []string{}
	}
	if response.Errors == nil {
		response.Errors = []string{}
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode validate response", zap.Error(err))
	}
}

package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/config"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

// VisionHandler handles wireframe image analysis requests.
type VisionHandler struct {
	visionService services.VisionService
	cfg           config.ImageConfig
	logger        *zap.Logger
}

// NewVisionHandler creates a new vision handler.
func NewVisionHandler(visionService services.VisionService, cfg config.ImageConfig, logger *zap.Logger) *VisionHandler {
	return &VisionHandler{
		visionService: visionService,
		cfg:           cfg,
		logger:        logger,
	}
}

// RegisterRoutes registers the vision routes on the given mux.
func (h *VisionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analyze-image", h.AnalyzeImage)
	mux.HandleFunc("POST /api/v1/parse-screenshot-enhanced", h.ParseScreenshot)
}

// AnalyzeImage handles POST /api/v1/analyze-image.
// Expects a multipart form with a "file" part and an optional
// "platform" field.
func (h *VisionHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	image, contentType, fileName, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	platform := r.FormValue("platform")
	if platform == "" {
		platform = "Power BI"
	}

	result, err := h.visionService.AnalyzeImage(r.Context(), image, contentType, fileName, platform)
	if err != nil {
		h.logger.Error("Image analysis failed",
			zap.String("file", fileName),
			zap.Error(err))
		_ = ErrorResponse(w, StatusForError(err), "image_analysis_failed", err.Error())
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode image analysis response", zap.Error(err))
	}
}

// ParseScreenshot handles POST /api/v1/parse-screenshot-enhanced.
// Returns a section list rather than prose. Failures degrade to a
// single placeholder section so UI flows keep working.
func (h *VisionHandler) ParseScreenshot(w http.ResponseWriter, r *http.Request) {
	image, contentType, fileName, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	sections, err := h.visionService.ExtractWireframeSections(r.Context(), image, contentType, "Generic")
	if err != nil {
		h.logger.Warn("Screenshot parsing degraded to placeholder",
			zap.String("file", fileName),
			zap.Error(err))
		sections = []services.WireframeSection{{
			LayoutType: "Chart",
			Section:    "main",
			Label:      "Processing failed - try manual description",
		}}
	}

	if err := WriteJSON(w, http.StatusOK, sections); err != nil {
		h.logger.Error("Failed to encode sections response", zap.Error(err))
	}
}

// readUpload extracts the image bytes from the multipart form. Writes
// the error response itself and returns ok=false on failure.
func (h *VisionHandler) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, contentType, fileName string, ok bool) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "expected multipart form upload")
		return nil, "", "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "missing file upload")
		return nil, "", "", false
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "failed to read upload")
		return nil, "", "", false
	}

	return data, header.Header.Get("Content-Type"), header.Filename, true
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/analysis"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/apperrors"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

func newGenerateHandler(svc services.GenerateService) *GenerateHandler {
	logger := zap.NewNop()
	return NewGenerateHandler(svc, schema.NewNormalizer(logger), analysis.DefaultThresholds(), logger)
}

func TestGenerateLayout_RoutesToLayout(t *testing.T) {
	mock := &mockGenerateService{result: &services.GenerateResult{
		WireframeJSON:      map[string]any{"sections": []any{}},
		LayoutInstructions: "## Measures",
	}}
	handler := newGenerateHandler(mock)

	body := `{"model_metadata": {"tables": []}, "platform_selected": "Power BI"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-layout", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.GenerateLayout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if len(mock.layoutReqs) != 1 || len(mock.dataPrepReqs) != 0 {
		t.Errorf("expected 1 layout call and 0 data prep calls, got %d/%d",
			len(mock.layoutReqs), len(mock.dataPrepReqs))
	}

	var result services.GenerateResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.LayoutInstructions != "## Measures" {
		t.Errorf("layout_instructions = %q, want %q", result.LayoutInstructions, "## Measures")
	}
}

func TestGenerateLayout_DataPrepOnlyRoutesToDataPrep(t *testing.T) {
	mock := &mockGenerateService{result: &services.GenerateResult{
		WireframeJSON:      "",
		LayoutInstructions: "## Step 1",
	}}
	handler := newGenerateHandler(mock)

	body := `{"model_metadata": {"tables": []}, "platform_selected": "Power BI", "data_prep_only": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-layout", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.GenerateLayout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if len(mock.dataPrepReqs) != 1 || len(mock.layoutReqs) != 0 {
		t.Errorf("expected 1 data prep call and 0 layout calls, got %d/%d",
			len(mock.dataPrepReqs), len(mock.layoutReqs))
	}
}

func TestGenerateLayout_InvalidJSON(t *testing.T) {
	handler := newGenerateHandler(&mockGenerateService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-layout", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.GenerateLayout(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGenerateLayout_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing platform", apperrors.ErrMissingPlatform, http.StatusBadRequest},
		{"no tables", apperrors.ErrNoTables, http.StatusBadRequest},
		{"upstream timeout", llm.NewError(llm.ErrorTypeTimeout, "request timed out", true, nil), http.StatusGatewayTimeout},
		{"upstream failure", llm.NewError(llm.ErrorTypeService, "server error", true, nil), http.StatusBadGateway},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newGenerateHandler(&mockGenerateService{err: tt.err})

			body := `{"model_metadata": {}, "platform_selected": "Power BI"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-layout", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.GenerateLayout(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestValidateModel(t *testing.T) {
	handler := newGenerateHandler(&mockGenerateService{})

	body := `{"model_metadata": {"tables": [
		{"name": "orders", "columns": [
			{"name": "order_id", "type": "int", "is_primary_key": true},
			{"name": "total", "type": "decimal"}
		]}
	]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-model", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ValidateModel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response ValidateModelResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !response.Valid {
		t.Errorf("expected valid model, got errors: %v", response.Errors)
	}
	if response.Tables != 1 {
		t.Errorf("table_count = %d, want 1", response.Tables)
	}
	if response.Columns != 2 {
		t.Errorf("column_count = %d, want 2", response.Columns)
	}
	if response.Complexity != "Simple" {
		t.Errorf("complexity = %q, want %q", response.Complexity, "Simple")
	}
	if response.Warnings == nil || response.Errors == nil {
		t.Error("warnings and errors must encode as arrays, not null")
	}
}

func TestValidateModel_EmptyMetadata(t *testing.T) {
	handler := newGenerateHandler(&mockGenerateService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-model", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.ValidateModel(rec, req)

	// Validation never fails the request; an empty model reports its
	// problems in the body.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response ValidateModelResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Valid {
		t.Error("expected invalid result for empty model")
	}
	if len(response.Errors) == 0 {
		t.Error("expected at least one validation error")
	}
}

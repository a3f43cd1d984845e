package handlers

import (
	"context"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/services"
)

// mockGenerateService is a configurable mock for handler tests.
type mockGenerateService struct {
	result       *services.GenerateResult
	err          error
	dataPrepReqs []services.GenerateRequest
	layoutReqs   []services.GenerateRequest
}

func (m *mockGenerateService) GenerateDataPrep(ctx context.Context, req services.GenerateRequest) (*services.GenerateResult, error) {
	m.dataPrepReqs = append(m.dataPrepReqs, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockGenerateService) GenerateLayout(ctx context.Context, req services.GenerateRequest) (*services.GenerateResult, error) {
	m.layoutReqs = append(m.layoutReqs, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockModelGenService struct {
	result *services.ModelGenResult
	err    error
	reqs   []services.ModelGenRequest
}

func (m *mockModelGenService) GenerateModel(ctx context.Context, req services.ModelGenRequest) (*services.ModelGenResult, error) {
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockSprintService struct {
	result *services.SprintResult
	err    error
	reqs   []services.SprintRequest
}

func (m *mockSprintService) GenerateSprint(ctx context.Context, req services.SprintRequest) (*services.SprintResult, error) {
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockNotesService struct {
	kpiResult  *services.KPIParseResult
	dictResult *services.DictParseResult
	err        error
	notes      []string
}

func (m *mockNotesService) ParseKPIs(ctx context.Context, notesText string) (*services.KPIParseResult, error) {
	m.notes = append(m.notes, notesText)
	if m.err != nil {
		return nil, m.err
	}
	return m.kpiResult, nil
}

func (m *mockNotesService) ParseDictionary(ctx context.Context, notesText, tableContext string) (*services.DictParseResult, error) {
	m.notes = append(m.notes, notesText)
	if m.err != nil {
		return nil, m.err
	}
	return m.dictResult, nil
}

type mockVisionService struct {
	analysis *services.ImageAnalysisResult
	sections []services.WireframeSection
	err      error

	gotImage       []byte
	gotContentType string
	gotPlatform    string
}

func (m *mockVisionService) AnalyzeImage(ctx context.Context, image []byte, contentType, fileName, platform string) (*services.ImageAnalysisResult, error) {
	m.gotImage = image
	m.gotContentType = contentType
	m.gotPlatform = platform
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

func (m *mockVisionService) ExtractWireframeSections(ctx context.Context, image []byte, contentType, platform string) ([]services.WireframeSection, error) {
	m.gotImage = image
	m.gotContentType = contentType
	m.gotPlatform = platform
	if m.err != nil {
		return nil, m.err
	}
	return m.sections, nil
}

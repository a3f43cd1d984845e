package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/apperrors"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/extract"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/prompts"
)

// minNotesLength guards against inputs too thin to extract anything from.
const minNotesLength = 10

// KPIParseResult is the structured outcome of parsing free-form notes.
type KPIParseResult struct {
	KPIs         []prompts.KPI `json:"kpi_list"`
	ParsingNotes string        `json:"parsing_notes"`
}

// DictParseResult is the structured data dictionary parsed from notes.
type DictParseResult struct {
	Dictionary   prompts.DataDictionary `json:"data_dictionary"`
	ParsingNotes string                 `json:"parsing_notes"`
}

// NotesService turns unstructured meeting notes into structured KPI
// definitions and data dictionaries.
type NotesService interface {
	ParseKPIs(ctx context.Context, notesText string) (*KPIParseResult, error)
	ParseDictionary(ctx context.Context, notesText, tableContext string) (*DictParseResult, error)
}

type notesService struct {
	client llm.CompletionClient
	logger *zap.Logger
}

// NewNotesService creates a new notes parsing service.
func NewNotesService(client llm.CompletionClient, logger *zap.Logger) NotesService {
	return &notesService{
		client: client,
		logger: logger.Named("notes"),
	}
}

var _ NotesService = (*notesService)(nil)

func (s *notesService) ParseKPIs(ctx context.Context, notesText string) (*KPIParseResult, error) {
	if len(strings.TrimSpace(notesText)) < minNotesLength {
		return nil, apperrors.ErrNotesTooShort
	}

	raw, err := s.client.Complete(ctx, prompts.BuildKPIParsePrompt(notesText))
	if err != nil {
		return nil, fmt.Errorf("KPI parsing completion: %w", err)
	}

	result, err := extract.Decode[KPIParseResult](raw)
	if err != nil {
		return nil, fmt.Errorf("decode KPI list: %w", err)
	}
	if len(result.KPIs) == 0 {
		return nil, apperrors.ErrNoKPIs
	}

	// Fill required fields the model occasionally omits.
	for i := range result.KPIs {
		if result.KPIs[i].Name == "" {
			result.KPIs[i].Name = "Unnamed Metric"
		}
		if result.KPIs[i].Description == "" {
			result.KPIs[i].Description = "Description needs to be defined"
		}
	}
	if result.ParsingNotes == "" {
		result.ParsingNotes = "Successfully extracted KPIs from provided notes"
	}

	s.logger.Info("KPIs parsed from notes", zap.Int("count", len(result.KPIs)))
	return &result, nil
}

func (s *notesService) ParseDictionary(ctx context.Context, notesText, tableContext string) (*DictParseResult, error) {
	if len(strings.TrimSpace(notesText)) < minNotesLength {
		return nil, apperrors.ErrNotesTooShort
	}

	raw, err := s.client.Complete(ctx, prompts.BuildDictParsePrompt(notesText, tableContext))
	if err != nil {
		return nil, fmt.Errorf("dictionary parsing completion: %w", err)
	}

	result, err := extract.Decode[DictParseResult](raw)
	if err != nil {
		return nil, fmt.Errorf("decode data dictionary: %w", err)
	}
	if len(result.Dictionary) == 0 {
		return nil, apperrors.ErrNoDictionary
	}

	totalFields := 0
	for _, fields := range result.Dictionary {
		for name, entry := range fields {
			if entry.Description == "" {
				entry.Description = "Description needs to be defined"
				fields[name] = entry
			}
		}
		totalFields += len(fields)
	}
	if result.ParsingNotes == "" {
		result.ParsingNotes = fmt.Sprintf("Successfully extracted %d tables with %d fields from provided notes",
			len(result.Dictionary), totalFields)
	}

	s.logger.Info("Data dictionary parsed from notes",
		zap.Int("tables", len(result.Dictionary)),
		zap.Int("fields", totalFields))
	return &result, nil
}

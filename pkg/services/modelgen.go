package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/apperrors"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/config"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/extract"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/logging"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/prompts"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/schema"
)

// ModelGenRequest carries raw DDL text for conversion into a data model.
type ModelGenRequest struct {
	TablesSQL        []string `json:"tables_sql"`
	RelationshipsSQL string   `json:"relationships_sql"`
}

// ModelGenResult wraps the generated model.
type ModelGenResult struct {
	DataModel *schema.Model `json:"data_model"`
}

// ChunkSplitter partitions DDL statements for chunked processing.
// Injectable so tests and future size policies can control the split.
type ChunkSplitter func(tablesSQL []string) [][]string

// ModelGenService converts SQL DDL into a normalized data model via
// the completion service, sized to minimize API calls.
type ModelGenService interface {
	GenerateModel(ctx context.Context, req ModelGenRequest) (*ModelGenResult, error)
}

type modelGenService struct {
	client     llm.CompletionClient
	normalizer *schema.Normalizer
	cfg        config.ModelGenConfig
	split      ChunkSplitter
	logger     *zap.Logger
}

// NewModelGenService creates a new model generation service. A nil
// splitter gets the default even halves split.
func NewModelGenService(
	client llm.CompletionClient,
	normalizer *schema.Normalizer,
	cfg config.ModelGenConfig,
	split ChunkSplitter,
	logger *zap.Logger,
) ModelGenService {
	if split == nil {
		split = SplitHalves
	}
	return &modelGenService{
		client:     client,
		normalizer: normalizer,
		cfg:        cfg,
		split:      split,
		logger:     logger.Named("modelgen"),
	}
}

var _ ModelGenService = (*modelGenService)(nil)

// SplitHalves is the default chunk splitter: two roughly equal halves.
func SplitHalves(tablesSQL []string) [][]string {
	mid := len(tablesSQL) / 2
	return [][]string{tablesSQL[:mid], tablesSQL[mid:]}
}

// GenerateModel sizes the input and picks the cheapest viable path: a
// single call for small schemas, chunked calls for large ones, and a
// hard reject above the size gate.
func (s *modelGenService) GenerateModel(ctx context.Context, req ModelGenRequest) (*ModelGenResult, error) {
	totalSize := len(req.RelationshipsSQL)
	for _, ddl := range req.TablesSQL {
		totalSize += len(ddl)
	}

	s.logger.Info("Processing DDL",
		zap.Int("files", len(req.TablesSQL)),
		zap.Int("total_chars", totalSize))

	switch {
	case totalSize > s.cfg.MaxSchemaChars:
		return nil, fmt.Errorf("%w (%d characters): focus on the 10-20 most important tables",
			apperrors.ErrSchemaTooLarge, totalSize)
	case totalSize > s.cfg.ChunkThresholdChars:
		s.logger.Info("Large schema detected, using chunked processing")
		return s.generateChunked(ctx, req)
	default:
		return s.generateSingle(ctx, req, totalSize)
	}
}

func (s *modelGenService) generateSingle(ctx context.Context, req ModelGenRequest, totalSize int) (*ModelGenResult, error) {
	prompt := prompts.BuildModelGenPrompt(req.TablesSQL, req.RelationshipsSQL, totalSize)

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model generation completion: %w", err)
	}

	parsed, err := decodeModelPayload(raw)
	if err != nil {
		return nil, err
	}

	model := s.normalizer.Normalize(parsed)
	if len(model.Tables) == 0 {
		return nil, apperrors.ErrNoTablesParsed
	}
	return &ModelGenResult{DataModel: model}, nil
}

// generateChunked processes DDL in chunks, tolerating individual chunk
// failures, then extracts relationships in one final small call. The
// request fails only when every chunk fails.
func (s *modelGenService) generateChunked(ctx context.Context, req ModelGenRequest) (*ModelGenResult, error) {
	chunks := s.split(req.TablesSQL)
	merged := map[string]any{
		"tables":        []any{},
		"relationships": []any{},
	}

	for i, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		prompt := prompts.BuildDDLChunkPrompt(chunk, i+1, len(chunks))
		raw, err := s.client.Complete(ctx, prompt)
		if err != nil {
			s.logger.Warn("Chunk failed",
				zap.Int("chunk", i+1),
				zap.String("error", logging.SanitizeError(err)))
			continue
		}
		parsed, err := decodeModelPayload(raw)
		if err != nil {
			s.logger.Warn("Chunk returned unusable JSON", zap.Int("chunk", i+1))
			continue
		}
		if tables, ok := parsed["tables"].([]any); ok {
			merged["tables"] = append(merged["tables"].([]any), tables...)
			s.logger.Info("Chunk processed",
				zap.Int("chunk", i+1),
				zap.Int("tables", len(tables)))
		}
	}

	if len(merged["tables"].([]any)) == 0 {
		return nil, apperrors.ErrNoTablesParsed
	}

	if req.RelationshipsSQL != "" {
		rels, err := s.extractRelationships(ctx, req.RelationshipsSQL)
		if err != nil {
			s.logger.Warn("Relationships processing failed",
				zap.String("error", logging.SanitizeError(err)))
		} else {
			merged["relationships"] = rels
		}
	}

	model := s.normalizer.Normalize(merged)
	if len(model.Tables) == 0 {
		return nil, apperrors.ErrNoTablesParsed
	}
	return &ModelGenResult{DataModel: model}, nil
}

func (s *modelGenService) extractRelationships(ctx context.Context, relationshipsSQL string) ([]any, error) {
	raw, err := s.client.Complete(ctx, prompts.BuildRelationshipsPrompt(relationshipsSQL))
	if err != nil {
		return nil, err
	}
	parsed, err := decodeModelPayload(raw)
	if err != nil {
		return nil, err
	}
	rels, _ := parsed["relationships"].([]any)
	return rels, nil
}

// decodeModelPayload parses a completion into a generic JSON object,
// falling back to balanced-brace extraction when the model wrapped the
// JSON in prose or fences.
func decodeModelPayload(raw string) (map[string]any, error) {
	parsed, err := extract.Decode[map[string]any](raw)
	if err != nil {
		return nil, fmt.Errorf("decode model payload: %w", err)
	}
	return parsed, nil
}

package apperrors

import "errors"

var (
	ErrNoTables         = errors.New("no tables found in model metadata")
	ErrInvalidModel     = errors.New("invalid model metadata")
	ErrMissingPlatform  = errors.New("platform is required")
	ErrNotesTooShort    = errors.New("notes text is too short")
	ErrNoKPIs           = errors.New("no valid KPIs extracted from notes")
	ErrNoDictionary     = errors.New("no valid data dictionary extracted from notes")
	ErrSchemaTooLarge   = errors.New("schema too large")
	ErrNoTablesParsed   = errors.New("failed to process any tables")
	ErrEmptyImage       = errors.New("image file is empty")
	ErrImageTooLarge    = errors.New("image file too large")
	ErrUnsupportedImage = errors.New("file must be an image")
)

package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrCorruptStore     = errors.New("corrupt library store")
	ErrImportParse      = errors.New("import payload is not a JSON array")
	ErrPersistence      = errors.New("library persistence failed")
	ErrGenerationFailed = errors.New("image generation failed")
	ErrInvalidPrompt    = errors.New("invalid prompt")
	ErrInvalidImage     = errors.New("invalid image payload")
	ErrDuplicateImage   = errors.New("image already saved")
)

package insights

import "errors"

var (
	ErrNotFound = errors.New("insight not found")
)

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeExtract    = "EXTRACT_ERROR"
	ErrorCodeStorage    = "STORAGE_ERROR"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)

package apperror

import "net/http"

// Validation error codes.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidRequest   = "INVALID_REQUEST"
)

// Feature builder error codes.
const (
	CodeFeatureNotFound  = "FEATURE_NOT_FOUND"
	CodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	CodeDraftNotFound    = "DRAFT_NOT_FOUND"
	CodeSlugConflict     = "SLUG_CONFLICT"
)

// Auth error codes.
const (
	CodeAuthFailed   = "AUTH_FAILED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeAccessDenied = "ACCESS_DENIED"
)

const CodeInternal = "INTERNAL_ERROR"

// Validation builds a 400 error whose field errors name every missing input.
func Validation(message string, fieldErrors ...FieldError) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest).WithFieldErrors(fieldErrors)
}

// Required is the FieldError for a missing mandatory input.
func Required(field string) FieldError {
	return FieldError{Field: field, Code: "REQUIRED", Message: field + " is required"}
}

func ErrFeatureNotFound(id string) *AppError {
	return NotFound(CodeFeatureNotFound, "feature not found").
		WithParams(map[string]interface{}{"id": id})
}

func ErrSlugConflict(slug string) *AppError {
	return Conflict(CodeSlugConflict, "another feature already uses this slug").
		WithParams(map[string]interface{}{"slug": slug})
}

func ErrDraftNotFound(id string) *AppError {
	return NotFound(CodeDraftNotFound, "draft not found or expired").
		WithParams(map[string]interface{}{"id": id})
}

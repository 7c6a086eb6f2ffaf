package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput is returned when a caller-supplied field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateIdentity is returned when a username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned for both unknown identity and wrong
	// password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrFileTooLarge is returned when a declared upload size exceeds the ceiling.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUnsupportedFormat is returned when a file extension is not allowed for the content type.
	ErrUnsupportedFormat = errors.New("file format not allowed for this content type")
	// ErrStorageIO is returned when persisting media bytes fails.
	ErrStorageIO = errors.New("storage write failed")
	// ErrEnrichmentUnavailable is returned when the enrichment service is unreachable or timed out.
	ErrEnrichmentUnavailable = errors.New("enrichment service unavailable")
	// ErrEnrichmentFailed is returned when the enrichment service rejected this input.
	ErrEnrichmentFailed = errors.New("enrichment failed for this input")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Enrichment errors map here
// only when enrichment is the operation itself (the translate endpoint); inside
// the submission pipeline they are downgraded to warnings before reaching a
// handler.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrDuplicateIdentity):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_IDENTITY")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, err.Error(), "FILE_TOO_LARGE")
	case errors.Is(err, ErrUnsupportedFormat):
		return NewHTTPError(http.StatusUnsupportedMediaType, err.Error(), "UNSUPPORTED_FORMAT")
	case errors.Is(err, ErrEnrichmentFailed):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "ENRICHMENT_FAILED")
	case errors.Is(err, ErrEnrichmentUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "ENRICHMENT_UNAVAILABLE")
	case errors.Is(err, ErrStorageIO):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "STORAGE_IO")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

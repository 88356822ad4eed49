package common

import (
	"encoding/json"
	"net/http"
)

// APIError represents a structured API error
type APIError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	StatusCode int               `json:"-"`
}

func (e APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// MapError translates a domain error into its transport representation per
// the platform's status table.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case *APIError:
		return e
	case *ErrNotFound:
		return NewAPIError(http.StatusNotFound, "NOT_FOUND", e.Error())
	case *ErrUnauthorized:
		return NewAPIError(http.StatusUnauthorized, "UNAUTHORIZED", e.Error())
	case *ErrForbidden:
		return NewAPIError(http.StatusForbidden, "FORBIDDEN", e.Error())
	case *ErrValidation:
		apiErr := NewAPIError(http.StatusBadRequest, "VALIDATION", e.Error())
		apiErr.Fields = e.Fields
		return apiErr
	case *ErrInsufficientParticipants:
		return NewAPIError(http.StatusBadRequest, "INSUFFICIENT_PARTICIPANTS", e.Error())
	case *ErrInsufficientTeams:
		return NewAPIError(http.StatusBadRequest, "INSUFFICIENT_TEAMS", e.Error())
	case *ErrConflict:
		return NewAPIError(http.StatusConflict, "CONFLICT", e.Error())
	case *ErrConcurrentCalculation:
		return NewAPIError(http.StatusConflict, "CONCURRENT_CALCULATION", e.Error())
	case *ErrConcurrentRatingUpdate:
		return NewAPIError(http.StatusConflict, "CONCURRENT_RATING_UPDATE", e.Error())
	case *ErrELOProcessing:
		return NewAPIError(http.StatusInternalServerError, "ELO_PROCESSING_ERROR", e.Error())
	default:
		return NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err.Error())
	}
}

// WriteErrorResponse writes an API error as JSON response
func WriteErrorResponse(w http.ResponseWriter, apiErr *APIError) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)

	response := map[string]interface{}{
		"code":  apiErr.Code,
		"error": apiErr.Message,
	}
	if len(apiErr.Fields) > 0 {
		response["fields"] = apiErr.Fields
	}

	return json.NewEncoder(w).Encode(response)
}

// WriteSuccessResponse writes a successful response with proper headers
func WriteSuccessResponse(w http.ResponseWriter, data interface{}, statusCode int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		return json.NewEncoder(w).Encode(data)
	}
	return nil
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError - ответ API с кодом 4xx/5xx
type APIError struct {
	StatusCode int
	Code       string
	Domain     string
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// FieldError - ошибка одного поля из VALIDATION_FAILED
type FieldError struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Fields - ошибки полей; nil, если это не ошибка валидации
func (e *APIError) Fields() []FieldError {
	if e.Code != "VALIDATION_FAILED" || len(e.Details) == 0 {
		return nil
	}
	var out []FieldError
	if err := json.Unmarshal(e.Details, &out); err != nil {
		return nil
	}
	return out
}

func parseAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Error struct {
			Code    string          `json:"code"`
			Domain  string          `json:"domain"`
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Domain = envelope.Error.Domain
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

func IsConflict(err error) bool {
	return statusOf(err) == http.StatusConflict
}

// IsValidation - 400 с разбором по полям
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == "VALIDATION_FAILED"
}

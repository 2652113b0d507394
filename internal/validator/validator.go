package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError - одна ошибка поля. Reason - машиночитаемый тег правила
// ("required", "email", "mediaref", "type"...).
type FieldError struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ValidationError содержит ошибки по всем невалидным полям сразу
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", fe.Field, fe.Message))
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

// Fields - список имен полей с ошибками, удобно для логов и тестов
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

// Merge дописывает ошибки из err для полей, по которым у e ошибок еще нет.
// err, не являющийся *ValidationError, игнорируется.
func (e *ValidationError) Merge(err error) *ValidationError {
	var other *ValidationError
	if !errors.As(err, &other) {
		return e
	}
	seen := make(map[string]bool, len(e.Errors))
	for _, fe := range e.Errors {
		seen[rootField(fe.Field)] = true
	}
	for _, fe := range other.Errors {
		if !seen[rootField(fe.Field)] {
			e.Errors = append(e.Errors, fe)
		}
	}
	return e
}

// rootField - "features" для "features[2]" и "items.name"
func rootField(f string) string {
	if i := strings.IndexAny(f, ".["); i >= 0 {
		return f[:i]
	}
	return f
}

// Single - ошибка одного поля, для проверок вне тегов (например, categoryId не существует)
func Single(field, reason, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Reason: reason, Message: message}}}
}

// Validator - обертка над go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// Options - настройки кастомных правил
type Options struct {
	// UploadPrefix - префикс серверных путей для правила mediaref, по умолчанию "/uploads/"
	UploadPrefix string
}

func New() *Validator {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках отдаем имена из json-тегов, как их видит клиент
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v, opts)

	return &Validator{validate: v}
}

// Validate проверяет структуру. Ошибки полей возвращаются как *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(validationErrors))}
	for _, fe := range validationErrors {
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(fe),
			Reason:  fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}
	return out
}

// fieldPath - "features[2]" вместо "CreateProductRequest.features[2]"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid":
		return "Must be a valid identifier"
	case "mediaref":
		return "Must be an absolute URL, a data URL or an uploaded file path"
	case "contactstatus":
		return "Must be one of: PENDING, IN_PROGRESS, RESPONDED, CLOSED"
	case "notblank":
		return "Must not be blank"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}

package apperrors

import (
	"fmt"
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// NotFound - сущность с указанным id не найдена (404). Деталей кроме entity/id нет.
func NotFound(entity, id string) *AppError {
	return New(CodeNotFound, entity, fmt.Sprintf("%s %s not found", entity, id), http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrAlreadyExists - уникальное поле уже занято (409)
func ErrAlreadyExists(domain, message string) *AppError {
	return New(CodeAlreadyExists, domain, message, http.StatusConflict)
}

// =========================================================================
// Загрузка файлов
// =========================================================================

var ErrNoFile = New(
	CodeNoFile,
	"upload",
	"No file provided in field 'file'",
	http.StatusBadRequest,
)

// ErrFileTooLarge - размер больше upload.max_size
var ErrFileTooLarge = New(
	CodeFileTooLarge,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusBadRequest,
)

var ErrInvalidFileType = New(
	CodeInvalidFileType,
	"upload",
	"The provided file type is not allowed",
	http.StatusBadRequest,
)

var ErrInvalidUploadType = New(
	CodeInvalidUpload,
	"upload",
	"uploadType may contain only letters, digits, '-' and '_'",
	http.StatusBadRequest,
)

// ErrUploadFailed - неожиданная ошибка ввода-вывода
func ErrUploadFailed(err error) *AppError {
	return Wrap(err, CodeStorageError, "upload", "Failed to store file", http.StatusInternalServerError)
}

// =========================================================================
// Аутентификация
// =========================================================================

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

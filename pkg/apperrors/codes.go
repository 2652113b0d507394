package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие коды ошибок
const (
	// Системные
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"

	// Бизнес-логика
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"

	// Загрузка файлов
	CodeNoFile          ErrorCode = "NO_FILE"
	CodeFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidFileType ErrorCode = "INVALID_FILE_TYPE"
	CodeInvalidUpload   ErrorCode = "INVALID_UPLOAD_TYPE"

	// Аутентификация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)

package apperrors

// ErrorCode is the stable machine-readable kind of an AppError.
type ErrorCode string

// System
const (
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// Generic business codes
const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
)

// Friend workflow
const (
	CodeInvalidTarget         ErrorCode = "INVALID_TARGET"
	CodeAlreadyFriends        ErrorCode = "ALREADY_FRIENDS"
	CodeRequestAlreadyPending ErrorCode = "REQUEST_ALREADY_PENDING"
	CodeNotPending            ErrorCode = "NOT_PENDING"
)

// Auth
const (
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)

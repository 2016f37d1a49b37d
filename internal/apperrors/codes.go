package apperrors

// Коды ошибок
const (
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeForbidden          ErrorCode = "FORBIDDEN"

	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeUsernameTaken    ErrorCode = "USERNAME_TAKEN"
	CodeEmailTaken       ErrorCode = "EMAIL_TAKEN"

	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeListingNotFound ErrorCode = "LISTING_NOT_FOUND"

	CodeNotListingOwner  ErrorCode = "NOT_LISTING_OWNER"
	CodeOwnerCannotLeave ErrorCode = "OWNER_CANNOT_LEAVE"

	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)

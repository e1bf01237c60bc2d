package apperrors

import "net/http"

// ErrConflict wraps a collision the caller can not resolve by retrying.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus is returned for an unknown status filter value.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Friend requests ---

var ErrInvalidTarget = New(
	CodeInvalidTarget,
	"friends",
	"You cannot send a friend request to yourself",
	http.StatusBadRequest,
)

var ErrAlreadyFriends = New(
	CodeAlreadyFriends,
	"friends",
	"You are already friends with this user",
	http.StatusConflict,
)

var ErrRequestAlreadyPending = New(
	CodeRequestAlreadyPending,
	"friends",
	"A friend request to this user is already pending",
	http.StatusConflict,
)

// ErrNotPending covers accept/reject/cancel on a request that already left pending.
var ErrNotPending = New(
	CodeNotPending,
	"friends",
	"Friend request is not pending",
	http.StatusConflict,
)

var ErrFriendRequestNotFound = New(
	CodeNotFound,
	"friends",
	"Friend request not found",
	http.StatusNotFound,
)

var ErrFriendRequestForbidden = New(
	CodeForbidden,
	"friends",
	"You are not allowed to perform this action on the friend request",
	http.StatusForbidden,
)

// --- Notifications ---

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notifications",
	"Notification not found",
	http.StatusNotFound,
)

var ErrNotificationForbidden = New(
	CodeForbidden,
	"notifications",
	"Notification belongs to another user",
	http.StatusForbidden,
)

// --- Users & auth ---

var ErrUserNotFound = New(
	CodeNotFound,
	"users",
	"User not found",
	http.StatusNotFound,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters and contain a letter and a digit",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"No active account found with the given credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Token is invalid or expired",
	http.StatusUnauthorized,
)

var ErrAccountDisabled = New(
	CodeForbidden,
	"auth",
	"User account is disabled",
	http.StatusForbidden,
)

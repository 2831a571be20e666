package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind 错误类别, 决定边界层返回的 HTTP 状态码
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindAuth         Kind = "auth"
	KindUnauthorized Kind = "unauthorized"
	KindTooMany      Kind = "too_many_requests"
	KindInternal     Kind = "internal"
)

// 错误码
const (
	CodeSuccess         = http.StatusOK
	CodeCreated         = http.StatusCreated
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeConflict        = http.StatusConflict
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeInternalError   = http.StatusInternalServerError
)

var kindStatus = map[Kind]int{
	KindValidation:   CodeBadRequest,
	KindConflict:     CodeConflict,
	KindNotFound:     CodeNotFound,
	KindForbidden:    CodeForbidden,
	KindAuth:         CodeUnauthorized,
	KindUnauthorized: CodeUnauthorized,
	KindTooMany:      CodeTooManyRequests,
	KindInternal:     CodeInternalError,
}

// AppError 应用错误
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error's kind.
func (e *AppError) Status() int {
	return StatusOf(e.Kind)
}

// New 创建新错误
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError { return New(KindValidation, message) }
func Conflict(message string) *AppError   { return New(KindConflict, message) }
func NotFound(message string) *AppError   { return New(KindNotFound, message) }
func Forbidden(message string) *AppError  { return New(KindForbidden, message) }

// Database wraps a driver failure. The message is generic; the cause stays in Err.
func Database(message string, err error) *AppError {
	return Wrap(KindInternal, message, err)
}

// StatusOf maps a kind to its HTTP status. Unknown kinds are internal errors.
func StatusOf(kind Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return CodeInternalError
}

// KindOf extracts the kind carried by err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// 预定义错误
var (
	ErrBadRequest         = New(KindValidation, "Invalid request")
	ErrUnauthorized       = New(KindUnauthorized, "Unauthorized")
	ErrInternalError      = New(KindInternal, "Internal server error")
	ErrTooManyRequests    = New(KindTooMany, "Too many requests, please try again later")
	ErrInvalidCredentials = New(KindAuth, "Invalid username or password")
	ErrUsernameTaken      = New(KindConflict, "Username already exists")

	ErrProjectNotFound = New(KindNotFound, "Project not found")
	ErrProjectAccess   = New(KindForbidden, "You do not have access to this project")
	ErrMemberNotFound  = New(KindNotFound, "Member not found")
	ErrMemberExists    = New(KindConflict, "User is already a member of this project")
	ErrOwnerAsMember   = New(KindConflict, "Project owner is already part of the project")
	ErrUserNotFound    = New(KindNotFound, "User not found")
	ErrTaskNotFound    = New(KindNotFound, "Task not found")
	ErrLabelNotFound   = New(KindNotFound, "Label not found")
	ErrLabelExists     = New(KindConflict, "A label with this name already exists")
	ErrLabelAttached   = New(KindConflict, "Label is already attached to this task")
	ErrLabelDetached   = New(KindNotFound, "Label is not attached to this task")
	ErrAssigneeMissing = New(KindNotFound, "Assignee not found")
)

package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound              = "NOT_FOUND"
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInternalError         = "INTERNAL_ERROR"
	CodeGenerationUnavailable = "GENERATION_UNAVAILABLE"
	CodeGenerationMalformed   = "GENERATION_MALFORMED"
	CodeCreationFailed        = "CREATION_FAILED"
	CodeNotAMember            = "NOT_A_MEMBER"
	CodeNotCreator            = "NOT_CREATOR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")

	// ErrGenerationUnavailable is returned when the generation service produced nothing usable.
	// Callers may retry, possibly with different prompts.
	ErrGenerationUnavailable = New(fiber.StatusBadGateway, CodeGenerationUnavailable, "could not fetch activities")

	// ErrGenerationMalformed is returned when the generation service output cannot be parsed
	// into activity records.
	ErrGenerationMalformed = New(fiber.StatusBadGateway, CodeGenerationMalformed, "generated activities are malformed")

	// ErrCreationFailed is returned when any write of the creation transaction failed.
	// The transaction has already been rolled back when this error is seen.
	ErrCreationFailed = New(fiber.StatusBadRequest, CodeCreationFailed, "failed to create itinerary")

	// ErrNotAMember is returned when the user has no membership on the itinerary.
	ErrNotAMember = New(fiber.StatusForbidden, CodeNotAMember, "you do not have access to this itinerary")

	// ErrNotCreator is returned when the user is a member, but not the creator, of the itinerary.
	ErrNotCreator = New(fiber.StatusForbidden, CodeNotCreator, "only the creator can modify this itinerary")
)

type Extras map[string]interface{}

type Error struct {
	StatusCode int     `json:"-" example:"400"`
	ErrorCode  string  `json:"code" example:"INVALID_REQUEST"`
	Message    string  `json:"message" example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras `json:"-"`

	cause error
}

func New(statusCode int, errorCode string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e Error) Msg(format string, parts ...interface{}) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	e.Extras = &extras
	return &e
}

// Wrap returns a copy of e which records cause as its underlying error.
// The message is left untouched; use Msg to surface the cause to clients.
func (e Error) Wrap(cause error) *Error {
	e.cause = cause
	return &e
}

func NewInvalidViolations(violations interface{}) *Error {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports errors carrying the same error code as equal, so that copies made by
// Msg, WithExtras or Wrap still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

// IsAuthorization reports whether err rejects the action because the caller is
// not the itinerary's creator, regardless of whether they are a member at all.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrNotAMember) || errors.Is(err, ErrNotCreator)
}

// From extracts an *Error from err's chain.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

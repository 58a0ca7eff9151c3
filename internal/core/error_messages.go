package core

// # Error Codes Reference
//
// User-facing messages carry a code so an admin can quote it when something
// goes wrong. Codes are grouped by category:
//
// # Catalog Errors (NET001-NET099)
//
//	NET001 - Unreachable: Unable to reach the product catalog
//	         Action: Check your connection and try again
//	NET002 - Server error: The product catalog failed to answer
//	         Action: Please try again in a few moments
//	NET003 - Rejected: The product catalog rejected the request
//	         Action: Review the values you entered
//	NET004 - Timeout: The product catalog took too long to answer
//	         Action: Please try again
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Empty export: There is no data to export
//	         Action: Clear the search box to include more products
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid form: Some fields are invalid
//	         Action: lists the offending fields
//	VAL002 - Unreadable form: The form could not be read
//	         Action: Reload the page and try again
//
// # View Errors (VIEW001-VIEW099, PRD001, SES001)
//
//	VIEW001 - Column cannot be sorted
//	VIEW002 - Invalid page size
//	VIEW003 - Unknown table action
//	PRD001  - Product not found in the current list
//	SES001  - View session expired
//
// # Request Errors (REQ001-REQ099, RATE001)
//
//	REQ001  - Request was cancelled
//	REQ002  - Request timed out
//	RATE001 - Too many requests, or every catalog call slot is busy
//
// # Default Error (ERR000)
//
//	ERR000 - An unexpected error occurred
//
// Typed errors are matched first with errors.Is/As. Anything left over is
// matched case-insensitively against errorPatterns; the first hit wins.

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/export"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Detail  string // Verbatim server payload, when the catalog sent one
}

var (
	msgUnreachable = UserMessage{
		Message: "Unable to reach the product catalog",
		Action:  "Check your connection and try again",
		Code:    "NET001",
	}
	msgRemoteServer = UserMessage{
		Message: "The product catalog failed to answer",
		Action:  "Please try again in a few moments",
		Code:    "NET002",
	}
	msgRemoteRejected = UserMessage{
		Message: "The product catalog rejected the request",
		Action:  "Review the values you entered",
		Code:    "NET003",
	}
	msgRemoteTimeout = UserMessage{
		Message: "The product catalog took too long to answer",
		Action:  "Please try again",
		Code:    "NET004",
	}
	msgEmptyExport = UserMessage{
		Message: "There is no data to export",
		Action:  "Clear the search box to include more products",
		Code:    "EXP001",
	}
	msgTooManyRequests = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again",
		Code:    "ERR000",
	}
)

// sentinelMessages maps typed errors to messages. Checked in order.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{export.ErrEmptyExport, msgEmptyExport},
	{ErrMalformedForm, UserMessage{
		Message: "The form could not be read",
		Action:  "Reload the page and try again",
		Code:    "VAL002",
	}},
	{view.ErrUnsortableColumn, UserMessage{
		Message: "This column cannot be sorted",
		Action:  "Sort by title or price",
		Code:    "VIEW001",
	}},
	{view.ErrInvalidPageSize, UserMessage{
		Message: "Invalid page size",
		Action:  "Pick one of the offered page sizes",
		Code:    "VIEW002",
	}},
	{ErrUnknownAction, UserMessage{
		Message: "Unknown table action",
		Action:  "Reload the page",
		Code:    "VIEW003",
	}},
	{ErrProductNotFound, UserMessage{
		Message: "Product not found in the current list",
		Action:  "Reload the list and try again",
		Code:    "PRD001",
	}},
	{ErrSessionExpired, UserMessage{
		Message: "Your view session expired",
		Action:  "Reload the page to start a new one",
		Code:    "SES001",
	}},
	{ErrCatalogBusy, msgTooManyRequests},
	{context.Canceled, UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "Request timed out",
		Action:  "Please try again",
		Code:    "REQ002",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catches untyped errors by their text.
var errorPatterns = []errorPattern{
	{
		pattern: "rate limit",
		msg:     msgTooManyRequests,
	},
	{
		pattern: "connection refused",
		msg:     msgUnreachable,
	},
}

// MapError converts a technical error into a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var netErr *catalog.NetworkError
	if errors.As(err, &netErr) {
		return mapNetworkError(netErr)
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return UserMessage{
			Message: "Some fields are invalid",
			Action:  valErr.Summary(),
			Code:    "VAL001",
		}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	errLower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errLower, p.pattern) {
			return p.msg
		}
	}

	return msgUnknown
}

func mapNetworkError(e *catalog.NetworkError) UserMessage {
	var msg UserMessage
	switch {
	case e.StatusCode >= http.StatusInternalServerError:
		msg = msgRemoteServer
	case e.StatusCode != 0:
		msg = msgRemoteRejected
	case errors.Is(e, context.DeadlineExceeded) || strings.Contains(strings.ToLower(e.Error()), "timeout"):
		msg = msgRemoteTimeout
	default:
		msg = msgUnreachable
	}
	msg.Detail = e.Payload()
	return msg
}

// StatusFor picks the HTTP status a handler should answer with for err.
func StatusFor(err error) int {
	var netErr *catalog.NetworkError
	var valErr *ValidationError
	switch {
	case errors.As(err, &netErr):
		return http.StatusBadGateway
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSessionExpired):
		return http.StatusGone
	case errors.Is(err, ErrCatalogBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, export.ErrEmptyExport),
		errors.Is(err, ErrMalformedForm),
		errors.Is(err, view.ErrUnsortableColumn),
		errors.Is(err, view.ErrInvalidPageSize),
		errors.Is(err, ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

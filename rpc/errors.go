package rpc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Cause names of handler errors that the cleanup policy depends on.
const (
	CauseUnknownAccessKey   = "UNKNOWN_ACCESS_KEY"
	CauseTimeoutError       = "TIMEOUT_ERROR"
	CauseUnknownTransaction = "UNKNOWN_TRANSACTION"
)

// legacyUnknownAccessKey is the text older nodes embed in a successful query result.
const legacyUnknownAccessKey = "does not exist while viewing"

// ErrorCause is the structured reason of a handler error.
type ErrorCause struct {
	Name string          `json:"name"`
	Info json.RawMessage `json:"info,omitempty"`
}

// Error is the error object of a JSON-RPC response.
type Error struct {
	Name    string          `json:"name"`
	Cause   ErrorCause      `json:"cause"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	var sb strings.Builder

	if e.Name != "" {
		sb.WriteString(e.Name)
		if e.Cause.Name != "" {
			fmt.Fprintf(&sb, "(%v)", e.Cause.Name)
		}
		sb.WriteString(": ")
	}

	sb.WriteString(e.Message)

	if len(e.Cause.Info) > 0 && string(e.Cause.Info) != "null" {
		fmt.Fprintf(&sb, ", info = %s", e.Cause.Info)
	} else if len(e.Data) > 0 && string(e.Data) != "null" {
		fmt.Fprintf(&sb, ", data = %s", e.Data)
	}

	return sb.String()
}

func causeOf(err error) string {
	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		return ""
	}

	return rpcErr.Cause.Name
}

// IsUnknownAccessKey reports whether err means the chain has no such access key,
// usually because the account has been deleted already.
func IsUnknownAccessKey(err error) bool {
	return causeOf(err) == CauseUnknownAccessKey
}

// IsTransient reports whether err means the transaction result is not available yet.
func IsTransient(err error) bool {
	switch causeOf(err) {
	case CauseTimeoutError, CauseUnknownTransaction:
		return true
	default:
		return false
	}
}

func newQueryResultError(message string) *Error {
	e := &Error{Name: "HANDLER_ERROR", Message: message}

	if strings.Contains(message, legacyUnknownAccessKey) {
		e.Cause.Name = CauseUnknownAccessKey
	}

	return e
}

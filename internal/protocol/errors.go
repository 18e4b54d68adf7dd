// internal/protocol/errors.go
package protocol

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed outbound call.
type ErrorKind string

const (
	KindInvalidSelection ErrorKind = "invalid_selection"
	KindOutOfTurn        ErrorKind = "out_of_turn"
	KindRoomNotFound     ErrorKind = "room_not_found"
	KindRuleViolation    ErrorKind = "rule_violation"
	KindServer           ErrorKind = "server"
	KindTransport        ErrorKind = "transport"
)

// CallError is the structured failure of a remote call. Transport failures
// wrap the underlying error; validation failures carry the response status
// and the server-supplied message.
type CallError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *CallError) Unwrap() error { return e.Err }

// TransportError wraps a call that never completed.
func TransportError(err error) *CallError {
	return &CallError{Kind: KindTransport, Err: err}
}

// ClassifyStatus maps a non-2xx response status to the validation taxonomy.
func ClassifyStatus(status int, message string) *CallError {
	kind := KindServer
	switch status {
	case http.StatusBadRequest:
		kind = KindInvalidSelection
	case http.StatusForbidden:
		kind = KindOutOfTurn
	case http.StatusNotFound:
		kind = KindRoomNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		kind = KindRuleViolation
	}
	return &CallError{Kind: kind, Status: status, Message: message}
}

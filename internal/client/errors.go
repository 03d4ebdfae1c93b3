package client

import (
	"errors"
	"fmt"
)

// User-facing fallback messages.
const (
	MsgConnection          = "could not connect to the server"
	MsgCreateFailed        = "an error occurred while recording the transaction"
	MsgRegisterFailed      = "an error occurred while creating the account"
	MsgListFailed          = "could not load transactions"
	MsgInvalidResponseBody = "the server sent an unreadable response"
)

// NetworkError is a transport failure: the request never produced an HTTP
// response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage is the generic connection alert.
func (e *NetworkError) UserMessage() string { return MsgConnection }

// ServerRejection is a non-2xx response. Message holds the server's own
// message field when it sent one.
type ServerRejection struct {
	Op       string
	Status   int
	Message  string
	fallback string
}

func (e *ServerRejection) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// UserMessage returns the server message verbatim, or the fallback for the
// operation when the server sent none.
func (e *ServerRejection) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.fallback
}

// DecodeError reports a 2xx response whose body could not be decoded.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) UserMessage() string { return MsgInvalidResponseBody }

// UserMessage maps any client error to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return MsgConnection
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsRejection reports whether err is a non-2xx server response.
func IsRejection(err error) bool {
	var sr *ServerRejection
	return errors.As(err, &sr)
}

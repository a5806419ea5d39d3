package payment

import "fmt"

// EngineError codes.
const (
	CodeNotFound       = "not_found"
	CodeInvalidState   = "invalid_state"
	CodeChannelFailure = "channel_failure"
	CodeInvalidInput   = "invalid_input"
)

type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &EngineError{Code: CodeNotFound, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &EngineError{Code: CodeInvalidState, Message: msg}
}

func NewChannelError(msg string) error {
	return &EngineError{Code: CodeChannelFailure, Message: msg}
}

func NewInvalidInputError(msg string) error {
	return &EngineError{Code: CodeInvalidInput, Message: msg}
}

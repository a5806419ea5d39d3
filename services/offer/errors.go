package offer

import "fmt"

// WorkflowError codes.
const (
	CodeNotFound     = "not_found"
	CodeInvalidState = "invalid_state"
	CodeInvalidInput = "invalid_input"
)

type WorkflowError struct {
	Code    string
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &WorkflowError{Code: CodeNotFound, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &WorkflowError{Code: CodeInvalidState, Message: msg}
}

func NewInvalidInputError(msg string) error {
	return &WorkflowError{Code: CodeInvalidInput, Message: msg}
}

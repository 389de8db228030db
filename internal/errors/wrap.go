package errors

import (
	"errors"
	"fmt"
)

// Operation names the module call an error surfaced from.
type Operation struct {
	module string
	name   string
}

// Op returns the operation name for module, e.g. Op("graph", "send_message").
func Op(module, name string) Operation {
	return Operation{module: module, name: name}
}

// Fail wraps err with the operation. Returns nil if err is nil.
func (o Operation) Fail(err error) error {
	return o.FailFor("", err)
}

// FailFor wraps err with the operation and the PSID it was performed for.
// Returns nil if err is nil.
func (o Operation) FailFor(psid string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Module: o.module, Op: o.name, PSID: psid, Err: err}
}

// OpError carries the module, operation and user an error surfaced from.
type OpError struct {
	Module string // e.g. "graph"
	Op     string // e.g. "user_profile", "send_message"
	PSID   string // empty for page-level calls
	Err    error
}

func (e *OpError) Error() string {
	if e.PSID == "" {
		return fmt.Sprintf("%s %s: %v", e.Module, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s (psid=%s): %v", e.Module, e.Op, e.PSID, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// OperationOf returns "module:operation" for a wrapped error, or "" otherwise.
func OperationOf(err error) string {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Module + ":" + oe.Op
	}
	return ""
}

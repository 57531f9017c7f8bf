package bridge

import (
	"errors"
	"fmt"
)

// Kind classifies a failed bridge operation.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindCapability
	KindSubprocess
	KindRejected
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCapability:
		return "capability"
	case KindSubprocess:
		return "subprocess"
	case KindRejected:
		return "rejected"
	default:
		return "internal"
	}
}

// Messages surfaced to the caller verbatim.
const (
	MsgInvalidAppID  = "Invalid appId"
	MsgNotInstalled  = "App not installed"
	MsgToolMissing   = "flatpak not installed"
	MsgUserCancelled = "User cancelled"
	MsgLaunchFailed  = "Failed to launch"
)

// Error is a failed operation. Stdout and Stderr are set when a subprocess
// ran, so the caller sees what the tool printed.
type Error struct {
	Kind    Kind
	Message string
	AppID   string
	Stdout  *string
	Stderr  *string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a bridge error, KindInternal for anything else.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func validationError(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Err: err}
}

func capabilityError() *Error {
	return &Error{Kind: KindCapability, Message: MsgToolMissing}
}

func rejectedError(appID string, err error) *Error {
	return &Error{Kind: KindRejected, Message: MsgUserCancelled, AppID: appID, Err: err}
}

package errors

import (
	// Go internal packages
	"bytes"
	"encoding/json"
	"errors"
)

// Error defines a standard application error.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	// Wrapped underlying error.
	WrappedErr error `json:"wrapped_err,omitempty"`
}

// Error returns the string representation of the error message.
func (e *Error) Error() string {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(e)
	return buf.String()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.WrappedErr
}

// NewError returns standard go error with given string
func NewError(e string) error {
	return errors.New(e)
}

// Kind defines the kind or class of an error.
type Kind uint8

// Transport agnostic error "kinds" used by the payment core.
const (
	Other             Kind = iota // Unclassified error
	Internal                      // Internal error, network or parse failure
	Invalid                       // Invalid input: bad amount, malformed payment id
	SignatureMismatch             // Payment signature did not match
	Gateway                       // Payment gateway rejected the call
	Storage                       // Registration store write failed
	NotFound                      // Entity does not exist
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "unclassified error"
	case Internal:
		return "internal error"
	case Invalid:
		return "invalid input"
	case SignatureMismatch:
		return "signature mismatch"
	case Gateway:
		return "gateway error"
	case Storage:
		return "storage error"
	case NotFound:
		return "entity not found"
	default:
		return "unknown error kind"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.WrappedErr = arg
		case string:
			e.Message = arg
		}
	}
	return e
}

// KindOf returns the Kind carried by err, or Other for plain errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Other
}

// NewInternalServerError creates a new internal error
func NewInternalServerError(msg string) error {
	return E(Internal, msg)
}

// NewInvalidParamsError creates a new invalid parameters error
func NewInvalidParamsError(msg string) error {
	return E(Invalid, msg)
}

// NewGatewayError creates a new gateway error
func NewGatewayError(msg string) error {
	return E(Gateway, msg)
}

// NewStorageError creates a new storage error
func NewStorageError(msg string) error {
	return E(Storage, msg)
}

var (
	As = errors.As
	Is = errors.Is
)

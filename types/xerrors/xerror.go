package xerrors

import (
	"errors"
	"fmt"
)

const (
	ErrCodeSuccess uint32 = iota
	ErrCodeOrdinary
	ErrCodeDivisionByZero
	ErrCodeOverflow
	ErrCodeInvalidExponent
	ErrCodeInvalidOrdering
	ErrCodeInvalidParams
)

const (
	ErrCodeCLI uint32 = 1000 + iota
	ErrCodeConfig
	ErrCodeIO
	ErrLast
)

var (
	ErrCommon          = New(ErrCodeOrdinary, "fxseries error")
	ErrDivisionByZero  = New(ErrCodeDivisionByZero, "division by zero")
	ErrOverflow        = New(ErrCodeOverflow, "arithmetic overflow")
	ErrInvalidExponent = New(ErrCodeInvalidExponent, "invalid exponent: a must not be greater than b")
	ErrInvalidOrdering = New(ErrCodeInvalidOrdering, "invalid term ordering")
	ErrInvalidParams   = New(ErrCodeInvalidParams, "invalid parameters")

	ErrCLI    = New(ErrCodeCLI, "command failed")
	ErrConfig = New(ErrCodeConfig, "invalid config")
	ErrIO     = New(ErrCodeIO, "i/o failure")

	ErrFieldOutOfRange = ErrInvalidParams.Wrap(NewOrdinary("field out of range"))
	ErrMalformedWord   = ErrInvalidParams.Wrap(NewOrdinary("malformed packed word"))
	ErrMalformedInput  = ErrInvalidParams.Wrap(NewOrdinary("malformed input"))
)

type XError interface {
	Code() uint32
	Cause() error
	Error() string
	Msg() string
	Wrap(error) XError
	Wrapf(string, ...any) XError
	Contains(XError) bool
	Equal(XError) bool
	ExitCode() int
}

type xerror struct {
	code  uint32
	msg   string
	cause error
}

func New(code uint32, msg string) XError {
	return &xerror{
		code: code,
		msg:  msg,
	}
}

func NewOrdinary(msg string) XError {
	return &xerror{
		code: ErrCodeOrdinary,
		msg:  msg,
	}
}

func From(err error) XError {
	if err == nil {
		return nil
	}
	var xerr XError
	if errors.As(err, &xerr) {
		return xerr
	}
	return NewOrdinary(err.Error())
}

func Wrap(err error, msg string) XError {
	return &xerror{
		code:  ErrCodeOrdinary,
		msg:   msg,
		cause: err,
	}
}

func (xerr *xerror) Code() uint32 {
	return xerr.code
}

func (xerr *xerror) Error() string {
	msg := xerr.msg

	if xerr.cause != nil {
		msg += ": " + xerr.cause.Error()
	}

	return msg
}

func (xerr *xerror) Msg() string {
	return xerr.msg
}

func (xerr *xerror) Cause() error {
	return xerr.cause
}

func (xerr *xerror) Unwrap() error {
	return xerr.cause
}

func (xerr *xerror) Wrap(err error) XError {
	if xerr.cause != nil {
		if cerr, ok := xerr.cause.(*xerror); ok {
			return &xerror{
				code:  xerr.code,
				msg:   xerr.msg,
				cause: cerr.Wrap(err),
			}
		}
	}
	return &xerror{
		code:  xerr.code,
		msg:   xerr.msg,
		cause: err,
	}
}

func (xerr *xerror) Wrapf(format string, args ...any) XError {
	return xerr.Wrap(New(ErrCodeOrdinary, fmt.Sprintf(format, args...)))
}

// Contains reports whether other appears in the chain of xerr.
// A sentinel that itself wraps a cause, like ErrMalformedWord, matches only
// when that cause is found in the chain too.
func (xerr *xerror) Contains(other XError) bool {
	if xerr.code == other.Code() && xerr.msg == other.Msg() && xerr.causeContains(other.Cause()) {
		return true
	} else if xerr.cause != nil {
		if _xerr, ok := xerr.cause.(*xerror); ok {
			return _xerr.Contains(other)
		} else {
			return errors.Is(xerr.cause, other)
		}
	}
	return false
}

func (xerr *xerror) causeContains(cause error) bool {
	if cause == nil {
		return true
	}
	if xerr.cause == nil {
		return false
	}
	if ocause, ok := cause.(XError); ok {
		if _xerr, ok := xerr.cause.(*xerror); ok {
			return _xerr.Contains(ocause)
		}
	}
	return errors.Is(xerr.cause, cause)
}

func (xerr *xerror) Equal(other XError) bool {
	return xerr.code == other.Code()
}

// ExitCode is picked up by the CLI executor when an XError is returned from a command.
// Numeric failures exit with 2, usage and config failures with 64, I/O with 74.
func (xerr *xerror) ExitCode() int {
	switch xerr.code {
	case ErrCodeSuccess:
		return 0
	case ErrCodeDivisionByZero, ErrCodeOverflow, ErrCodeInvalidExponent:
		return 2
	case ErrCodeInvalidOrdering, ErrCodeInvalidParams, ErrCodeCLI, ErrCodeConfig:
		return 64
	case ErrCodeIO:
		return 74
	default:
		return 1
	}
}

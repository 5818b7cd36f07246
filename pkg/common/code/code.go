package code

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes so callers can tell bad input apart from an
// unavailable storage layer.
type Kind int

const (
	KindOK Kind = iota
	KindValidation
	KindGeometry
	KindReferential
	KindNotFound
	KindConflict
	KindStorage
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindValidation:
		return "validation"
	case KindGeometry:
		return "geometry"
	case KindReferential:
		return "referential"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to the status used by the web layer.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindOK:
		return http.StatusOK
	case KindValidation, KindGeometry:
		return http.StatusBadRequest
	case KindReferential:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrCode is an immutable error template. The With* helpers return copies,
// so the package level values can be shared freely.
type ErrCode struct {
	code   int
	kind   Kind
	msg    string
	fields map[string]string
	err    error
}

func newCode(c int, kind Kind, msg string) *ErrCode {
	return &ErrCode{code: c, kind: kind, msg: msg}
}

func (e *ErrCode) Code() int { return e.code }

func (e *ErrCode) Kind() Kind { return e.kind }

func (e *ErrCode) Msg() string { return e.msg }

// Fields returns per field violations, nil for non validation errors.
func (e *ErrCode) Fields() map[string]string { return e.fields }

func (e *ErrCode) Error() string {
	if e.err != nil {
		return fmt.Sprintf("code: %d, msg: %s, err: %v", e.code, e.msg, e.err)
	}
	return fmt.Sprintf("code: %d, msg: %s", e.code, e.msg)
}

func (e *ErrCode) Unwrap() error { return e.err }

// Is matches any ErrCode carrying the same code.
func (e *ErrCode) Is(target error) bool {
	t, ok := target.(*ErrCode)
	if !ok {
		return false
	}
	return t.code == e.code
}

func (e *ErrCode) clone() *ErrCode {
	c := *e
	return &c
}

func (e *ErrCode) WithMsg(msg string) *ErrCode {
	c := e.clone()
	c.msg = msg
	return c
}

func (e *ErrCode) WithMsgf(format string, args ...any) *ErrCode {
	return e.WithMsg(fmt.Sprintf(format, args...))
}

func (e *ErrCode) WithErr(err error) *ErrCode {
	c := e.clone()
	c.err = err
	return c
}

func (e *ErrCode) WithFields(fields map[string]string) *ErrCode {
	c := e.clone()
	c.fields = fields
	return c
}

// KindOf reports the kind of err. Errors that are not an ErrCode are
// internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var c *ErrCode
	if errors.As(err, &c) {
		return c.kind
	}
	return KindInternal
}

// IsStorage reports whether err came from the storage layer rather than
// from the caller's input.
func IsStorage(err error) bool {
	return KindOf(err) == KindStorage
}

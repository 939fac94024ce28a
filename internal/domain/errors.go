package domain

import (
	"errors"
	"fmt"
)

// Kind 领域错误分类，传输层据此映射业务码
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindDuplicate
	KindUnauthorized
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindDuplicate:
		return "duplicate"
	case KindUnauthorized:
		return "unauthorized"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// 供 errors.Is 比较
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrDuplicate    = &Error{Kind: KindDuplicate}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrPersistence  = &Error{Kind: KindPersistence}
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is 同类即相等，errors.Is(err, ErrNotFound) 可用
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(what string) error { return &Error{Kind: KindNotFound, Msg: what + " not found"} }

func Duplicate(msg string) error { return &Error{Kind: KindDuplicate, Msg: msg} }

func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }

func Persistence(msg string, err error) error {
	return &Error{Kind: KindPersistence, Msg: msg, Err: err}
}

// KindOf 非领域错误返回 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

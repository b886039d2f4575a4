package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is reports whether target is the error class this error was wrapped with.
func (e *Error) Is(target error) bool {
	return e.code != nil && e.code == target
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// ErrorCode returns the code of the first *Error in err's chain, or ErrInternalServerError.
func ErrorCode(err error) error {
	var e *Error
	if errors.As(err, &e) && e.code != nil {
		return e.code
	}
	return ErrInternalServerError
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrBadParamInput       = errors.New("given Param is not valid")
)

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func StringToFloat64(str string) (float64, error) {
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}

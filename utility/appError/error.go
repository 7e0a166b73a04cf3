package appError

import (
	"fmt"
	"net/http"
)

// Err carries the HTTP status and machine-readable code a failure maps to,
// alongside the underlying error.
type Err struct {
	ErrCode int    // HTTP status code
	ErrType string // machine-readable error code, see utility/errorcode
	Err     error
	ErrData interface{}
}

func (e Err) Error() string {
	return fmt.Sprintf("%s", e.Err)
}

func (e Err) Unwrap() error {
	return e.Err
}

// New builds an Err with the given status, code and cause.
func New(status int, errType string, err error) Err {
	return Err{ErrCode: status, ErrType: errType, Err: err}
}

// StatusOf returns the HTTP status an error maps to, defaulting to 500.
func StatusOf(err error) int {
	if appErr, ok := err.(Err); ok && appErr.ErrCode != 0 {
		return appErr.ErrCode
	}
	return http.StatusInternalServerError
}

// TypeOf returns the machine-readable code of an error, or fallback.
func TypeOf(err error, fallback string) string {
	if appErr, ok := err.(Err); ok && appErr.ErrType != "" {
		return appErr.ErrType
	}
	return fallback
}

// DataOf returns the extra detail payload attached to an error, if any.
func DataOf(err error) interface{} {
	if appErr, ok := err.(Err); ok {
		return appErr.ErrData
	}
	return nil
}

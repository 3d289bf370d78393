package exceptions

import (
	"errors"
	"fmt"
	"runtime"
	"vetcare-service/internal/pkg/constvars"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	Code          string     `json:"code,omitempty"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithCode attaches a machine readable code that clients can branch on.
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// BuildNewCustomError wraps err with an HTTP status, a client-safe message and a
// developer message. When err already is a CustomError its call-site trail is kept.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)

	var locations []Location
	var prev *CustomError
	if errors.As(err, &prev) {
		locations = append(locations, prev.Locations...)
	}
	locations = append(locations, location)

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     locations,
		Err:           err,
	}
}

// HasCode reports whether any CustomError in err's chain carries code.
func HasCode(err error, code string) bool {
	var customErr *CustomError
	for err != nil {
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Code == code {
			return true
		}
		err = customErr.Err
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 500.
func StatusCode(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return constvars.StatusInternalServerError
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

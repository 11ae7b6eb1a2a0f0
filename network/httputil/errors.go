package httputil

import (
	"fmt"
	"net/http"
)

// DefaultJsonError is the JSON representation of an error response. The
// success flag is always false and the HTTP status code travels out of band
// in the response header rather than the body.
type DefaultJsonError struct {
	Success bool        `json:"success"`
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
	Code    int         `json:"-"`
}

func (e *DefaultJsonError) Error() string {
	return fmt.Sprintf("HTTP request unsuccessful (%d: %s)", e.Code, e.Message)
}

// HandleError writes a plain error message with the given status code.
func HandleError(w http.ResponseWriter, message string, code int) {
	errJson := &DefaultJsonError{
		Message: message,
		Code:    code,
	}
	WriteError(w, errJson)
}

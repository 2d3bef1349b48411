package mderror

import "net/http"

// A Kind classifies an MDError so callers can branch on the failure class
// without string matching.
type Kind string

// All the failure classes of the editing/sync pipeline.
const (
	KindParse                Kind = "parse"
	KindStorage              Kind = "storage"
	KindNetwork              Kind = "network"
	KindEndpointsUnavailable Kind = "endpoints_unavailable"
	KindValidation           Kind = "validation"
)

type (
	// An MDError represents the error format that can be rendered by the markpad server.
	MDError struct {
		HTTPCode   int  `json:"-"`
		Kind       Kind `json:"-"`
		FieldError err  `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if mderr, ok := err.(*MDError); ok && mderr.HTTPCode != 0 {
		return mderr.HTTPCode
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind of the given error, or an empty Kind.
func KindOf(err error) Kind {
	if mderr, ok := err.(*MDError); ok {
		return mderr.Kind
	}
	return ""
}

// New returns a new MDError with the given kind and message.
func New(kind Kind, message string) *MDError {
	return &MDError{Kind: kind, FieldError: err{Message: message}}
}

// NewWithTagCode returns a new MDError with the given code, tag and message.
func NewWithTagCode(kind Kind, code int, tag, message string) *MDError {
	return &MDError{Kind: kind, HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Validation returns a new validation MDError rendered as a 400.
func Validation(message string) *MDError {
	return NewWithTagCode(KindValidation, http.StatusBadRequest, "validation", message)
}

// Error implements error interface.
func (e *MDError) Error() string {
	return e.FieldError.Message
}

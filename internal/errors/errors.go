// Package errors defines the coded error values returned by the inventory
// engine. Callers branch on Code; the engine never formats user text.
package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeDuplicateName    Code = "DUPLICATE_NAME"
	CodeInvalidReference Code = "INVALID_REFERENCE"
	CodeAlreadyInactive  Code = "ALREADY_INACTIVE"
	CodeNoOp             Code = "NO_OP"
	CodeAlreadyExists    Code = "ALREADY_EXISTS"
	CodeCorruptStore     Code = "CORRUPT_STORE"
	CodeStoreNotOpen     Code = "STORE_NOT_OPEN"
	CodeStorageFailure   Code = "STORAGE_FAILURE"
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeReadOnlyField    Code = "READ_ONLY_FIELD"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
)

type Metadata struct {
	HTTPStatus    int
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeNotFound:         {HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found"},
	CodeDuplicateName:    {HTTPStatus: http.StatusConflict, PublicMessage: "name already in use"},
	CodeInvalidReference: {HTTPStatus: http.StatusUnprocessableEntity, PublicMessage: "referenced entity does not exist"},
	CodeAlreadyInactive:  {HTTPStatus: http.StatusConflict, PublicMessage: "item is already inactive"},
	CodeNoOp:             {HTTPStatus: http.StatusOK, PublicMessage: "value unchanged"},
	CodeAlreadyExists:    {HTTPStatus: http.StatusConflict, PublicMessage: "store already exists"},
	CodeCorruptStore:     {HTTPStatus: http.StatusInternalServerError, PublicMessage: "store cannot be read"},
	CodeStoreNotOpen:     {HTTPStatus: http.StatusServiceUnavailable, PublicMessage: "store is not open"},
	CodeStorageFailure:   {HTTPStatus: http.StatusInternalServerError, PublicMessage: "storage failure"},
	CodeValidation:       {HTTPStatus: http.StatusBadRequest, PublicMessage: "validation failed"},
	CodeReadOnlyField:    {HTTPStatus: http.StatusUnprocessableEntity, PublicMessage: "field cannot be changed"},
	CodeUnauthorized:     {HTTPStatus: http.StatusUnauthorized, PublicMessage: "authentication required"},
	CodeForbidden:        {HTTPStatus: http.StatusForbidden, PublicMessage: "insufficient permissions"},
}

// MetadataFor returns the HTTP mapping for code. Unknown codes map to a
// storage failure.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeStorageFailure]
}

type Error struct {
	code    Code
	message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeStorageFailure
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the first coded error in err's chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// IsNoOp reports whether err only signals an unchanged value. Callers may
// treat it as success.
func IsNoOp(err error) bool {
	return Is(err, CodeNoOp)
}

// CodeOf returns the code carried by err. Errors without a code are storage
// failures.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.code
	}
	return CodeStorageFailure
}

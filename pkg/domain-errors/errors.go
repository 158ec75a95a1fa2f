package domainerrors

import "errors"

// Code clasifica los errores de dominio para que la capa HTTP
// pueda mapearlos a un status sin conocer cada operación.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf devuelve el código del error, o "" si no es un error de dominio.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

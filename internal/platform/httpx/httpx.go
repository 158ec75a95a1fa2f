package httpx

import (
	"encoding/json"
	"net/http"

	domainerrors "adoption-platform/pkg/domain-errors"
)

// Envelope es la forma uniforme de toda respuesta de la API:
// {success, message?, count?, token?, user?, data?}
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// List incluye count siempre, incluso en 0.
func List(w http.ResponseWriter, count int, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: true, Message: msg})
}

// Session es la respuesta de register/login: token + usuario público.
func Session(w http.ResponseWriter, status int, token string, user any) {
	JSON(w, status, Envelope{Success: true, Token: token, User: user})
}

// Fail mapea un error de dominio a su status HTTP y escribe el envelope
// {success:false, message}. Errores no clasificados => 500 genérico.
// Devuelve el status escrito para que el caller pueda decidir si loguear.
func Fail(w http.ResponseWriter, err error) int {
	status := http.StatusInternalServerError
	msg := "Error interno del servidor"

	switch domainerrors.CodeOf(err) {
	case domainerrors.CodeValidation:
		status, msg = http.StatusBadRequest, err.Error()
	case domainerrors.CodeInvalidCredentials:
		status, msg = http.StatusUnauthorized, err.Error()
	case domainerrors.CodeUnauthorized:
		status, msg = http.StatusUnauthorized, err.Error()
	case domainerrors.CodeForbidden:
		status, msg = http.StatusForbidden, err.Error()
	case domainerrors.CodeNotFound:
		status, msg = http.StatusNotFound, err.Error()
	case domainerrors.CodeConflict:
		status, msg = http.StatusConflict, err.Error()
	}

	JSON(w, status, Envelope{Success: false, Message: msg})
	return status
}

package restclient

import (
	"errors"
	"net/http"
)

const (
	connectionMessage = "No se pudo conectar con el servidor. Verifica tu conexión e intenta nuevamente."
	timeoutMessage    = "La solicitud tardó demasiado en responder. Por favor, intenta más tarde."
	defaultMessage    = "Ha ocurrido un error desconocido"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is the normalized failure of an API call. Message is safe to show
// to users; Status is 0 when no response was received.
type Error struct {
	Status   int
	Message  string
	Timeout  bool
	Canceled bool
	err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// Message returns the user-facing text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return defaultMessage
}

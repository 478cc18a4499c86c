package models

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError names the offending field; it matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	phonePattern   = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)
	commentsPolicy = bluemonday.UGCPolicy()
)

// ContactInput is the payload of the public contact form. The JSON keys
// are the ones the site has always posted.
type ContactInput struct {
	ContactName string `json:"nombreContacto"`
	CompanyName string `json:"nombreEmpresa"`
	Email       string `json:"emailContacto"`
	Phone       string `json:"telefonoContacto"`
	Comments    string `json:"comentarios"`
}

// Validate trims the input and returns the first invalid field.
func (in ContactInput) Validate() (ContactInput, error) {
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Comments = sanitizeComments(in.Comments)

	if utf8.RuneCountInString(in.ContactName) < 2 {
		return in, &ValidationError{Field: "nombreContacto", Message: "El nombre debe tener al menos 2 caracteres"}
	}
	if utf8.RuneCountInString(in.CompanyName) < 2 {
		return in, &ValidationError{Field: "nombreEmpresa", Message: "El nombre de la empresa debe tener al menos 2 caracteres"}
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return in, &ValidationError{Field: "emailContacto", Message: "Ingresa un correo electrónico válido"}
	}
	if !phonePattern.MatchString(in.Phone) {
		return in, &ValidationError{Field: "telefonoContacto", Message: "Ingresa un número de teléfono válido"}
	}
	return in, nil
}

// sanitizeComments strips unsafe markup and keeps line breaks visible in the
// HTML email.
func sanitizeComments(raw string) string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if raw == "" {
		return ""
	}
	clean := commentsPolicy.Sanitize(raw)
	return strings.ReplaceAll(clean, "\n", "<br>")
}

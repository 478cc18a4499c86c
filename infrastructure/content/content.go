// Package content owns the projects, project details, company values and
// contact messages persisted in SQLite. Every mutation records an audit row
// in the same transaction.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeslabs/infrastructure/audit"
	"codeslabs/infrastructure/sqlite"
	"codeslabs/models"
)

const (
	DefaultIconName = "sparkles"

	maxTitleLength    = 255
	maxCategoryLength = 100
)

var ErrNotFound = errors.New("not found")

var ErrValidation = models.ErrValidation

type ValidationError = models.ValidationError

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Store is the content repository.
type Store struct {
	db    *sqlite.DB
	audit *audit.Service
	now   func() time.Time
	newID func() string
}

func NewStore(db *sqlite.DB, auditSvc *audit.Service) *Store {
	return &Store{
		db:    db,
		audit: auditSvc,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

// DB exposes the underlying handles for health checks and tests.
func (s *Store) DB() *sqlite.DB {
	return s.db
}

func requireText(field, label, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "El campo %s es obligatorio", label)
	}
	if max > 0 && len([]rune(value)) > max {
		return "", invalid(field, "El campo %s no puede superar %d caracteres", label, max)
	}
	return value, nil
}

func requireOrder(order int) error {
	if order < 0 {
		return invalid("displayOrder", "El orden debe ser mayor o igual a 0")
	}
	return nil
}

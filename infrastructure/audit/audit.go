package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"codeslabs/models"
)

// Entry describes one admin mutation.
type Entry struct {
	Action     string
	EntityType string
	EntityID   string
	ProjectID  string
	Before     any
	After      any
}

// Service writes audit records inside the caller transaction.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Write(ctx context.Context, tx bun.Tx, e Entry) error {
	if s == nil {
		return nil
	}
	beforeJSON, err := marshal(e.Before)
	if err != nil {
		return fmt.Errorf("marshal audit before: %w", err)
	}
	afterJSON, err := marshal(e.After)
	if err != nil {
		return fmt.Errorf("marshal audit after: %w", err)
	}
	log := &models.AuditLog{
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		ProjectID:  e.ProjectID,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
		CreatedAt:  s.now(),
	}
	_, err = tx.NewInsert().Model(log).Exec(ctx)
	return err
}

// ListByProject returns the audit rows of a project, newest first.
func ListByProject(ctx context.Context, tx bun.Tx, projectID string) ([]models.AuditLog, error) {
	rows := make([]models.AuditLog, 0)
	err := tx.NewSelect().
		Model(&rows).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx)
	return rows, err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"codeslabs/infrastructure/audit"
	"codeslabs/models"
)

// DetailInput carries the writable fields of a project detail.
type DetailInput struct {
	ProjectDetail string `json:"projectDetail"`
	DisplayOrder  *int   `json:"displayOrder"`
	IsActive      *bool  `json:"isActive"`
}

func (in DetailInput) normalize(defaultOrder int) (DetailInput, error) {
	if strings.TrimSpace(in.ProjectDetail) == "" {
		return in, invalid("projectDetail", "El detalle es obligatorio")
	}
	in.ProjectDetail = strings.TrimRight(in.ProjectDetail, " \t\r\n")
	if in.DisplayOrder == nil {
		in.DisplayOrder = &defaultOrder
	}
	if err := requireOrder(*in.DisplayOrder); err != nil {
		return in, err
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	return in, nil
}

// ListDetails returns the details of a project ordered by display order.
func (s *Store) ListDetails(ctx context.Context, projectID string) ([]models.ProjectDetail, error) {
	details := make([]models.ProjectDetail, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := ensureProjectExists(ctx, tx, projectID); err != nil {
			return err
		}
		return tx.NewSelect().
			Model(&details).
			Where("pd.project_id = ?", projectID).
			OrderExpr("pd.display_order ASC, pd.created_at ASC, pd.id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	return details, nil
}

// CreateDetail appends a detail; a missing display order defaults to the
// number of existing details.
func (s *Store) CreateDetail(ctx context.Context, projectID string, in DetailInput) (models.ProjectDetail, error) {
	var d models.ProjectDetail
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := ensureProjectExists(ctx, tx, projectID); err != nil {
			return err
		}
		count, err := tx.NewSelect().Model((*models.ProjectDetail)(nil)).Where("project_id = ?", projectID).Count(ctx)
		if err != nil {
			return err
		}
		in, err := in.normalize(count)
		if err != nil {
			return err
		}
		now := s.now()
		d = models.ProjectDetail{
			ID:            s.newID(),
			ProjectID:     projectID,
			ProjectDetail: in.ProjectDetail,
			DisplayOrder:  *in.DisplayOrder,
			IsActive:      *in.IsActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := tx.NewInsert().Model(&d).Exec(ctx); err != nil {
			return err
		}
		if err := touchProject(ctx, tx, projectID, now); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "detail.create",
			EntityType: "project_details",
			EntityID:   d.ID,
			ProjectID:  projectID,
			After:      d,
		})
	})
	if err != nil {
		return models.ProjectDetail{}, fmt.Errorf("create detail: %w", err)
	}
	return d, nil
}

func (s *Store) UpdateDetail(ctx context.Context, id string, in DetailInput) (models.ProjectDetail, error) {
	var updated models.ProjectDetail
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadDetail(ctx, tx, id)
		if err != nil {
			return err
		}
		in, err := in.normalize(before.DisplayOrder)
		if err != nil {
			return err
		}
		updated = before
		updated.ProjectDetail = in.ProjectDetail
		updated.DisplayOrder = *in.DisplayOrder
		updated.IsActive = *in.IsActive
		updated.UpdatedAt = s.now()
		if _, err := tx.NewUpdate().Model(&updated).ExcludeColumn("created_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		if err := touchProject(ctx, tx, updated.ProjectID, updated.UpdatedAt); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "detail.update",
			EntityType: "project_details",
			EntityID:   updated.ID,
			ProjectID:  updated.ProjectID,
			Before:     before,
			After:      updated,
		})
	})
	if err != nil {
		return models.ProjectDetail{}, fmt.Errorf("update detail: %w", err)
	}
	return updated, nil
}

func (s *Store) DeleteDetail(ctx context.Context, id string) error {
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadDetail(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.ProjectDetail)(nil)).Where("id = ?", before.ID).Exec(ctx); err != nil {
			return err
		}
		if err := touchProject(ctx, tx, before.ProjectID, s.now()); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "detail.delete",
			EntityType: "project_details",
			EntityID:   before.ID,
			ProjectID:  before.ProjectID,
			Before:     before,
		})
	})
	if err != nil {
		return fmt.Errorf("delete detail: %w", err)
	}
	return nil
}

func loadDetail(ctx context.Context, tx bun.Tx, id string) (models.ProjectDetail, error) {
	var d models.ProjectDetail
	err := tx.NewSelect().Model(&d).Where("pd.id = ?", strings.TrimSpace(id)).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return d, fmt.Errorf("detail %s: %w", id, ErrNotFound)
	}
	return d, err
}

func ensureProjectExists(ctx context.Context, tx bun.Tx, projectID string) error {
	exists, err := tx.NewSelect().Model((*models.Project)(nil)).Where("id = ?", projectID).Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return nil
}

func touchProject(ctx context.Context, tx bun.Tx, projectID string, at time.Time) error {
	_, err := tx.NewUpdate().
		Model((*models.Project)(nil)).
		Set("updated_at = ?", at).
		Where("id = ?", projectID).
		Exec(ctx)
	return err
}

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"codeslabs/infrastructure/audit"
	"codeslabs/models"
)

// CompanyValueInput carries the writable fields of a company value.
type CompanyValueInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	IconName     string `json:"iconName"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

func (in CompanyValueInput) normalize() (CompanyValueInput, error) {
	var err error
	if in.Title, err = requireText("title", "título", in.Title, maxTitleLength); err != nil {
		return in, err
	}
	if in.Description, err = requireText("description", "descripción", in.Description, 0); err != nil {
		return in, err
	}
	if err := requireOrder(in.DisplayOrder); err != nil {
		return in, err
	}
	in.IconName = strings.TrimSpace(in.IconName)
	if in.IconName == "" {
		in.IconName = DefaultIconName
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	return in, nil
}

func (s *Store) ListCompanyValues(ctx context.Context) ([]models.CompanyValue, error) {
	values := make([]models.CompanyValue, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&values).
			OrderExpr("cv.display_order ASC, cv.title ASC, cv.id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list company values: %w", err)
	}
	return values, nil
}

func (s *Store) GetCompanyValue(ctx context.Context, id string) (models.CompanyValue, error) {
	var v models.CompanyValue
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		v, err = loadCompanyValue(ctx, tx, id)
		return err
	})
	return v, err
}

func (s *Store) CreateCompanyValue(ctx context.Context, in CompanyValueInput) (models.CompanyValue, error) {
	in, err := in.normalize()
	if err != nil {
		return models.CompanyValue{}, err
	}
	now := s.now()
	v := models.CompanyValue{
		ID:           s.newID(),
		Title:        in.Title,
		Description:  in.Description,
		IconName:     in.IconName,
		DisplayOrder: in.DisplayOrder,
		IsActive:     *in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&v).Exec(ctx); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "company_value.create",
			EntityType: "company_values",
			EntityID:   v.ID,
			After:      v,
		})
	})
	if err != nil {
		return models.CompanyValue{}, fmt.Errorf("create company value: %w", err)
	}
	return v, nil
}

func (s *Store) UpdateCompanyValue(ctx context.Context, id string, in CompanyValueInput) (models.CompanyValue, error) {
	in, err := in.normalize()
	if err != nil {
		return models.CompanyValue{}, err
	}
	var updated models.CompanyValue
	err = s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadCompanyValue(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = before
		updated.Title = in.Title
		updated.Description = in.Description
		updated.IconName = in.IconName
		updated.DisplayOrder = in.DisplayOrder
		updated.IsActive = *in.IsActive
		updated.UpdatedAt = s.now()
		if _, err := tx.NewUpdate().Model(&updated).ExcludeColumn("created_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "company_value.update",
			EntityType: "company_values",
			EntityID:   updated.ID,
			Before:     before,
			After:      updated,
		})
	})
	if err != nil {
		return models.CompanyValue{}, fmt.Errorf("update company value: %w", err)
	}
	return updated, nil
}

func (s *Store) DeleteCompanyValue(ctx context.Context, id string) error {
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadCompanyValue(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.CompanyValue)(nil)).Where("id = ?", before.ID).Exec(ctx); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "company_value.delete",
			EntityType: "company_values",
			EntityID:   before.ID,
			Before:     before,
		})
	})
	if err != nil {
		return fmt.Errorf("delete company value: %w", err)
	}
	return nil
}

func loadCompanyValue(ctx context.Context, tx bun.Tx, id string) (models.CompanyValue, error) {
	var v models.CompanyValue
	err := tx.NewSelect().Model(&v).Where("cv.id = ?", strings.TrimSpace(id)).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return v, fmt.Errorf("company value %s: %w", id, ErrNotFound)
	}
	return v, err
}

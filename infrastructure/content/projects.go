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

// ProjectInput carries the writable fields of a project.
type ProjectInput struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	IconName      string            `json:"iconName"`
	Stats         map[string]string `json:"stats"`
	Technologies  []string          `json:"technologies"`
	WhatIs        string            `json:"whatIs"`
	ForWho        string            `json:"forWho"`
	ProblemSolved string            `json:"problemSolved"`
	Result        string            `json:"result"`
	IsActive      *bool             `json:"isActive"`
	DisplayOrder  int               `json:"displayOrder"`
}

// Normalize trims the input and applies defaults, returning the first
// validation failure.
func (in ProjectInput) Normalize() (ProjectInput, error) {
	var err error
	if in.Title, err = requireText("title", "título", in.Title, maxTitleLength); err != nil {
		return in, err
	}
	if in.Description, err = requireText("description", "descripción", in.Description, 0); err != nil {
		return in, err
	}
	if in.Category, err = requireText("category", "categoría", in.Category, maxCategoryLength); err != nil {
		return in, err
	}
	if err := requireOrder(in.DisplayOrder); err != nil {
		return in, err
	}
	in.IconName = strings.TrimSpace(in.IconName)
	if in.IconName == "" {
		in.IconName = DefaultIconName
	}
	in.Stats = cleanStats(in.Stats)
	in.Technologies = cleanList(in.Technologies)
	in.WhatIs = strings.TrimSpace(in.WhatIs)
	in.ForWho = strings.TrimSpace(in.ForWho)
	in.ProblemSolved = strings.TrimSpace(in.ProblemSolved)
	in.Result = strings.TrimSpace(in.Result)
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	return in, nil
}

func cleanStats(stats map[string]string) map[string]string {
	out := make(map[string]string, len(stats))
	for k, v := range stats {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ListProjects returns every project ordered by display order, without details.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&projects).
			OrderExpr("p.display_order ASC, p.title ASC, p.id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for i := range projects {
		fillProjectDefaults(&projects[i])
	}
	return projects, nil
}

// GetProject loads a project with its details ordered by display order.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		p, err = loadProject(ctx, tx, id)
		return err
	})
	return p, err
}

func loadProject(ctx context.Context, tx bun.Tx, id string) (models.Project, error) {
	var p models.Project
	err := tx.NewSelect().
		Model(&p).
		Relation("Details", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("pd.display_order ASC, pd.created_at ASC, pd.id ASC")
		}).
		Where("p.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("load project %s: %w", id, err)
	}
	fillProjectDefaults(&p)
	return p, nil
}

func (s *Store) CreateProject(ctx context.Context, in ProjectInput) (models.Project, error) {
	in, err := in.Normalize()
	if err != nil {
		return models.Project{}, err
	}

	now := s.now()
	p := models.Project{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProjectInput(&p, in)

	err = s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&p).Exec(ctx); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "project.create",
			EntityType: "projects",
			EntityID:   p.ID,
			ProjectID:  p.ID,
			After:      p,
		})
	})
	if err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	fillProjectDefaults(&p)
	return p, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, in ProjectInput) (models.Project, error) {
	in, err := in.Normalize()
	if err != nil {
		return models.Project{}, err
	}

	var updated models.Project
	err = s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadProject(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = before
		applyProjectInput(&updated, in)
		updated.UpdatedAt = s.now()
		if _, err := tx.NewUpdate().Model(&updated).ExcludeColumn("created_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "project.update",
			EntityType: "projects",
			EntityID:   updated.ID,
			ProjectID:  updated.ID,
			Before:     projectWithoutDetails(before),
			After:      projectWithoutDetails(updated),
		})
	})
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

// DeleteProject removes a project; its details go with it (ON DELETE CASCADE).
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Project)(nil)).Where("id = ?", before.ID).Exec(ctx); err != nil {
			return err
		}
		return s.audit.Write(ctx, tx, audit.Entry{
			Action:     "project.delete",
			EntityType: "projects",
			EntityID:   before.ID,
			ProjectID:  before.ID,
			Before:     projectWithoutDetails(before),
		})
	})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func applyProjectInput(p *models.Project, in ProjectInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.Category = in.Category
	p.IconName = in.IconName
	p.Stats = in.Stats
	p.Technologies = in.Technologies
	p.WhatIs = in.WhatIs
	p.ForWho = in.ForWho
	p.ProblemSolved = in.ProblemSolved
	p.Result = in.Result
	p.IsActive = *in.IsActive
	p.DisplayOrder = in.DisplayOrder
}

func projectWithoutDetails(p models.Project) models.Project {
	p.Details = nil
	return p
}

func fillProjectDefaults(p *models.Project) {
	if p.Stats == nil {
		p.Stats = map[string]string{}
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Details == nil {
		p.Details = []models.ProjectDetail{}
	}
}

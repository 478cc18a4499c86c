package activity

import (
	"context"

	"codeslabs/models"
)

type ProjectGetter interface {
	GetProject(ctx context.Context, id string) (models.Project, error)
}

type ActivityPageData struct {
	ProjectID    string
	ProjectTitle string
	Rows         []ActivityRow
}

type ActivityRow struct {
	CreatedAt  string
	Action     string
	Label      string
	EntityType string
	EntityID   string
	BeforeJSON string
	AfterJSON  string
}

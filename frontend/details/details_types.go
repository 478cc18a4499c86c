package details

import (
	"context"

	"codeslabs/infrastructure/content"
	"codeslabs/models"
)

// DetailsAPI is the part of the content API the details manager uses.
type DetailsAPI interface {
	GetProject(ctx context.Context, id string) (models.Project, error)
	ListProjectDetails(ctx context.Context, projectID string) ([]models.ProjectDetail, error)
	CreateProjectDetail(ctx context.Context, projectID string, in content.DetailInput) (models.ProjectDetail, error)
	UpdateProjectDetail(ctx context.Context, id string, in content.DetailInput) (models.ProjectDetail, error)
	DeleteProjectDetail(ctx context.Context, id string) error
}

type DetailsPageData struct {
	ProjectID    string
	ProjectTitle string
	Rows         []DetailRow
	NextOrder    int
}

type DetailRow struct {
	ID           string
	Body         string
	PreviewHTML  string
	Category     string
	DisplayOrder int
	IsActive     bool
}

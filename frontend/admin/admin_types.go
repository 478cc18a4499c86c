package admin

import (
	"context"

	"codeslabs/models"
)

// ProjectsAPI is the slice of the content API the project list needs.
type ProjectsAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

type ProjectRow struct {
	ID           string
	Title        string
	Category     string
	Technologies []string
	IsActive     bool
	DisplayOrder int
}

type PageData struct {
	Search     string
	Category   string
	Categories []string
	Rows       []ProjectRow
	Pagination Pagination
	LoadError  string
}

package dashboard

import (
	"context"

	"codeslabs/models"
)

// ContentAPI is the read side of the content API used by the home page.
type ContentAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListCompanyValues(ctx context.Context) ([]models.CompanyValue, error)
}

type ProjectCard struct {
	ID           string
	Title        string
	Description  string
	Category     string
	IconName     string
	Stats        []StatChip
	Technologies []string
}

type StatChip struct {
	Label string
	Value string
}

type DashboardPageData struct {
	Projects  []ProjectCard
	Values    []models.CompanyValue
	LoadError string
}

package projectform

import (
	"context"

	"codeslabs/infrastructure/content"
	"codeslabs/models"
)

// ProjectsAPI is the part of the content API the project form writes to.
type ProjectsAPI interface {
	GetProject(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, in content.ProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id string, in content.ProjectInput) (models.Project, error)
}

// FormData mirrors the HTML form; list and map fields travel as text.
type FormData struct {
	ID            string
	Title         string
	Description   string
	Category      string
	IconName      string
	StatsText     string
	TechText      string
	WhatIs        string
	ForWho        string
	ProblemSolved string
	Result        string
	DisplayOrder  string
	IsActive      bool
}

func (f FormData) IsEdit() bool {
	return f.ID != ""
}

func (f FormData) Action() string {
	if f.IsEdit() {
		return "/admin/projects/" + f.ID
	}
	return "/admin/projects"
}

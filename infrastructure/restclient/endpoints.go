package restclient

import (
	"context"
	"net/http"
	"net/url"

	"codeslabs/infrastructure/content"
	"codeslabs/models"
)

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	_, err := c.do(ctx, http.MethodGet, "/projects", nil, &out, true)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	var out models.Project
	_, err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in content.ProjectInput) (models.Project, error) {
	var out models.Project
	_, err := c.do(ctx, http.MethodPost, "/projects", in, &out, false)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, in content.ProjectInput) (models.Project, error) {
	var out models.Project
	_, err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), in, &out, false)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil, false)
	return err
}

func (c *Client) ListProjectDetails(ctx context.Context, projectID string) ([]models.ProjectDetail, error) {
	var out []models.ProjectDetail
	_, err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(projectID)+"/details", nil, &out, true)
	return out, err
}

func (c *Client) CreateProjectDetail(ctx context.Context, projectID string, in content.DetailInput) (models.ProjectDetail, error) {
	var out models.ProjectDetail
	_, err := c.do(ctx, http.MethodPost, "/projects/"+url.PathEscape(projectID)+"/details", in, &out, false)
	return out, err
}

func (c *Client) UpdateProjectDetail(ctx context.Context, id string, in content.DetailInput) (models.ProjectDetail, error) {
	var out models.ProjectDetail
	_, err := c.do(ctx, http.MethodPut, "/projects/details/"+url.PathEscape(id), in, &out, false)
	return out, err
}

func (c *Client) DeleteProjectDetail(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/projects/details/"+url.PathEscape(id), nil, nil, false)
	return err
}

func (c *Client) ListCompanyValues(ctx context.Context) ([]models.CompanyValue, error) {
	var out []models.CompanyValue
	_, err := c.do(ctx, http.MethodGet, "/company-values", nil, &out, true)
	return out, err
}

func (c *Client) GetCompanyValue(ctx context.Context, id string) (models.CompanyValue, error) {
	var out models.CompanyValue
	_, err := c.do(ctx, http.MethodGet, "/company-values/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

// SendContact posts the contact form and returns the confirmation message.
func (c *Client) SendContact(ctx context.Context, in models.ContactInput) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/contact/send", in, nil, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"codeslabs/infrastructure/restclient"
	"codeslabs/models"
)

// LoadDashboardPageData fetches projects and company values concurrently.
// A failure to load projects is reported in LoadError; company values are
// optional and a failure only hides their section.
func LoadDashboardPageData(ctx context.Context, api ContentAPI) DashboardPageData {
	var (
		g        errgroup.Group
		projects []models.Project
		values   []models.CompanyValue
	)
	g.Go(func() error {
		var err error
		projects, err = api.ListProjects(ctx)
		if err != nil {
			projects = nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		values, err = api.ListCompanyValues(ctx)
		if err != nil {
			slog.Warn("load company values failed", slog.Any("err", err))
			values = nil
		}
		return nil
	})

	var data DashboardPageData
	if err := g.Wait(); err != nil {
		slog.Error("load projects failed", slog.Any("err", err))
		data.LoadError = restclient.Message(err)
	}
	data.Projects = projectCards(projects)
	data.Values = activeValues(values)
	return data
}

func projectCards(projects []models.Project) []ProjectCard {
	active := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DisplayOrder < active[j].DisplayOrder
	})
	cards := make([]ProjectCard, 0, len(active))
	for _, p := range active {
		cards = append(cards, ProjectCard{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Category:     p.Category,
			IconName:     p.IconName,
			Stats:        statChips(p.Stats),
			Technologies: p.Technologies,
		})
	}
	return cards
}

func statChips(stats map[string]string) []StatChip {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	chips := make([]StatChip, 0, len(keys))
	for _, k := range keys {
		chips = append(chips, StatChip{Label: strings.ReplaceAll(k, "_", " "), Value: stats[k]})
	}
	return chips
}

func activeValues(values []models.CompanyValue) []models.CompanyValue {
	out := make([]models.CompanyValue, 0, len(values))
	for _, v := range values {
		if v.IsActive {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

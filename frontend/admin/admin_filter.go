package admin

import (
	"strings"

	"golang.org/x/text/cases"

	"codeslabs/models"
)

const (
	DefaultPageSize = 10
	pageWindow      = 5
)

// FilterProjects keeps projects whose title, description, category or any
// technology contains search (case-insensitive) and whose category equals
// category. Empty arguments do not filter. Input order is preserved.
func FilterProjects(projects []models.Project, search, category string) []models.Project {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if category != "" && p.Category != category {
			continue
		}
		if needle != "" && !matches(fold, p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(fold cases.Caser, p models.Project, needle string) bool {
	for _, field := range []string{p.Title, p.Description, p.Category} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	for _, tech := range p.Technologies {
		if strings.Contains(fold.String(tech), needle) {
			return true
		}
	}
	return false
}

// Categories lists the distinct non-empty categories in first-seen order.
func Categories(projects []models.Project) []string {
	seen := make(map[string]struct{}, len(projects))
	out := make([]string, 0)
	for _, p := range projects {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Pagination describes one page of a filtered list. Start and End are
// slice bounds; StartIndex and EndIndex are the 1-based positions shown to
// the user ("Mostrando 11 a 20 de 42").
type Pagination struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	Start      int
	End        int
	StartIndex int
	EndIndex   int
	Pages      []int
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Paginate clamps page into range and computes the slice bounds and the
// window of at most five page numbers around it.
func Paginate(total, page, pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + pageSize - 1) / pageSize
	page = min(max(page, 1), max(totalPages, 1))

	p := Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Start:      min((page-1)*pageSize, total),
		End:        min(page*pageSize, total),
	}
	if total > 0 {
		p.StartIndex = p.Start + 1
		p.EndIndex = p.End
	}
	p.Pages = pageNumbers(page, totalPages)
	return p
}

func pageNumbers(current, totalPages int) []int {
	pages := make([]int, 0, pageWindow)
	if totalPages == 0 {
		return pages
	}
	start := max(1, current-pageWindow/2)
	end := min(totalPages, start+pageWindow-1)
	if end-start < pageWindow-1 {
		start = max(1, end-pageWindow+1)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// PageOf returns the projects of the page described by p.
func PageOf(projects []models.Project, p Pagination) []models.Project {
	if p.Start >= len(projects) {
		return nil
	}
	return projects[p.Start:min(p.End, len(projects))]
}

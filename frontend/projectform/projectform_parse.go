package projectform

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"codeslabs/infrastructure/content"
	"codeslabs/models"
)

// ParseStats reads one "key:value" pair per line. Blank lines are skipped;
// the value is everything after the first colon.
func ParseStats(text string) (map[string]string, error) {
	stats := make(map[string]string)
	for i, line := range splitLines(text) {
		key, value, ok := strings.Cut(line, ":")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, &content.ValidationError{
				Field:   "stats",
				Message: "La estadística de la línea " + strconv.Itoa(i+1) + " debe tener el formato clave:valor",
			}
		}
		stats[key] = value
	}
	return stats, nil
}

// FormatStats writes stats back as sorted "key: value" lines.
func FormatStats(stats map[string]string) string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+stats[k])
	}
	return strings.Join(lines, "\n")
}

// ParseTechnologies reads one technology per line.
func ParseTechnologies(text string) []string {
	return splitLines(text)
}

func splitLines(text string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func formFromRequest(r *http.Request) FormData {
	return FormData{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Category:      r.FormValue("category"),
		IconName:      r.FormValue("iconName"),
		StatsText:     r.FormValue("stats"),
		TechText:      r.FormValue("technologies"),
		WhatIs:        r.FormValue("whatIs"),
		ForWho:        r.FormValue("forWho"),
		ProblemSolved: r.FormValue("problemSolved"),
		Result:        r.FormValue("result"),
		DisplayOrder:  r.FormValue("displayOrder"),
		IsActive:      r.FormValue("isActive") != "",
	}
}

func formFromProject(p models.Project) FormData {
	return FormData{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.Category,
		IconName:      p.IconName,
		StatsText:     FormatStats(p.Stats),
		TechText:      strings.Join(p.Technologies, "\n"),
		WhatIs:        p.WhatIs,
		ForWho:        p.ForWho,
		ProblemSolved: p.ProblemSolved,
		Result:        p.Result,
		DisplayOrder:  strconv.Itoa(p.DisplayOrder),
		IsActive:      p.IsActive,
	}
}

// Input converts the form into a normalized ProjectInput.
func (f FormData) Input() (content.ProjectInput, error) {
	order := 0
	if s := strings.TrimSpace(f.DisplayOrder); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return content.ProjectInput{}, &content.ValidationError{Field: "displayOrder", Message: "El orden debe ser un número entero"}
		}
		order = n
	}
	stats, err := ParseStats(f.StatsText)
	if err != nil {
		return content.ProjectInput{}, err
	}
	active := f.IsActive
	in := content.ProjectInput{
		Title:         f.Title,
		Description:   f.Description,
		Category:      f.Category,
		IconName:      f.IconName,
		Stats:         stats,
		Technologies:  ParseTechnologies(f.TechText),
		WhatIs:        f.WhatIs,
		ForWho:        f.ForWho,
		ProblemSolved: f.ProblemSolved,
		Result:        f.Result,
		IsActive:      &active,
		DisplayOrder:  order,
	}
	return in.Normalize()
}

package admin

import (
	"encoding/csv"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"codeslabs/infrastructure/restclient"
	"codeslabs/models"
)

var csvHeader = []string{"id", "title", "category", "description", "icon_name", "technologies", "stats", "is_active", "display_order", "created_at", "updated_at"}

// ProjectsCSVHandler downloads every project, honouring the q and
// category filters of the list page.
func ProjectsCSVHandler(api ProjectsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := api.ListProjects(r.Context())
		if err != nil {
			slog.Error("export projects failed", slog.Any("err", err))
			http.Error(w, restclient.Message(err), http.StatusBadGateway)
			return
		}
		query := r.URL.Query()
		projects = FilterProjects(projects, query.Get("q"), strings.TrimSpace(query.Get("category")))

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=proyectos.csv")
		if err := writeProjectsCSV(w, projects); err != nil {
			slog.Error("write projects csv failed", slog.Any("err", err))
		}
	}
}

func writeProjectsCSV(w io.Writer, projects []models.Project) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range projects {
		record := []string{
			p.ID,
			csvCell(p.Title),
			csvCell(p.Category),
			csvCell(p.Description),
			csvCell(p.IconName),
			csvCell(strings.Join(p.Technologies, "; ")),
			csvCell(formatStats(p.Stats)),
			strconv.FormatBool(p.IsActive),
			strconv.Itoa(p.DisplayOrder),
			formatTime(p.CreatedAt),
			formatTime(p.UpdatedAt),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}

// csvCell quotes text that a spreadsheet would evaluate as a formula.
func csvCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func formatStats(stats map[string]string) string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+stats[k])
	}
	return strings.Join(parts, "; ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

package projectdetail

import (
	"sort"
	"strings"

	"codeslabs/frontend/shared/richtext"
	"codeslabs/models"
)

// BuildPageData prepares a project for the public page: stats labels, the
// narrative paragraphs and the active details grouped by category.
func BuildPageData(p models.Project) PageData {
	data := PageData{Project: p, Stats: StatRows(p.Stats)}
	for _, n := range []Stat{
		{Label: "¿Qué es?", Value: p.WhatIs},
		{Label: "¿Para quién?", Value: p.ForWho},
		{Label: "Problema que resuelve", Value: p.ProblemSolved},
		{Label: "Resultado", Value: p.Result},
	} {
		if strings.TrimSpace(n.Value) != "" {
			data.Narrative = append(data.Narrative, n)
		}
	}
	data.Sections = Sections(ActiveBlocks(p.Details))
	return data
}

// StatRows turns stats into display rows sorted by key, with underscores
// in keys shown as spaces.
func StatRows(stats map[string]string) []Stat {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([]Stat, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Stat{Label: StatLabel(k), Value: stats[k]})
	}
	return rows
}

func StatLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// ActiveBlocks returns the bodies of active details in display order.
func ActiveBlocks(details []models.ProjectDetail) []string {
	active := make([]models.ProjectDetail, 0, len(details))
	for _, d := range details {
		if d.IsActive {
			active = append(active, d)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DisplayOrder < active[j].DisplayOrder
	})
	blocks := make([]string, 0, len(active))
	for _, d := range active {
		blocks = append(blocks, d.ProjectDetail)
	}
	return blocks
}

// Sections classifies blocks and renders each one. Empty groups are dropped.
func Sections(blocks []string) []Section {
	b := richtext.Classify(blocks)
	groups := []struct {
		title  string
		blocks []string
	}{
		{"Características", b.Features},
		{"Tecnologías", b.Technology},
		{"Seguridad", b.Security},
		{"Beneficios", b.Benefits},
		{"Más información", b.Other},
	}
	out := make([]Section, 0, len(groups))
	for _, g := range groups {
		if len(g.blocks) == 0 {
			continue
		}
		s := Section{Title: g.title, Raw: g.blocks}
		for _, block := range g.blocks {
			s.Blocks = append(s.Blocks, richtext.Render(block))
		}
		out = append(out, s)
	}
	return out
}

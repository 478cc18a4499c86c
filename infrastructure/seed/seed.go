// Package seed loads the initial site content from a YAML file into the
// content store.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"codeslabs/infrastructure/content"
)

// File is the layout of content/seed.yaml.
type File struct {
	Projects []Project `yaml:"projects"`
	Values   []Value   `yaml:"values"`
}

type Project struct {
	Title         string            `yaml:"title"`
	Description   string            `yaml:"description"`
	Category      string            `yaml:"category"`
	IconName      string            `yaml:"icon_name"`
	Stats         map[string]string `yaml:"stats"`
	Technologies  []string          `yaml:"technologies"`
	WhatIs        string            `yaml:"what_is"`
	ForWho        string            `yaml:"for_who"`
	ProblemSolved string            `yaml:"problem_solved"`
	Result        string            `yaml:"result"`
	DisplayOrder  int               `yaml:"display_order"`
	IsActive      *bool             `yaml:"is_active"`
	Details       []Detail          `yaml:"details"`
}

type Detail struct {
	Body         string `yaml:"body"`
	DisplayOrder *int   `yaml:"display_order"`
	IsActive     *bool  `yaml:"is_active"`
}

type Value struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	IconName     string `yaml:"icon_name"`
	DisplayOrder int    `yaml:"display_order"`
	IsActive     *bool  `yaml:"is_active"`
}

// Result counts what Apply inserted and skipped.
type Result struct {
	Projects int
	Details  int
	Values   int
	Skipped  int
}

// LoadFile reads and decodes a seed file. Unknown keys are rejected.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Decode(data)
}

func Decode(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

// Apply inserts every project and value whose title is not stored yet, so
// running it twice leaves the content unchanged.
func Apply(ctx context.Context, store *content.Store, f File) (Result, error) {
	var res Result

	existing, err := store.ListProjects(ctx)
	if err != nil {
		return res, err
	}
	projectTitles := make(map[string]bool, len(existing))
	for _, p := range existing {
		projectTitles[titleKey(p.Title)] = true
	}

	for i, sp := range f.Projects {
		if projectTitles[titleKey(sp.Title)] {
			res.Skipped++
			continue
		}
		p, err := store.CreateProject(ctx, content.ProjectInput{
			Title:         sp.Title,
			Description:   sp.Description,
			Category:      sp.Category,
			IconName:      sp.IconName,
			Stats:         sp.Stats,
			Technologies:  sp.Technologies,
			WhatIs:        sp.WhatIs,
			ForWho:        sp.ForWho,
			ProblemSolved: sp.ProblemSolved,
			Result:        sp.Result,
			IsActive:      sp.IsActive,
			DisplayOrder:  sp.DisplayOrder,
		})
		if err != nil {
			return res, fmt.Errorf("project %d (%q): %w", i+1, sp.Title, err)
		}
		projectTitles[titleKey(p.Title)] = true
		res.Projects++

		for j, sd := range sp.Details {
			if _, err := store.CreateDetail(ctx, p.ID, content.DetailInput{
				ProjectDetail: sd.Body,
				DisplayOrder:  sd.DisplayOrder,
				IsActive:      sd.IsActive,
			}); err != nil {
				return res, fmt.Errorf("project %q detail %d: %w", sp.Title, j+1, err)
			}
			res.Details++
		}
	}

	values, err := store.ListCompanyValues(ctx)
	if err != nil {
		return res, err
	}
	valueTitles := make(map[string]bool, len(values))
	for _, v := range values {
		valueTitles[titleKey(v.Title)] = true
	}
	for i, sv := range f.Values {
		if valueTitles[titleKey(sv.Title)] {
			res.Skipped++
			continue
		}
		v, err := store.CreateCompanyValue(ctx, content.CompanyValueInput{
			Title:        sv.Title,
			Description:  sv.Description,
			IconName:     sv.IconName,
			DisplayOrder: sv.DisplayOrder,
			IsActive:     sv.IsActive,
		})
		if err != nil {
			return res, fmt.Errorf("value %d (%q): %w", i+1, sv.Title, err)
		}
		valueTitles[titleKey(v.Title)] = true
		res.Values++
	}
	return res, nil
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

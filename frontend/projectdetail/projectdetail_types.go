package projectdetail

import (
	"context"

	"codeslabs/models"
)

type ProjectGetter interface {
	GetProject(ctx context.Context, id string) (models.Project, error)
}

type Stat struct {
	Label string
	Value string
}

// Section is one classified group of detail blocks. Blocks holds the
// rendered HTML, Raw the markdown-lite source of the same blocks.
type Section struct {
	Title  string
	Blocks []string
	Raw    []string
}

type PageData struct {
	Project   models.Project
	Stats     []Stat
	Narrative []Stat
	Sections  []Section
}

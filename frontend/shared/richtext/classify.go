package richtext

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category names a section of the project detail page.
type Category string

const (
	CategorySecurity   Category = "security"
	CategoryTechnology Category = "technology"
	CategoryBenefits   Category = "benefits"
	CategoryFeatures   Category = "features"
	CategoryOther      Category = "other"
)

// Buckets holds detail blocks grouped by category, each in input order.
type Buckets struct {
	Technology []string
	Security   []string
	Benefits   []string
	Features   []string
	Other      []string
}

// Empty reports whether no bucket holds a block.
func (b Buckets) Empty() bool {
	return len(b.Technology)+len(b.Security)+len(b.Benefits)+len(b.Features)+len(b.Other) == 0
}

type marker struct {
	category Category
	needles  []string
}

// Checked top to bottom; the first hit wins.
var markers = []marker{
	{category: CategorySecurity, needles: []string{"seguridad"}},
	{category: CategoryTechnology, needles: []string{"tecnologías", "tecnologias"}},
	{category: CategoryBenefits, needles: []string{"beneficios"}},
	{category: CategoryFeatures, needles: []string{
		"características", "caracteristicas", "funcionalidades", "funciones", "módulos", "modulos", "incluye",
	}},
}

// CategoryOf returns the category of a single detail block.
func CategoryOf(block string) Category {
	// Casers keep state, so each call gets its own.
	text := cases.Lower(language.Spanish).String(block)
	for _, m := range markers {
		for _, needle := range m.needles {
			if strings.Contains(text, needle) {
				return m.category
			}
		}
	}
	return CategoryOther
}

// Classify buckets blocks by CategoryOf. Blank blocks are skipped; when that
// leaves every bucket empty for non-empty input, all blocks land in Other.
func Classify(blocks []string) Buckets {
	var out Buckets
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		switch CategoryOf(block) {
		case CategorySecurity:
			out.Security = append(out.Security, block)
		case CategoryTechnology:
			out.Technology = append(out.Technology, block)
		case CategoryBenefits:
			out.Benefits = append(out.Benefits, block)
		case CategoryFeatures:
			out.Features = append(out.Features, block)
		default:
			out.Other = append(out.Other, block)
		}
	}
	if out.Empty() && len(blocks) > 0 {
		out.Other = append(out.Other, blocks...)
	}
	return out
}

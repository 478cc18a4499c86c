package richtext

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var trustedTags = []string{"<h3>", "</h3>", "<ul>", "</ul>", "<li>", "</li>", "<p>", "</p>", "<strong>", "</strong>"}

func stripTrustedTags(s string) string {
	for _, tag := range trustedTags {
		s = strings.ReplaceAll(s, tag, "")
	}
	return s
}

func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	markupy := gen.SliceOf(gen.OneConstOf("<", ">", "&", `"`, "'", "**", "## ", "- ", "\n", "a", "b", " ", "<script>", "é"), reflect.TypeOf("")).
		Map(func(parts []string) string { return strings.Join(parts, "") })

	properties.Property("no raw special characters outside trusted tags", prop.ForAll(
		func(in string) bool {
			out := stripTrustedTags(Render(in))
			return !strings.ContainsAny(out, `<>"'`)
		},
		markupy,
	))

	properties.Property("lists are balanced", prop.ForAll(
		func(in string) bool {
			out := Render(in)
			return strings.Count(out, "<ul>") == strings.Count(out, "</ul>") &&
				strings.Count(out, "<strong>") == strings.Count(out, "</strong>")
		},
		markupy,
	))

	properties.Property("arbitrary strings never panic and blank input renders empty", prop.ForAll(
		func(in string) bool {
			out := Render(in)
			if strings.TrimSpace(in) == "" {
				return out == ""
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

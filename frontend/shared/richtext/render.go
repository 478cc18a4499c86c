// Package richtext renders the markdown-lite dialect used by project detail
// blocks and sorts those blocks into the sections of the project page.
//
// The dialect is line oriented:
//
//	## Heading          -> <h3>Heading</h3>
//	- item             -> <li>item</li>, consecutive items share one <ul>
//	**bold**           -> <strong>bold</strong>, inline
//	blank line         -> closes an open list
//	anything else      -> <p>line</p>
//
// All literal text is HTML-escaped; the wrapper tags above are the only
// markup the renderer ever produces.
package richtext

import (
	"strings"

	"github.com/a-h/templ"
)

const (
	headingPrefix = "##"
	itemPrefix    = "- "
	boldMarker    = "**"
)

// Render converts markdown-lite text to an HTML fragment.
func Render(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	inList := false
	closeList := func() {
		if inList {
			b.WriteString("</ul>")
			inList = false
		}
	}

	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			closeList()
		case strings.HasPrefix(line, itemPrefix):
			if !inList {
				b.WriteString("<ul>")
				inList = true
			}
			b.WriteString("<li>")
			b.WriteString(renderInline(strings.TrimSpace(line[len(itemPrefix):])))
			b.WriteString("</li>")
		case isHeading(line):
			closeList()
			title := strings.TrimSpace(line[len(headingPrefix):])
			if title == "" {
				continue
			}
			b.WriteString("<h3>")
			b.WriteString(renderInline(title))
			b.WriteString("</h3>")
		default:
			closeList()
			b.WriteString("<p>")
			b.WriteString(renderInline(line))
			b.WriteString("</p>")
		}
	}
	closeList()
	return b.String()
}

// RenderComponent wraps Render for use inside page views.
func RenderComponent(text string) templ.Component {
	return templ.Raw(Render(text))
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// isHeading accepts "## title" and a bare "##"; "###" is a paragraph.
func isHeading(line string) bool {
	if line == headingPrefix {
		return true
	}
	return strings.HasPrefix(line, headingPrefix+" ")
}

// renderInline escapes s and turns closed **pairs** into <strong> spans.
// An unterminated or empty pair is kept as literal text.
func renderInline(s string) string {
	var b strings.Builder
	for {
		open := strings.Index(s, boldMarker)
		if open < 0 {
			break
		}
		rest := s[open+len(boldMarker):]
		closeAt := strings.Index(rest, boldMarker)
		if closeAt < 0 {
			break
		}
		if closeAt == 0 {
			b.WriteString(templ.EscapeString(s[:open+len(boldMarker)]))
			s = rest
			continue
		}
		b.WriteString(templ.EscapeString(s[:open]))
		b.WriteString("<strong>")
		b.WriteString(templ.EscapeString(rest[:closeAt]))
		b.WriteString("</strong>")
		s = rest[closeAt+len(boldMarker):]
	}
	b.WriteString(templ.EscapeString(s))
	return b.String()
}

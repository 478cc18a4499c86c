package html

import (
	"context"
	"strings"
	"testing"

	"codeslabs/frontend/shared/nav"
)

func TestLayoutEscapesChrome(t *testing.T) {
	var b strings.Builder
	page := Page{
		Title:  `<Proyecto "uno">`,
		Nav:    nav.BuildTopNavData("/", false),
		Status: "Guardado & listo",
		Error:  "<b>falló</b>",
	}
	if err := Layout(page, Markup("<p>cuerpo</p>")).Render(context.Background(), &b); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"<title>&lt;Proyecto &#34;uno&#34;&gt; | Codes-Labs</title>",
		`<div class="alert alert-success" role="status">Guardado &amp; listo</div>`,
		"&lt;b&gt;falló&lt;/b&gt;",
		"<p>cuerpo</p>",
		`"X-CSRF-Token"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected layout to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "/admin/logout") {
		t.Fatalf("public layout must not render logout form")
	}
}

func TestLayoutAdminNav(t *testing.T) {
	var b strings.Builder
	if err := Layout(Page{Nav: nav.BuildTopNavData("/admin", true), NoIndex: true}, nil).Render(context.Background(), &b); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, `action="/admin/logout"`) || !strings.Contains(out, `content="noindex"`) {
		t.Fatalf("expected admin chrome, got %s", out)
	}
	if !strings.Contains(out, "<title>Codes-Labs</title>") {
		t.Fatalf("expected default title")
	}
}

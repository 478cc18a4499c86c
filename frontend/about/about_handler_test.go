package about

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAboutPageQueryHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	AboutPageQueryHandler(rr, httptest.NewRequest(http.MethodGet, "/about", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"<h2>Misión</h2>", "<h2>Visión</h2>", "<strong>Innovación:</strong>", `<a href="/about" class="active">`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

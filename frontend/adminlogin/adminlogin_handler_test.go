package adminlogin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"codeslabs/infrastructure/argon"
	"codeslabs/infrastructure/session"
	"codeslabs/models"
)

type fakeSessions struct {
	created int
	deleted []string
}

func (f *fakeSessions) Create(context.Context) (models.AdminSession, *http.Cookie, error) {
	f.created++
	s := models.AdminSession{ID: "token-1", ExpiresAt: time.Now().Add(session.Lifetime)}
	return s, session.Cookie(s.ID, int(session.Lifetime.Seconds())), nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func postLogin(t *testing.T, h http.Handler, key string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"key": {key}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateLoginHandler(t *testing.T) {
	keys, err := argon.NewKeyVerifier("clave-secreta")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	sessions := &fakeSessions{}
	h := CreateLoginHandler(keys, sessions)

	rr := postLogin(t, h, "otra-clave")
	if rr.Code != http.StatusSeeOther || !strings.HasPrefix(rr.Header().Get("Location"), "/admin/login?error=") {
		t.Fatalf("wrong key: got %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if sessions.created != 0 {
		t.Fatalf("session created for wrong key")
	}

	rr = postLogin(t, h, "")
	if !strings.HasPrefix(rr.Header().Get("Location"), "/admin/login?error=") {
		t.Fatalf("empty key: got %q", rr.Header().Get("Location"))
	}

	rr = postLogin(t, h, "clave-secreta")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/admin" {
		t.Fatalf("valid key: got %d %q", rr.Code, rr.Header().Get("Location"))
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName || cookies[0].Value != "token-1" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
}

func TestLogoutHandler(t *testing.T) {
	sessions := &fakeSessions{}
	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "token-9"})
	rr := httptest.NewRecorder()

	LogoutHandler(sessions).ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/" {
		t.Fatalf("got %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "token-9" {
		t.Fatalf("deleted = %v", sessions.deleted)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cookies)
	}
}

func TestGetLoginScreenHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	GetLoginScreenHandler(rr, httptest.NewRequest(http.MethodGet, "/admin/login?error=Clave+incorrecta", nil))
	body := rr.Body.String()
	if rr.Code != http.StatusOK || !strings.Contains(body, `name="key"`) || !strings.Contains(body, "Clave incorrecta") {
		t.Fatalf("unexpected login page: %d %s", rr.Code, body)
	}
}

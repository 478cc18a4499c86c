package http

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"codeslabs/infrastructure/argon"
	"codeslabs/infrastructure/audit"
	"codeslabs/infrastructure/cache"
	"codeslabs/infrastructure/content"
	"codeslabs/infrastructure/mailer"
	"codeslabs/infrastructure/session"
	"codeslabs/infrastructure/sqlite"
	"codeslabs/models"
)

const testAdminKey = "test-admin-key"

type integrationEnv struct {
	server *httptest.Server
	db     *sqlite.DB
	store  *content.Store
}

func setupIntegrationServer(t *testing.T) (*integrationEnv, *http.Client) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "server-integration.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	keys, err := argon.NewKeyVerifier(testAdminKey)
	if err != nil {
		t.Fatalf("key verifier: %v", err)
	}
	auditSvc := audit.NewService()
	store := content.NewStore(db, auditSvc)
	sessions := session.NewManager(db, cache.NewAdminSessionCache())

	// The site calls its own /api, so the listen address must be known
	// before the router is built.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := NewServer(Options{
		Addr:          ln.Addr().String(),
		PublicBaseURL: "https://codes-labs.example",
		AdminKey:      testAdminKey,
	}, db, store, sessions, keys, auditSvc, mailer.New(mailer.Config{}))

	ts := httptest.NewUnstartedServer(s.router)
	_ = ts.Listener.Close()
	ts.Listener = ln
	ts.Start()

	env := &integrationEnv{server: ts, db: db, store: store}
	t.Cleanup(func() {
		env.server.Close()
		_ = env.db.Close()
	})

	return env, newHTTPClient(t)
}

func newHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, baseURL, path string, data url.Values) *http.Response {
	t.Helper()
	if data == nil {
		data = url.Values{}
	}
	if token := csrfToken(t, client, baseURL); token != "" {
		data.Set("_csrf", token)
	}
	resp, err := client.PostForm(baseURL+path, data)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func get(t *testing.T, client *http.Client, baseURL, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func csrfToken(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "X-CSRF-Token" {
			return c.Value
		}
	}
	return ""
}

func loginAsAdmin(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	resp := get(t, client, baseURL, "/admin/login")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login page 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = postForm(t, client, baseURL, "/admin/login", url.Values{"key": {testAdminKey}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin" {
		t.Fatalf("unexpected login redirect: %s", loc)
	}
	_ = resp.Body.Close()
}

func onlyProject(t *testing.T, store *content.Store) models.Project {
	t.Helper()
	projects, err := store.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	return projects[0]
}

func TestCSRFPostWithoutTokenRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)

	// No GET first: no CSRF token available in cookie or form.
	resp, err := client.PostForm(env.server.URL+"/admin/login", url.Values{"key": {testAdminKey}})
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for missing csrf, got %d", resp.StatusCode)
	}
}

func TestCSRFPostWithoutToken_SameOriginRefererAccepted(t *testing.T) {
	env, client := setupIntegrationServer(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/admin/login", strings.NewReader(url.Values{"key": {testAdminKey}}.Encode()))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", env.server.URL+"/admin/login")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/admin" {
		t.Fatalf("expected same-origin fallback 303 to /admin, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestCSRFPostWithoutToken_CrossOriginRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/admin/login", strings.NewReader(url.Values{"key": {testAdminKey}}.Encode()))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Referer", "https://evil.example/attack")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post cross-origin request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-origin missing csrf token, got %d", resp.StatusCode)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env, client := setupIntegrationServer(t)

	for _, path := range []string{"/admin", "/admin/projects/new", "/admin/projects.csv"} {
		resp := get(t, client, env.server.URL, path)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/admin/login" {
			t.Fatalf("%s: expected redirect to login, got %d %s", path, resp.StatusCode, resp.Header.Get("Location"))
		}
	}

	resp := get(t, client, env.server.URL, "/admin/login")
	_ = resp.Body.Close()
	resp = postForm(t, client, env.server.URL, "/admin/login", url.Values{"key": {"wrong"}})
	_ = resp.Body.Close()
	if !strings.HasPrefix(resp.Header.Get("Location"), "/admin/login?error=") {
		t.Fatalf("wrong key: unexpected redirect %s", resp.Header.Get("Location"))
	}
	resp = get(t, client, env.server.URL, "/admin")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("wrong key must not open the console, got %d", resp.StatusCode)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAsAdmin(t, client, env.server.URL)

	resp := get(t, client, env.server.URL, "/admin")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Cerrar sesión") {
		t.Fatalf("expected admin page, got %d", resp.StatusCode)
	}

	resp = postForm(t, client, env.server.URL, "/admin/logout", nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("unexpected logout response %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = get(t, client, env.server.URL, "/admin")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect after logout, got %d", resp.StatusCode)
	}
}

func TestAPIMutationsRequireBearerKey(t *testing.T) {
	env, client := setupIntegrationServer(t)

	payload := `{"title":"X","description":"Y","category":"Z"}`
	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/api/projects", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post api: %v", err)
	}
	var env401 struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env401); err != nil {
		t.Fatalf("decode: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized || env401.Success {
		t.Fatalf("expected 401 envelope, got %d %+v", resp.StatusCode, env401)
	}

	req, _ = http.NewRequest(http.MethodPost, env.server.URL+"/api/projects", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("post api with key: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 with key, got %d", resp.StatusCode)
	}
}

func TestContactFormStoresMessage(t *testing.T) {
	env, client := setupIntegrationServer(t)

	resp := get(t, client, env.server.URL, "/contacto")
	_ = resp.Body.Close()
	resp = postForm(t, client, env.server.URL, "/contacto", url.Values{
		"nombreContacto":   {"Ana Pérez"},
		"nombreEmpresa":    {"Clínica Sur"},
		"emailContacto":    {"ana@clinicasur.cl"},
		"telefonoContacto": {"+56 9 12345678"},
		"comentarios":      {"Hola <script>alert(1)</script>equipo"},
	})
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || !strings.HasPrefix(resp.Header.Get("Location"), "/contacto?status=") {
		t.Fatalf("unexpected contact response %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	msgs, err := env.store.ListContactMessages(context.Background(), 10)
	if err != nil {
		t.Fatalf("list contact messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Email != "ana@clinicasur.cl" || strings.Contains(msgs[0].Comments, "<script>") {
		t.Fatalf("unexpected stored messages: %+v", msgs)
	}
	if msgs[0].Delivered {
		t.Fatalf("message must stay undelivered without smtp")
	}
}

func TestNotFoundAndHealth(t *testing.T) {
	env, client := setupIntegrationServer(t)

	resp := get(t, client, env.server.URL, "/no-existe")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "La página que buscas no existe") {
		t.Fatalf("expected html 404, got %d", resp.StatusCode)
	}

	resp = get(t, client, env.server.URL, "/proyectos/desconocido")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown project, got %d", resp.StatusCode)
	}

	resp = get(t, client, env.server.URL, "/health")
	if body := readBody(t, resp); resp.StatusCode != http.StatusOK || body != "ok" {
		t.Fatalf("unexpected health response %d %q", resp.StatusCode, body)
	}

	resp = get(t, client, env.server.URL, "/assets/app.css")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected stylesheet, got %d", resp.StatusCode)
	}
}

func TestServerEndToEndCoreFlow(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAsAdmin(t, client, env.server.URL)
	base := env.server.URL

	resp := postForm(t, client, base, "/admin/projects", url.Values{
		"title":        {"Clínica Digital"},
		"description":  {"Agenda de pacientes"},
		"category":     {"Salud"},
		"stats":        {"pacientes_mes: 1200"},
		"technologies": {"Go\nSQLite"},
		"displayOrder": {"0"},
		"isActive":     {"1"},
	})
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || !strings.HasPrefix(resp.Header.Get("Location"), "/admin?status=") {
		t.Fatalf("expected create 303, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	project := onlyProject(t, env.store)

	resp = get(t, client, base, "/admin?q=CL%C3%8DNICA")
	if body := readBody(t, resp); !strings.Contains(body, "Clínica Digital") {
		t.Fatalf("accent-insensitive search did not find the project")
	}

	resp = postForm(t, client, base, "/admin/projects/"+project.ID+"/details", url.Values{
		"projectDetail": {"## Seguridad\n- Cifrado **AES-256**"},
		"isActive":      {"1"},
	})
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || !strings.Contains(resp.Header.Get("Location"), "status=") {
		t.Fatalf("expected detail create 303, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = get(t, client, base, "/proyectos/"+project.ID)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected public page 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"<h3>Seguridad</h3>", "<strong>AES-256</strong>", "pacientes mes"} {
		if !strings.Contains(body, want) {
			t.Fatalf("public page missing %q", want)
		}
	}

	resp = get(t, client, base, "/")
	if body := readBody(t, resp); !strings.Contains(body, "/proyectos/"+project.ID) {
		t.Fatalf("dashboard does not list the project")
	}

	resp = get(t, client, base, "/proyectos/"+project.ID+"/ficha.pdf")
	pdf := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(pdf, "%PDF") {
		t.Fatalf("expected pdf, got %d", resp.StatusCode)
	}

	resp = get(t, client, base, "/admin/projects.csv")
	csvText := readBody(t, resp)
	if !strings.HasPrefix(csvText, "id,title,category,description") || !strings.Contains(csvText, project.ID) {
		t.Fatalf("unexpected csv export: %s", csvText)
	}

	resp = get(t, client, base, "/admin/projects/"+project.ID+"/activity")
	body = readBody(t, resp)
	if !strings.Contains(body, "Proyecto creado") || !strings.Contains(body, "Detalle creado") {
		t.Fatalf("activity page missing audit rows")
	}

	resp = postForm(t, client, base, "/admin/projects/"+project.ID+"/delete", nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || !strings.Contains(resp.Header.Get("Location"), "status=") {
		t.Fatalf("expected delete 303, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = get(t, client, base, "/proyectos/"+project.ID)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestLoopbackAddr(t *testing.T) {
	cases := map[string]string{
		":8080":          "127.0.0.1:8080",
		"0.0.0.0:9000":   "127.0.0.1:9000",
		"127.0.0.1:3000": "127.0.0.1:3000",
		"[::]:8080":      "127.0.0.1:8080",
		"example.com:80": "example.com:80",
	}
	for in, want := range cases {
		if got := loopbackAddr(in); got != want {
			t.Fatalf("loopbackAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"codeslabs/infrastructure/argon"
	"codeslabs/infrastructure/audit"
	"codeslabs/infrastructure/content"
	"codeslabs/infrastructure/mailer"
	"codeslabs/infrastructure/sqlite"
	"codeslabs/models"
)

const testAdminKey = "test-admin-key"

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []models.ContactMessage
	err  error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, msg models.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

type apiEnv struct {
	server   *httptest.Server
	store    *content.Store
	notifier *recordingNotifier
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "api-test.db"))
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

	store := content.NewStore(db, audit.NewService())
	notifier := &recordingNotifier{}
	ts := httptest.NewServer(NewHandler(store, keys, notifier).Routes())
	t.Cleanup(func() {
		ts.Close()
		_ = db.Close()
	})
	return &apiEnv{server: ts, store: store, notifier: notifier}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (e *apiEnv) do(t *testing.T, method, path, key string, body any) (int, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func TestProjectEndpoints(t *testing.T) {
	env := setupAPI(t)

	status, resp := env.do(t, http.MethodGet, "/projects", "", nil)
	if status != http.StatusOK || !resp.Success || string(resp.Data) != "[]" {
		t.Fatalf("expected empty list, got %d %s", status, resp.Data)
	}

	payload := map[string]any{
		"title":        "Gestión de Turnos",
		"description":  "Agenda médica en línea",
		"category":     "Salud",
		"stats":        map[string]string{"pacientes_atendidos": "3000"},
		"technologies": []string{"Go", "SQLite"},
	}
	status, resp = env.do(t, http.MethodPost, "/projects", "", payload)
	if status != http.StatusUnauthorized || resp.Success {
		t.Fatalf("expected 401 without key, got %d", status)
	}
	status, _ = env.do(t, http.MethodPost, "/projects", "wrong-key", payload)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", status)
	}

	status, resp = env.do(t, http.MethodPost, "/projects", testAdminKey, payload)
	if status != http.StatusCreated || !resp.Success {
		t.Fatalf("expected 201, got %d: %s", status, resp.Message)
	}
	var created models.Project
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if created.ID == "" || created.IconName != content.DefaultIconName || !created.IsActive {
		t.Fatalf("unexpected created project: %#v", created)
	}

	status, resp = env.do(t, http.MethodPost, "/projects/"+created.ID+"/details", testAdminKey, map[string]any{"projectDetail": "## Seguridad\n- Cifrado"})
	if status != http.StatusCreated {
		t.Fatalf("expected detail 201, got %d: %s", status, resp.Message)
	}
	var detail models.ProjectDetail
	if err := json.Unmarshal(resp.Data, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}

	status, resp = env.do(t, http.MethodGet, "/projects/"+created.ID, "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var loaded models.Project
	if err := json.Unmarshal(resp.Data, &loaded); err != nil {
		t.Fatalf("decode project: %v", err)
	}
	if len(loaded.Details) != 1 || loaded.Stats["pacientes_atendidos"] != "3000" {
		t.Fatalf("unexpected loaded project: %#v", loaded)
	}

	status, _ = env.do(t, http.MethodPut, "/projects/details/"+detail.ID, testAdminKey, map[string]any{"projectDetail": "Actualizado", "displayOrder": 3})
	if status != http.StatusOK {
		t.Fatalf("expected detail update 200, got %d", status)
	}
	status, resp = env.do(t, http.MethodGet, "/projects/"+created.ID+"/details", "", nil)
	if status != http.StatusOK || !bytes.Contains(resp.Data, []byte(`"displayOrder":3`)) {
		t.Fatalf("expected updated detail listing, got %d %s", status, resp.Data)
	}
	status, _ = env.do(t, http.MethodDelete, "/projects/details/"+detail.ID, testAdminKey, nil)
	if status != http.StatusOK {
		t.Fatalf("expected detail delete 200, got %d", status)
	}

	payload["title"] = "Gestión de Turnos 2"
	status, resp = env.do(t, http.MethodPut, "/projects/"+created.ID, testAdminKey, payload)
	if status != http.StatusOK || !bytes.Contains(resp.Data, []byte("Gestión de Turnos 2")) {
		t.Fatalf("expected update 200, got %d %s", status, resp.Data)
	}

	status, resp = env.do(t, http.MethodDelete, "/projects/"+created.ID, testAdminKey, nil)
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected delete 200, got %d", status)
	}
	status, resp = env.do(t, http.MethodGet, "/projects/"+created.ID, "", nil)
	if status != http.StatusNotFound || resp.Success || resp.Message != "Recurso no encontrado" {
		t.Fatalf("expected 404 envelope, got %d %#v", status, resp)
	}
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	env := setupAPI(t)

	status, resp := env.do(t, http.MethodPost, "/projects", testAdminKey, map[string]any{"title": "Sin descripción", "category": "x"})
	if status != http.StatusBadRequest || resp.Success || resp.Message != "El campo descripción es obligatorio" {
		t.Fatalf("expected 400 with field message, got %d %q", status, resp.Message)
	}

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/company-values", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+testAdminKey)
	res, err := env.server.Client().Do(req)
	if err != nil {
		t.Fatalf("post malformed json: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", res.StatusCode)
	}
}

func TestCompanyValueEndpoints(t *testing.T) {
	env := setupAPI(t)

	status, resp := env.do(t, http.MethodPost, "/company-values", testAdminKey, map[string]any{"title": "Confianza", "description": "Cumplimos lo prometido", "iconName": "shield"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, resp.Message)
	}
	var v models.CompanyValue
	if err := json.Unmarshal(resp.Data, &v); err != nil {
		t.Fatalf("decode value: %v", err)
	}

	status, resp = env.do(t, http.MethodGet, "/company-values", "", nil)
	if status != http.StatusOK || !bytes.Contains(resp.Data, []byte("Confianza")) {
		t.Fatalf("expected list with value, got %d %s", status, resp.Data)
	}
	status, _ = env.do(t, http.MethodPut, "/company-values/"+v.ID, testAdminKey, map[string]any{"title": "Confianza", "description": "Siempre"})
	if status != http.StatusOK {
		t.Fatalf("expected update 200, got %d", status)
	}
	status, _ = env.do(t, http.MethodDelete, "/company-values/"+v.ID, testAdminKey, nil)
	if status != http.StatusOK {
		t.Fatalf("expected delete 200, got %d", status)
	}
	status, _ = env.do(t, http.MethodGet, "/company-values/"+v.ID, "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestSendContact(t *testing.T) {
	env := setupAPI(t)

	body := map[string]string{
		"nombreContacto":   "Ana",
		"nombreEmpresa":    "Acme",
		"emailContacto":    "ana@acme.com",
		"telefonoContacto": "+56912345678",
		"comentarios":      "<i>Hola</i><script>x</script>",
	}
	status, resp := env.do(t, http.MethodPost, "/contact/send", "", body)
	if status != http.StatusOK || !resp.Success || resp.Message != contactSentMessage {
		t.Fatalf("expected success, got %d %#v", status, resp)
	}
	if len(env.notifier.msgs) != 1 || env.notifier.msgs[0].Comments != "<i>Hola</i>" {
		t.Fatalf("expected sanitized message to be notified, got %#v", env.notifier.msgs)
	}
	msgs, err := env.store.ListContactMessages(context.Background(), 10)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 1 || !msgs[0].Delivered {
		t.Fatalf("expected delivered message, got %#v", msgs)
	}

	body["emailContacto"] = "no-es-correo"
	status, resp = env.do(t, http.MethodPost, "/contact/send", "", body)
	if status != http.StatusBadRequest || resp.Success {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestSendContactNotifierOutcomes(t *testing.T) {
	env := setupAPI(t)
	body := map[string]string{
		"nombreContacto":   "Ana",
		"nombreEmpresa":    "Acme",
		"emailContacto":    "ana@acme.com",
		"telefonoContacto": "912345678",
	}

	env.notifier.err = mailer.ErrDisabled
	status, resp := env.do(t, http.MethodPost, "/contact/send", "", body)
	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected stored message to succeed without smtp, got %d", status)
	}

	env.notifier.err = errors.New("smtp down")
	status, resp = env.do(t, http.MethodPost, "/contact/send", "", body)
	if status != http.StatusBadGateway || resp.Message != contactFailedMessage {
		t.Fatalf("expected 502, got %d %q", status, resp.Message)
	}

	msgs, err := env.store.ListContactMessages(context.Background(), 10)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	for _, m := range msgs {
		if m.Delivered {
			t.Fatalf("expected no delivered messages, got %#v", m)
		}
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"bearer":    {header: "Bearer abc", token: "abc", ok: true},
		"lowercase": {header: "bearer abc", token: "abc", ok: true},
		"basic":     {header: "Basic abc", ok: false},
		"empty":     {header: "", ok: false},
		"no token":  {header: "Bearer   ", ok: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", tc.header)
			token, ok := bearerToken(r)
			if ok != tc.ok || token != tc.token {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.token, tc.ok, token, ok)
			}
		})
	}
}

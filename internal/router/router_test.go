package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"adoption-platform/internal/adapters/storage/memory"
	"adoption-platform/internal/domain/users"
	"adoption-platform/internal/platform/config"
	"adoption-platform/internal/platform/password"
	"adoption-platform/internal/router"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-secret"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	usersRepo := memory.NewUsersRepo()
	seedAdmin(t, usersRepo)

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Cfg: config.Config{
			JWTSecret:  "test-secret",
			SessionTTL: time.Hour,
			CORSOrigin: "http://localhost:3000",
		},
		Users:        usersRepo,
		Animals:      memory.NewAnimalsRepo(),
		Applications: memory.NewApplicationsRepo(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

// El rol admin solo se otorga fuera de banda; los tests lo siembran
// directo en el repositorio, igual que haría el operador con la CLI.
func seedAdmin(t *testing.T, repo users.Repository) {
	t.Helper()

	hash, err := password.Hash(adminPassword)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}

	now := time.Now()
	err = repo.Create(context.Background(), users.User{
		ID:           "admin-1",
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         users.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newTestServer(t)

	adminTok := login(t, ts.URL, adminEmail, adminPassword)

	// 1) El admin registra a Rex
	animalID := createAnimal(t, ts.URL, adminTok, map[string]any{
		"nombre":      "Rex",
		"especie":     "perro",
		"raza":        "mestizo",
		"edad":        3,
		"sexo":        "macho",
		"tamaño":      "mediano",
		"color":       "marrón",
		"descripcion": "Un perro muy cariñoso que busca hogar",
		"fotoUrl":     "https://example.com/rex.jpg",
	})

	// 2) Una usuaria se registra y solicita adoptarlo
	userTok := register(t, ts.URL, "Ana", "ana@example.com", "secret123")

	application := map[string]any{
		"animalId":            animalID,
		"nombre":              "Ana García",
		"email":               "ana@example.com",
		"telefono":            "600123456",
		"direccion":           "Calle Mayor 1, Madrid",
		"ocupacion":           "profesora",
		"tipoVivienda":        "casa",
		"espacioExterior":     true,
		"experienciaMascotas": "Tuve perros toda mi vida",
		"motivoAdopcion":      "Busco un compañero para mi familia",
	}

	var appID string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/applications", userTok, application)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 creating application, got %d body=%s", st, string(body))
		}
		var env envelope
		mustDecode(t, body, &env)
		var d struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Animal *struct {
				Name string `json:"nombre"`
			} `json:"animal"`
		}
		mustDecode(t, env.Data, &d)
		if d.Status != "recibida" {
			t.Fatalf("expected status recibida, got %q", d.Status)
		}
		if d.Animal == nil || d.Animal.Name != "Rex" {
			t.Fatalf("expected joined animal Rex, got %+v", d.Animal)
		}
		appID = d.ID
	}

	// 3) Una segunda solicitud para el mismo animal es 409
	{
		st, body := doReq(t, ts.URL, "POST", "/api/applications", userTok, application)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on duplicate, got %d body=%s", st, string(body))
		}
		var env envelope
		mustDecode(t, body, &env)
		if env.Message != "Ya has enviado una solicitud para este animal" {
			t.Fatalf("unexpected message: %q", env.Message)
		}
	}

	// 4) Otro usuario no puede ver la solicitud; la dueña y el admin sí
	otherTok := register(t, ts.URL, "Otro", "otro@example.com", "secret123")
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/applications/"+appID, otherTok, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for stranger, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/applications/"+appID, userTok, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for owner, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/applications/"+appID, adminTok, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for admin, got %d", st)
		}
	}

	// 5) El admin aprueba
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/applications/"+appID, adminTok, map[string]any{
			"status":     "aprobada",
			"notasAdmin": "perfil excelente",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approving, got %d body=%s", st, string(body))
		}
	}

	// 6) Rex queda adoptado
	{
		st, body := doReq(t, ts.URL, "GET", "/api/animals/"+animalID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reading animal, got %d", st)
		}
		var env envelope
		mustDecode(t, body, &env)
		var a struct {
			State string `json:"estado"`
		}
		mustDecode(t, env.Data, &a)
		if a.State != "adoptado" {
			t.Fatalf("expected estado adoptado, got %q", a.State)
		}
	}

	// 7) Solicitar un animal adoptado es 409
	{
		app2 := map[string]any{}
		for k, v := range application {
			app2[k] = v
		}
		app2["email"] = "otro@example.com"
		st, body := doReq(t, ts.URL, "POST", "/api/applications", otherTok, app2)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for adopted animal, got %d body=%s", st, string(body))
		}
		var env envelope
		mustDecode(t, body, &env)
		if env.Message != "Este animal ya ha sido adoptado" {
			t.Fatalf("unexpected message: %q", env.Message)
		}
	}
}

func TestHTTP_PublicCatalogAndAdminGuards(t *testing.T) {
	ts := newTestServer(t)

	adminTok := login(t, ts.URL, adminEmail, adminPassword)
	createAnimal(t, ts.URL, adminTok, map[string]any{
		"nombre":      "Luna",
		"especie":     "gato",
		"raza":        "siamés",
		"edad":        2,
		"sexo":        "hembra",
		"tamaño":      "pequeño",
		"color":       "blanco",
		"descripcion": "Gata tranquila, ideal para apartamento",
		"fotoUrl":     "https://example.com/luna.jpg",
	})

	// catálogo público, sin token
	{
		st, body := doReq(t, ts.URL, "GET", "/api/animals?especie=gato", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 anonymous catalog, got %d", st)
		}
		var env envelope
		mustDecode(t, body, &env)
		if env.Count == nil || *env.Count != 1 {
			t.Fatalf("expected count=1, got %v", env.Count)
		}
	}

	// rutas admin: 401 sin token, 403 con rol user
	userTok := register(t, ts.URL, "Ana", "ana@example.com", "secret123")
	cases := []struct {
		method, path string
		body         any
	}{
		{"GET", "/api/animals/admin/stats", nil},
		{"POST", "/api/animals", map[string]any{"nombre": "X"}},
		{"GET", "/api/applications", nil},
		{"GET", "/api/applications/admin/stats", nil},
	}
	for _, tc := range cases {
		st, _ := doReq(t, ts.URL, tc.method, tc.path, "", tc.body)
		if st != http.StatusUnauthorized {
			t.Errorf("%s %s sin token: expected 401, got %d", tc.method, tc.path, st)
		}
		st, _ = doReq(t, ts.URL, tc.method, tc.path, userTok, tc.body)
		if st != http.StatusForbidden {
			t.Errorf("%s %s con rol user: expected 403, got %d", tc.method, tc.path, st)
		}
	}

	// el admin sí ve los stats
	{
		st, body := doReq(t, ts.URL, "GET", "/api/animals/admin/stats", adminTok, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin stats, got %d body=%s", st, string(body))
		}
		var env envelope
		mustDecode(t, body, &env)
		var stats struct {
			Total int `json:"totalAnimals"`
			Ready int `json:"animalsReady"`
		}
		mustDecode(t, env.Data, &stats)
		if stats.Total != 1 || stats.Ready != 1 {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	}
}

func TestHTTP_RegisterIgnoresSmuggledRole(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var env envelope
	mustDecode(t, body, &env)
	var u struct {
		Role string `json:"role"`
	}
	mustDecode(t, env.User, &u)
	if u.Role != "user" {
		t.Fatalf("expected role user, got %q", u.Role)
	}
}

func TestHTTP_CookieSession(t *testing.T) {
	ts := newTestServer(t)

	// el registro deja la cookie de sesión
	res := doRaw(t, ts.URL, "POST", "/api/auth/register", nil, map[string]any{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secret123",
	})
	var session *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "token" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("expected session cookie")
	}
	if !session.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}

	// la cookie sola autentica, sin header Authorization
	res = doRaw(t, ts.URL, "GET", "/api/auth/me", session, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d", res.StatusCode)
	}

	// sin credenciales: 401
	res = doRaw(t, ts.URL, "GET", "/api/auth/me", nil, nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", res.StatusCode)
	}

	// logout expira la cookie del cliente
	res = doRaw(t, ts.URL, "POST", "/api/auth/logout", session, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", res.StatusCode)
	}
	for _, c := range res.Cookies() {
		if c.Name == "token" && c.Value != "none" {
			t.Fatalf("expected cleared cookie, got %q", c.Value)
		}
	}
}

func TestHTTP_NotFoundEnvelope(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/api/nope", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
	var env envelope
	mustDecode(t, body, &env)
	if env.Success {
		t.Fatal("expected success=false")
	}
	if !strings.Contains(env.Message, "/api/nope") {
		t.Fatalf("expected path in message, got %q", env.Message)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	var health struct {
		Success bool   `json:"success"`
		Status  string `json:"status"`
	}
	mustDecode(t, body, &health)
	if !health.Success || health.Status != "ok" {
		t.Fatalf("unexpected health payload: %s", string(body))
	}
}

// -------------------------
// Helpers
// -------------------------

func register(t *testing.T, baseURL, name, email, pass string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": pass,
	})
	if st != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d body=%s", email, st, string(body))
	}

	var env envelope
	mustDecode(t, body, &env)
	if env.Token == "" {
		t.Fatalf("register %s: expected token", email)
	}
	return env.Token
}

func login(t *testing.T, baseURL, email, pass string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": pass,
	})
	if st != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d body=%s", email, st, string(body))
	}

	var env envelope
	mustDecode(t, body, &env)
	if env.Token == "" {
		t.Fatalf("login %s: expected token", email)
	}
	return env.Token
}

func createAnimal(t *testing.T, baseURL, token string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/animals", token, payload)
	if st != http.StatusCreated {
		t.Fatalf("create animal: expected 201, got %d body=%s", st, string(body))
	}

	var env envelope
	mustDecode(t, body, &env)
	var a struct {
		ID string `json:"id"`
	}
	mustDecode(t, env.Data, &a)
	if a.ID == "" {
		t.Fatal("create animal: expected id")
	}
	return a.ID
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func doRaw(t *testing.T, baseURL, method, path string, cookie *http.Cookie, body any) *http.Response {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return res
}

func mustDecode(t *testing.T, b []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("decode %s: %v", string(b), err)
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/albertomt/cricheck/internal/auth"
	"github.com/albertomt/cricheck/internal/db"
	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

const (
	testJWTSecret = "test-secret"
	testBaseURL   = "https://mezzi.example.org"
	testPassword  = "password"
)

func setupTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	s := store.NewSQLite(db.NewTestDB(t))
	server := httptest.NewServer(NewRouter(s, testJWTSecret, testBaseURL))
	t.Cleanup(server.Close)
	return server, s
}

// seedUser creates an account directly in the store. Fiscal codes only need
// to be unique, so they are derived from the username padded to shape.
func seedUser(t *testing.T, s store.Store, username, role string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	code := fmt.Sprintf("%-6.6s85T10A562S", username+"XXXXXX")
	user, err := s.CreateUser(context.Background(), model.NewUser{
		Username:     username,
		PasswordHash: hash,
		Name:         "Test",
		Surname:      "User",
		FiscalCode:   model.NormalizeFiscalCode(code),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seeding user %q: %v", username, err)
	}
	return user
}

// login authenticates and returns the session token from the cookie.
func login(t *testing.T, server *httptest.Server, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(server.URL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("no session cookie in login response")
	return ""
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestRegisterAndSession(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"username":    "mario",
		"password":    "secret123",
		"name":        "Mario",
		"surname":     "Rossi",
		"fiscal_code": "rssmra85t10a562s",
	})
	resp, err := http.Post(server.URL+"/api/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created map[string]any
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if created["username"] != "mario" {
		t.Errorf("expected username mario, got %v", created["username"])
	}
	if created["role"] != model.RoleVolunteer {
		t.Errorf("expected volunteer role, got %v", created["role"])
	}
	if created["fiscal_code"] != "RSSMRA85T10A562S" {
		t.Errorf("expected normalized fiscal code, got %v", created["fiscal_code"])
	}
	for key := range created {
		if key == "password" || key == "password_hash" {
			t.Errorf("password material leaked in response under %q", key)
		}
	}

	var token string
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no session cookie after register")
	}

	// The fresh session works.
	req, _ := authRequest("GET", server.URL+"/api/user", token, nil)
	userResp, _ := http.DefaultClient.Do(req)
	if userResp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from /api/user, got %d", userResp.StatusCode)
	}
	userResp.Body.Close()

	// Same username again conflicts.
	resp, _ = http.Post(server.URL+"/api/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate registration, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterValidation(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"username":    "ab",
		"password":    "123",
		"name":        "",
		"surname":     "Rossi",
		"fiscal_code": "NOTACODE",
	})
	resp, err := http.Post(server.URL+"/api/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	server, s := setupTestServer(t)
	seedUser(t, s, "mario", model.RoleVolunteer)

	body, _ := json.Marshal(map[string]string{"username": "mario", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			t.Error("session cookie set on failed login")
		}
	}
	resp.Body.Close()

	// No session means /api/user stays closed.
	userResp, _ := http.Get(server.URL + "/api/user")
	if userResp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 from /api/user, got %d", userResp.StatusCode)
	}
	userResp.Body.Close()
}

// slowStore stalls credential lookups until the request deadline expires.
type slowStore struct {
	store.Store
}

func (s *slowStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	<-ctx.Done()
	return nil, fmt.Errorf("getting user: %w", ctx.Err())
}

func TestLoginTimeout(t *testing.T) {
	handler := &AuthHandler{
		Store:        &slowStore{Store: store.NewMemory()},
		JWTSecret:    testJWTSecret,
		LoginTimeout: 50 * time.Millisecond,
	}

	body, _ := json.Marshal(map[string]string{"username": "mario", "password": "secret"})
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the credential check stalls, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			t.Error("session cookie set on timed-out login")
		}
	}
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	server, s := setupTestServer(t)
	user := seedUser(t, s, "mario", model.RoleVolunteer)

	login(t, server, "mario", testPassword)

	updated, err := s.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if updated.LastLogin == nil {
		t.Error("expected last login to be set")
	}
}

func TestLogout(t *testing.T) {
	server, s := setupTestServer(t)
	seedUser(t, s, "mario", model.RoleVolunteer)
	token := login(t, server, "mario", testPassword)

	req, _ := authRequest("POST", server.URL+"/api/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The token is still validly signed but the session is gone.
	req, _ = authRequest("GET", server.URL+"/api/user", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Repeat logout is fine.
	req, _ = authRequest("POST", server.URL+"/api/logout", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from repeated logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChangePassword(t *testing.T) {
	server, s := setupTestServer(t)
	seedUser(t, s, "mario", model.RoleVolunteer)
	token := login(t, server, "mario", testPassword)

	req, _ := authRequest("PUT", server.URL+"/api/user/password", token, map[string]string{
		"current_password": "wrong",
		"new_password":     "newsecret",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong current password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("PUT", server.URL+"/api/user/password", token, map[string]string{
		"current_password": testPassword,
		"new_password":     "newsecret",
	})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	login(t, server, "mario", "newsecret")
}

func TestRoleGating(t *testing.T) {
	server, s := setupTestServer(t)
	seedUser(t, s, "mario", model.RoleVolunteer)
	token := login(t, server, "mario", testPassword)

	cases := []struct {
		method string
		path   string
	}{
		{"GET", "/api/inventory"},
		{"POST", "/api/inventory"},
		{"GET", "/api/checklists"},
		{"GET", "/api/users"},
		{"GET", "/api/stats/dashboard"},
		{"POST", "/api/qrcodes"},
	}
	for _, tc := range cases {
		req, _ := authRequest(tc.method, server.URL+tc.path, token, nil)
		resp, _ := http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s %s: expected 403 for volunteer, got %d", tc.method, tc.path, resp.StatusCode)
		}
		resp.Body.Close()

		req, _ = http.NewRequest(tc.method, server.URL+tc.path, nil)
		resp, _ = http.DefaultClient.Do(req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 unauthenticated, got %d", tc.method, tc.path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

// brokenSessionStore reports an infrastructure failure on session lookups.
type brokenSessionStore struct {
	store.Store
}

func (s *brokenSessionStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	return nil, errors.New("disk I/O error")
}

func TestAuthMiddlewareSessionStoreFailure(t *testing.T) {
	token, _, _, err := auth.NewSessionToken(testJWTSecret, 1, "mario", model.RoleVolunteer)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	mw := AuthMiddleware(testJWTSecret, &brokenSessionStore{Store: store.NewMemory()})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the handler despite store failure")
	}))

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// A broken store is a server fault, not a stale session.
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for failing session store, got %d", rec.Code)
	}
}

func TestUserManagement(t *testing.T) {
	server, s := setupTestServer(t)
	admin := seedUser(t, s, "admin", model.RoleAdmin)
	volunteer := seedUser(t, s, "mario", model.RoleVolunteer)
	adminToken := login(t, server, "admin", testPassword)
	volunteerToken := login(t, server, "mario", testPassword)

	// Promote the volunteer to warehouse manager.
	req, _ := authRequest("PUT", fmt.Sprintf("%s/api/users/%d", server.URL, volunteer.ID),
		adminToken, map[string]string{"role": model.RoleWarehouse})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from role update, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("PUT", fmt.Sprintf("%s/api/users/%d", server.URL, volunteer.ID),
		adminToken, map[string]string{"role": "superuser"})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown role, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Admins cannot lock themselves out.
	req, _ = authRequest("DELETE", fmt.Sprintf("%s/api/users/%d", server.URL, admin.ID), adminToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for self-deactivation, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Deactivate the other account; its live session dies with it.
	req, _ = authRequest("DELETE", fmt.Sprintf("%s/api/users/%d", server.URL, volunteer.ID), adminToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from deactivation, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = authRequest("GET", server.URL+"/api/user", volunteerToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for deactivated account, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The listing only shows active accounts.
	req, _ = authRequest("GET", server.URL+"/api/users", adminToken, nil)
	resp, _ = http.DefaultClient.Do(req)
	var users []model.User
	json.NewDecoder(resp.Body).Decode(&users)
	resp.Body.Close()
	if len(users) != 1 {
		t.Errorf("expected 1 active user, got %d", len(users))
	}
}

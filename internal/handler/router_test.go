package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/devanshg/splitmate/internal/auth"
	"github.com/devanshg/splitmate/internal/service"
	"github.com/devanshg/splitmate/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := NewRouter(RouterConfig{
		Auth:           NewAuthHandler(service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)),
		Expenses:       NewExpenseHandler(service.NewExpenseService(store, nil)),
		Groups:         NewGroupHandler(service.NewGroupService(store)),
		JWTManager:     jwtManager,
		AllowedOrigins: []string{"*"},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, testEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func registerUser(t *testing.T, srv *httptest.Server, email, name string) string {
	t.Helper()
	status, env := doJSON(t, srv, http.MethodPost, "/api/users/register", "", map[string]string{
		"email": email, "name": name, "password": "hunter2hunter2",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d, message = %q", status, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("register returned no token: %v %s", err, env.Data)
	}
	return data.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "alice@example.com", "Alice")

	// Duplicate email conflicts.
	status, env := doJSON(t, srv, http.MethodPost, "/api/users/register", "", map[string]string{
		"email": "alice@example.com", "name": "Alice", "password": "hunter2hunter2",
	})
	if status != http.StatusConflict || env.Success {
		t.Errorf("duplicate register = %d %+v", status, env)
	}

	status, env = doJSON(t, srv, http.MethodPost, "/api/users/register", "", map[string]string{
		"email": "bob@example.com", "name": "Bob", "password": "short",
	})
	if status != http.StatusBadRequest {
		t.Errorf("weak password register = %d %+v", status, env)
	}

	status, _ = doJSON(t, srv, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "alice@example.com", "password": "hunter2hunter2",
	})
	if status != http.StatusOK {
		t.Errorf("login status = %d", status)
	}
	status, _ = doJSON(t, srv, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("bad login status = %d", status)
	}
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	status, env := doJSON(t, srv, http.MethodGet, "/api/expenses", "", nil)
	if status != http.StatusUnauthorized || env.Success {
		t.Errorf("unauthenticated request = %d %+v", status, env)
	}
	status, _ = doJSON(t, srv, http.MethodGet, "/api/expenses", "garbage-token", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("garbage token request = %d", status)
	}
}

func TestExpenseEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "alice@example.com", "Alice")

	// Group setup.
	status, env := doJSON(t, srv, http.MethodPost, "/api/groups", token, map[string]any{
		"name": "Trip", "members": []string{"Alice", "Bob"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create group = %d %q", status, env.Message)
	}
	var group struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &group); err != nil {
		t.Fatalf("failed to decode group: %v", err)
	}

	// Equal split with a string amount.
	status, env = doJSON(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{
		"groupId": group.ID, "description": "Dinner", "amount": "90.00",
		"date": "2025-06-01", "paidBy": "Alice", "participants": []string{"Alice", "Bob"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create expense = %d %q", status, env.Message)
	}
	var created struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode expense: %v", err)
	}
	if created.Amount != 90 {
		t.Errorf("amount = %v, want 90", created.Amount)
	}

	// Bad amount type is a 400 before any domain logic runs.
	status, env = doJSON(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{
		"groupId": group.ID, "description": "Dinner", "amount": "ninety",
		"date": "2025-06-01", "paidBy": "Alice", "participants": []string{"Alice"},
	})
	if status != http.StatusBadRequest || env.Message != "invalid amount type" {
		t.Errorf("bad amount = %d %q", status, env.Message)
	}

	// Missing groupId on the group route.
	status, env = doJSON(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{
		"description": "Dinner", "amount": 90, "date": "2025-06-01",
		"paidBy": "Alice", "participants": []string{"Alice"},
	})
	if status != http.StatusBadRequest || env.Message != "required fields missing" {
		t.Errorf("missing groupId = %d %q", status, env.Message)
	}

	// Advanced expense.
	status, env = doJSON(t, srv, http.MethodPost, "/api/expenses/advanced", token, map[string]any{
		"groupId": group.ID, "description": "Hotel", "amount": 200, "date": "2025-06-02",
		"payers": []map[string]any{
			{"name": "Alice", "amountPaid": 120},
			{"name": "Bob", "amountPaid": "80"},
		},
		"splits": []map[string]any{
			{"participant": "Alice", "amount": 100},
			{"participant": "Bob", "amount": 100},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create advanced = %d %q", status, env.Message)
	}
	var advanced struct {
		PaidBy    string `json:"paidBy"`
		SplitType string `json:"splitType"`
	}
	if err := json.Unmarshal(env.Data, &advanced); err != nil {
		t.Fatalf("failed to decode expense: %v", err)
	}
	if advanced.PaidBy != "Multiple" || advanced.SplitType != "unequal" {
		t.Errorf("advanced = %+v", advanced)
	}

	// Listing sees both, group listing sees both, personal sees none.
	status, env = doJSON(t, srv, http.MethodGet, "/api/expenses", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list all = %d", status)
	}
	var all []json.RawMessage
	if err := json.Unmarshal(env.Data, &all); err != nil || len(all) != 2 {
		t.Errorf("list all = %s", env.Data)
	}
	status, env = doJSON(t, srv, http.MethodGet, "/api/expenses/group/"+group.ID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("list group = %d %q", status, env.Message)
	}
	status, env = doJSON(t, srv, http.MethodGet, "/api/expenses/personal", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list personal = %d", status)
	}
	var personal []json.RawMessage
	if err := json.Unmarshal(env.Data, &personal); err != nil || len(personal) != 0 {
		t.Errorf("list personal = %s", env.Data)
	}

	// Update and delete round out the lifecycle.
	status, env = doJSON(t, srv, http.MethodPut, "/api/expenses/"+created.ID, token, map[string]any{
		"description": "Dinner out",
	})
	if status != http.StatusOK {
		t.Fatalf("update = %d %q", status, env.Message)
	}
	status, env = doJSON(t, srv, http.MethodDelete, "/api/expenses/"+created.ID, token, nil)
	if status != http.StatusOK || env.Message != "Expense deleted successfully" {
		t.Errorf("delete = %d %q", status, env.Message)
	}
	status, _ = doJSON(t, srv, http.MethodGet, "/api/expenses/"+created.ID, token, nil)
	if status != http.StatusNotFound {
		t.Errorf("get deleted = %d", status)
	}

	// Malformed ids fail validation, not lookup.
	status, _ = doJSON(t, srv, http.MethodGet, "/api/expenses/not-a-uuid", token, nil)
	if status != http.StatusBadRequest {
		t.Errorf("malformed id = %d", status)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz = %d", resp.StatusCode)
	}
}

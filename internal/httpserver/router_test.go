package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfoliohub/internal/events"
	"portfoliohub/internal/handler"
	"portfoliohub/internal/service"
	"portfoliohub/internal/service/auth"
	"portfoliohub/internal/session"
	"portfoliohub/internal/store"
	"portfoliohub/pkg/trace"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	st := store.New(store.WithSeed(store.DemoSeed()))
	notifier := events.NewNotifier(nil, log)

	authService, err := auth.NewService(auth.Config{
		JWTSecret:    "test-secret",
		DemoPassword: "password",
	}, auth.DemoDirectory(), st, session.NewMemoryRevoker(), log)
	require.NoError(t, err)

	portfolio := service.NewPortfolioService(st, notifier, log)
	h := Handlers{
		Auth:      handler.NewAuthHandler(authService, log),
		Project:   handler.NewProjectHandler(portfolio, log),
		Dashboard: handler.NewDashboardHandler(portfolio),
		Directory: handler.NewDirectoryHandler(service.NewDirectoryService(st, notifier, log), log),
		Settings:  handler.NewSettingsHandler(service.NewSettingsService(st, notifier, log), log),
	}
	return NewRouter(h, authService, Backends{}, log)
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/login", "", gin.H{"email": email, "password": "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(trace.HeaderName))

	w = do(t, r, http.MethodHead, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTraceIDPropagated(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(trace.HeaderName, "abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc123", w.Header().Get(trace.HeaderName))
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)

	testCases := []struct {
		name     string
		body     any
		wantCode int
	}{
		{"ok", gin.H{"email": "Admin@Company.com", "password": "password"}, http.StatusOK},
		{"wrong password", gin.H{"email": "admin@company.com", "password": "nope"}, http.StatusUnauthorized},
		{"unknown email", gin.H{"email": "ghost@company.com", "password": "password"}, http.StatusUnauthorized},
		{"missing fields", gin.H{"email": "admin@company.com"}, http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/login", "", tc.body)
			assert.Equal(t, tc.wantCode, w.Code, w.Body.String())
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing token", decode(t, w)["error"])

	w = do(t, r, http.MethodGet, "/projects", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", decode(t, w)["error"])
}

func TestMeAndLogout(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "manager@company.com")

	w := do(t, r, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Manager", user["role"])

	w = do(t, r, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, auth.ErrTokenRevoked.Error(), decode(t, w)["error"])
}

func TestProjectLifecycleUpdatesBudget(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin@company.com")

	w := do(t, r, http.MethodGet, "/dashboard/budget", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	before := decode(t, w)["total_budget"].(float64)

	w = do(t, r, http.MethodPost, "/projects", token, gin.H{
		"project_name":       "Billing Revamp",
		"department":         "Engineering",
		"execution_phase":    "Planning",
		"status":             "Green",
		"budget_approved":    "$1,000,000",
		"budget_spent_ytd":   400000,
		"target_launch_date": "2024-08-15",
		"employees":          4,
		"contractors":        2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Equal(t, "Q3 2024", created["target_launch_quarter"])

	w = do(t, r, http.MethodGet, "/dashboard/budget", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1_000_000, decode(t, w)["total_budget"])

	w = do(t, r, http.MethodPatch, "/projects/"+id, token, gin.H{"budget_approved": 1_500_000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1_100_000, decode(t, w)["budget_remaining"])

	w = do(t, r, http.MethodGet, "/dashboard/budget", token, nil)
	assert.Equal(t, before+1_500_000, decode(t, w)["total_budget"])

	w = do(t, r, http.MethodGet, "/projects/"+id, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/projects/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/projects/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProjectValidation(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin@company.com")

	w := do(t, r, http.MethodPost, "/projects", token, gin.H{
		"project_name": "",
		"status":       "Red",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "validation failed", body["error"])
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "project_name")
	assert.Contains(t, fields, "status_justification")
}

func TestListProjectsQuery(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "member@company.com")

	w := do(t, r, http.MethodGet, "/projects?status=Green&sort=budget_approved&order=desc", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode(t, w)
	assert.EqualValues(t, 2, page["total"])
	items := page["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Next-Gen Mobile Platform", items[0].(map[string]any)["project_name"])

	w = do(t, r, http.MethodGet, "/projects?page=x", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/projects?sort=color", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPermissionDenied(t *testing.T) {
	r := newTestRouter(t)
	member := login(t, r, "member@company.com")
	manager := login(t, r, "manager@company.com")

	testCases := []struct {
		name   string
		token  string
		method string
		path   string
		body   any
	}{
		{"member deletes project", member, http.MethodDelete, "/projects/1", nil},
		{"member lists users", member, http.MethodGet, "/users", nil},
		{"manager resets password", manager, http.MethodPost, "/users/2/reset-password", nil},
		{"manager edits fiscal", manager, http.MethodPut, "/settings/fiscal", gin.H{}},
		{"member toggles column", member, http.MethodPost, "/settings/columns/status/toggle", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		})
	}
}

func TestProjectSelection(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "member@company.com")

	w := do(t, r, http.MethodGet, "/projects/selection", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["project"])

	w = do(t, r, http.MethodPut, "/projects/selection", token, gin.H{"project_id": "2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	selected := decode(t, w)["project"].(map[string]any)
	assert.Equal(t, "Cloud Infrastructure Modernization", selected["project_name"])

	w = do(t, r, http.MethodPut, "/projects/selection", token, gin.H{"project_id": "404"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, "/projects/selection", token, gin.H{"project_id": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["project"])
}

func TestSettingsRoutes(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin@company.com")

	w := do(t, r, http.MethodPost, "/settings/fiscal/quarters/2/start", token, gin.H{"date": "2024-04-15"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	quarters := decode(t, w)["quarters"].(map[string]any)
	q2 := quarters["q2"].(map[string]any)
	assert.Equal(t, "2024-04-15", q2["start"])
	assert.Equal(t, "2024-07-14", q2["end"])

	w = do(t, r, http.MethodPost, "/settings/fiscal/quarters/5/start", token, gin.H{"date": "2024-04-15"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/settings/fiscal/quarters/x/end", token, gin.H{"date": "2024-04-15"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/settings/phases/1/move", token, gin.H{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/settings/columns/nope/toggle", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/settings/columns/visible", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDirectoryRoutes(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin@company.com")

	w := do(t, r, http.MethodPost, "/users", token, gin.H{
		"name":       "Ana Lee",
		"email":      "ana.lee@company.com",
		"role":       "Manager",
		"department": "Product",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode(t, w)
	assert.Equal(t, true, user["is_active"])
	assert.Equal(t, true, user["needs_password_reset"])

	w = do(t, r, http.MethodPost, "/users", token, gin.H{"name": "X", "email": "not-an-email", "role": "Manager"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/users/"+user["id"].(string)+"/reset-password", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["is_first_login"])

	w = do(t, r, http.MethodPost, "/departments", token, gin.H{"name": "Security"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodDelete, "/departments/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

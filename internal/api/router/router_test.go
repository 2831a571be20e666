package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/api/router"
	"taskboard/internal/pkg/config"
	"taskboard/internal/testutil"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Detail  string          `json:"detail"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, rateLimit bool) *client {
	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: gin.TestMode},
		Session:   config.SessionConfig{Secret: testutil.SessionSecret, CookieName: "session", MaxAge: 3600},
		RateLimit: config.RateLimitConfig{Enabled: rateLimit, PerMinute: 1, Burst: 2},
	}
	return &client{t: t, engine: router.Setup(cfg, testutil.NewDB(t), testutil.NewSessions())}
}

func (cl *client) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	cl.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(cl.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	w := httptest.NewRecorder()
	cl.engine.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			cl.cookie = c
			if c.MaxAge < 0 {
				cl.cookie = nil
			}
		}
	}

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(cl.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealthAndNoRoute(t *testing.T) {
	cl := newClient(t, false)

	w, _ := cl.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w, env := cl.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", env.Message)
}

func TestSessionFlow(t *testing.T) {
	cl := newClient(t, false)

	w, env := cl.do(http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", env.Message)

	w, env = cl.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, cl.cookie)
	assert.True(t, cl.cookie.HttpOnly)
	auth := decode[struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}](t, env)
	assert.Equal(t, "alice", auth.User.Username)

	w, env = cl.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"username":"alice"`)

	// 已登录访问登录页跳转 dashboard
	w, _ = cl.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/app/dashboard", w.Header().Get("Location"))

	w, env = cl.do(http.MethodPost, "/api/projects", map[string]string{"name": "Launch"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	project := decode[struct {
		ID string `json:"id"`
	}](t, env)
	require.NotEmpty(t, project.ID)

	w, env = cl.do(http.MethodPost, "/api/tasks", map[string]string{"project_id": project.ID, "title": "Write docs"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = cl.do(http.MethodGet, "/api/projects/"+project.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":1,"todo":1,"in_progress":0,"done":0}`, string(env.Data))

	w, env = cl.do(http.MethodGet, "/api/tasks/board?project_id="+project.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[map[string][]json.RawMessage](t, env)
	assert.Len(t, board["todo"], 1)
	assert.Empty(t, board["done"])

	w, _ = cl.do(http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, cl.cookie)

	w, _ = cl.do(http.MethodGet, "/app/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestErrorResponses(t *testing.T) {
	cl := newClient(t, false)
	w, _ := cl.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code)

	cases := []struct {
		name    string
		method  string
		path    string
		body    interface{}
		status  int
		message string
	}{
		{"short project name", http.MethodPost, "/api/projects", map[string]string{"name": "ab"}, http.StatusBadRequest, "Project name must be at least 3 characters long"},
		{"unknown project", http.MethodGet, "/api/projects/missing", nil, http.StatusNotFound, "Project not found"},
		{"unknown task", http.MethodGet, "/api/tasks/missing", nil, http.StatusNotFound, "Task not found"},
		{"bad label color", http.MethodPost, "/api/labels", map[string]string{"name": "Bug", "color": "red"}, http.StatusBadRequest, "Invalid color format. Use hex format like #FF5733"},
		{"duplicate register", http.MethodPost, "/api/auth/register", map[string]string{"username": "alice", "password": "password123"}, http.StatusConflict, "Username already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := cl.do(tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, env.Message)
		})
	}
}

func TestLoginRateLimited(t *testing.T) {
	cl := newClient(t, true)
	body := map[string]string{"username": "nobody", "password": "password123"}

	w, _ := cl.do(http.MethodPost, "/api/auth/login", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = cl.do(http.MethodPost, "/api/auth/login", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := cl.do(http.MethodPost, "/api/auth/login", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests, please try again later", env.Message)
}

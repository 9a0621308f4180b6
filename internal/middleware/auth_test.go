package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-secret"
	return cfg
}

func tokenFor(t *testing.T, cfg *config.Config, id uint, role model.UserRole) string {
	t.Helper()
	u := &model.User{Role: role, Email: "kofi@example.gh"}
	u.ID = id
	token, err := util.GenerateJWT(u, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func newRouter(cfg *config.Config, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(cfg)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})
	r.GET("/x", chain...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg)
	token := tokenFor(t, cfg, 3, model.Student)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"missing", func(req *http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"query", func(req *http.Request) { req.URL.RawQuery = "token=" + token }, http.StatusOK},
		{"garbage", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg, RoleMiddleware(model.Counselor))

	tests := []struct {
		role   model.UserRole
		status int
	}{
		{model.Counselor, http.StatusOK},
		{model.Admin, http.StatusOK},
		{model.Student, http.StatusForbidden},
		{model.Parent, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, 1, tt.role))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

type fakeActivity struct {
	mu   sync.Mutex
	seen []uint
	done chan struct{}
}

func (f *fakeActivity) UpdateLastSeen(id uint) error {
	f.mu.Lock()
	f.seen = append(f.seen, id)
	f.mu.Unlock()
	close(f.done)
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	cfg := testConfig()
	repo := &fakeActivity{done: make(chan struct{})}
	r := newRouter(cfg, ActivityMiddleware(repo))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, 9, model.Teacher))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("activity not recorded")
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, []uint{9}, repo.seen)
}

package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db, mock
}

func serveHealth(t *testing.T, c *HealthController) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()
	r := gin.New()
	r.GET("/health", c.HealthCheck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHealthCheck(t *testing.T) {
	db, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mock.ExpectPing()
	w, resp := serveHealth(t, NewHealthController(db, rdb))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{
		"status":     "ok",
		"components": map[string]interface{}{"database": "up", "cache": "up"},
	}, resp.Data)

	mr.Close()
	mock.ExpectPing()
	_, resp = serveHealth(t, NewHealthController(db, rdb))
	components := resp.Data.(map[string]interface{})["components"].(map[string]interface{})
	assert.Equal(t, "down", components["cache"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	db, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w, resp := serveHealth(t, NewHealthController(db, rdb))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Database unavailable", resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{util.ErrReportNotFound, http.StatusNotFound},
		{fmt.Errorf("submit: %w", util.ErrAssessmentAlreadyCompleted), http.StatusConflict},
		{util.ErrAccountDisabled, http.StatusUnauthorized},
		{util.ErrPermissionDenied, http.StatusForbidden},
		{fmt.Errorf("question dual_99: %w", scoring.ErrUnknownQuestion), http.StatusBadRequest},
		{util.ErrUnsupportedFormat, http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(ctx, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestParseID(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok := parseID(ctx, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ctx.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := parseID(ctx, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestCurrentUser_Unauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	assert.Nil(t, currentUser(ctx))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/pkg/database"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app *App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = "app-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.RateLimit.MaxRequests = 10000
	cfg.RateLimit.WindowMinutes = 1
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	a, err := newApp(cfg, db, rdb)
	require.NoError(t, err)
	return &testServer{app: a, db: db, mr: mr}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
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
	s.app.Router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// signup 注册并登录，返回 token 和用户 ID
func (s *testServer) signup(t *testing.T, email string, role model.UserRole) (string, uint) {
	t.Helper()
	w, _ := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"firstName": "Kwame",
		"lastName":  "Mensah",
		"email":     email,
		"password":  "secret123",
		"role":      string(role),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return s.login(t, email)
}

func (s *testServer) login(t *testing.T, email string) (string, uint) {
	t.Helper()
	w, resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.Token, data.User.ID
}

func (s *testServer) admin(t *testing.T) string {
	t.Helper()
	_, id := s.signup(t, "admin@example.com", model.Teacher)
	require.NoError(t, s.db.Model(&model.User{}).Where("id = ?", id).Update("role", model.Admin).Error)
	token, _ := s.login(t, "admin@example.com")
	return token
}

// answerAll 按类别给问卷的每道题打分
func (s *testServer) answerAll(t *testing.T, token string, at scoring.AssessmentType, byCategory map[scoring.Category]int) []scoring.Response {
	t.Helper()
	w, resp := s.do(t, http.MethodGet, "/api/assessments/questions/"+string(at), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var set scoring.QuestionSet
	require.NoError(t, json.Unmarshal(resp.Data, &set))
	out := make([]scoring.Response, 0, len(set.Questions))
	for _, q := range set.Questions {
		out = append(out, scoring.Response{QuestionID: q.ID, Score: byCategory[q.Category]})
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","components":{"database":"up","cache":"up"}}`, string(resp.Data))

	s.mr.Close()
	_, resp = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Contains(t, string(resp.Data), `"cache":"down"`)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/api/assessments/types", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/assessments/types", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_RejectsAdminAndDuplicates(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "ama@example.com", model.Student)

	body := map[string]string{"firstName": "Ama", "lastName": "Owusu", "email": "ama@example.com", "password": "secret123"}
	w, _ := s.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["email"] = "boss@example.com"
	body["role"] = "admin"
	w, _ = s.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ama@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStudentJourney(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.signup(t, "kofi@example.com", model.Student)

	w, resp := s.do(t, http.MethodGet, "/api/assessments/types", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var types []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &types))
	assert.Len(t, types, 3)

	w, _ = s.do(t, http.MethodGet, "/api/assessments/questions/mbti", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 生成报告前必须至少完成一份问卷
	w, _ = s.do(t, http.MethodPost, "/api/reports/generate", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sternberg := s.answerAll(t, token, scoring.Sternberg, map[scoring.Category]int{
		scoring.Analytical: 5, scoring.Creative: 2, scoring.Practical: 3,
	})
	submit := map[string]interface{}{"type": scoring.Sternberg, "responses": sternberg}
	w, resp = s.do(t, http.MethodPost, "/api/assessments/submit", token, submit)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var assessment model.Assessment
	require.NoError(t, json.Unmarshal(resp.Data, &assessment))
	assert.Equal(t, userID, assessment.UserID)

	w, _ = s.do(t, http.MethodPost, "/api/assessments/submit", token, submit)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/assessments/%d", assessment.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodPost, "/api/reports/generate", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var report model.Report
	require.NoError(t, json.Unmarshal(resp.Data, &report))
	profile := report.OverallProfile.Data()
	assert.Equal(t, "analytical", profile.PrimaryStyle)
	assert.Contains(t, report.EducationMapping.Data().SHSTracks, "General Science")

	w, resp = s.do(t, http.MethodGet, "/api/reports/latest", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var latest model.Report
	require.NoError(t, json.Unmarshal(resp.Data, &latest))
	assert.Equal(t, report.ID, latest.ID)

	reportPath := fmt.Sprintf("/api/reports/%d", report.ID)
	w, _ = s.do(t, http.MethodGet, reportPath+"/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Analytical")

	w, _ = s.do(t, http.MethodGet, reportPath+"/export?format=pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, reportPath+"/export", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, resp = s.do(t, http.MethodGet, reportPath+"/exports", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var exports []model.ReportExport
	require.NoError(t, json.Unmarshal(resp.Data, &exports))
	require.Len(t, exports, 1)
	assert.Equal(t, "png", exports[0].Format)
	assert.FileExists(t, filepath.Join(s.app.Config.Storage.LocalPath, filepath.FromSlash(exports[0].ObjectKey)))

	w, _ = s.do(t, http.MethodPost, reportPath+"/reflection", token, map[string]interface{}{"content": "  ", "rating": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, reportPath+"/reflection", token, map[string]interface{}{"content": "This matches how I study.", "rating": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = s.do(t, http.MethodGet, reportPath+"/reflections", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reflections []model.Reflection
	require.NoError(t, json.Unmarshal(resp.Data, &reflections))
	require.Len(t, reflections, 1)
	assert.Equal(t, "This matches how I study.", reflections[0].Content)

	other, _ := s.signup(t, "yaw@example.com", model.Student)
	w, _ = s.do(t, http.MethodGet, reportPath, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEducationRoutes(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "esi@example.com", model.Counselor)

	w, _ := s.do(t, http.MethodGet, "/api/education/mapping", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/education/mapping?primary=creative", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var m scoring.EducationMapping
	require.NoError(t, json.Unmarshal(resp.Data, &m))
	assert.False(t, m.IsEmpty())

	w, resp = s.do(t, http.MethodGet, "/api/education/mapping?primary=system_1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &m))
	assert.True(t, m.IsEmpty())

	w, _ = s.do(t, http.MethodGet, "/api/education/study-tips", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/education/institutions", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	studentToken, studentID := s.signup(t, "abena@example.com", model.Student)
	parentToken, parentID := s.signup(t, "parent@example.com", model.Parent)
	adminToken := s.admin(t)

	w, _ := s.do(t, http.MethodGet, "/api/admin/users", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/admin/users?role=student", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		List  []model.User `json:"list"`
		Total int64        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(1), page.Total)

	// 关联前家长无权查看学生
	studentPath := fmt.Sprintf("/api/users/%d", studentID)
	w, _ = s.do(t, http.MethodGet, studentPath, parentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	linkPath := fmt.Sprintf("/api/admin/users/%d/students", parentID)
	w, _ = s.do(t, http.MethodPost, linkPath, adminToken, map[string]interface{}{"studentIds": []uint{parentID}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, linkPath, adminToken, map[string]interface{}{"studentIds": []uint{studentID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(t, http.MethodGet, studentPath, parentToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	answers := s.answerAll(t, studentToken, scoring.Kolb, map[scoring.Category]int{
		scoring.ConcreteExperience: 4, scoring.ReflectiveObservation: 2,
		scoring.AbstractConceptualization: 3, scoring.ActiveExperimentation: 5,
	})
	w, _ = s.do(t, http.MethodPost, "/api/assessments/submit", studentToken, map[string]interface{}{"type": scoring.Kolb, "responses": answers})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/assessments/my-assessments", parentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"type":"kolb"`)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", studentID), adminToken, map[string]string{"school": "Achimota School"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", studentID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "abena@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/admin/users/9999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyConfig_ReloadsEngine(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "efua@example.com", model.Student)

	answers := s.answerAll(t, token, scoring.DualProcess, map[scoring.Category]int{scoring.System1: 4, scoring.System2: 2})
	answers = append(answers, scoring.Response{QuestionID: "dual_1", Score: 9})
	body := map[string]interface{}{"type": scoring.DualProcess, "responses": answers}

	next := *s.app.Config
	next.Assessment.StrictQuestions = true
	next.Assessment.ReportCacheTTLMinutes = 5
	s.app.applyConfig(&next)
	assert.True(t, s.app.services.engine.Get().Strict())
	assert.Equal(t, 5*time.Minute, s.app.services.cache.TTL())

	w, _ := s.do(t, http.MethodPost, "/api/assessments/submit", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 题库文件不可用时保留原引擎
	broken := next
	broken.Assessment.QuestionBankPath = filepath.Join(t.TempDir(), "missing.yaml")
	s.app.applyConfig(&broken)
	assert.True(t, s.app.services.engine.Get().Strict())
	assert.Equal(t, scoring.DefaultBank().Types(), s.app.services.engine.Get().Bank().Types())

	lenient := next
	lenient.Assessment.StrictQuestions = false
	s.app.applyConfig(&lenient)
	w, _ = s.do(t, http.MethodPost, "/api/assessments/submit", token, body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

const gritBank = `
assessments:
  - type: grit
    title: Grit Scale
    categories: [perseverance, passion]
    questions:
      - id: grit_1
        text: I finish whatever I begin.
        category: perseverance
`

func TestBankReloader_PicksUpEditedFile(t *testing.T) {
	s := newTestServer(t)
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(gritBank), 0o644))

	s.app.bank.debounce = 50 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.app.bank.Start(ctx)

	next := *s.app.Config
	next.Assessment.QuestionBankPath = path
	s.app.applyConfig(&next)
	questions, err := s.app.services.engine.Get().Bank().Questions("grit")
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	// 路径不变，只改文件内容
	time.Sleep(100 * time.Millisecond)
	edited := gritBank + `      - id: grit_2
        text: I stay interested in the same goals for years.
        category: passion
`
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))
	require.Eventually(t, func() bool {
		qs, err := s.app.services.engine.Get().Bank().Questions("grit")
		return err == nil && len(qs) == 2
	}, 3*time.Second, 20*time.Millisecond)

	// 改坏的文件不替换当前引擎
	require.NoError(t, os.WriteFile(path, []byte("assessments: []"), 0o644))
	time.Sleep(300 * time.Millisecond)
	qs, err := s.app.services.engine.Get().Bank().Questions("grit")
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	next := *s.app.Config
	next.CORS.AllowedOrigins = []string{"https://thinking.example.gh"}
	s.app.applyConfig(&next)

	w = httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotificationsWebSocket(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.signup(t, "adjoa@example.com", model.Student)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.app.services.hub.Start(ctx))

	srv := httptest.NewServer(s.app.Router)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/notifications/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	answers := s.answerAll(t, token, scoring.Kolb, map[scoring.Category]int{
		scoring.ConcreteExperience: 3, scoring.ReflectiveObservation: 4,
		scoring.AbstractConceptualization: 2, scoring.ActiveExperimentation: 3,
	})
	// 连接注册是异步的，等注册完成再提交
	require.Eventually(t, func() bool { return s.app.services.hub.Connected(userID) == 1 }, time.Second, 10*time.Millisecond)
	w, _ := s.do(t, http.MethodPost, "/api/assessments/submit", token, map[string]interface{}{"type": scoring.Kolb, "responses": answers})
	require.Equal(t, http.StatusCreated, w.Code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt struct {
		Type string `json:"type"`
	}
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, "ASSESSMENT_SUBMITTED", evt.Type)
}

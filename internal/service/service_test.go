package service

import (
	"context"
	"testing"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/pkg/database"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	cfg         *config.Config
	db          *gorm.DB
	mr          *miniredis.Miniredis
	users       *repository.UserRepository
	auth        *AuthService
	userSvc     *UserService
	assessments *AssessmentService
	reports     *ReportService
	exports     *ExportService
	education   *EducationService
	engine      *EngineHolder
	cache       *ReportCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

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
	cfg.JWT.Secret = "service-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	engine, err := BuildEngine(cfg.Assessment)
	require.NoError(t, err)
	holder := NewEngineHolder(engine)
	cache := NewReportCache(rdb, cfg.Assessment.ReportCacheTTL())

	userRepo := repository.NewUserRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	reflectionRepo := repository.NewReflectionRepository(db)

	userSvc := NewUserService(userRepo)
	reports := NewReportService(reportRepo, assessmentRepo, reflectionRepo, userSvc, holder, cache)
	renderer, err := NewRenderService()
	require.NoError(t, err)

	return &testEnv{
		cfg:         cfg,
		db:          db,
		mr:          mr,
		users:       userRepo,
		auth:        NewAuthService(userRepo, cfg),
		userSvc:     userSvc,
		assessments: NewAssessmentService(assessmentRepo, userSvc, holder, cache),
		reports:     reports,
		exports:     NewExportService(reports, renderer, NewStorageService(cfg), reportRepo),
		education:   NewEducationService(holder),
		engine:      holder,
		cache:       cache,
	}
}

func (e *testEnv) register(t *testing.T, email string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{FirstName: "Akua", LastName: "Boateng", Email: email, Password: "secret123", Role: role}
	require.NoError(t, e.auth.Register(u))
	return u
}

// answers 按类别给整套问卷打同一个分
func (e *testEnv) answers(t *testing.T, at scoring.AssessmentType, byCategory map[scoring.Category]int) []scoring.Response {
	t.Helper()
	questions, err := e.engine.Get().Bank().Questions(at)
	require.NoError(t, err)
	out := make([]scoring.Response, 0, len(questions))
	for _, q := range questions {
		out = append(out, scoring.Response{QuestionID: q.ID, Score: byCategory[q.Category]})
	}
	return out
}

func (e *testEnv) submit(t *testing.T, userID uint, at scoring.AssessmentType, byCategory map[scoring.Category]int) *model.Assessment {
	t.Helper()
	a, err := e.assessments.Submit(context.Background(), userID, at, e.answers(t, at, byCategory))
	require.NoError(t, err)
	return a
}

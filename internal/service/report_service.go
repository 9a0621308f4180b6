package service

import (
	"context"
	"errors"
	"strings"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/internal/util"
	"thinking_styles_backend/pkg/logger"
	"thinking_styles_backend/pkg/monitoring"
	"thinking_styles_backend/pkg/tracing"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxReflectionLength = 1000

type ReportService struct {
	Repo           *repository.ReportRepository
	AssessmentRepo *repository.AssessmentRepository
	ReflectionRepo *repository.ReflectionRepository
	Users          *UserService
	Engine         *EngineHolder
	Cache          *ReportCache
	Notifier       Notifier
}

func NewReportService(
	repo *repository.ReportRepository,
	assessmentRepo *repository.AssessmentRepository,
	reflectionRepo *repository.ReflectionRepository,
	users *UserService,
	engine *EngineHolder,
	cache *ReportCache,
) *ReportService {
	return &ReportService{
		Repo:           repo,
		AssessmentRepo: assessmentRepo,
		ReflectionRepo: reflectionRepo,
		Users:          users,
		Engine:         engine,
		Cache:          cache,
	}
}

// Generate 汇总用户全部问卷生成一份新报告
func (s *ReportService) Generate(ctx context.Context, userID uint) (*model.Report, error) {
	ctx, span := tracing.StartSpan(ctx, "ReportService.Generate")
	defer span.End()

	assessments, err := s.AssessmentRepo.ListForReport(userID)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, util.ErrNoAssessments
	}
	span.SetAttributes(attribute.Int("report.assessments", len(assessments)))

	engine := s.Engine.Get()
	ids := make([]uint, 0, len(assessments))
	perAssessment := make([]scoring.CategoryScores, 0, len(assessments))
	var all scoring.CategoryScores
	for _, a := range assessments {
		ids = append(ids, a.ID)
		scores := a.Scores.Data()
		perAssessment = append(perAssessment, scores)
		all = append(all, scores...)
	}

	profile := engine.SynthesizeProfile(perAssessment...)
	mapping := engine.MapEducation(profile.PrimaryStyle, profile.SecondaryStyle)
	if mapping.IsEmpty() {
		mapping.LearningRecommendations = fallbackRecommendations(engine.StudyTips())
	}

	report := &model.Report{
		UserID:           userID,
		AssessmentIDs:    datatypes.JSONSlice[uint](ids),
		Scores:           datatypes.NewJSONType(all),
		OverallProfile:   datatypes.NewJSONType(profile),
		EducationMapping: datatypes.NewJSONType(mapping),
		Insights:         datatypes.NewJSONType(deriveInsights(all)),
		GeneratedAt:      time.Now(),
	}
	if err := s.Repo.Create(report); err != nil {
		return nil, err
	}
	monitoring.ReportsGenerated.Inc()

	if err := s.Cache.Set(ctx, report); err != nil {
		logger.Log.Warn("写入报告缓存失败", zap.Uint("userID", userID), zap.Error(err))
	}
	logger.Log.Info("报告已生成",
		zap.Uint("userID", userID),
		zap.Uint("reportID", report.ID),
		zap.String("primaryStyle", profile.PrimaryStyle),
	)
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, userID, Event{
			Type: EventReportGenerated,
			Data: map[string]interface{}{"userId": userID, "reportId": report.ID, "primaryStyle": profile.PrimaryStyle},
		})
	}
	return report, nil
}

// fallbackRecommendations 主风格无映射时使用通用学习建议
func fallbackRecommendations(tips scoring.StudyTips) []string {
	out := make([]string, 0, scoring.MaxLearningRecommendations)
	for _, tip := range tips.PracticalTips {
		if len(out) == scoring.MaxLearningRecommendations {
			break
		}
		out = append(out, tip)
	}
	return out
}

func (s *ReportService) List(userID uint) ([]model.Report, error) {
	return s.Repo.ListByUsers([]uint{userID})
}

// MyReports 家长可见关联学生的报告
func (s *ReportService) MyReports(userID uint) ([]model.Report, error) {
	ids, err := s.Users.VisibleUserIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByUsers(ids)
}

func (s *ReportService) Get(userID, reportID uint) (*model.Report, error) {
	ids, err := s.Users.VisibleUserIDs(userID)
	if err != nil {
		return nil, err
	}
	report, err := s.Repo.FindByIDForUsers(reportID, ids)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// Latest 优先读缓存
func (s *ReportService) Latest(ctx context.Context, userID uint) (*model.Report, error) {
	cached, err := s.Cache.Get(ctx, userID)
	if err != nil {
		logger.Log.Warn("读取报告缓存失败", zap.Uint("userID", userID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	report, err := s.Repo.Latest(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}
	if err := s.Cache.Set(ctx, report); err != nil {
		logger.Log.Warn("写入报告缓存失败", zap.Uint("userID", userID), zap.Error(err))
	}
	return report, nil
}

// AddReflection 只能对自己的报告提交反思
func (s *ReportService) AddReflection(userID, reportID uint, content string, rating int) (*model.Reflection, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxReflectionLength || rating < 1 || rating > 5 {
		return nil, util.ErrInvalidReflection
	}

	if _, err := s.Repo.FindByIDForUsers(reportID, []uint{userID}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}

	reflection := &model.Reflection{
		UserID:   userID,
		ReportID: reportID,
		Content:  content,
		Rating:   rating,
	}
	if err := s.ReflectionRepo.Create(reflection); err != nil {
		return nil, err
	}
	return reflection, nil
}

func (s *ReportService) Reflections(userID, reportID uint) ([]model.Reflection, error) {
	if _, err := s.Get(userID, reportID); err != nil {
		return nil, err
	}
	return s.ReflectionRepo.ListByReport(reportID)
}

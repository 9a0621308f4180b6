package service

import (
	"context"
	"errors"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/internal/util"
	"thinking_styles_backend/pkg/logger"
	"thinking_styles_backend/pkg/monitoring"
	"thinking_styles_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo   *repository.AssessmentRepository
	Users  *UserService
	Engine *EngineHolder
	Cache  *ReportCache

	// Notifier 可选，为空时不推送
	Notifier Notifier
}

func NewAssessmentService(repo *repository.AssessmentRepository, users *UserService, engine *EngineHolder, cache *ReportCache) *AssessmentService {
	return &AssessmentService{Repo: repo, Users: users, Engine: engine, Cache: cache}
}

// AssessmentTypeInfo 问卷概览
// swagger:model AssessmentTypeInfo
type AssessmentTypeInfo struct {
	Type          scoring.AssessmentType `json:"type"`
	Title         string                 `json:"title"`
	Categories    []scoring.Category     `json:"categories"`
	QuestionCount int                    `json:"questionCount"`
}

func (s *AssessmentService) Types() []AssessmentTypeInfo {
	bank := s.Engine.Get().Bank()
	types := bank.Types()
	infos := make([]AssessmentTypeInfo, 0, len(types))
	for _, t := range types {
		set, err := bank.Set(t)
		if err != nil {
			continue
		}
		infos = append(infos, AssessmentTypeInfo{
			Type:          set.Type,
			Title:         set.Title,
			Categories:    set.Categories,
			QuestionCount: len(set.Questions),
		})
	}
	return infos
}

func (s *AssessmentService) Questions(t scoring.AssessmentType) (scoring.QuestionSet, error) {
	return s.Engine.Get().Bank().Set(t)
}

// Submit 评分并保存，同一类型每个用户只能提交一次
func (s *AssessmentService) Submit(ctx context.Context, userID uint, t scoring.AssessmentType, responses []scoring.Response) (*model.Assessment, error) {
	ctx, span := tracing.StartSpan(ctx, "AssessmentService.Submit",
		attribute.String("assessment.type", string(t)),
		attribute.Int("assessment.responses", len(responses)),
	)
	defer span.End()

	engine := s.Engine.Get()
	if !engine.Bank().Has(t) {
		return nil, scoring.ErrUnknownAssessmentType
	}

	_, err := s.Repo.FindByUserAndType(userID, t)
	if err == nil {
		return nil, util.ErrAssessmentAlreadyCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	scores, err := engine.NormalizeAndScore(t, responses)
	if err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		UserID:      userID,
		Type:        t,
		Responses:   datatypes.JSONSlice[scoring.Response](responses),
		Scores:      datatypes.NewJSONType(scores),
		CompletedAt: time.Now(),
	}
	if err := s.Repo.Create(assessment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAssessmentAlreadyCompleted
		}
		return nil, err
	}

	monitoring.AssessmentsSubmitted.WithLabelValues(string(t)).Inc()

	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		logger.Log.Warn("清除报告缓存失败", zap.Uint("userID", userID), zap.Error(err))
	}
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, userID, Event{
			Type: EventAssessmentSubmitted,
			Data: map[string]interface{}{"userId": userID, "assessmentId": assessment.ID, "type": t},
		})
	}
	return assessment, nil
}

func (s *AssessmentService) ListMine(userID uint) ([]model.Assessment, error) {
	return s.Repo.ListByUser(userID)
}

// ListVisible 家长可见关联学生的问卷
func (s *AssessmentService) ListVisible(userID uint) ([]model.Assessment, error) {
	ids, err := s.Users.VisibleUserIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByUsers(ids)
}

func (s *AssessmentService) Get(userID, id uint) (*model.Assessment, error) {
	a, err := s.Repo.FindByIDForUsers(id, []uint{userID})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	return a, nil
}

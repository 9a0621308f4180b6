package repository

import (
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/scoring"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByUserAndType(userID uint, t scoring.AssessmentType) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("user_id = ? AND type = ?", userID, t).First(&a).Error
	return &a, err
}

func (r *AssessmentRepository) FindByIDForUsers(id uint, userIDs []uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("id = ? AND user_id IN ?", id, userIDs).First(&a).Error
	return &a, err
}

// ListByUser 最新的在前
func (r *AssessmentRepository) ListByUser(userID uint) ([]model.Assessment, error) {
	return r.ListByUsers([]uint{userID})
}

func (r *AssessmentRepository) ListByUsers(userIDs []uint) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("user_id IN ?", userIDs).
		Order("completed_at desc, id desc").
		Find(&as).Error
	return as, err
}

// ListForReport 生成报告时按完成先后排列
func (r *AssessmentRepository) ListForReport(userID uint) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("user_id = ?", userID).
		Order("completed_at asc, id asc").
		Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) CountByType(userIDs []uint) (map[scoring.AssessmentType]int64, error) {
	var rows []struct {
		Type  scoring.AssessmentType
		Total int64
	}
	err := r.DB.Model(&model.Assessment{}).
		Select("type, COUNT(*) AS total").
		Where("user_id IN ?", userIDs).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[scoring.AssessmentType]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Total
	}
	return counts, nil
}

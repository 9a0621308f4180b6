package repository

import (
	"thinking_styles_backend/internal/model"

	"gorm.io/gorm"
)

type ReflectionRepository struct {
	DB *gorm.DB
}

func NewReflectionRepository(db *gorm.DB) *ReflectionRepository {
	return &ReflectionRepository{DB: db}
}

func (r *ReflectionRepository) Create(reflection *model.Reflection) error {
	return r.DB.Create(reflection).Error
}

func (r *ReflectionRepository) ListByReport(reportID uint) ([]model.Reflection, error) {
	var reflections []model.Reflection
	err := r.DB.Preload("User").
		Where("report_id = ?", reportID).
		Order("created_at asc").
		Find(&reflections).Error
	return reflections, err
}

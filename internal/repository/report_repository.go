package repository

import (
	"thinking_styles_backend/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.DB.Create(report).Error
}

// FindByIDForUsers 只返回属于 userIDs 的报告，附带反思
func (r *ReportRepository) FindByIDForUsers(id uint, userIDs []uint) (*model.Report, error) {
	var report model.Report
	err := r.DB.Preload("Reflections", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("id = ? AND user_id IN ?", id, userIDs).First(&report).Error
	return &report, err
}

func (r *ReportRepository) ListByUsers(userIDs []uint) ([]model.Report, error) {
	var reports []model.Report
	err := r.DB.Where("user_id IN ?", userIDs).
		Order("generated_at desc, id desc").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Latest(userID uint) (*model.Report, error) {
	var report model.Report
	err := r.DB.Where("user_id = ?", userID).
		Order("generated_at desc, id desc").
		First(&report).Error
	return &report, err
}

func (r *ReportRepository) CreateExport(export *model.ReportExport) error {
	return r.DB.Create(export).Error
}

func (r *ReportRepository) ListExports(reportID uint) ([]model.ReportExport, error) {
	var exports []model.ReportExport
	err := r.DB.Where("report_id = ?", reportID).Order("created_at desc").Find(&exports).Error
	return exports, err
}

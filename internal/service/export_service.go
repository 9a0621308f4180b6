package service

import (
	"bytes"
	"context"
	"fmt"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/pkg/logger"
	"thinking_styles_backend/pkg/monitoring"
	"thinking_styles_backend/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ExportService 渲染报告并上传到对象存储
type ExportService struct {
	Reports  *ReportService
	Renderer *RenderService
	Storage  *StorageService
	Repo     *repository.ReportRepository
}

func NewExportService(reports *ReportService, renderer *RenderService, storage *StorageService, repo *repository.ReportRepository) *ExportService {
	return &ExportService{Reports: reports, Renderer: renderer, Storage: storage, Repo: repo}
}

func (s *ExportService) Render(userID, reportID uint, format string) ([]byte, string, error) {
	report, err := s.Reports.Get(userID, reportID)
	if err != nil {
		return nil, "", err
	}
	return s.Renderer.Render(report, format)
}

func (s *ExportService) Export(ctx context.Context, userID, reportID uint, format string) (*model.ReportExport, error) {
	ctx, span := tracing.StartSpan(ctx, "ExportService.Export",
		attribute.Int64("report.id", int64(reportID)),
		attribute.String("export.format", format),
	)
	defer span.End()

	data, contentType, err := s.Render(userID, reportID, format)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%d/%s.%s", reportID, uuid.NewString(), format)
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, err
	}

	export := &model.ReportExport{
		ReportID:  reportID,
		UserID:    userID,
		Format:    format,
		ObjectKey: key,
		URL:       url,
		Size:      int64(len(data)),
	}
	if err := s.Repo.CreateExport(export); err != nil {
		// 记录失败时清理已上传的对象
		if derr := s.Storage.Delete(ctx, key); derr != nil {
			logger.Log.Warn("清理导出文件失败", zap.String("key", key), zap.Error(derr))
		}
		return nil, err
	}

	monitoring.ReportExports.WithLabelValues(format).Inc()
	return export, nil
}

func (s *ExportService) List(userID, reportID uint) ([]model.ReportExport, error) {
	if _, err := s.Reports.Get(userID, reportID); err != nil {
		return nil, err
	}
	return s.Repo.ListExports(reportID)
}

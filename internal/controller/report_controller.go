package controller

import (
	"net/http"
	"thinking_styles_backend/internal/service"
	"thinking_styles_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
	ExportService *service.ExportService
}

func NewReportController(reportService *service.ReportService, exportService *service.ExportService) *ReportController {
	return &ReportController{
		ReportService: reportService,
		ExportService: exportService,
	}
}

// Generate godoc
// @Summary Generate a report
// @Description Combines all of the user's completed assessments into a profile, education mapping and insights
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response{data=model.Report}
// @Failure 400 {object} util.Response "No assessments completed"
// @Router /reports/generate [post]
func (c *ReportController) Generate(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	report, err := c.ReportService.Generate(ctx.Request.Context(), claims.UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// List godoc
// @Summary Own reports
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /reports [get]
func (c *ReportController) List(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	reports, err := c.ReportService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"reports": reports})
}

// MyReports godoc
// @Summary Own reports, plus linked students for parents
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /reports/my-reports [get]
func (c *ReportController) MyReports(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	reports, err := c.ReportService.MyReports(claims.UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"reports": reports})
}

// Latest godoc
// @Summary Most recent report
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Report}
// @Failure 404 {object} util.Response
// @Router /reports/latest [get]
func (c *ReportController) Latest(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	report, err := c.ReportService.Latest(ctx.Request.Context(), claims.UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Get godoc
// @Summary Get a report
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Report ID"
// @Success 200 {object} util.Response{data=model.Report}
// @Failure 404 {object} util.Response
// @Router /reports/{id} [get]
func (c *ReportController) Get(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	report, err := c.ReportService.Get(claims.UserID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Render godoc
// @Summary Render a report
// @Description Returns the report as an HTML page or a PNG chart
// @Tags Reports
// @Produce  html,png
// @Security ApiKeyAuth
// @Param   id path int true "Report ID"
// @Param   format query string false "Output format" Enums(html, png) default(html)
// @Success 200 {file} file
// @Failure 400 {object} util.Response "Unsupported format"
// @Failure 404 {object} util.Response
// @Router /reports/{id}/export [get]
func (c *ReportController) Render(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	data, contentType, err := c.ExportService.Render(claims.UserID, id, ctx.DefaultQuery("format", util.FormatHTML))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, contentType, data)
}

// Export godoc
// @Summary Export a report to storage
// @Description Renders the report and uploads it to the configured object storage
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Report ID"
// @Param   format query string false "Output format" Enums(html, png) default(png)
// @Success 201 {object} util.Response{data=model.ReportExport}
// @Failure 400 {object} util.Response "Unsupported format"
// @Failure 404 {object} util.Response
// @Router /reports/{id}/export [post]
func (c *ReportController) Export(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	export, err := c.ExportService.Export(ctx.Request.Context(), claims.UserID, id, ctx.DefaultQuery("format", util.FormatPNG))
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Created(ctx, export)
}

// ListExports godoc
// @Summary Previous exports of a report
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Report ID"
// @Success 200 {object} util.Response{data=[]model.ReportExport}
// @Router /reports/{id}/exports [get]
func (c *ReportController) ListExports(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	exports, err := c.ExportService.List(claims.UserID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, exports)
}

// swagger:model ReflectionRequest
type ReflectionRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// AddReflection godoc
// @Summary Reflect on a report
// @Tags Reports
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Report ID"
// @Param   body body ReflectionRequest true "Reflection"
// @Success 201 {object} util.Response{data=model.Reflection}
// @Failure 400 {object} util.Response "Content and rating are required"
// @Failure 404 {object} util.Response
// @Router /reports/{id}/reflection [post]
func (c *ReportController) AddReflection(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req ReflectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reflection, err := c.ReportService.AddReflection(claims.UserID, id, req.Content, req.Rating)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Created(ctx, reflection)
}

// ListReflections godoc
// @Summary Reflections on a report
// @Tags Reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Report ID"
// @Success 200 {object} util.Response{data=[]model.Reflection}
// @Router /reports/{id}/reflections [get]
func (c *ReportController) ListReflections(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	reflections, err := c.ReportService.Reflections(claims.UserID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, reflections)
}

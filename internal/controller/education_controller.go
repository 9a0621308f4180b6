package controller

import (
	"thinking_styles_backend/internal/service"
	"thinking_styles_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EducationController struct {
	EducationService *service.EducationService
}

func NewEducationController(educationService *service.EducationService) *EducationController {
	return &EducationController{EducationService: educationService}
}

// Mapping godoc
// @Summary Education mapping for a thinking style
// @Description Unknown styles return empty lists
// @Tags Education
// @Produce  json
// @Security ApiKeyAuth
// @Param   primary query string true "Primary style, e.g. analytical"
// @Param   secondary query string false "Secondary style"
// @Success 200 {object} util.Response{data=scoring.EducationMapping}
// @Failure 400 {object} util.Response
// @Router /education/mapping [get]
func (c *EducationController) Mapping(ctx *gin.Context) {
	primary := ctx.Query("primary")
	if primary == "" {
		util.BadRequest(ctx, "primary is required")
		return
	}
	util.Success(ctx, c.EducationService.Mapping(primary, ctx.Query("secondary")))
}

// StudyTips godoc
// @Summary Ghana study tips
// @Tags Education
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=scoring.StudyTips}
// @Router /education/study-tips [get]
func (c *EducationController) StudyTips(ctx *gin.Context) {
	util.Success(ctx, c.EducationService.StudyTips())
}

// Institutions godoc
// @Summary Ghanaian tertiary institutions
// @Tags Education
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]scoring.Institution}
// @Router /education/institutions [get]
func (c *EducationController) Institutions(ctx *gin.Context) {
	util.Success(ctx, c.EducationService.Institutions())
}

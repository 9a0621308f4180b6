package controller

import (
	"errors"
	"net/http"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/internal/service"
	"thinking_styles_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// GetTypes godoc
// @Summary Available assessments
// @Tags Assessments
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AssessmentTypeInfo}
// @Router /assessments/types [get]
func (c *AssessmentController) GetTypes(ctx *gin.Context) {
	util.Success(ctx, c.AssessmentService.Types())
}

// GetQuestions godoc
// @Summary Questions of an assessment
// @Tags Assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   type path string true "Assessment type" Enums(kolb, sternberg, dual_process)
// @Success 200 {object} util.Response{data=scoring.QuestionSet}
// @Failure 404 {object} util.Response "Unknown assessment type"
// @Router /assessments/questions/{type} [get]
func (c *AssessmentController) GetQuestions(ctx *gin.Context) {
	set, err := c.AssessmentService.Questions(scoring.AssessmentType(ctx.Param("type")))
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownAssessmentType) {
			util.Error(ctx, http.StatusNotFound, "Assessment type not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, set)
}

// swagger:model SubmitAssessmentRequest
type SubmitAssessmentRequest struct {
	Type      scoring.AssessmentType `json:"type" binding:"required"`
	Responses []scoring.Response     `json:"responses" binding:"required"`
}

// Submit godoc
// @Summary Submit an assessment
// @Description Scores the responses and stores the result. Each assessment type can be completed once.
// @Tags Assessments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitAssessmentRequest true "Responses"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response "Invalid body or unknown type"
// @Failure 409 {object} util.Response "Already completed"
// @Router /assessments/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	var req SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.Submit(ctx.Request.Context(), claims.UserID, req.Type, req.Responses)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}

// List godoc
// @Summary Own assessments
// @Tags Assessments
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	assessments, err := c.AssessmentService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessments": assessments})
}

// MyAssessments godoc
// @Summary Own assessments, plus linked students for parents
// @Tags Assessments
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /assessments/my-assessments [get]
func (c *AssessmentController) MyAssessments(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	assessments, err := c.AssessmentService.ListVisible(claims.UserID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessments": assessments})
}

// Get godoc
// @Summary Get an assessment
// @Tags Assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	assessment, err := c.AssessmentService.Get(claims.UserID, id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

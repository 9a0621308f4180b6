package controller

import (
	"errors"
	"net/http"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/internal/util"

	"github.com/gin-gonic/gin"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{util.ErrUserNotFound, http.StatusNotFound},
	{util.ErrAssessmentNotFound, http.StatusNotFound},
	{util.ErrReportNotFound, http.StatusNotFound},
	{util.ErrEmailRegistered, http.StatusConflict},
	{util.ErrAssessmentAlreadyCompleted, http.StatusConflict},
	{util.ErrInvalidCredentials, http.StatusUnauthorized},
	{util.ErrAccountDisabled, http.StatusUnauthorized},
	{util.ErrPermissionDenied, http.StatusForbidden},
	{util.ErrInvalidRole, http.StatusBadRequest},
	{util.ErrPasswordTooShort, http.StatusBadRequest},
	{util.ErrWrongPassword, http.StatusBadRequest},
	{util.ErrNoAssessments, http.StatusBadRequest},
	{util.ErrInvalidReflection, http.StatusBadRequest},
	{util.ErrUnsupportedFormat, http.StatusBadRequest},
	{util.ErrNotAStudent, http.StatusBadRequest},
	{scoring.ErrUnknownAssessmentType, http.StatusBadRequest},
	{scoring.ErrUnknownQuestion, http.StatusBadRequest},
	{scoring.ErrScoreOutOfRange, http.StatusBadRequest},
}

// handleError 业务错误映射为状态码，其余按 500 记录
func handleError(ctx *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			util.Error(ctx, e.status, err.Error())
			return
		}
	}
	util.LogInternalError(ctx, err)
}

// currentUser 取不到时已写入 401
func currentUser(ctx *gin.Context) *util.Claims {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
	}
	return claims
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

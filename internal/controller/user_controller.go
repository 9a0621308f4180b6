package controller

import (
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/internal/service"
	"thinking_styles_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ListUsers godoc
// @Summary List users
// @Description Admin only. Supports role, search and active filters.
// @Tags Users
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Param   role query string false "Role filter"
// @Param   search query string false "Name or email"
// @Param   active query bool false "Active filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))
	filter := repository.UserFilter{
		Role:   ctx.Query("role"),
		Search: ctx.Query("search"),
	}
	switch ctx.Query("active") {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}

	users, total, err := c.UserService.ListUsers(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// GetUser godoc
// @Summary Get a user
// @Description Allowed for the user themselves, linked parents and admins
// @Tags Users
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	user, err := c.UserService.GetUserFor(claims, id)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Admin only. Passwords cannot be changed here.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "User ID"
// @Param   body body service.AdminUserUpdate true "Fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Router /admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.AdminUserUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(id, req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// DeactivateUser godoc
// @Summary Deactivate a user
// @Tags Users
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/users/{id} [delete]
func (c *UserController) DeactivateUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.UserService.Deactivate(id); err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "User deactivated successfully"})
}

// swagger:model LinkStudentsRequest
type LinkStudentsRequest struct {
	StudentIDs []uint `json:"studentIds" binding:"required,min=1"`
}

// LinkStudents godoc
// @Summary Link students to a parent
// @Tags Users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Parent user ID"
// @Param   body body LinkStudentsRequest true "Student IDs"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /admin/users/{id}/students [post]
func (c *UserController) LinkStudents(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req LinkStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	parent, err := c.UserService.LinkStudents(id, req.StudentIDs)
	if err != nil {
		handleError(ctx, err)
		return
	}
	util.Success(ctx, parent)
}

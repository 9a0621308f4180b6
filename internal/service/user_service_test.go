package service

import (
	"testing"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_LinkStudents(t *testing.T) {
	env := newTestEnv(t)
	parent := env.register(t, "parent@example.gh", model.Parent)
	child := env.register(t, "child@example.gh", model.Student)
	teacher := env.register(t, "teacher@example.gh", model.Teacher)

	updated, err := env.userSvc.LinkStudents(parent.ID, []uint{child.ID, child.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{child.ID}, []uint(updated.LinkedStudents))

	_, err = env.userSvc.LinkStudents(parent.ID, []uint{teacher.ID})
	assert.ErrorIs(t, err, util.ErrNotAStudent)
	_, err = env.userSvc.LinkStudents(parent.ID, []uint{4242})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	_, err = env.userSvc.LinkStudents(teacher.ID, []uint{child.ID})
	assert.ErrorIs(t, err, util.ErrInvalidRole)

	ids, err := env.userSvc.VisibleUserIDs(parent.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{parent.ID, child.ID}, ids)

	ids, err = env.userSvc.VisibleUserIDs(child.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{child.ID}, ids)

	ids, err = env.userSvc.AudienceOf(child.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{child.ID, parent.ID}, ids)

	require.NoError(t, env.userSvc.Deactivate(parent.ID))
	ids, err = env.userSvc.AudienceOf(child.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{child.ID}, ids)
}

func TestUserService_GetUserFor(t *testing.T) {
	env := newTestEnv(t)
	parent := env.register(t, "p@example.gh", model.Parent)
	child := env.register(t, "c@example.gh", model.Student)
	stranger := env.register(t, "s@example.gh", model.Student)
	_, err := env.userSvc.LinkStudents(parent.ID, []uint{child.ID})
	require.NoError(t, err)

	_, err = env.userSvc.GetUserFor(&util.Claims{UserID: parent.ID, Role: model.Parent}, child.ID)
	assert.NoError(t, err)
	_, err = env.userSvc.GetUserFor(&util.Claims{UserID: stranger.ID, Role: model.Student}, child.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = env.userSvc.GetUserFor(&util.Claims{UserID: 1000, Role: model.Admin}, stranger.ID)
	assert.NoError(t, err)
}

func TestUserService_AdminUpdate(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "esi@example.gh", model.Student)

	role := model.Counselor
	inactive := false
	first := "Esi"
	updated, err := env.userSvc.UpdateUser(u.ID, AdminUserUpdate{
		ProfileUpdate: ProfileUpdate{FirstName: &first},
		Role:          &role,
		IsActive:      &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, model.Counselor, updated.Role)

	got, err := env.userSvc.GetUser(u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Esi", got.FirstName)
	assert.Equal(t, u.Password, got.Password)

	bad := model.UserRole("chief")
	_, err = env.userSvc.UpdateUser(u.ID, AdminUserUpdate{Role: &bad})
	assert.ErrorIs(t, err, util.ErrInvalidRole)

	assert.ErrorIs(t, env.userSvc.Deactivate(777), util.ErrUserNotFound)

	list, total, err := env.userSvc.ListUsers(repository.UserFilter{Role: string(model.Counselor)}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

package service

import (
	"testing"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)

	u := &model.User{FirstName: "Kojo", LastName: "Asante", Email: "kojo@example.gh", Password: "secret123"}
	require.NoError(t, env.auth.Register(u))
	assert.Equal(t, model.Student, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.Password)

	dup := &model.User{FirstName: "K", LastName: "A", Email: "kojo@example.gh", Password: "secret123"}
	assert.ErrorIs(t, env.auth.Register(dup), util.ErrEmailRegistered)

	admin := &model.User{FirstName: "A", LastName: "B", Email: "root@example.gh", Password: "secret123", Role: model.Admin}
	assert.ErrorIs(t, env.auth.Register(admin), util.ErrInvalidRole)

	bogus := &model.User{FirstName: "A", LastName: "B", Email: "x@example.gh", Password: "secret123", Role: "headmaster"}
	assert.ErrorIs(t, env.auth.Register(bogus), util.ErrInvalidRole)

	short := &model.User{FirstName: "A", LastName: "B", Email: "y@example.gh", Password: "123"}
	assert.ErrorIs(t, env.auth.Register(short), util.ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "efua@example.gh", model.Counselor)

	_, _, err := env.auth.Login("efua@example.gh", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = env.auth.Login("nobody@example.gh", "secret123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	token, user, err := env.auth.Login("efua@example.gh", "secret123")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)

	claims, err := util.ParseJWT(token, env.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, model.Counselor, claims.Role)

	require.NoError(t, env.userSvc.Deactivate(u.ID))
	_, _, err = env.auth.Login("efua@example.gh", "secret123")
	assert.ErrorIs(t, err, util.ErrAccountDisabled)
}

func TestAuthService_Profile(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "yaa@example.gh", model.Student)

	school := "Achimota School"
	grade := "SHS 2"
	updated, err := env.auth.UpdateProfile(u.ID, ProfileUpdate{School: &school, Grade: &grade})
	require.NoError(t, err)
	assert.Equal(t, "Achimota School", updated.School)
	assert.Equal(t, "Akua", updated.FirstName)

	got, err := env.auth.GetProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHS 2", got.Grade)

	_, err = env.auth.GetProfile(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "nana@example.gh", model.Teacher)

	assert.ErrorIs(t, env.auth.ChangePassword(u.ID, "secret123", "abc"), util.ErrPasswordTooShort)
	assert.ErrorIs(t, env.auth.ChangePassword(u.ID, "not-it", "newsecret"), util.ErrWrongPassword)
	require.NoError(t, env.auth.ChangePassword(u.ID, "secret123", "newsecret"))

	_, _, err := env.auth.Login("nana@example.gh", "secret123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = env.auth.Login("nana@example.gh", "newsecret")
	assert.NoError(t, err)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"book-admin-go/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserService 是 service.UserService 的受控实现。
type fakeUserService struct {
	loginErr   error
	refreshErr error
}

func (f *fakeUserService) Login(ctx context.Context, username, password string) (string, string, error) {
	if f.loginErr != nil {
		return "", "", f.loginErr
	}
	return "access-token", "refresh-token", nil
}

func (f *fakeUserService) RefreshToken(refreshToken string) (string, string, error) {
	if f.refreshErr != nil {
		return "", "", f.refreshErr
	}
	return "new-access", "new-refresh", nil
}

func (f *fakeUserService) EnsureSystemAccounts(adminPassword, apiPassword string) error {
	return nil
}

func authRouter(svc *fakeUserService) *gin.Engine {
	h := NewAuthHandler(svc)
	r := gin.New()
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refreshToken", h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}
	return r
}

func TestLoginSuccess(t *testing.T) {
	r := authRouter(&fakeUserService{})
	w, env := doJSON(t, r, http.MethodPost, "/auth/login",
		`{"username": "admin", "password": "pass"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeOK, env.Code)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "access-token", data["token"])
	assert.Equal(t, "refresh-token", data["refresh_token"])
}

func TestLoginMissingFields(t *testing.T) {
	r := authRouter(&fakeUserService{})
	_, env := doJSON(t, r, http.MethodPost, "/auth/login", `{"username": "admin"}`)

	assert.Equal(t, response.CodeParamErr, env.Code)
	assert.Equal(t, "用户名和密码不能为空", env.Message)
}

func TestLoginRejected(t *testing.T) {
	r := authRouter(&fakeUserService{loginErr: response.AuthError("用户名密码错误")})
	w, env := doJSON(t, r, http.MethodPost, "/auth/login",
		`{"username": "admin", "password": "wrong"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeAuthErr, env.Code)
}

func TestRefreshToken(t *testing.T) {
	r := authRouter(&fakeUserService{})
	_, env := doJSON(t, r, http.MethodPost, "/auth/refreshToken",
		`{"refresh_token": "old"}`)

	assert.Equal(t, response.CodeOK, env.Code)
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "new-access", data["token"])
}

func TestRefreshTokenInvalid(t *testing.T) {
	r := authRouter(&fakeUserService{refreshErr: errors.New("boom")})
	_, env := doJSON(t, r, http.MethodPost, "/auth/refreshToken",
		`{"refresh_token": "old"}`)

	assert.Equal(t, response.CodeServerErr, env.Code)
}

func TestLogout(t *testing.T) {
	r := authRouter(&fakeUserService{})
	_, env := doJSON(t, r, http.MethodPost, "/auth/logout", `{}`)

	assert.Equal(t, response.CodeOK, env.Code)
	assert.Equal(t, "登出成功", env.Message)
}

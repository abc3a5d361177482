package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	mgr := NewJWTManager("test-secret", 1, 7)

	tok, err := mgr.GenerateToken(42, "admin", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := mgr.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestRefreshTokenVerifies(t *testing.T) {
	mgr := NewJWTManager("test-secret", 1, 7)

	tok, err := mgr.GenerateRefreshToken(42, "admin", "ADMIN")
	require.NoError(t, err)

	claims, err := mgr.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	tok, err := NewJWTManager("secret-a", 1, 7).GenerateToken(1, "admin", "ADMIN")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", 1, 7).VerifyToken(tok)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	// 有效期为 0 小时的 token 立即过期
	mgr := NewJWTManager("test-secret", 0, 0)
	tok, err := mgr.GenerateToken(1, "admin", "ADMIN")
	require.NoError(t, err)

	_, err = mgr.VerifyToken(tok)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", 1, 7)
	_, err := mgr.VerifyToken("not.a.token")
	assert.Error(t, err)
}

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CustomerToken(t *testing.T) {
	svc := New("test-secret-123", time.Hour, 6*time.Hour)

	token, err := svc.GenerateCustomerToken(42)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.CustomerID)
	assert.Equal(t, RoleCustomer, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.False(t, claims.IsAdmin())
}

func TestService_AdminToken(t *testing.T) {
	svc := New("test-secret-123", time.Hour, 6*time.Hour)

	token, err := svc.GenerateAdminToken()
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, AdminSubject, claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.True(t, claims.IsAdmin())
	assert.Zero(t, claims.CustomerID)
}

func TestService_WrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour, time.Hour)
	verifier := New("secret-b", time.Hour, time.Hour)

	token, err := issuer.GenerateCustomerToken(1)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestService_ExpiredToken(t *testing.T) {
	svc := New("secret", -time.Minute, -time.Minute)

	token, err := svc.GenerateCustomerToken(1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestService_Garbage(t *testing.T) {
	svc := New("secret", time.Hour, time.Hour)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

package service

import (
	"context"
	"testing"
	"time"

	"cmms-dashboard-be/internal/dto"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) IAuthService {
	t.Helper()
	users, err := DemoUsers()
	require.NoError(t, err)
	return NewAuthService(users, testSecret, time.Hour, logger.NewNopLogger())
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"admin", "admin@company.com", "admin123", "admin"},
		{"manager", "manager@company.com", "manager123", "manager"},
		{"technician with mixed case email", " Tech@Company.com ", "tech123", "technician"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.password})
			require.NoError(t, err)
			assert.Equal(t, tt.role, res.User.Role)

			claims, err := serverutils.ParseToken(testSecret, res.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.role, claims["role"])

			id, ok := serverutils.UserIDFromClaims(claims)
			require.True(t, ok)
			assert.Equal(t, res.User.Id, id)
		})
	}
}

func TestAuthService_LoginRejected(t *testing.T) {
	svc := newAuthService(t)

	for _, req := range []dto.LoginRequest{
		{Email: "admin@company.com", Password: "wrong"},
		{Email: "nobody@company.com", Password: "admin123"},
	} {
		_, err := svc.Login(context.Background(), &req)
		assert.True(t, apperror.HasCode(err, apperror.CodeAuthFailed), req.Email)
	}
}

func TestDemoUsers_StableIDs(t *testing.T) {
	first, err := DemoUsers()
	require.NoError(t, err)
	second, err := DemoUsers()
	require.NoError(t, err)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].Id, second[i].Id)
		assert.NotEqual(t, "admin123", first[i].PasswordHash)
	}
}

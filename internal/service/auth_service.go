// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cmms-dashboard-be/internal/dto"
	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/pkg/serverutils"
	"cmms-dashboard-be/pkg/admin/mapper"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type demoAccount struct {
	email      string
	password   string
	fullName   string
	role       entity.Role
	department string
}

// The dashboard ships with a fixed account per role until user management exists.
var demoAccounts = []demoAccount{
	{"admin@company.com", "admin123", "John Doe", entity.RoleAdmin, "IT"},
	{"manager@company.com", "manager123", "Sarah Johnson", entity.RoleManager, "Maintenance"},
	{"tech@company.com", "tech123", "Mike Wilson", entity.RoleTechnician, "HVAC"},
}

// DemoUsers hashes the built-in accounts. Ids are stable across restarts.
func DemoUsers() ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(demoAccounts))
	for _, a := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		users = append(users, &entity.User{
			Id:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+a.email)),
			Email:        a.email,
			PasswordHash: string(hash),
			FullName:     a.fullName,
			Role:         a.role,
			Department:   a.department,
		})
	}
	return users, nil
}

type authService struct {
	users     map[string]*entity.User
	jwtSecret string
	tokenTTL  time.Duration
	logger    logger.ILogger
}

func NewAuthService(users []*entity.User, jwtSecret string, tokenTTL time.Duration, logger logger.ILogger) IAuthService {
	byEmail := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byEmail[strings.ToLower(u.Email)] = u
	}
	return &authService{
		users:     byEmail,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := s.users[strings.ToLower(strings.TrimSpace(req.Email))]
	if !ok {
		return nil, errInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("AUTH", "Failed login attempt", map[string]interface{}{"email": user.Email})
		return nil, errInvalidCredentials()
	}

	token, err := serverutils.GenerateToken(s.jwtSecret, user, s.tokenTTL)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to issue token", http.StatusInternalServerError)
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
	})
	return &dto.LoginResponse{
		AccessToken: token,
		User:        mapper.UserToResponse(user),
	}, nil
}

func errInvalidCredentials() *apperror.AppError {
	return apperror.Unauthorized(apperror.CodeAuthFailed, "invalid email or password")
}

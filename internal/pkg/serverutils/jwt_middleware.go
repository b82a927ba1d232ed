// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"fmt"
	"time"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// GenerateToken signs an HS256 token carrying the user's id, email and role.
func GenerateToken(secret string, user *entity.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// NewJwtMiddleware verifies the bearer token and stores its claims in ctx.Locals.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return WriteError(ctx, apperror.Unauthorized(apperror.CodeTokenInvalid, "Missing token"))
		}
		claims, err := ParseToken(secret, authHeader[7:])
		if err != nil {
			return WriteError(ctx, err)
		}

		ctx.Locals(LocalUserID, claims["user_id"])
		ctx.Locals(LocalEmail, claims["email"])
		ctx.Locals(LocalRole, claims["role"])
		return ctx.Next()
	}
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(secret, tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Unauthorized(apperror.CodeTokenInvalid, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.Unauthorized(apperror.CodeTokenInvalid, "Invalid claims")
	}
	return claims, nil
}

// UserIDFromClaims extracts the user id claim written by GenerateToken.
func UserIDFromClaims(claims jwt.MapClaims) (uuid.UUID, bool) {
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	return id, err == nil
}

// UserIDFromContext returns the authenticated user id, uuid.Nil when absent.
func UserIDFromContext(ctx *fiber.Ctx) uuid.UUID {
	raw, _ := ctx.Locals(LocalUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// RoleFromContext returns the role stored by the JWT middleware, empty when absent.
func RoleFromContext(ctx *fiber.Ctx) entity.Role {
	role, _ := ctx.Locals(LocalRole).(string)
	return entity.Role(role)
}

// AdminOnly must run after the JWT middleware.
func AdminOnly(ctx *fiber.Ctx) error {
	if RoleFromContext(ctx) != entity.RoleAdmin {
		return WriteError(ctx, apperror.Forbidden(apperror.CodeAccessDenied, "Admin access required"))
	}
	return ctx.Next()
}

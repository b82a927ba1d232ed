package serverutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	secured := app.Group("/secured", NewJwtMiddleware(testSecret))
	secured.Get("/whoami", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", string(RoleFromContext(ctx))))
	})
	secured.Get("/admin", AdminOnly, func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse[any]("ok", nil))
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return apperror.ErrSlugConflict("vendor-management")
	})
	return app
}

func tokenFor(t *testing.T, role entity.Role, ttl time.Duration) string {
	t.Helper()
	token, err := GenerateToken(testSecret, &entity.User{Id: uuid.New(), Email: "x@company.com", Role: role}, ttl)
	require.NoError(t, err)
	return token
}

func TestJwtMiddleware(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{name: "missing header", path: "/secured/whoami", wantStatus: 401},
		{name: "garbage token", path: "/secured/whoami", header: "Bearer nope", wantStatus: 401},
		{name: "expired token", path: "/secured/whoami", header: "Bearer " + tokenFor(t, entity.RoleAdmin, -time.Minute), wantStatus: 401},
		{name: "valid token", path: "/secured/whoami", header: "Bearer " + tokenFor(t, entity.RoleTechnician, time.Hour), wantStatus: 200},
		{name: "admin route as manager", path: "/secured/admin", header: "Bearer " + tokenFor(t, entity.RoleManager, time.Hour), wantStatus: 403},
		{name: "admin route as admin", path: "/secured/admin", header: "Bearer " + tokenFor(t, entity.RoleAdmin, time.Hour), wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestJwtMiddleware_ExposesRole(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/secured/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, entity.RoleViewer, time.Hour))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body BaseResponse[string]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "viewer", body.Data)
}

func TestErrorHandlerMiddleware_RendersAppError(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, apperror.CodeSlugConflict, body.ErrorCode)
	assert.Equal(t, "vendor-management", body.Params["slug"])
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	assert.NoError(t, ValidateRequest(request{Name: "ok"}))

	err := ValidateRequest(request{Email: "not-an-email"})
	appErr, ok := apperror.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidationFailed, appErr.Code)
	require.Len(t, appErr.FieldErrors, 2)
	assert.Equal(t, "name", appErr.FieldErrors[0].Field)
	assert.Equal(t, "REQUIRED", appErr.FieldErrors[0].Code)
	assert.Equal(t, "email", appErr.FieldErrors[1].Field)
}

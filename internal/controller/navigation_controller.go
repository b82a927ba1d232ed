package controller

import (
	"cmms-dashboard-be/internal/pkg/serverutils"
	"cmms-dashboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INavigationController interface {
	RegisterRoutes(r fiber.Router)
	GetNavigation(ctx *fiber.Ctx) error
	GetBreadcrumbs(ctx *fiber.Ctx) error
	GetCustomPage(ctx *fiber.Ctx) error
}

type navigationController struct {
	service   service.INavigationService
	jwtSecret string
}

func NewNavigationController(service service.INavigationService, jwtSecret string) INavigationController {
	return &navigationController{
		service:   service,
		jwtSecret: jwtSecret,
	}
}

func (c *navigationController) RegisterRoutes(r fiber.Router) {
	r.Get("/navigation", c.GetNavigation)
	r.Get("/navigation/breadcrumbs", c.GetBreadcrumbs)
	r.Get("/custom/:slug", serverutils.NewJwtMiddleware(c.jwtSecret), c.GetCustomPage)
}

func (c *navigationController) GetNavigation(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Navigation retrieved", c.service.GetNavigation(ctx.UserContext())))
}

func (c *navigationController) GetBreadcrumbs(ctx *fiber.Ctx) error {
	crumbs := c.service.GetBreadcrumbs(ctx.UserContext(), ctx.Query("path", "/"))
	return ctx.JSON(serverutils.SuccessResponse("Breadcrumbs retrieved", crumbs))
}

// GetCustomPage serves the generic page of a custom feature, gated by the caller's read permission
func (c *navigationController) GetCustomPage(ctx *fiber.Ctx) error {
	res, err := c.service.GetCustomPage(ctx.UserContext(), ctx.Params("slug"), serverutils.RoleFromContext(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Custom page retrieved", res))
}

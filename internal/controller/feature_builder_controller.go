// FILE: internal/controller/feature_builder_controller.go
package controller

import (
	"context"

	"cmms-dashboard-be/internal/dto"
	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/pkg/serverutils"
	"cmms-dashboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeatureBuilderController interface {
	RegisterRoutes(r fiber.Router)

	// Stored features
	GetAllFeatures(ctx *fiber.Ctx) error
	SaveFeature(ctx *fiber.Ctx) error
	GetFeature(ctx *fiber.Ctx) error
	DeleteFeature(ctx *fiber.Ctx) error
	GetTemplates(ctx *fiber.Ctx) error

	// Drafts
	CreateDraft(ctx *fiber.Ctx) error
	GetDraft(ctx *fiber.Ctx) error
	UpdateDraftMeta(ctx *fiber.Ctx) error
	AddField(ctx *fiber.Ctx) error
	RemoveField(ctx *fiber.Ctx) error
	SetFieldRequired(ctx *fiber.Ctx) error
	AddFieldToView(ctx *fiber.Ctx) error
	RemoveFieldFromView(ctx *fiber.Ctx) error
	SetAccessControl(ctx *fiber.Ctx) error
	ResetDraft(ctx *fiber.Ctx) error
	SaveDraft(ctx *fiber.Ctx) error
	DiscardDraft(ctx *fiber.Ctx) error
}

type featureBuilderController struct {
	service   service.IBuilderService
	jwtSecret string
}

func NewFeatureBuilderController(service service.IBuilderService, jwtSecret string) IFeatureBuilderController {
	return &featureBuilderController{
		service:   service,
		jwtSecret: jwtSecret,
	}
}

func (c *featureBuilderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.NewJwtMiddleware(c.jwtSecret), serverutils.AdminOnly)

	h.Get("/features", c.GetAllFeatures)
	h.Post("/features", c.SaveFeature)
	h.Get("/features/:id", c.GetFeature)
	h.Delete("/features/:id", c.DeleteFeature)
	h.Get("/feature-templates", c.GetTemplates)

	h.Post("/builder/drafts", c.CreateDraft)
	d := h.Group("/builder/drafts")
	d.Get("/:id", c.GetDraft)
	d.Delete("/:id", c.DiscardDraft)
	d.Put("/:id/meta", c.UpdateDraftMeta)
	d.Post("/:id/fields", c.AddField)
	d.Delete("/:id/fields/:index", c.RemoveField)
	d.Put("/:id/fields/:index/required", c.SetFieldRequired)
	d.Post("/:id/views/:view", c.AddFieldToView)
	d.Delete("/:id/views/:view/:field", c.RemoveFieldFromView)
	d.Put("/:id/access/:role", c.SetAccessControl)
	d.Post("/:id/reset", c.ResetDraft)
	d.Post("/:id/save", c.SaveDraft)
}

// userContext carries the caller's id so builder toasts reach only their sessions
func userContext(ctx *fiber.Ctx) context.Context {
	return service.ContextWithUser(ctx.UserContext(), serverutils.UserIDFromContext(ctx))
}

func featureID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.BadRequest(apperror.CodeInvalidRequest, "Invalid feature ID")
	}
	return id, nil
}

func fieldIndex(ctx *fiber.Ctx) (int, error) {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return 0, apperror.BadRequest(apperror.CodeInvalidRequest, "Invalid field index")
	}
	return index, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.BadRequest(apperror.CodeInvalidRequest, "Invalid request body")
	}
	return serverutils.ValidateRequest(out)
}

func (c *featureBuilderController) GetAllFeatures(ctx *fiber.Ctx) error {
	res, err := c.service.ListFeatures(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Features retrieved", res))
}

// SaveFeature stores a draft in one call; body is {"draft_id": "..."}
func (c *featureBuilderController) SaveFeature(ctx *fiber.Ctx) error {
	var req struct {
		DraftId string `json:"draft_id" validate:"required"`
	}
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	return c.save(ctx, req.DraftId)
}

func (c *featureBuilderController) GetFeature(ctx *fiber.Ctx) error {
	id, err := featureID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.GetFeature(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature retrieved", res))
}

func (c *featureBuilderController) DeleteFeature(ctx *fiber.Ctx) error {
	id, err := featureID(ctx)
	if err != nil {
		return err
	}
	if err := c.service.DeleteFeature(userContext(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature deleted successfully", nil))
}

func (c *featureBuilderController) GetTemplates(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Templates retrieved", c.service.ListTemplates(ctx.UserContext())))
}

func (c *featureBuilderController) CreateDraft(ctx *fiber.Ctx) error {
	var req dto.CreateDraftRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}
	res, err := c.service.CreateDraft(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Draft created", res))
}

func (c *featureBuilderController) GetDraft(ctx *fiber.Ctx) error {
	res, err := c.service.GetDraft(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft retrieved", res))
}

func (c *featureBuilderController) UpdateDraftMeta(ctx *fiber.Ctx) error {
	var req dto.UpdateDraftMetaRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpdateDraftMeta(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft updated", res))
}

func (c *featureBuilderController) AddField(ctx *fiber.Ctx) error {
	var req dto.AddFieldRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.AddField(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Field added", res))
}

func (c *featureBuilderController) RemoveField(ctx *fiber.Ctx) error {
	index, err := fieldIndex(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.RemoveField(ctx.UserContext(), ctx.Params("id"), index)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Field removed", res))
}

func (c *featureBuilderController) SetFieldRequired(ctx *fiber.Ctx) error {
	index, err := fieldIndex(ctx)
	if err != nil {
		return err
	}
	var req dto.SetFieldRequiredRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SetFieldRequired(ctx.UserContext(), ctx.Params("id"), index, req.Required)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Field updated", res))
}

func (c *featureBuilderController) AddFieldToView(ctx *fiber.Ctx) error {
	var req dto.AddFieldToViewRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.AddFieldToView(ctx.UserContext(), ctx.Params("id"), entity.ViewType(ctx.Params("view")), req.FieldName)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Field placed", res))
}

func (c *featureBuilderController) RemoveFieldFromView(ctx *fiber.Ctx) error {
	res, err := c.service.RemoveFieldFromView(ctx.UserContext(), ctx.Params("id"), entity.ViewType(ctx.Params("view")), ctx.Params("field"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Field removed from view", res))
}

func (c *featureBuilderController) SetAccessControl(ctx *fiber.Ctx) error {
	var req dto.SetAccessControlRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SetAccessControl(ctx.UserContext(), ctx.Params("id"), entity.Role(ctx.Params("role")), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Access control updated", res))
}

func (c *featureBuilderController) ResetDraft(ctx *fiber.Ctx) error {
	res, err := c.service.ResetDraft(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft reset", res))
}

func (c *featureBuilderController) SaveDraft(ctx *fiber.Ctx) error {
	return c.save(ctx, ctx.Params("id"))
}

func (c *featureBuilderController) save(ctx *fiber.Ctx, draftID string) error {
	res, err := c.service.SaveDraft(userContext(ctx), draftID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature saved", res))
}

func (c *featureBuilderController) DiscardDraft(ctx *fiber.Ctx) error {
	if err := c.service.DiscardDraft(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Draft discarded", nil))
}

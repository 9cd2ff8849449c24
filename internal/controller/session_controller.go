package controller

import (
	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/pkg/logger"
	"doc-manager-be/internal/pkg/serverutils"
	"doc-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Documents(ctx *fiber.Ctx) error
	Folders(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	log            logger.ILogger
}

func NewSessionController(sessionService service.ISessionService, log logger.ILogger) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		log:            log,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/documents", c.Upload)
	h.Get(":id/documents", c.Documents)
	h.Get(":id/folders", c.Folders)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	res, err := c.sessionService.List(ctx.Context())
	if err != nil {
		c.log.Warn("session", "list failed, returning empty", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.JSON([]interface{}{})
	}
	return ctx.JSON(res)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.sessionService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.sessionService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"message": "Session " + id.String() + " deleted successfully"})
}

func (c *sessionController) Upload(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	filename, content, err := readMultipartFile(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Upload(ctx.Context(), &dto.UploadToSessionInput{
		SessionId: id,
		Filename:  filename,
		Content:   content,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Documents(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.sessionService.Documents(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Folders(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.sessionService.FolderStats(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

package controller

import (
	"io"

	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/pkg/logger"
	"doc-manager-be/internal/pkg/serverutils"
	"doc-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	log             logger.ILogger
}

func NewDocumentController(documentService service.IDocumentService, log logger.ILogger) IDocumentController {
	return &documentController{
		documentService: documentService,
		log:             log,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents")
	h.Post("/upload", c.Upload)
	h.Get("", c.List)
	h.Get(":id/status", c.Status)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	filename, content, err := readMultipartFile(ctx)
	if err != nil {
		return err
	}

	input := dto.UploadDocumentInput{
		Filename:    filename,
		Content:     content,
		SourceName:  ctx.FormValue("source_name"),
		FolderName:  ctx.FormValue("folder"),
		Description: ctx.FormValue("description"),
	}

	res, err := c.documentService.Upload(ctx.Context(), &input)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// List degrades to an empty array when the store is unreachable so the
// listing UI keeps rendering.
func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.documentService.List(ctx.Context())
	if err != nil {
		c.log.Warn("document", "list failed, returning empty", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.JSON([]interface{}{})
	}
	return ctx.JSON(res)
}

func (c *documentController) Status(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.Status(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.documentService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"message": "Document " + id.String() + " deleted successfully"})
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, serverutils.NewValidationError("invalid " + name + " parameter")
	}
	return id, nil
}

func readMultipartFile(ctx *fiber.Ctx) (string, []byte, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return "", nil, serverutils.NewValidationError("file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, serverutils.NewValidationError("failed to read uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, serverutils.NewValidationError("failed to read uploaded file")
	}
	return fileHeader.Filename, content, nil
}

package controller

import (
	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/pkg/logger"
	"doc-manager-be/internal/pkg/serverutils"
	"doc-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFolderController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type folderController struct {
	folderService service.IFolderService
	log           logger.ILogger
}

func NewFolderController(folderService service.IFolderService, log logger.ILogger) IFolderController {
	return &folderController{
		folderService: folderService,
		log:           log,
	}
}

func (c *folderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/folders")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Delete(":name", c.Delete)
}

func (c *folderController) List(ctx *fiber.Ctx) error {
	folders, masterBucket, err := c.folderService.List(ctx.Context())
	if err != nil {
		c.log.Warn("folder", "list failed, returning empty", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.JSON(dto.ListFoldersResponse{Folders: []string{}, MasterBucket: ""})
	}
	return ctx.JSON(dto.ListFoldersResponse{Folders: folders, MasterBucket: masterBucket})
}

func (c *folderController) Create(ctx *fiber.Ctx) error {
	folderName := ctx.FormValue("folder_name")
	if folderName == "" {
		return serverutils.NewValidationError("folder_name is required")
	}

	folder, err := c.folderService.Create(ctx.Context(), folderName)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.CreateFolderResponse{
		Message: "Folder " + folder.Name + " created successfully",
		Folder:  folder.Name,
	})
}

func (c *folderController) Delete(ctx *fiber.Ctx) error {
	folderName := ctx.Params("name")
	if err := c.folderService.Delete(ctx.Context(), folderName); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"message": "Folder " + folderName + " deleted successfully"})
}

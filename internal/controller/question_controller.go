package controller

import (
	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/pkg/serverutils"
	"doc-manager-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type questionController struct {
	questionService service.IQuestionService
}

func NewQuestionController(questionService service.IQuestionService) IQuestionController {
	return &questionController{
		questionService: questionService,
	}
}

func (c *questionController) RegisterRoutes(r fiber.Router) {
	r.Post("/ask", c.Ask)
}

func (c *questionController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

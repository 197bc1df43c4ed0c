package controller

import (
	"github.com/gofiber/fiber/v2"

	"lifehub-agent-be/internal/pkg/serverutils"
	"lifehub-agent-be/internal/service"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Reindex(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Post("reindex", c.Reindex)
}

func (c *noteController) Reindex(ctx *fiber.Ctx) error {
	res, err := c.noteService.Reindex(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success queue notes reindex", res))
}

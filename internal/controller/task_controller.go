package controller

import (
	"github.com/gofiber/fiber/v2"

	"lifehub-agent-be/internal/pkg/serverutils"
	"lifehub-agent-be/internal/service"
)

type ITaskController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type taskController struct {
	taskService service.ITaskService
}

func NewTaskController(taskService service.ITaskService) ITaskController {
	return &taskController{
		taskService: taskService,
	}
}

func (c *taskController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/task/v1")
	h.Get("", c.List)
}

func (c *taskController) List(ctx *fiber.Ctx) error {
	res, err := c.taskService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list tasks", res))
}

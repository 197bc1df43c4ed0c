package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"lifehub-agent-be/internal/dto"
	"lifehub-agent-be/internal/pkg/serverutils"
	"lifehub-agent-be/internal/service"
	"lifehub-agent-be/pkg/agent"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Stream)
	r.Post("/chat/sync", c.Sync)
}

// Stream answers with Server-Sent Events. The response is always 200; every
// failure after the headers is reported as an in-stream error event.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	chatService := c.chatService
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The turn runs on the fasthttp stream writer goroutine so the
		// request context is already gone; disconnects surface as write
		// errors and cancel the pipeline.
		runCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		emit := func(e agent.Event) {
			payload, err := json.Marshal(e)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				cancel()
				return
			}
			if err := w.Flush(); err != nil {
				cancel()
			}
		}

		// Errors are already on the stream as error events.
		_ = chatService.Stream(runCtx, &req, emit)
	}))

	return nil
}

// Sync buffers the whole turn. Unlike Stream it answers non-2xx on fatal
// errors, which the error middleware maps from the typed pipeline errors.
func (c *chatController) Sync(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Sync(ctx.Context(), &req)
	if err != nil {
		var provErr *service.ProviderNotConfiguredError
		if errors.As(err, &provErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(provErr.Error()))
		}
		return err
	}

	return ctx.JSON(res)
}

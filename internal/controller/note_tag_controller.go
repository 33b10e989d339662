package controller

import (
	"errors"

	"selection-mapper-be/internal/dto"
	"selection-mapper-be/internal/pkg/serverutils"
	"selection-mapper-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteTagController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Show(ctx *fiber.Ctx) error
	Replace(ctx *fiber.Ctx) error
}

type noteTagController struct {
	noteTagService service.INoteTagService
}

func NewNoteTagController(noteTagService service.INoteTagService) INoteTagController {
	return &noteTagController{
		noteTagService: noteTagService,
	}
}

func (c *noteTagController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/note/v1")
	h.Use(jwtMiddleware)
	h.Get(":id/tags", c.Show)
	h.Put(":id/tags", c.Replace)
}

func currentUser(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user")
	}
	return userId, nil
}

func noteParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}
	return id, nil
}

func notFound(err error) error {
	if errors.Is(err, service.ErrNoteNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}
	return err
}

func (c *noteTagController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}
	id, err := noteParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteTagService.GetTags(ctx.Context(), userId, id)
	if err != nil {
		return notFound(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note tags", res))
}

func (c *noteTagController) Replace(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}
	id, err := noteParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ReplaceNoteTagsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	req.NoteId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteTagService.ReplaceTags(ctx.Context(), userId, &req)
	if err != nil {
		return notFound(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success replace note tags", res))
}

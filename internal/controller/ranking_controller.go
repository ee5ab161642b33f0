package controller

import (
	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/pkg/serverutils"
	"boardgame-ranking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRankingController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	AnswerCoarse(ctx *fiber.Ctx) error
	AnswerFine(ctx *fiber.Ctx) error
	ReorderGroups(ctx *fiber.Ctx) error
	ApplySwaps(ctx *fiber.Ctx) error
	GetTop(ctx *fiber.Ctx) error
}

type rankingController struct {
	service         service.IRankingService
	auth            fiber.Handler
	defaultLanguage string
}

func NewRankingController(service service.IRankingService, auth fiber.Handler, defaultLanguage string) IRankingController {
	return &rankingController{
		service:         service,
		auth:            auth,
		defaultLanguage: defaultLanguage,
	}
}

func (c *rankingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ranking/v1")
	h.Post("/sessions", c.auth, c.Start)
	h.Get("/sessions/:id", c.auth, c.Show)
	h.Post("/sessions/:id/coarse", c.auth, c.AnswerCoarse)
	h.Post("/sessions/:id/fine", c.auth, c.AnswerFine)
	h.Post("/sessions/:id/groups", c.auth, c.ReorderGroups)
	h.Post("/sessions/:id/swaps", c.auth, c.ApplySwaps)
	h.Get("/top", c.auth, c.GetTop)
}

func (c *rankingController) Start(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.StartRankingRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Ranking session started", res))
}

func (c *rankingController) Show(ctx *fiber.Ctx) error {
	userId, sessionId, err := c.identify(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetSession(ctx.UserContext(), userId, sessionId)
	if err != nil {
		return err
	}
	c.localize(ctx, &res.RankingStepResponse)

	return ctx.JSON(serverutils.SuccessResponse("Success get ranking session", res))
}

func (c *rankingController) AnswerCoarse(ctx *fiber.Ctx) error {
	userId, sessionId, err := c.identify(ctx)
	if err != nil {
		return err
	}

	var req dto.AnswerCoarseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.SessionId = sessionId

	res, err := c.service.AnswerCoarse(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return c.step(ctx, "Answer recorded", res)
}

func (c *rankingController) AnswerFine(ctx *fiber.Ctx) error {
	userId, sessionId, err := c.identify(ctx)
	if err != nil {
		return err
	}

	var req dto.AnswerFineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.SessionId = sessionId

	res, err := c.service.AnswerFine(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return c.step(ctx, "Answer recorded", res)
}

func (c *rankingController) ReorderGroups(ctx *fiber.Ctx) error {
	userId, sessionId, err := c.identify(ctx)
	if err != nil {
		return err
	}

	var req dto.ReorderGroupsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.SessionId = sessionId

	res, err := c.service.ReorderGroups(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return c.step(ctx, "Final order updated", res)
}

func (c *rankingController) ApplySwaps(ctx *fiber.Ctx) error {
	userId, sessionId, err := c.identify(ctx)
	if err != nil {
		return err
	}

	var req dto.ApplySwapsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.SessionId = sessionId

	res, err := c.service.ApplySwaps(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return c.step(ctx, "Final order updated", res)
}

func (c *rankingController) GetTop(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetTop(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get top list", res))
}

func (c *rankingController) identify(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		// a malformed id can never name a session
		return uuid.Nil, uuid.Nil, service.ErrSessionNotFound
	}
	return userId, sessionId, nil
}

func (c *rankingController) step(ctx *fiber.Ctx, message string, res *dto.RankingStepResponse) error {
	c.localize(ctx, res)
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *rankingController) localize(ctx *fiber.Ctx, res *dto.RankingStepResponse) {
	if res.Reason != "" {
		res.Message = serverutils.Localize(serverutils.Language(ctx, c.defaultLanguage), res.Reason)
	}
}

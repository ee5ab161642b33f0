package controller

import (
	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/pkg/serverutils"
	"boardgame-ranking-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGameController interface {
	RegisterRoutes(r fiber.Router)
	GetRated(ctx *fiber.Ctx) error
}

type gameController struct {
	service service.ICatalogService
	auth    fiber.Handler
}

func NewGameController(service service.ICatalogService, auth fiber.Handler) IGameController {
	return &gameController{service: service, auth: auth}
}

func (c *gameController) RegisterRoutes(r fiber.Router) {
	r.Get("/ranking/v1/games", c.auth, c.GetRated)
}

func (c *gameController) GetRated(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GetRatedGamesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GetRatedGames(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rated games", res))
}

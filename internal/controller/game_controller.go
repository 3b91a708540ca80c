package controller

import (
	"errors"

	"github.com/benbeisheim/cooldownchess-backend/internal/middleware"
	"github.com/benbeisheim/cooldownchess-backend/internal/model"
	"github.com/benbeisheim/cooldownchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameController{gameService: gameService, logger: logger}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, snapshot, err := gc.gameService.CreateGame()
	if errors.Is(err, service.ErrTooManyGames) {
		gc.logger.Warn("game limit reached", zap.Int("games", gc.gameService.GameCount()))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		gc.logger.Error("create game", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":  "Game created",
		"game_id":  gameID,
		"snapshot": snapshot,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := middleware.GameID(c)

	snapshot, err := gc.gameService.GetSnapshot(gameID)
	if err != nil {
		return gc.serviceError(c, err)
	}
	return c.JSON(snapshot)
}

// GetBoard serves the board as text rows: upper case for white, lower case
// for black, G for a king on cooldown and "." for an empty square.
func (gc *GameController) GetBoard(c *fiber.Ctx) error {
	gameID := middleware.GameID(c)

	snapshot, err := gc.gameService.GetSnapshot(gameID)
	if err != nil {
		return gc.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"board": snapshot.Rows(),
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := middleware.GameID(c)

	var body moveRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	cmd, err := body.command()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := gc.gameService.HandleMove(gameID, cmd)
	if err != nil {
		return gc.serviceError(c, err)
	}
	if result.Outcome == model.OutcomeApplied || result.Err() == nil {
		return c.JSON(result)
	}
	return c.Status(rejectionStatus(result.Err())).JSON(result)
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	gameID := middleware.GameID(c)

	snapshot, err := gc.gameService.ResetGame(gameID)
	if err != nil {
		return gc.serviceError(c, err)
	}
	return c.JSON(snapshot)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	gameID := middleware.GameID(c)

	if err := gc.gameService.RemoveGame(gameID); err != nil {
		return gc.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrGameNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	gc.logger.Error("game request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process game request",
	})
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const gameIDKey = "gameID"

// GameLookup reports whether a game exists.
type GameLookup interface {
	GameExists(gameID string) bool
}

// RequireGame rejects requests whose :gameId does not name a running game and
// stores the id in locals for the handlers behind it.
func RequireGame(games GameLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}
		if !games.GameExists(gameID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "game not found",
			})
		}

		c.Locals(gameIDKey, gameID)
		return c.Next()
	}
}

// GameID returns the id stored by RequireGame.
func GameID(c *fiber.Ctx) string {
	id, _ := c.Locals(gameIDKey).(string)
	return id
}

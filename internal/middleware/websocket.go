package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It must run after RequireGame so the game id is available after the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// First, check if this is a WebSocket upgrade request
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// The connection context is different from the upgrade context, so
		// the id travels in locals.
		if GameID(c) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		return c.Next()
	}
}

// WebSocketGameID reads the game id carried across the upgrade.
func WebSocketGameID(c *websocket.Conn) string {
	id, _ := c.Locals(gameIDKey).(string)
	return id
}

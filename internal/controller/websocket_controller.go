package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/cooldownchess-backend/internal/middleware"
	"github.com/benbeisheim/cooldownchess-backend/internal/model"
	"github.com/benbeisheim/cooldownchess-backend/internal/service"
	"github.com/benbeisheim/cooldownchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := middleware.WebSocketGameID(c)
	logger := wsc.logger.With(zap.String("game_id", gameID))

	client, err := wsc.gameService.RegisterConnection(gameID, c)
	if err != nil {
		logger.Warn("failed to register connection", zap.Error(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, client.ID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("read error", zap.String("client_id", client.ID), zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(client, fmt.Errorf("parse message: %w", err))
			continue
		}
		reply, err := wsc.handleMessage(gameID, msg)
		if err != nil {
			wsc.sendError(client, err)
			continue
		}
		if reply != nil {
			if err := client.WriteJSON(reply); err != nil {
				logger.Debug("write error", zap.String("client_id", client.ID), zap.Error(err))
				return
			}
		}
	}
}

// handleMessage runs one client message. Applied moves and resets reach every
// subscriber through the game's broadcast, so only requests that are not
// broadcast produce a direct reply.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var body moveRequest
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			return nil, fmt.Errorf("parse move: %w", err)
		}
		cmd, err := body.command()
		if err != nil {
			return nil, err
		}
		result, err := wsc.gameService.HandleMove(gameID, cmd)
		if err != nil {
			return nil, err
		}
		if result.Err() != nil {
			return nil, result.Err()
		}
		return nil, nil

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID)
		return nil, err

	case ws.MessageTypeSnapshot:
		snapshot, err := wsc.gameService.GetSnapshot(gameID)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeGameState, snapshot)
		if err != nil {
			return nil, err
		}
		return &reply, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(client *model.Client, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if werr := client.WriteJSON(msg); werr != nil {
		wsc.logger.Debug("failed to send error", zap.String("client_id", client.ID), zap.Error(werr))
	}
}

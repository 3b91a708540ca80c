package service

import (
	"fmt"

	"github.com/benbeisheim/cooldownchess-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, model.BoardSnapshot, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.CreateGame(gameID)
	if err != nil {
		return "", model.BoardSnapshot{}, fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, game.Snapshot(), nil
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetSnapshot(gameID string) (model.BoardSnapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.BoardSnapshot{}, err
	}
	return game.Snapshot(), nil
}

// HandleMove submits cmd to the game. The error is only set when the game
// does not exist; rule rejections are reported in the result.
func (gs *GameService) HandleMove(gameID string, cmd model.MoveCommand) (model.MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	return game.SubmitMove(cmd), nil
}

func (gs *GameService) ResetGame(gameID string) (model.BoardSnapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.BoardSnapshot{}, err
	}
	return game.Reset(), nil
}

func (gs *GameService) RegisterConnection(gameID string, conn model.Conn) (*model.Client, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.RegisterConnection(conn), nil
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID)
}

// RemoveGame drops the game. Connected clients keep their sockets until they
// disconnect, but every later request for the id is not found.
func (gs *GameService) RemoveGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

// GameCount is the number of running games.
func (gs *GameService) GameCount() int {
	return gs.gameManager.Len()
}

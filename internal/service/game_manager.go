// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/cooldownchess-backend/internal/model"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrTooManyGames = errors.New("too many games")
)

// GameManager holds every running game. Each game serializes its own moves;
// the manager lock only guards the map.
type GameManager struct {
	games   map[string]*model.Game
	options []model.GameOption
	// maxGames caps the map; 0 means no limit.
	maxGames int
	logger   *zap.Logger
	mu      sync.RWMutex
}

// NewGameManager builds a manager holding at most maxGames games, each
// created with options.
func NewGameManager(logger *zap.Logger, maxGames int, options ...model.GameOption) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:   make(map[string]*model.Game),
		options:  append([]model.GameOption{model.WithLogger(logger)}, options...),
		maxGames: maxGames,
		logger:   logger,
	}
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}
	if gm.maxGames > 0 && len(gm.games) >= gm.maxGames {
		return nil, ErrTooManyGames
	}

	game := model.NewGame(gameID, gm.options...)
	gm.games[gameID] = game
	gm.logger.Info("game created", zap.String("game_id", gameID), zap.Int("games", len(gm.games)))
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	gm.logger.Info("game removed", zap.String("game_id", gameID), zap.Int("games", len(gm.games)))
	return nil
}

func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

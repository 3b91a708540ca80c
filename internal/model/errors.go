package model

import "errors"

// Rejection reasons returned by the engine. A rejected command never mutates
// the game.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrPieceNotFound     = errors.New("piece not found")
	ErrCooldownActive    = errors.New("cooldown active")
	ErrIllegalShape      = errors.New("illegal move shape")
	ErrPathBlocked       = errors.New("path blocked")
	ErrSquareOccupied    = errors.New("destination occupied by own piece")
	ErrGameOver          = errors.New("game over")
	ErrUnknownColor      = errors.New("unknown color")
	ErrUnknownKind       = errors.New("unknown piece kind")
)

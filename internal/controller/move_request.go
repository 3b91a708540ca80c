package controller

import (
	"errors"
	"net/http"

	"github.com/benbeisheim/cooldownchess-backend/internal/model"
	"github.com/gofiber/fiber/v2"
)

// moveRequest names the acting piece either by color and type or by its board
// letter (e.g. "R" white rook, "b" black bishop).
type moveRequest struct {
	Color string         `json:"color"`
	Type  string         `json:"type"`
	Piece string         `json:"piece"`
	From  model.Position `json:"from"`
	To    model.Position `json:"to"`
}

func (r moveRequest) command() (model.MoveCommand, error) {
	cmd := model.MoveCommand{From: r.From, To: r.To}
	if r.Piece != "" {
		color, t, err := model.ParsePieceNotation(r.Piece)
		if err != nil {
			return model.MoveCommand{}, err
		}
		cmd.Color, cmd.Type = color, t
		return cmd, nil
	}
	color, err := model.ParseColor(r.Color)
	if err != nil {
		return model.MoveCommand{}, err
	}
	t, err := model.ParsePieceType(r.Type)
	if err != nil {
		return model.MoveCommand{}, err
	}
	cmd.Color, cmd.Type = color, t
	return cmd, nil
}

// rejectionStatus maps a rule rejection to an HTTP status.
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrPieceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrCooldownActive), errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidCoordinate),
		errors.Is(err, model.ErrIllegalShape),
		errors.Is(err, model.ErrPathBlocked),
		errors.Is(err, model.ErrSquareOccupied):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrUnknownColor), errors.Is(err, model.ErrUnknownKind):
		return fiber.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package model

import (
	"fmt"
	"strings"
)

const (
	BoardHeight         = 21
	BoardWidth          = 7
	MaxVerticalDistance = 7
)

type PieceType string

const (
	King   PieceType = "king"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

func ParsePieceType(s string) (PieceType, error) {
	switch PieceType(strings.ToLower(strings.TrimSpace(s))) {
	case King:
		return King, nil
	case Rook:
		return Rook, nil
	case Bishop:
		return Bishop, nil
	case Knight:
		return Knight, nil
	case Pawn:
		return Pawn, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func ParseColor(s string) (Color, error) {
	switch Color(strings.ToLower(strings.TrimSpace(s))) {
	case White:
		return White, nil
	case Black:
		return Black, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Direction is the row delta of a forward pawn step.
func (c Color) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// ParsePieceNotation decodes the single letter piece codes used by the board
// UI. Upper case is white, lower case is black. G/g is a king drawn greyed out
// while on cooldown.
func ParsePieceNotation(s string) (Color, PieceType, error) {
	if len(s) != 1 {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	color := Black
	if strings.ToUpper(s) == s {
		color = White
	}
	switch strings.ToUpper(s) {
	case "K", "G":
		return color, King, nil
	case "R":
		return color, Rook, nil
	case "B":
		return color, Bishop, nil
	case "N":
		return color, Knight, nil
	case "P":
		return color, Pawn, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardHeight && p.Col >= 0 && p.Col < BoardWidth
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) delta(to Position) (int, int) {
	return to.Row - p.Row, to.Col - p.Col
}

var pawnColumns = []int{0, 2, 3, 4, 6}

type placement struct {
	Color    Color
	Type     PieceType
	Position Position
}

// backRank lists the home row piece types by column, mirrored for black on the
// last row.
var backRank = []PieceType{Rook, Knight, Bishop, King, Bishop, Knight, Rook}

func homeRow(c Color) int {
	if c == White {
		return 0
	}
	return BoardHeight - 1
}

func pawnRow(c Color) int {
	if c == White {
		return 2
	}
	return BoardHeight - 3
}

// KingStart is the square a king begins on and respawns to.
func KingStart(c Color) Position {
	return Position{Row: homeRow(c), Col: 3}
}

// startingLayout returns every piece of the opening position. White pieces
// come first so piece ids are stable across resets.
func startingLayout() []placement {
	var out []placement
	for _, color := range []Color{White, Black} {
		for col, t := range backRank {
			out = append(out, placement{Color: color, Type: t, Position: Position{Row: homeRow(color), Col: col}})
		}
		for _, col := range pawnColumns {
			out = append(out, placement{Color: color, Type: Pawn, Position: Position{Row: pawnRow(color), Col: col}})
		}
	}
	return out
}

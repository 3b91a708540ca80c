package model

// movement is the per-kind move pattern.
type movement interface {
	allows(from, to Position) bool
	// slides reports whether intermediate squares must be empty.
	slides() bool
}

type kingMovement struct{}

func (kingMovement) allows(from, to Position) bool {
	dr, dc := from.delta(to)
	if abs(dr) > MaxVerticalDistance {
		return false
	}
	return dr == 0 || dc == 0 || abs(dr) == abs(dc)
}

func (kingMovement) slides() bool { return true }

type rookMovement struct{}

func (rookMovement) allows(from, to Position) bool {
	dr, dc := from.delta(to)
	if abs(dr) > MaxVerticalDistance {
		return false
	}
	return dr == 0 || dc == 0
}

func (rookMovement) slides() bool { return true }

type bishopMovement struct{}

func (bishopMovement) allows(from, to Position) bool {
	dr, dc := from.delta(to)
	if abs(dr) > MaxVerticalDistance {
		return false
	}
	return abs(dr) == abs(dc)
}

func (bishopMovement) slides() bool { return true }

type knightMovement struct{}

func (knightMovement) allows(from, to Position) bool {
	dr, dc := from.delta(to)
	dr, dc = abs(dr), abs(dc)
	return (dr == 2 && dc == 1) || (dr == 1 && dc == 2)
}

func (knightMovement) slides() bool { return false }

// Pawns only move through the PawnAdvancer.
type pawnMovement struct{}

func (pawnMovement) allows(Position, Position) bool { return false }

func (pawnMovement) slides() bool { return false }

var movements = map[PieceType]movement{
	King:   kingMovement{},
	Rook:   rookMovement{},
	Bishop: bishopMovement{},
	Knight: knightMovement{},
	Pawn:   pawnMovement{},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

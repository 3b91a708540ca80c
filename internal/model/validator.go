package model

// MoveValidator checks move shape and path occupancy against the registry.
// It never mutates state.
type MoveValidator struct {
	registry *PieceRegistry
}

func NewMoveValidator(registry *PieceRegistry) MoveValidator {
	return MoveValidator{registry: registry}
}

func (v MoveValidator) IsLegal(piece *Piece, to Position) bool {
	return v.Check(piece, to) == nil
}

// Check returns the first rule the move breaks, or nil.
func (v MoveValidator) Check(piece *Piece, to Position) error {
	if !to.InBounds() {
		return ErrInvalidCoordinate
	}
	if to == piece.Position {
		return ErrIllegalShape
	}
	m, ok := movements[piece.Type]
	if !ok || !m.allows(piece.Position, to) {
		return ErrIllegalShape
	}
	if m.slides() && !v.pathClear(piece.Position, to) {
		return ErrPathBlocked
	}
	if occupant := v.registry.At(to); occupant != nil && occupant.Color == piece.Color {
		return ErrSquareOccupied
	}
	return nil
}

// pathClear walks the squares strictly between from and to. Callers only pass
// straight or diagonal lines.
func (v MoveValidator) pathClear(from, to Position) bool {
	dr, dc := from.delta(to)
	step := Position{Row: sign(dr), Col: sign(dc)}
	for pos := (Position{Row: from.Row + step.Row, Col: from.Col + step.Col}); pos != to; pos = (Position{Row: pos.Row + step.Row, Col: pos.Col + step.Col}) {
		if v.registry.Occupied(pos) {
			return false
		}
	}
	return true
}

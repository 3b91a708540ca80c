package model

import (
	"slices"
	"time"
)

type KingStatus string

const (
	KingAlive    KingStatus = "alive"
	KingTerminal KingStatus = "terminal"
)

type Piece struct {
	ID             int
	Type           PieceType
	Color          Color
	Position       Position
	LastActionTime time.Time

	// King only.
	Lives  int
	Status KingStatus
}

// PieceRegistry owns every live piece of one game. It is not safe for
// concurrent use; the owning Game serializes access.
type PieceRegistry struct {
	pieces map[int]*Piece
	nextID int
}

func NewPieceRegistry() *PieceRegistry {
	return &PieceRegistry{
		pieces: make(map[int]*Piece),
		nextID: 1,
	}
}

// Add creates a piece with a fresh id. Ids are never reused within a registry.
func (r *PieceRegistry) Add(color Color, t PieceType, pos Position) *Piece {
	p := &Piece{
		ID:       r.nextID,
		Type:     t,
		Color:    color,
		Position: pos,
	}
	if t == King {
		p.Status = KingAlive
	}
	r.nextID++
	r.pieces[p.ID] = p
	return p
}

func (r *PieceRegistry) Get(id int) (*Piece, bool) {
	p, ok := r.pieces[id]
	return p, ok
}

func (r *PieceRegistry) Remove(id int) {
	delete(r.pieces, id)
}

// Pieces returns all live pieces ordered by id.
func (r *PieceRegistry) Pieces() []*Piece {
	out := make([]*Piece, 0, len(r.pieces))
	for _, p := range r.pieces {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Piece) int { return a.ID - b.ID })
	return out
}

// AllAt returns every piece on pos ordered by id. Outside of a capture in
// progress this holds at most one piece.
func (r *PieceRegistry) AllAt(pos Position) []*Piece {
	var out []*Piece
	for _, p := range r.pieces {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	if len(out) > 1 {
		slices.SortFunc(out, func(a, b *Piece) int { return a.ID - b.ID })
	}
	return out
}

// At returns the piece on pos, or nil. Squares hold at most one piece, so
// map order does not matter here.
func (r *PieceRegistry) At(pos Position) *Piece {
	for _, p := range r.pieces {
		if p.Position == pos {
			return p
		}
	}
	return nil
}

func (r *PieceRegistry) Occupied(pos Position) bool {
	return r.At(pos) != nil
}

// Find resolves an origin square to the live piece of the given color and
// type standing on it.
func (r *PieceRegistry) Find(color Color, t PieceType, pos Position) (*Piece, bool) {
	for _, p := range r.AllAt(pos) {
		if p.Color == color && p.Type == t {
			return p, true
		}
	}
	return nil, false
}

func (r *PieceRegistry) OfType(t PieceType) []*Piece {
	var out []*Piece
	for _, p := range r.Pieces() {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

func (r *PieceRegistry) Len() int {
	return len(r.pieces)
}

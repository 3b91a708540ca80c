package model

import "time"

type PawnStep struct {
	PieceID  int      `json:"pieceId"`
	From     Position `json:"from"`
	To       Position `json:"to"`
	Accepted bool     `json:"accepted"`
}

// PawnAdvancer moves pawns forward on their own interval and resolves their
// diagonal captures.
type PawnAdvancer struct {
	registry *PieceRegistry
	gate     CooldownGate
	strider  Strider
	resolver CaptureResolver
}

func NewPawnAdvancer(registry *PieceRegistry, gate CooldownGate, strider Strider, resolver CaptureResolver) PawnAdvancer {
	return PawnAdvancer{
		registry: registry,
		gate:     gate,
		strider:  strider,
		resolver: resolver,
	}
}

// AdvanceAll gives every pawn whose interval has elapsed one stride, in id
// order, and returns the attempts.
func (a PawnAdvancer) AdvanceAll(now time.Time) []PawnStep {
	var steps []PawnStep
	for _, p := range a.registry.OfType(Pawn) {
		if !a.gate.MayAct(p, now) {
			continue
		}
		steps = append(steps, a.advance(p, now))
	}
	return steps
}

// advance resets the pawn's timer even when the step is refused.
func (a PawnAdvancer) advance(p *Piece, now time.Time) PawnStep {
	to := Position{Row: p.Position.Row + p.Color.Direction()*a.strider.Stride(), Col: p.Position.Col}
	step := PawnStep{PieceID: p.ID, From: p.Position, To: to}
	a.gate.Commit(p, now)
	if !to.InBounds() {
		return step
	}
	if occupant := a.registry.At(to); occupant != nil && occupant.ID != p.ID {
		return step
	}
	p.Position = to
	step.Accepted = true
	return step
}

// CaptureAll lets each pawn take at most one opposing piece on its forward
// diagonals, left before right. It stops as soon as a king is exhausted.
func (a PawnAdvancer) CaptureAll(now time.Time) []Capture {
	var captures []Capture
	for _, p := range a.registry.OfType(Pawn) {
		if _, alive := a.registry.Get(p.ID); !alive {
			continue
		}
		c, ok := a.capture(p, now)
		if !ok {
			continue
		}
		captures = append(captures, c)
		if c.GameOver() {
			break
		}
	}
	return captures
}

func (a PawnAdvancer) capture(p *Piece, now time.Time) (Capture, bool) {
	for _, dc := range []int{-1, 1} {
		target := Position{Row: p.Position.Row + p.Color.Direction(), Col: p.Position.Col + dc}
		if !target.InBounds() {
			continue
		}
		if occupant := a.registry.At(target); occupant == nil || occupant.Color == p.Color {
			continue
		}
		c, ok := a.resolver.Resolve(p.Color, target, now)
		if !ok {
			continue
		}
		// An exhausted king ends the game; the pawn stays where it is.
		if !c.GameOver() {
			p.Position = target
		}
		return c, true
	}
	return Capture{}, false
}

package model

import "time"

// CooldownGate decides whether a piece may act at a given instant.
type CooldownGate struct {
	rules Rules
}

func NewCooldownGate(rules Rules) CooldownGate {
	return CooldownGate{rules: rules}
}

func (g CooldownGate) duration(p *Piece) time.Duration {
	if p.Type == Pawn {
		return g.rules.PawnInterval
	}
	return g.rules.PieceCooldown
}

// MayAct is inclusive: a piece may act exactly when its cooldown elapses.
func (g CooldownGate) MayAct(p *Piece, now time.Time) bool {
	return now.Sub(p.LastActionTime) >= g.duration(p)
}

func (g CooldownGate) OnCooldown(p *Piece, now time.Time) bool {
	return !g.MayAct(p, now)
}

// Commit must be called in the same critical section as the position update.
func (g CooldownGate) Commit(p *Piece, now time.Time) {
	p.LastActionTime = now
}

// Remaining is how long until the piece may act again.
func (g CooldownGate) Remaining(p *Piece, now time.Time) time.Duration {
	left := g.duration(p) - now.Sub(p.LastActionTime)
	if left < 0 {
		return 0
	}
	return left
}

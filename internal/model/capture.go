package model

import "time"

type Capture struct {
	PieceID int       `json:"pieceId"`
	Type    PieceType `json:"type"`
	Color   Color     `json:"color"`
	At      Position  `json:"at"`
	// King is set when the captured piece was a king.
	King *KingOutcome `json:"-"`
}

// CaptureResolver clears opposing pieces off a square. Same-color pieces are
// never touched.
type CaptureResolver struct {
	registry *PieceRegistry
	kings    *KingLifecycle
}

func NewCaptureResolver(registry *PieceRegistry, kings *KingLifecycle) CaptureResolver {
	return CaptureResolver{registry: registry, kings: kings}
}

// Resolve removes every opposing piece on dest and reports the first. Kings go
// through the lifecycle instead of being removed, and are relocated off dest
// when they respawn, so dest is free for the attacker once Resolve returns.
func (r CaptureResolver) Resolve(attacker Color, dest Position, now time.Time) (Capture, bool) {
	var (
		first Capture
		found bool
	)
	for _, p := range r.registry.AllAt(dest) {
		if p.Color == attacker {
			continue
		}
		c := Capture{PieceID: p.ID, Type: p.Type, Color: p.Color, At: dest}
		if p.Type == King {
			outcome := r.kings.OnCaptured(p, dest, now)
			c.King = &outcome
		} else {
			r.registry.Remove(p.ID)
		}
		if !found {
			first, found = c, true
		}
	}
	return first, found
}

// GameOver reports whether c ended the game.
func (c Capture) GameOver() bool {
	return c.King != nil && c.King.GameOver
}

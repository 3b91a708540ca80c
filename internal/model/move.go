package model

import "encoding/json"

// MoveCommand asks the piece of Color and Type standing on From to move to To.
type MoveCommand struct {
	Color Color     `json:"color"`
	Type  PieceType `json:"type"`
	From  Position  `json:"from"`
	To    Position  `json:"to"`
}

type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeRejected Outcome = "rejected"
	OutcomeGameOver Outcome = "gameOver"
)

type MoveResult struct {
	Outcome  Outcome        `json:"outcome"`
	Reason   error          `json:"-"`
	Winner   Color          `json:"winner,omitempty"`
	Capture  *Capture       `json:"capture,omitempty"`
	Snapshot *BoardSnapshot `json:"snapshot,omitempty"`
}

// Err is the rejection reason, or nil for an applied move. A move that ends
// the game has no reason; later moves carry ErrGameOver.
func (r MoveResult) Err() error {
	return r.Reason
}

func (r MoveResult) MarshalJSON() ([]byte, error) {
	type alias MoveResult
	out := struct {
		alias
		Reason string `json:"reason,omitempty"`
	}{alias: alias(r)}
	if r.Reason != nil {
		out.Reason = r.Reason.Error()
	}
	return json.Marshal(out)
}

func rejected(err error) MoveResult {
	return MoveResult{Outcome: OutcomeRejected, Reason: err}
}

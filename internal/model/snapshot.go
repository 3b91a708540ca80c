package model

import (
	"strings"
	"time"
)

type Cell struct {
	PieceID    int       `json:"pieceId"`
	Type       PieceType `json:"type"`
	Color      Color     `json:"color"`
	OnCooldown bool      `json:"onCooldown"`
	// CooldownRemainingMs counts down to the piece's next action; pawns
	// count down to their next advance.
	CooldownRemainingMs int64 `json:"cooldownRemainingMs"`
	Lives               int   `json:"lives,omitempty"`
}

// Notation is the board letter for the cell: upper case for white, G for a
// king on cooldown.
func (c *Cell) Notation() string {
	if c == nil {
		return "."
	}
	n := c.Type.getPieceNotation()
	if c.Type == King && c.OnCooldown {
		n = "G"
	}
	if c.Color == Black {
		n = strings.ToLower(n)
	}
	return n
}

// BoardSnapshot is a consistent read of one game. Board is indexed [row][col];
// empty squares are nil.
type BoardSnapshot struct {
	GameID   string        `json:"gameId"`
	Version  uint64        `json:"version"`
	Height   int           `json:"height"`
	Width    int           `json:"width"`
	Board    [][]*Cell     `json:"board"`
	Lives    map[Color]int `json:"lives"`
	GameOver bool          `json:"gameOver"`
	Winner   Color         `json:"winner,omitempty"`
}

// Rows renders the board one string per row, the text form served by
// GET /api/game/:gameId/board.
func (s BoardSnapshot) Rows() []string {
	rows := make([]string, len(s.Board))
	for r := range s.Board {
		letters := make([]string, len(s.Board[r]))
		for c := range s.Board[r] {
			letters[c] = s.CellAt(Position{Row: r, Col: c}).Notation()
		}
		rows[r] = strings.Join(letters, " ")
	}
	return rows
}

func (s BoardSnapshot) CellAt(pos Position) *Cell {
	if !pos.InBounds() || pos.Row >= len(s.Board) || pos.Col >= len(s.Board[pos.Row]) {
		return nil
	}
	return s.Board[pos.Row][pos.Col]
}

// snapshot must be called with g.mu held.
func (g *Game) snapshot(now time.Time) BoardSnapshot {
	board := make([][]*Cell, BoardHeight)
	for i := range board {
		board[i] = make([]*Cell, BoardWidth)
	}
	for _, p := range g.registry.Pieces() {
		if !p.Position.InBounds() {
			continue
		}
		cell := &Cell{
			PieceID:    p.ID,
			Type:       p.Type,
			Color:      p.Color,
			OnCooldown: g.gate.OnCooldown(p, now),

			CooldownRemainingMs: g.gate.Remaining(p, now).Milliseconds(),
		}
		if p.Type == King {
			cell.Lives = p.Lives
		}
		board[p.Position.Row][p.Position.Col] = cell
	}
	snap := BoardSnapshot{
		GameID:  g.ID,
		Version: g.version,
		Height:  BoardHeight,
		Width:   BoardWidth,
		Board:   board,
		Lives: map[Color]int{
			White: g.kings.Lives(White),
			Black: g.kings.Lives(Black),
		},
	}
	if winner, over := g.kings.Winner(); over {
		snap.GameOver = true
		snap.Winner = winner
	}
	return snap
}

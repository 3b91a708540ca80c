package model

import "time"

// KingOutcome is the result of a king being captured: either it respawned at
// At, or its color ran out of lives and Winner takes the game.
type KingOutcome struct {
	Respawned bool
	At        Position
	GameOver  bool
	Winner    Color
}

// KingLifecycle tracks both kings' lives. A king leaves the registry only when
// it reaches the terminal state; the lifecycle keeps it so the result stays
// observable until reset.
type KingLifecycle struct {
	registry *PieceRegistry
	kings    map[Color]*Piece
	starts   map[Color]Position
}

func NewKingLifecycle(registry *PieceRegistry) *KingLifecycle {
	return &KingLifecycle{
		registry: registry,
		kings:    make(map[Color]*Piece),
		starts:   make(map[Color]Position),
	}
}

// Track records king and its current square as its respawn point.
func (k *KingLifecycle) Track(king *Piece, lives int) {
	king.Lives = lives
	king.Status = KingAlive
	k.kings[king.Color] = king
	k.starts[king.Color] = king.Position
}

// OnCaptured spends one life. The king respawns on its start square, or the
// nearest free square if that is taken, never on reserved: the square the
// capturing piece is about to occupy. A terminal king is never decremented
// again.
func (k *KingLifecycle) OnCaptured(king *Piece, reserved Position, now time.Time) KingOutcome {
	if king.Status == KingTerminal {
		return KingOutcome{GameOver: true, Winner: king.Color.Opponent()}
	}
	king.Lives--
	if king.Lives > 0 {
		king.Position = k.respawnSquare(king, reserved)
		king.LastActionTime = now
		return KingOutcome{Respawned: true, At: king.Position}
	}
	king.Lives = 0
	king.Status = KingTerminal
	k.registry.Remove(king.ID)
	return KingOutcome{GameOver: true, Winner: king.Color.Opponent()}
}

func (k *KingLifecycle) respawnSquare(king *Piece, reserved Position) Position {
	start := k.starts[king.Color]
	free := func(pos Position) bool {
		if !pos.InBounds() || pos == reserved {
			return false
		}
		occupant := k.registry.At(pos)
		return occupant == nil || occupant.ID == king.ID
	}
	for d := 0; d < BoardHeight; d++ {
		for row := start.Row - d; row <= start.Row+d; row++ {
			for col := start.Col - d; col <= start.Col+d; col++ {
				if max(abs(row-start.Row), abs(col-start.Col)) != d {
					continue
				}
				if pos := (Position{Row: row, Col: col}); free(pos) {
					return pos
				}
			}
		}
	}
	return start
}

func (k *KingLifecycle) Terminal(c Color) bool {
	king, ok := k.kings[c]
	return ok && king.Status == KingTerminal
}

// Winner reports the color whose opponent's king is terminal.
func (k *KingLifecycle) Winner() (Color, bool) {
	for _, c := range []Color{White, Black} {
		if k.Terminal(c) {
			return c.Opponent(), true
		}
	}
	return "", false
}

func (k *KingLifecycle) Lives(c Color) int {
	if king, ok := k.kings[c]; ok {
		return king.Lives
	}
	return 0
}

package model

import (
	"testing"
	"time"
)

func TestPawnAdvanceStride(t *testing.T) {
	tests := []struct {
		name   string
		color  Color
		from   Position
		stride int
		want   Position
	}{
		{"white stride 1", White, pos(2, 3), 1, pos(3, 3)},
		{"white stride 2", White, pos(2, 3), 2, pos(4, 3)},
		{"white stride 0", White, pos(2, 3), 0, pos(2, 3)},
		{"black stride 2", Black, pos(18, 0), 2, pos(16, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			pawn := r.registry.Add(tt.color, Pawn, tt.from)
			r.strider.strides = []int{tt.stride}
			now := newFakeClock().Now()

			steps := r.pawns.AdvanceAll(now)
			if len(steps) != 1 || !steps[0].Accepted {
				t.Fatalf("unexpected steps %+v", steps)
			}
			if pawn.Position != tt.want {
				t.Fatalf("pawn at %v, want %v", pawn.Position, tt.want)
			}
			if !pawn.LastActionTime.Equal(now) {
				t.Fatal("advance should reset the pawn's timer")
			}
		})
	}
}

func TestPawnAdvanceBlockedBySameColorPawn(t *testing.T) {
	r := newRig()
	pawn := r.registry.Add(White, Pawn, pos(2, 3))
	blocker := r.registry.Add(White, Pawn, pos(3, 3))
	blocker.LastActionTime = newFakeClock().Now()
	r.strider.strides = []int{1}
	now := newFakeClock().Now().Add(time.Second)

	steps := r.pawns.AdvanceAll(now)
	if len(steps) != 1 || steps[0].Accepted {
		t.Fatalf("expected one rejected step, got %+v", steps)
	}
	if pawn.Position != pos(2, 3) {
		t.Fatalf("pawn moved to %v", pawn.Position)
	}
	if !pawn.LastActionTime.Equal(now) {
		t.Fatal("rejected advance should still reset the timer")
	}
}

func TestPawnAdvanceOffBoardRejected(t *testing.T) {
	r := newRig()
	pawn := r.registry.Add(White, Pawn, pos(20, 1))
	r.strider.strides = []int{1}
	now := newFakeClock().Now()

	steps := r.pawns.AdvanceAll(now)
	if len(steps) != 1 || steps[0].Accepted {
		t.Fatalf("expected rejected step, got %+v", steps)
	}
	if pawn.Position != pos(20, 1) || !pawn.LastActionTime.Equal(now) {
		t.Fatalf("pawn at %v, last action %v", pawn.Position, pawn.LastActionTime)
	}
}

func TestPawnWaitsForInterval(t *testing.T) {
	r := newRig()
	clock := newFakeClock()
	pawn := r.registry.Add(Black, Pawn, pos(18, 2))
	pawn.LastActionTime = clock.Now()
	r.strider.strides = []int{1, 1}

	clock.Advance(2 * time.Second)
	if steps := r.pawns.AdvanceAll(clock.Now()); len(steps) != 0 {
		t.Fatalf("pawn advanced before its interval: %+v", steps)
	}
	clock.Advance(time.Second)
	if steps := r.pawns.AdvanceAll(clock.Now()); len(steps) != 1 {
		t.Fatalf("pawn should advance at its interval, got %+v", steps)
	}
	if pawn.Position != pos(17, 2) {
		t.Fatalf("pawn at %v, want (17,2)", pawn.Position)
	}
}

func TestPawnCapturesLeftDiagonalFirst(t *testing.T) {
	r := newRig()
	pawn := r.registry.Add(White, Pawn, pos(5, 3))
	left := r.registry.Add(Black, Rook, pos(6, 2))
	right := r.registry.Add(Black, Bishop, pos(6, 4))

	captures := r.pawns.CaptureAll(newFakeClock().Now())
	if len(captures) != 1 || captures[0].PieceID != left.ID {
		t.Fatalf("expected left capture only, got %+v", captures)
	}
	if pawn.Position != pos(6, 2) {
		t.Fatalf("pawn at %v, want (6,2)", pawn.Position)
	}
	if _, ok := r.registry.Get(right.ID); !ok {
		t.Fatal("only one capture per pawn per check")
	}
}

func TestBlackPawnCapturesTowardRowZero(t *testing.T) {
	r := newRig()
	pawn := r.registry.Add(Black, Pawn, pos(10, 6))
	victim := r.registry.Add(White, Knight, pos(9, 5))
	r.registry.Add(White, Knight, pos(11, 5))

	captures := r.pawns.CaptureAll(newFakeClock().Now())
	if len(captures) != 1 || captures[0].PieceID != victim.ID {
		t.Fatalf("unexpected captures %+v", captures)
	}
	if pawn.Position != pos(9, 5) {
		t.Fatalf("pawn at %v, want (9,5)", pawn.Position)
	}
}

func TestPawnIgnoresFriendlyDiagonals(t *testing.T) {
	r := newRig()
	pawn := r.registry.Add(White, Pawn, pos(5, 3))
	r.registry.Add(White, Rook, pos(6, 2))
	r.registry.Add(White, Pawn, pos(6, 4))

	if captures := r.pawns.CaptureAll(newFakeClock().Now()); len(captures) != 0 {
		t.Fatalf("friendly capture: %+v", captures)
	}
	if pawn.Position != pos(5, 3) {
		t.Fatalf("pawn moved to %v", pawn.Position)
	}
}

func TestPawnCapturesKingThatRespawns(t *testing.T) {
	r := newRig()
	king := r.addKing(Black, 3)
	king.Position = pos(12, 4)
	pawn := r.registry.Add(White, Pawn, pos(11, 3))

	captures := r.pawns.CaptureAll(newFakeClock().Now())
	if len(captures) != 1 || captures[0].King == nil || !captures[0].King.Respawned {
		t.Fatalf("expected king respawn, got %+v", captures)
	}
	if pawn.Position != pos(12, 4) {
		t.Fatalf("pawn should take the king's old square, at %v", pawn.Position)
	}
	if king.Position != KingStart(Black) || king.Lives != 2 {
		t.Fatalf("king at %v with %d lives", king.Position, king.Lives)
	}
	if got := r.registry.AllAt(pos(12, 4)); len(got) != 1 {
		t.Fatalf("%d pieces share the captured square", len(got))
	}
}

func TestPawnCapturingLastLifeEndsGame(t *testing.T) {
	r := newRig()
	king := r.addKing(Black, 1)
	king.Position = pos(12, 2)
	pawn := r.registry.Add(White, Pawn, pos(11, 3))
	later := r.registry.Add(White, Pawn, pos(14, 0))
	r.registry.Add(Black, Rook, pos(15, 1))

	captures := r.pawns.CaptureAll(newFakeClock().Now())
	if len(captures) != 1 || !captures[0].GameOver() || captures[0].King.Winner != White {
		t.Fatalf("expected game over, got %+v", captures)
	}
	if pawn.Position != pos(11, 3) {
		t.Fatalf("pawn should stay put on game over, at %v", pawn.Position)
	}
	if later.Position != pos(14, 0) {
		t.Fatal("captures after game over should not run")
	}
}

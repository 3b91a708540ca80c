package model

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualScheduler holds deferred work until the test runs it.
type manualScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	tasks  []func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.tasks = append(s.tasks, f)
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *manualScheduler) RunAll() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, f := range tasks {
		f()
	}
	return len(tasks)
}

// scriptedStrider replays strides, then returns 0.
type scriptedStrider struct {
	strides []int
}

func (s *scriptedStrider) Stride() int {
	if len(s.strides) == 0 {
		return 0
	}
	n := s.strides[0]
	s.strides = s.strides[1:]
	return n
}

type testGame struct {
	*Game
	clock     *fakeClock
	scheduler *manualScheduler
	strider   *scriptedStrider
}

func newTestGame(t *testing.T) testGame {
	t.Helper()
	tg := testGame{
		clock:     newFakeClock(),
		scheduler: &manualScheduler{},
		strider:   &scriptedStrider{},
	}
	tg.Game = NewGame("test-game",
		WithClock(tg.clock),
		WithScheduler(tg.scheduler),
		WithStrider(tg.strider),
	)
	return tg
}

// clearBoard removes everything except the two kings.
func (tg testGame) clearBoard() {
	for _, p := range tg.registry.Pieces() {
		if p.Type != King {
			tg.registry.Remove(p.ID)
		}
	}
}

func (tg testGame) place(color Color, t PieceType, row, col int) *Piece {
	return tg.registry.Add(color, t, Position{Row: row, Col: col})
}

func (tg testGame) king(c Color) *Piece {
	return tg.kings.kings[c]
}

// rig wires the engine components without a Game around them.
type rig struct {
	registry *PieceRegistry
	kings    *KingLifecycle
	gate     CooldownGate
	resolver CaptureResolver
	pawns    PawnAdvancer
	strider  *scriptedStrider
}

func newRig() rig {
	r := rig{
		registry: NewPieceRegistry(),
		gate:     NewCooldownGate(DefaultRules()),
		strider:  &scriptedStrider{},
	}
	r.kings = NewKingLifecycle(r.registry)
	r.resolver = NewCaptureResolver(r.registry, r.kings)
	r.pawns = NewPawnAdvancer(r.registry, r.gate, r.strider, r.resolver)
	return r
}

func (r rig) addKing(c Color, lives int) *Piece {
	king := r.registry.Add(c, King, KingStart(c))
	r.kings.Track(king, lives)
	return king
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

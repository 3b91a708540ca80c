package model

import (
	"sync"
	"time"

	"github.com/benbeisheim/cooldownchess-backend/internal/ws"
	"go.uber.org/zap"
)

// The Game owns one board and serializes every mutation behind mu. Snapshot
// reads share the lock.
type Game struct {
	ID string
	mu sync.RWMutex

	rules     Rules
	clock     Clock
	scheduler Scheduler
	strider   Strider
	logger    *zap.Logger

	registry  *PieceRegistry
	kings     *KingLifecycle
	validator MoveValidator
	gate      CooldownGate
	resolver  CaptureResolver
	pawns     PawnAdvancer

	// epoch changes on reset so deferred work from a previous board is dropped.
	epoch   uint64
	version uint64

	connections *GameConnections
}

type GameOption func(*Game)

func WithRules(rules Rules) GameOption {
	return func(g *Game) { g.rules = rules }
}

func WithClock(clock Clock) GameOption {
	return func(g *Game) { g.clock = clock }
}

func WithScheduler(s Scheduler) GameOption {
	return func(g *Game) { g.scheduler = s }
}

func WithStrider(s Strider) GameOption {
	return func(g *Game) { g.strider = s }
}

// WithSeed gives the game its own stride source seeded with seed.
func WithSeed(seed int64) GameOption {
	return func(g *Game) { g.strider = NewRandStrider(seed) }
}

func WithLogger(logger *zap.Logger) GameOption {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewGame(id string, opts ...GameOption) *Game {
	g := &Game{
		ID:          id,
		rules:       DefaultRules(),
		clock:       SystemClock{},
		scheduler:   TimerScheduler{},
		logger:      zap.NewNop(),
		connections: NewGameConnections(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.strider == nil {
		seed, err := NewSeed()
		if err != nil {
			g.logger.Warn("falling back to time seed", zap.Error(err))
			seed = time.Now().UnixNano()
		}
		g.strider = NewRandStrider(seed)
	}
	g.logger = g.logger.With(zap.String("game_id", id))
	g.setup()
	return g
}

// setup builds a fresh starting position. Callers hold mu or own g exclusively.
func (g *Game) setup() {
	g.registry = NewPieceRegistry()
	g.kings = NewKingLifecycle(g.registry)
	for _, p := range startingLayout() {
		piece := g.registry.Add(p.Color, p.Type, p.Position)
		if piece.Type == King {
			g.kings.Track(piece, g.rules.KingLives)
		}
	}
	g.validator = NewMoveValidator(g.registry)
	g.gate = NewCooldownGate(g.rules)
	g.resolver = NewCaptureResolver(g.registry, g.kings)
	g.pawns = NewPawnAdvancer(g.registry, g.gate, g.strider, g.resolver)
	g.epoch++
}

// SubmitMove runs one move command to completion: cooldown, legality,
// capture, commit, pawn advance. The whole sequence holds the write lock, so
// no other command can interleave and a rejection leaves the board untouched.
func (g *Game) SubmitMove(cmd MoveCommand) MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if winner, over := g.kings.Winner(); over {
		return MoveResult{Outcome: OutcomeGameOver, Reason: ErrGameOver, Winner: winner}
	}

	piece, ok := g.registry.Find(cmd.Color, cmd.Type, cmd.From)
	if !ok {
		return g.reject(cmd, ErrPieceNotFound)
	}
	now := g.clock.Now()
	if !g.gate.MayAct(piece, now) {
		return g.reject(cmd, ErrCooldownActive)
	}
	if err := g.validator.Check(piece, cmd.To); err != nil {
		return g.reject(cmd, err)
	}

	result := MoveResult{Outcome: OutcomeApplied}
	if capture, ok := g.resolver.Resolve(piece.Color, cmd.To, now); ok {
		result.Capture = &capture
		g.logCapture(piece, capture)
	}
	piece.Position = cmd.To
	g.gate.Commit(piece, now)
	g.logger.Debug("move applied",
		zap.Int("piece_id", piece.ID),
		zap.String("color", string(piece.Color)),
		zap.String("type", string(piece.Type)),
		zap.Stringer("from", cmd.From),
		zap.Stringer("to", cmd.To),
	)

	if _, over := g.kings.Winner(); !over {
		if steps := g.pawns.AdvanceAll(now); len(steps) > 0 {
			g.scheduleCaptureCheck()
		}
	}

	g.version++
	snap := g.snapshot(now)
	result.Snapshot = &snap
	if winner, over := g.kings.Winner(); over {
		result.Outcome = OutcomeGameOver
		result.Winner = winner
		g.logger.Info("game over", zap.String("winner", string(winner)))
		go g.broadcastState(ws.MessageTypeGameOver, snap)
		return result
	}
	go g.broadcastState(ws.MessageTypeGameState, snap)
	return result
}

func (g *Game) reject(cmd MoveCommand, err error) MoveResult {
	g.logger.Debug("move rejected",
		zap.String("color", string(cmd.Color)),
		zap.String("type", string(cmd.Type)),
		zap.Stringer("from", cmd.From),
		zap.Stringer("to", cmd.To),
		zap.Error(err),
	)
	return rejected(err)
}

func (g *Game) logCapture(attacker *Piece, c Capture) {
	fields := []zap.Field{
		zap.Int("attacker_id", attacker.ID),
		zap.String("attacker", string(attacker.Type)),
		zap.Int("captured_id", c.PieceID),
		zap.String("captured", string(c.Type)),
		zap.String("captured_color", string(c.Color)),
		zap.Stringer("at", c.At),
	}
	if c.King != nil && c.King.Respawned {
		fields = append(fields, zap.Stringer("respawn", c.King.At), zap.Int("lives", g.kings.Lives(c.Color)))
	}
	g.logger.Info("capture", fields...)
}

// scheduleCaptureCheck queues the pawns' diagonal capture check to run after
// the capture delay, outside the current critical section.
func (g *Game) scheduleCaptureCheck() {
	epoch := g.epoch
	g.scheduler.AfterFunc(g.rules.PawnCaptureDelay, func() {
		g.runCaptureCheck(epoch)
	})
}

func (g *Game) runCaptureCheck(epoch uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.epoch != epoch {
		return
	}
	if _, over := g.kings.Winner(); over {
		return
	}
	now := g.clock.Now()
	captures := g.pawns.CaptureAll(now)
	if len(captures) == 0 {
		return
	}
	for _, c := range captures {
		g.logger.Info("pawn capture",
			zap.Int("captured_id", c.PieceID),
			zap.String("captured", string(c.Type)),
			zap.String("captured_color", string(c.Color)),
			zap.Stringer("at", c.At),
		)
	}
	g.version++
	snap := g.snapshot(now)
	if winner, over := g.kings.Winner(); over {
		g.logger.Info("game over", zap.String("winner", string(winner)))
		go g.broadcastState(ws.MessageTypeGameOver, snap)
		return
	}
	go g.broadcastState(ws.MessageTypeGameState, snap)
}

// Snapshot returns a consistent view of the board.
func (g *Game) Snapshot() BoardSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot(g.clock.Now())
}

// Reset restores the starting position and both kings' lives. Pending
// deferred captures from before the reset are discarded.
func (g *Game) Reset() BoardSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.setup()
	g.version++
	snap := g.snapshot(g.clock.Now())
	g.logger.Info("game reset")
	go g.broadcastState(ws.MessageTypeGameState, snap)
	return snap
}

// Winner reports the winning color once a king has no lives left.
func (g *Game) Winner() (Color, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.kings.Winner()
}

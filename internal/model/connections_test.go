package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/cooldownchess-backend/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	versions []uint64
	types    []ws.MessageType
	fail     error
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	msg, ok := v.(ws.Message)
	if !ok {
		return errors.New("unexpected write")
	}
	var snap BoardSnapshot
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		return err
	}
	c.versions = append(c.versions, snap.Version)
	c.types = append(c.types, msg.Type)
	return nil
}

func (c *fakeConn) written() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uint64(nil), c.versions...)
}

func TestRegisterSendsCurrentBoard(t *testing.T) {
	tg := newTestGame(t)
	conn := &fakeConn{}

	tg.RegisterConnection(conn)

	if len(conn.versions) != 1 || conn.types[0] != ws.MessageTypeGameState {
		t.Fatalf("initial writes %v %v", conn.types, conn.versions)
	}
	if tg.connections.Len() != 1 {
		t.Fatalf("subscribers = %d", tg.connections.Len())
	}
}

func TestBroadcastDropsStaleSnapshots(t *testing.T) {
	tg := newTestGame(t)
	conn := &fakeConn{}
	tg.RegisterConnection(conn)

	older := tg.Snapshot()
	older.Version = 4
	newer := tg.Snapshot()
	newer.Version = 5

	// The newer push wins the race; the older one arrives after it.
	tg.broadcastState(ws.MessageTypeGameState, newer)
	tg.broadcastState(ws.MessageTypeGameState, older)
	tg.broadcastState(ws.MessageTypeGameState, newer)

	want := []uint64{0, 5}
	if len(conn.versions) != len(want) {
		t.Fatalf("versions written %v, want %v", conn.versions, want)
	}
	for i := range want {
		if conn.versions[i] != want[i] {
			t.Fatalf("versions written %v, want %v", conn.versions, want)
		}
	}
}

func TestBroadcastOrderAcrossMoveCaptureAndReset(t *testing.T) {
	tg := newTestGame(t)
	tg.clearBoard()
	tg.place(White, Pawn, 5, 3)
	tg.place(Black, Rook, 6, 2)
	tg.place(White, Rook, 10, 0)

	conn := &fakeConn{}
	tg.RegisterConnection(conn)

	tg.strider.strides = []int{0}
	move := tg.SubmitMove(MoveCommand{Color: White, Type: Rook, From: Position{Row: 10, Col: 0}, To: Position{Row: 10, Col: 6}})
	if move.Outcome != OutcomeApplied {
		t.Fatalf("move: %s %v", move.Outcome, move.Err())
	}
	tg.clock.Advance(time.Second)
	tg.scheduler.RunAll()
	captured := tg.Snapshot()
	reset := tg.Reset()

	// Deliver the three pushes newest first, as a scheduler might.
	tg.broadcastState(ws.MessageTypeGameState, reset)
	tg.broadcastState(ws.MessageTypeGameState, captured)
	tg.broadcastState(ws.MessageTypeGameState, *move.Snapshot)

	written := conn.written()
	if last := written[len(written)-1]; last != reset.Version {
		t.Fatalf("client ended on version %d, want %d (writes %v)", last, reset.Version, written)
	}
	for i := 1; i < len(written); i++ {
		if written[i] <= written[i-1] {
			t.Fatalf("versions not increasing: %v", written)
		}
	}
}

func TestBroadcastDropsFailedClients(t *testing.T) {
	tg := newTestGame(t)
	good := &fakeConn{}
	bad := &fakeConn{}
	tg.RegisterConnection(good)
	tg.RegisterConnection(bad)
	if tg.connections.Len() != 2 {
		t.Fatalf("subscribers = %d", tg.connections.Len())
	}

	bad.mu.Lock()
	bad.fail = errors.New("broken pipe")
	bad.mu.Unlock()

	snap := tg.Snapshot()
	snap.Version = 1
	tg.broadcastState(ws.MessageTypeGameState, snap)

	if tg.connections.Len() != 1 {
		t.Fatalf("subscribers after failed write = %d, want 1", tg.connections.Len())
	}
	if len(good.versions) != 2 {
		t.Fatalf("healthy client writes %v", good.versions)
	}
}

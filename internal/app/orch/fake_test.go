package orch

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/stretchr/testify/require"
)

// fakeConn records frames; it can be closed or made to refuse (full queue).
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
	full   bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) setFull(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = v
}

// drain returns the decoded messages received so far and forgets them.
func (c *fakeConn) drain(t *testing.T) []map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.frames))
	for _, f := range c.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(f, &m))
		out = append(out, m)
	}
	c.frames = nil
	return out
}

func types(msgs []map[string]any) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m["type"].(string))
	}
	return out
}

type harness struct {
	o     *Orchestrator
	conns map[core.SessionID]*fakeConn
}

func newHarness(policy app.Policy) *harness {
	return &harness{
		o:     New(app.NewRegistry(), core.NewRoomRegistry(), policy),
		conns: make(map[core.SessionID]*fakeConn),
	}
}

func (h *harness) connect(sid core.SessionID) *fakeConn {
	c := &fakeConn{}
	h.conns[sid] = c
	h.o.Registry.BindSignal(app.NewSession(sid, c), func() { c.Close() })
	return c
}

package orch

import (
	"sync"
	"testing"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioJoinChatDisconnect(t *testing.T) {
	h := newHarness(nil)
	c1 := h.connect("s1")
	c2 := h.connect("s2")

	require.NoError(t, h.o.Join("s1", "r1", "p1", "Ann"))
	require.NoError(t, h.o.Join("s2", "r1", "p2", "Bob"))

	m1 := c1.drain(t)
	require.Equal(t, []string{"room-joined", "user-connected"}, types(m1))
	assert.Equal(t, "p2", m1[1]["peerId"])

	m2 := c2.drain(t)
	require.Equal(t, []string{"room-joined"}, types(m2), "joiner must not hear about itself")
	members := m2[0]["members"].([]any)
	require.Len(t, members, 1)
	assert.Equal(t, "p1", members[0].(map[string]any)["peerId"])

	require.NoError(t, h.o.Chat("s2", "hi"))
	for _, c := range []*fakeConn{c1, c2} {
		msgs := c.drain(t)
		require.Len(t, msgs, 1)
		assert.Equal(t, "createMessage", msgs[0]["type"])
		assert.Equal(t, "hi", msgs[0]["text"])
		assert.Equal(t, "Bob", msgs[0]["displayName"])
	}

	h.o.OnDisconnect("s1")
	m2 = c2.drain(t)
	require.Equal(t, []string{"user-disconnected"}, types(m2))
	assert.Equal(t, "p1", m2[0]["peerId"])
	assert.Equal(t, []domain.PeerID{"p2"}, h.o.Rooms.MembersOf("r1"))
	assert.Empty(t, c1.drain(t))
}

func TestJoinErrors(t *testing.T) {
	h := newHarness(nil)
	h.connect("s1")
	h.connect("s2")

	require.NoError(t, h.o.Join("s1", "r1", "p1", ""))
	require.ErrorIs(t, h.o.Join("s1", "r2", "p9", ""), domain.ErrAlreadyJoined)
	require.ErrorIs(t, h.o.Join("s2", "r1", "p1", ""), domain.ErrDuplicateMember)
	require.ErrorIs(t, h.o.Join("s2", "", "p2", ""), domain.ErrEmptyRoom)
	require.ErrorIs(t, h.o.Join("s2", "r1", "", ""), domain.ErrEmptyPeer)
	require.ErrorIs(t, h.o.Join("nope", "r1", "p3", ""), ErrUnknownSession)

	// s2 is still free to join after the rejected attempts
	require.NoError(t, h.o.Join("s2", "r1", "p2", ""))
	assert.Equal(t, []domain.PeerID{"p1", "p2"}, h.o.Rooms.MembersOf("r1"))
	assert.Equal(t, []domain.PeerID(nil), h.o.Rooms.MembersOf("r2"))
}

func TestJoinThenLeaveRemovesRoom(t *testing.T) {
	h := newHarness(nil)
	h.connect("s1")
	require.NoError(t, h.o.Join("s1", "r1", "p1", ""))
	require.NoError(t, h.o.Leave("s1"))
	assert.Zero(t, h.o.Rooms.Len())
	require.ErrorIs(t, h.o.Leave("s1"), domain.ErrNotJoined)
}

func TestDoubleLeaveEmitsOneNotification(t *testing.T) {
	h := newHarness(nil)
	h.connect("s1")
	c2 := h.connect("s2")
	require.NoError(t, h.o.Join("s1", "r1", "p1", ""))
	require.NoError(t, h.o.Join("s2", "r1", "p2", ""))
	c2.drain(t)

	require.NoError(t, h.o.Leave("s1"))
	require.ErrorIs(t, h.o.Leave("s1"), domain.ErrNotJoined)
	h.o.OnDisconnect("s1")
	h.o.OnDisconnect("s1")

	assert.Equal(t, []string{"user-disconnected"}, types(c2.drain(t)))
}

func TestLeaveAndDisconnectRace(t *testing.T) {
	for i := 0; i < 50; i++ {
		h := newHarness(nil)
		h.connect("s1")
		c2 := h.connect("s2")
		require.NoError(t, h.o.Join("s1", "r1", "p1", ""))
		require.NoError(t, h.o.Join("s2", "r1", "p2", ""))
		c2.drain(t)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() { defer wg.Done(); _ = h.o.Leave("s1") }()
		go func() { defer wg.Done(); _ = h.o.EndCall("s1") }()
		go func() { defer wg.Done(); h.o.OnDisconnect("s1") }()
		wg.Wait()

		left := 0
		for _, typ := range types(c2.drain(t)) {
			if typ == "user-disconnected" {
				left++
			}
		}
		require.Equal(t, 1, left)
		require.Equal(t, []domain.PeerID{"p2"}, h.o.Rooms.MembersOf("r1"))
	}
}

func TestBroadcastExclusion(t *testing.T) {
	h := newHarness(nil)
	ca, cb, cc := h.connect("a"), h.connect("b"), h.connect("c")
	require.NoError(t, h.o.Join("a", "r", "A", ""))
	require.NoError(t, h.o.Join("b", "r", "B", ""))
	require.NoError(t, h.o.Join("c", "r", "C", ""))
	ca.drain(t)
	cb.drain(t)
	cc.drain(t)

	res := h.o.Broadcast("r", domain.Event{Kind: domain.EventEndCall, Room: "r", Peer: "A"}, "A")
	assert.Equal(t, 2, res.SendTo)
	assert.Empty(t, ca.drain(t))
	assert.Len(t, cb.drain(t), 1)
	assert.Len(t, cc.drain(t), 1)

	res = h.o.Broadcast("nope", domain.Event{Kind: domain.EventEndCall, Room: "nope", Peer: "A"}, "")
	assert.Zero(t, res.SendTo)
}

func TestBroadcastToleratesClosedAndSlowMembers(t *testing.T) {
	h := newHarness(app.SimplePolicy{Action: app.DropFrame})
	ca, cb, cc := h.connect("a"), h.connect("b"), h.connect("c")
	require.NoError(t, h.o.Join("a", "r", "A", ""))
	require.NoError(t, h.o.Join("b", "r", "B", ""))
	require.NoError(t, h.o.Join("c", "r", "C", ""))
	ca.drain(t)
	cc.drain(t)

	cb.Close()
	cc.setFull(true)
	res := h.o.Broadcast("r", domain.Event{Kind: domain.EventChat, Room: "r", Peer: "A", Text: "x"}, "")
	assert.Equal(t, 1, res.SendTo)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, domain.PeerID("C"), res.Dropped[0].Meta().Peer)
	assert.Len(t, ca.drain(t), 1)
	// dropping keeps the member
	assert.Equal(t, []domain.PeerID{"A", "B", "C"}, h.o.Rooms.MembersOf("r"))
}

func TestKickPolicy(t *testing.T) {
	h := newHarness(app.SimplePolicy{Action: app.KickMember})
	ca, cb := h.connect("a"), h.connect("b")
	require.NoError(t, h.o.Join("a", "r", "A", ""))
	require.NoError(t, h.o.Join("b", "r", "B", ""))
	ca.drain(t)

	cb.setFull(true)
	require.NoError(t, h.o.Chat("a", "hello"))

	assert.Equal(t, []domain.PeerID{"A"}, h.o.Rooms.MembersOf("r"))
	assert.Equal(t, []string{"createMessage", "user-disconnected"}, types(ca.drain(t)))
	cb.mu.Lock()
	assert.True(t, cb.closed, "kicked transport is canceled")
	cb.mu.Unlock()

	sess, ok := h.o.Registry.GetSession("b")
	require.True(t, ok)
	assert.Equal(t, app.StateDisconnected, sess.State())
}

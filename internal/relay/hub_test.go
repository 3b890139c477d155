package relay

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFrame(t *testing.T, s *Session) *Event {
	t.Helper()
	select {
	case frame := <-s.send:
		var event Event
		require.NoError(t, json.Unmarshal(frame, &event))
		return &event
	default:
		t.Fatal("期望收到事件帧，但发送缓冲为空")
		return nil
	}
}

func TestJoinRejectsForeignRoom(t *testing.T) {
	hub := NewHub()
	s := newSession(nil, "alice")

	assert.False(t, hub.Join(s, "bob"))
	assert.Empty(t, s.Joined())
	assert.Zero(t, hub.RoomSize("bob"))

	assert.True(t, hub.Join(s, "alice"))
	assert.Equal(t, "alice", s.Joined())
}

func TestJoinIdempotent(t *testing.T) {
	hub := NewHub()
	s := newSession(nil, "alice")

	require.True(t, hub.Join(s, "alice"))
	require.True(t, hub.Join(s, "alice"))
	assert.Equal(t, 1, hub.RoomSize("alice"))
}

func TestEmitFansOutToAllSessions(t *testing.T) {
	hub := NewHub()
	first := newSession(nil, "alice")
	second := newSession(nil, "alice")
	other := newSession(nil, "bob")

	require.True(t, hub.Join(first, "alice"))
	require.True(t, hub.Join(second, "alice"))
	require.True(t, hub.Join(other, "bob"))

	hub.Emit("alice", EventReceiveMessage, map[string]string{"text": "hi"})

	for _, s := range []*Session{first, second} {
		event := readFrame(t, s)
		assert.Equal(t, EventReceiveMessage, event.Event)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(event.Data, &payload))
		assert.Equal(t, "hi", payload["text"])
	}

	// bob 的房间没有收到
	select {
	case <-other.send:
		t.Fatal("不该向其他房间扇出")
	default:
	}
}

func TestEmitToEmptyRoom(t *testing.T) {
	hub := NewHub()
	// 空房间推送是静默的空操作
	hub.Emit("nobody", EventReadUpdate, ReadUpdatePayload{Sender: "a", Receiver: "b"})
}

func TestRemoveDropsMembership(t *testing.T) {
	hub := NewHub()
	s := newSession(nil, "alice")
	require.True(t, hub.Join(s, "alice"))
	require.Equal(t, 1, hub.RoomSize("alice"))

	hub.Remove(s)

	assert.Zero(t, hub.RoomSize("alice"))
	hub.Emit("alice", EventReceiveMessage, "late")
	select {
	case <-s.send:
		t.Fatal("摘除后的会话不该再收到推送")
	default:
	}
}

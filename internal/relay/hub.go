package relay

import (
	log "log/slog"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Hub 进程内实时分发器：每个用户名一个房间，一个房间容纳该用户的所有连接。
// 房间成员关系只存在于内存中，断线重连后重建；跨进程扇出不在本层职责内。
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Session]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Session]struct{}),
	}
}

// Register 为一条升级完成的连接建立会话并启动写循环
func (h *Hub) Register(conn *websocket.Conn, username string) *Session {
	s := newSession(conn, username)
	go s.writeLoop()
	return s
}

// Join 将会话加入以用户名命名的房间。重复加入是幂等的。
// 只接受与会话鉴权身份一致的房间名，伪造的加入请求被拒绝。
func (h *Hub) Join(s *Session, room string) bool {
	if room != s.Username {
		log.Warn("拒绝加入与身份不符的房间", "username", s.Username, "room", room)
		return false
	}
	if s.Joined() == room {
		return true
	}

	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Session]struct{})
	}
	h.rooms[room][s] = struct{}{}
	h.mu.Unlock()

	s.setJoined(room)
	log.Info("会话加入房间", "room", room)
	return true
}

// Remove 会话断开时摘除房间成员并关闭连接
func (h *Hub) Remove(s *Session) {
	room := s.Joined()
	if room != "" {
		h.mu.Lock()
		if members, ok := h.rooms[room]; ok {
			delete(members, s)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
		h.mu.Unlock()
	}
	s.close()
}

// Emit 向指定房间的全部会话推送一个事件
func (h *Hub) Emit(room string, event string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Error("事件载荷序列化失败", "event", event, "err", err)
		return
	}
	h.EmitRaw(room, event, raw)
}

// EmitRaw 推送已序列化的载荷，原样转发时避免二次编解码
func (h *Hub) EmitRaw(room string, event string, data json.RawMessage) {
	frame, err := json.Marshal(&Event{Event: event, Data: data})
	if err != nil {
		log.Error("事件帧序列化失败", "event", event, "err", err)
		return
	}

	h.mu.RLock()
	members := h.rooms[room]
	sessions := make([]*Session, 0, len(members))
	for s := range members {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		s.push(frame)
	}
}

// RoomSize 房间内当前会话数，主要用于测试与观测
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

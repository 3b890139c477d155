package relay

import (
	log "log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
	sendBuffer   = 64
)

// Session 一条已建立的实时连接。
// 连接建立时即携带鉴权后的用户名，加入房间前处于未加入状态。
type Session struct {
	Username string

	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	joined string

	done chan struct{}
	once sync.Once
}

func newSession(conn *websocket.Conn, username string) *Session {
	return &Session{
		Username: username,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// Joined 返回当前加入的房间名，未加入时为空串
func (s *Session) Joined() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joined
}

func (s *Session) setJoined(room string) {
	s.mu.Lock()
	s.joined = room
	s.mu.Unlock()
}

// push 非阻塞投递；慢客户端的缓冲写满时丢帧，通知是尽力而为的
func (s *Session) push(frame []byte) {
	select {
	case s.send <- frame:
	case <-s.done:
	default:
		log.Warn("会话发送缓冲已满，丢弃通知", "username", s.Username)
	}
}

func (s *Session) close() {
	s.once.Do(func() {
		close(s.done)
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// writeLoop 串行写出，附带心跳保活
func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Warn("实时通道推送失败", "username", s.Username, "err", err)
				s.close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/Ali506108/Chat-Service/internal/metrics"
	"github.com/Ali506108/Chat-Service/internal/models"
)

// Conn is the slice of a websocket connection the pump uses. Satisfied by
// *websocket.Conn.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// MessageSender persists inbound messages.
type MessageSender interface {
	Send(ctx context.Context, m *models.Message) (*models.Message, error)
}

// Options are the pump timings, normally taken from config.
type Options struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
}

func (o *Options) fillDefaults() {
	if o.WriteWait == 0 {
		o.WriteWait = 10 * time.Second
	}
	if o.PongWait == 0 {
		o.PongWait = 60 * time.Second
	}
	if o.PingPeriod == 0 {
		o.PingPeriod = o.PongWait * 9 / 10
	}
	if o.MaxMessageSize == 0 {
		o.MaxMessageSize = 65536
	}
}

// Session pumps one client connection. The read pump decodes inbound
// frames, persists them and publishes the persisted form to the hub; the
// write pump drains this session's hub subscription onto the socket.
// Neither direction blocks the other.
type Session struct {
	conn     Conn
	hub      *Hub
	sub      *Subscriber
	messages MessageSender
	log      *zap.SugaredLogger
	opts     Options

	closeOnce sync.Once
}

func NewSession(conn Conn, hub *Hub, messages MessageSender, log *zap.SugaredLogger, opts Options) *Session {
	opts.fillDefaults()
	return &Session{
		conn:     conn,
		hub:      hub,
		sub:      hub.Subscribe(),
		messages: messages,
		log:      log,
		opts:     opts,
	}
}

// Run drives both pumps and returns once the session is closed. It must
// be called from the connection's handler goroutine.
func (s *Session) Run() {
	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writePump()
	}()
	s.readPump()
	wg.Wait()
}

// Close revokes the hub subscription and closes the socket. Safe to call
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.hub.Unsubscribe(s.sub)
		s.conn.Close()
	})
}

func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(s.opts.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var m models.Message
		if err := json.Unmarshal(data, &m); err != nil {
			// A single malformed frame never costs the connection.
			s.log.Debugw("dropping malformed frame", "err", err)
			continue
		}
		m.Prepare(time.Now().UTC())

		saved, err := s.messages.Send(context.Background(), &m)
		if err != nil {
			s.log.Errorw("message save failed", "message_id", m.MessageID, "err", err)
			continue
		}

		frame, err := json.Marshal(saved)
		if err != nil {
			s.log.Errorw("message encode failed", "message_id", saved.MessageID, "err", err)
			continue
		}
		s.hub.Publish(frame)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(s.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case frame, ok := <-s.sub.C():
			if !ok {
				// Subscription revoked, tell the peer we are done.
				_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

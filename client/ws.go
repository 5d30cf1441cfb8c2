package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// -- Raw stream event types (client-internal; the app folds them) -------------

// StreamConnectedEvent is dispatched when /ws/chat is established.
type StreamConnectedEvent struct {
	SessionID string
}

// StreamDisconnectedEvent is dispatched when the socket drops or closes.
type StreamDisconnectedEvent struct {
	Err error
}

// StreamReconnectingEvent is dispatched before each reconnect attempt.
type StreamReconnectingEvent struct {
	Attempt int
}

// StreamAuthFailedEvent is dispatched when the handshake gets a 401/403.
type StreamAuthFailedEvent struct{}

// ChatEvent carries one server-pushed Message.
type ChatEvent struct {
	Message Message
}

// StreamParseWarning is emitted when a frame cannot be decoded.
// The TUI surfaces it as a toast instead of writing to stderr.
type StreamParseWarning struct {
	Message string
}

// OutboundMessage is the frame written for each submission.
type OutboundMessage struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ErrNotConnected is returned by Send while the socket is down.
var ErrNotConnected = errors.New("chat stream not connected")

// Sender receives messages from the stream goroutine. *tea.Program
// satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// -- ChatStream ----------------------------------------------------------------

// ChatStream manages the /ws/chat connection.
type ChatStream struct {
	url       string
	token     string
	sessionID string
	dialer    *websocket.Dialer
	done      chan struct{}

	mu   sync.Mutex // guards conn and serializes writes
	conn *websocket.Conn
}

// NewChatStream creates a stream client for baseURL's /ws/chat.
func NewChatStream(baseURL, token, sessionID string) *ChatStream {
	return &ChatStream{
		url:       wsURL(baseURL) + "/ws/chat",
		token:     token,
		sessionID: sessionID,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		done: make(chan struct{}),
	}
}

func wsURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}

// URL is the socket address.
func (s *ChatStream) URL() string { return s.url }

// Close signals the stream to stop and closes the socket.
func (s *ChatStream) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Lock()
	if s.conn != nil {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.conn.Close()
		s.conn = nil
	}
	s.mu.Unlock()
}

// IsClosed reports whether the stream has been intentionally closed.
func (s *ChatStream) IsClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Connected reports whether a socket is open.
func (s *ChatStream) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Send writes text as one outbound frame and returns the frame id.
func (s *ChatStream) Send(text string) (string, error) {
	out := OutboundMessage{ID: uuid.NewString(), SessionID: s.sessionID, Message: text}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return "", ErrNotConnected
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := s.conn.WriteJSON(out); err != nil {
		return "", fmt.Errorf("send: %w", err)
	}
	return out.ID, nil
}

// ListenCmd returns a tea.Cmd that reads frames and forwards them as
// ChatEvent messages until the socket drops.
func (s *ChatStream) ListenCmd(p Sender) tea.Cmd {
	return func() tea.Msg {
		header := http.Header{}
		if s.token != "" {
			header.Set("Authorization", "Bearer "+s.token)
		}
		if s.sessionID != "" {
			header.Set("X-Session-ID", s.sessionID)
		}

		conn, resp, err := s.dialer.Dial(s.url, header)
		if err != nil {
			if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
				return StreamAuthFailedEvent{}
			}
			return StreamDisconnectedEvent{Err: fmt.Errorf("dial %s: %w", s.url, err)}
		}

		s.mu.Lock()
		if s.IsClosed() {
			s.mu.Unlock()
			conn.Close()
			return StreamDisconnectedEvent{Err: nil}
		}
		s.conn = conn
		s.mu.Unlock()

		p.Send(StreamConnectedEvent{SessionID: s.sessionID})

		defer func() {
			s.mu.Lock()
			if s.conn == conn {
				s.conn = nil
			}
			s.mu.Unlock()
			conn.Close()
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if s.IsClosed() || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					return StreamDisconnectedEvent{Err: nil}
				}
				return StreamDisconnectedEvent{Err: fmt.Errorf("%w: %v", ErrDropped, err)}
			}
			p.Send(parseFrame(data))
		}
	}
}

// MaxReconnects is the maximum number of reconnect attempts before giving up.
const MaxReconnects = 10

// ReconnectListenCmd reconnects the stream with capped exponential backoff.
// After MaxReconnects failed attempts it returns an error instead of looping forever.
// Once it reconnects, the result is whatever ListenCmd returns for that
// connection, so the caller sees a clean close or a drop the same way.
func (s *ChatStream) ReconnectListenCmd(p Sender) tea.Cmd {
	return s.reconnect(p, time.Second)
}

func (s *ChatStream) reconnect(p Sender, unit time.Duration) tea.Cmd {
	return func() tea.Msg {
		attempt := 0
		maxBackoff := 30 * unit

		for {
			select {
			case <-s.done:
				return StreamDisconnectedEvent{Err: nil}
			default:
			}

			if attempt >= MaxReconnects {
				return StreamDisconnectedEvent{
					Err: fmt.Errorf("chat reconnect failed after %d attempts", MaxReconnects),
				}
			}

			attempt++
			shift := attempt
			if shift > 5 {
				shift = 5
			}
			backoff := time.Duration(1<<uint(shift)) * unit
			if backoff > maxBackoff {
				backoff = maxBackoff
			}

			select {
			case <-time.After(backoff):
			case <-s.done:
				return StreamDisconnectedEvent{Err: nil}
			}

			p.Send(StreamReconnectingEvent{Attempt: attempt})
			result := s.ListenCmd(p)()
			if result == nil {
				continue
			}
			// Only dial failures are retried here. Once a connection was
			// made, its end goes back to the caller exactly as from ListenCmd.
			if ev, ok := result.(StreamDisconnectedEvent); ok && !endedConnection(ev) {
				continue
			}
			return result
		}
	}
}

// endedConnection reports whether ev closes a connection that had been
// established, cleanly or not.
func endedConnection(ev StreamDisconnectedEvent) bool {
	return ev.Err == nil || errors.Is(ev.Err, ErrDropped)
}

// ErrDropped wraps the read error of an established connection that went
// away. Callers should reconnect on it.
var ErrDropped = errors.New("connection dropped")

func parseFrame(data []byte) tea.Msg {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return StreamParseWarning{Message: fmt.Sprintf("[ws] parse frame: %v", err)}
	}
	if m.Type == "" {
		return StreamParseWarning{Message: "[ws] frame without type"}
	}
	return ChatEvent{Message: m}
}

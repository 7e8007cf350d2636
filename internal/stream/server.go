// Package stream serves live controller state to websocket clients as
// JSON and accepts output requests back.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/gefkit/platform/input"
)

var ErrInvalidSlot = errors.New("invalid controller slot")

// Pads is the controller set a Server exposes.
type Pads interface {
	Count() int
	States() []input.ControllerState
	Controller(index int) *input.Controller
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Server struct {
	hub         *Hub
	broadcaster *Broadcaster
	pads        Pads
	logger      *slog.Logger
	httpServer  *http.Server
}

func NewServer(h *Hub, b *Broadcaster, pads Pads, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{hub: h, broadcaster: b, pads: pads, logger: logger}
}

// Handler routes /ws to the websocket stream and /state to a JSON snapshot
// of every slot.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/state", s.handleState)
	return mux
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.pads.States()); err != nil {
		s.logger.Error("Failed to write state snapshot", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	c := NewClient(s.hub, conn)
	s.hub.Register(c)
	s.broadcaster.SendInitialState(c)

	go c.WritePump()
	go c.ReadPump(s.handleClientMessage)
}

func (s *Server) handleClientMessage(c *Client, msg ClientMessage) {
	reply := func(m *Message) {
		data, err := json.Marshal(m)
		if err != nil {
			return
		}
		s.hub.SendTo(c, data)
	}
	if msg.Slot < 0 || msg.Slot >= s.pads.Count() {
		reply(NewErrorMessage(msg.Slot, fmt.Errorf("%w: %d", ErrInvalidSlot, msg.Slot)))
		return
	}

	switch msg.Type {
	case TypeSelectSlot:
		c.SetSlot(msg.Slot)
		reply(NewSelectedMessage(msg.Slot))
		s.broadcaster.SendInitialState(c)
		s.logger.Debug("Stream client switched slot", "remote", c.RemoteAddr(), "slot", msg.Slot)

	case TypeOutput:
		ctrl := s.pads.Controller(msg.Slot)
		cur := ctrl.Output()
		req := cur
		if msg.Output != nil {
			req = *msg.Output
			req.LeftTrigger, req.RightTrigger = cur.LeftTrigger, cur.RightTrigger
		}
		if msg.Trigger != "" {
			effect, err := input.ParseTriggerEffect(msg.Trigger, msg.TriggerParams...)
			if err != nil {
				reply(NewErrorMessage(msg.Slot, err))
				return
			}
			req.LeftTrigger, req.RightTrigger = effect, effect
		}
		if err := ctrl.SetOutput(req); err != nil {
			reply(NewErrorMessage(msg.Slot, err))
		}

	default:
		reply(NewErrorMessage(msg.Slot, fmt.Errorf("unknown message type %q", msg.Type)))
	}
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Stream server listening", "addr", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down stream server")
		_ = s.httpServer.Shutdown(context.Background())
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

package net

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	FrameSnapshot = "snapshot"
	FrameCleared  = "cleared"

	writeWait  = 5 * time.Second
	sendBuffer = 4
)

// Frame is one message pushed to mirror viewers. Data carries the PNG data
// URL for snapshot frames and is empty for cleared frames.
type Frame struct {
	Type     string `json:"type"`
	Data     string `json:"data,omitempty"`
	Revision uint64 `json:"revision"`
}

type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans pad snapshots out to every connected websocket viewer. It is a
// one-way broadcast: anything viewers send is read and discarded.
type Hub struct {
	peers    map[*peer]struct{}
	latest   Frame
	revision uint64
	closed   bool
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		peers:  make(map[*peer]struct{}),
		logger: logger,
	}
}

// Publish turns a pad snapshot into the next frame and broadcasts it.
func (h *Hub) Publish(snapshot string) Frame {
	h.mu.Lock()
	h.revision++
	f := Frame{Type: FrameSnapshot, Data: snapshot, Revision: h.revision}
	if snapshot == "" {
		f.Type = FrameCleared
	}
	h.mu.Unlock()

	h.Broadcast(f)
	return f
}

// Broadcast queues f for every viewer and remembers it for late joiners.
// Viewers whose queue is full miss the frame.
func (h *Hub) Broadcast(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.logger.Error("Failed to marshal frame", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = f
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			h.logger.Debug("Viewer too slow, dropping frame",
				zap.String("remote", p.conn.RemoteAddr().String()),
				zap.Uint64("revision", f.Revision))
		}
	}
}

// Latest returns the last broadcast frame; ok is false before the first.
func (h *Hub) Latest() (f Frame, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.latest.Revision > 0
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Serve registers conn as a viewer and blocks until it disconnects or the
// hub is closed. The latest frame, if any, is sent first.
func (h *Hub) Serve(conn *websocket.Conn) {
	p := &peer{conn: conn, send: make(chan []byte, sendBuffer)}
	addr := conn.RemoteAddr().String()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.peers[p] = struct{}{}
	if h.latest.Revision > 0 {
		if data, err := json.Marshal(h.latest); err == nil {
			p.send <- data
		}
	}
	h.mu.Unlock()
	h.logger.Info("Viewer connected", zap.String("remote", addr))

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(p)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.logger.Info("Viewer disconnected", zap.String("remote", addr), zap.Error(err))
			break
		}
	}
	h.remove(p)
	<-done
	conn.Close()
}

func (h *Hub) writePump(p *peer) {
	for data := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("Write to viewer failed", zap.Error(err))
			p.conn.Close()
			for range p.send {
			}
			return
		}
	}
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
}

// Close disconnects every viewer and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for p := range h.peers {
		delete(h.peers, p)
		close(p.send)
		p.conn.Close()
	}
}

// Run publishes every snapshot received on snapshots until the channel is
// closed or ctx is done, then closes the hub.
func (h *Hub) Run(ctx context.Context, snapshots <-chan string) error {
	defer h.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-snapshots:
			if !ok {
				return nil
			}
			h.Publish(s)
		}
	}
}

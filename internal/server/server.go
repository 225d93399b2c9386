// Package server streams resident terrain over websockets so an external
// viewer can watch chunks stream in without linking a renderer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/veldtlabs/veldt/internal/engine/terrain"
	"github.com/veldtlabs/veldt/internal/logger"
	"github.com/veldtlabs/veldt/pkg/math"
)

// ChunkPayload is one resident chunk in wire form.
type ChunkPayload struct {
	Key       string       `json:"key"`
	CornerX   int32        `json:"cornerX"`
	CornerZ   int32        `json:"cornerZ"`
	Width     uint32       `json:"width"`
	Height    uint32       `json:"height"`
	Positions [][3]float32 `json:"positions"`
	Normals   [][3]float32 `json:"normals"`
	Indices   []uint32     `json:"indices"`
}

// StatePayload is sent to a client on connect and broadcast after every
// chunk sync.
type StatePayload struct {
	Type    string         `json:"type"`
	Camera  [3]float32     `json:"camera"`
	Drop    float32        `json:"drop"`
	MeshHit bool           `json:"meshHit"`
	Chunks  []ChunkPayload `json:"chunks"`
}

// Snapshot packages the camera state and resident meshes for the wire.
func Snapshot(camera math.Vec3, drop float32, meshHit bool, meshes []*terrain.Mesh) StatePayload {
	chunks := make([]ChunkPayload, 0, len(meshes))
	for _, mesh := range meshes {
		positions := make([][3]float32, len(mesh.Vertices))
		normals := make([][3]float32, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			positions[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
			normals[i] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
		}
		chunks = append(chunks, ChunkPayload{
			Key:       mesh.Desc.Key(),
			CornerX:   mesh.Desc.CornerX,
			CornerZ:   mesh.Desc.CornerZ,
			Width:     mesh.Desc.Width,
			Height:    mesh.Desc.Height,
			Positions: positions,
			Normals:   normals,
			Indices:   mesh.Indices,
		})
	}

	return StatePayload{
		Type:    "state",
		Camera:  [3]float32{camera.X, camera.Y, camera.Z},
		Drop:    drop,
		MeshHit: meshHit,
		Chunks:  chunks,
	}
}

// The preview is a local debugging tap, so any origin may connect.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server accepts websocket clients and pushes terrain state to them.
type Server struct {
	addr string

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	last    *StatePayload
}

// NewServer creates a preview server that will listen on addr.
func NewServer(addr string) *Server {
	return &Server{
		addr:    addr,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Run serves until the context is cancelled, then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("preview server listening", zap.String("addr", s.addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("preview server shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	}
}

// Clients returns the number of connected preview clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Publish stores state as the connect-time snapshot and broadcasts it to
// every connected client. Clients whose writes fail are dropped.
func (s *Server) Publish(state StatePayload) {
	s.mu.Lock()
	s.last = &state
	s.mu.Unlock()

	var failed []*websocket.Conn
	s.mu.RLock()
	for conn, connMu := range s.clients {
		connMu.Lock()
		err := conn.WriteJSON(&state)
		connMu.Unlock()
		if err != nil {
			logger.Warn("preview write failed", zap.Error(err))
			conn.Close()
			failed = append(failed, conn)
		}
	}
	s.mu.RUnlock()

	if len(failed) > 0 {
		s.mu.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
		}
		s.mu.Unlock()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMu
	last := s.last
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	logger.Info("preview client connected", zap.String("remote", conn.RemoteAddr().String()))

	if last != nil {
		connMu.Lock()
		err = conn.WriteJSON(last)
		connMu.Unlock()
		if err != nil {
			logger.Warn("initial preview write failed", zap.Error(err))
			return
		}
	}

	// Drain control messages until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

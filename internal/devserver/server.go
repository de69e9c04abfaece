// Package devserver implements `xipd serve`: it watches the directory
// containing the compiled entry file for changes, recompiles on every
// event, and broadcasts the rendered patch text to connected viewers
// over a websocket. Included files outside that directory are not
// watched.
package devserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xipd-lang/xipd/internal/devcache"
)

// Compiler produces patch text from the watched entry file. Implemented
// by a thin wrapper around expand.Expander + autoformat.Formatter in
// cmd/xipd; kept as a function type here so the server has no dependency
// on the parser/expander packages.
type Compiler func(ctx context.Context, entry string) (string, error)

// Server is a dev server: one watch loop (Watch), broadcasting to any
// number of connected viewers.
type Server struct {
	entry    string
	compile  Compiler
	cache    *devcache.Cache
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id   string
	conn *websocket.Conn
	send chan string
}

// New creates a Server that recompiles entry with compile on every
// change notification.
func New(entry string, compile Compiler) *Server {
	return &Server{
		entry:    entry,
		compile:  compile,
		cache:    devcache.New(),
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// viewer session. Nothing is sent on connect: the viewer receives the
// next broadcast.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("devserver: upgrade failed: %v", err)
		return
	}

	sess := &session{id: uuid.NewString(), conn: conn, send: make(chan string, 4)}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	go s.writeLoop(sess)
	go s.readLoop(sess)
}

func (s *Server) writeLoop(sess *session) {
	for msg := range sess.send {
		if err := sess.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			log.Printf("devserver: write to session %s failed: %v", sess.id, err)
			s.drop(sess.id)
			return
		}
	}
}

// readLoop discards viewer traffic but is needed to detect disconnects
// and drive the gorilla/websocket ping/pong keepalive loop.
func (s *Server) readLoop(sess *session) {
	defer s.drop(sess.id)
	for {
		if _, _, err := sess.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		close(sess.send)
		sess.conn.Close()
		delete(s.sessions, id)
	}
}

func (s *Server) broadcast(output string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		select {
		case sess.send <- output:
		default:
			log.Printf("devserver: session %s is slow, dropping a frame", sess.id)
		}
	}
}

// Watch runs the fsnotify loop until ctx is cancelled, recompiling entry
// 75ms after the last write, create or rename event in the entry's
// directory, and broadcasting the result when it differs from the last
// one sent. Only that one directory is watched.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("devserver: creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.entry)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("devserver: watching %s: %w", dir, err)
	}

	s.recompile(ctx)

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(75 * time.Millisecond)
		case <-debounce.C:
			s.recompile(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("devserver: watcher error: %v", err)
		}
	}
}

func (s *Server) recompile(ctx context.Context) {
	output, err := s.compile(ctx, s.entry)
	if err != nil {
		log.Printf("devserver: compile error: %v", err)
		s.broadcast(fmt.Sprintf("// compile error: %s", err))
		return
	}
	if s.cache.ShouldBroadcast(s.entry, []byte(output)) {
		s.broadcast(output)
	}
}

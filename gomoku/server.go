// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// server.go implements the server that accepts players and pairs them into sessions
package gomoku

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DEFAULT_PORT = 12345
	ACCEPT_RETRY = 50 * time.Millisecond // Pause after a failed accept
)

// Config holds the server settings
type Config struct {
	Addr         string // Listen address, eg. 0.0.0.0:12345
	BoardSize    int
	IdleTimeout  time.Duration
	MaxLineBytes int
	Logger       *log.Logger
}

type Server struct {
	cfg      Config
	logger   *log.Logger
	sessions sync.WaitGroup
}

// NewServer creates and returns a new server
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = fmt.Sprintf("0.0.0.0:%d", DEFAULT_PORT)
	}
	return &Server{cfg: cfg, logger: loggerOr(cfg.Logger)}
}

// Run listens for player connections and serves them until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	s.logger.Printf("server listening on %s", listener.Addr())
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener and pairs them into sessions. Failed
// accepts are logged and retried. It returns once ctx is cancelled, or the
// listener is closed from elsewhere, and every session has finished. Sessions
// only stop early when ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	queue := NewQueue(func(first, second net.Conn) {
		s.startSession(ctx, first, second)
	})

	g.Go(func() error {
		<-gctx.Done()
		listener.Close()
		return nil
	})
	g.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				if errors.Is(err, net.ErrClosed) {
					return fmt.Errorf("accept: %w", err)
				}
				s.logger.Printf("accept failed, retrying: %v", err)
				select {
				case <-gctx.Done():
					return nil
				case <-time.After(ACCEPT_RETRY):
				}
				continue
			}
			s.addPlayer(queue, conn)
		}
	})

	err := g.Wait()
	for _, conn := range queue.Drain() {
		conn.Close()
	}
	s.sessions.Wait()
	s.logger.Print("server stopped")
	return err
}

// addPlayer puts a new connection in the matchmaking queue
func (s *Server) addPlayer(queue *Queue, conn net.Conn) {
	s.logger.Printf("player connected from %s", conn.RemoteAddr())
	if err := queue.Enqueue(conn); err != nil {
		s.logger.Printf("failed to queue %s: %v", conn.RemoteAddr(), err)
		conn.Close()
	}
}

// startSession runs a session for the pair on its own goroutine
func (s *Server) startSession(ctx context.Context, first, second net.Conn) {
	session := NewSession(first, second, SessionConfig{
		BoardSize:    s.cfg.BoardSize,
		IdleTimeout:  s.cfg.IdleTimeout,
		MaxLineBytes: s.cfg.MaxLineBytes,
		Logger:       s.logger,
	})
	s.logger.Printf("pairing %s and %s in session %s", first.RemoteAddr(), second.RemoteAddr(), session.ID)
	s.sessions.Add(1)
	go func() {
		defer s.sessions.Done()
		session.Run(ctx)
		s.logger.Printf("session %s: closed", session.ID)
	}()
}

//!--

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ColeHoward/WebWorker/internal/socket"
	"github.com/ColeHoward/WebWorker/internal/types"
)

type ServerConfig struct {
	BindAddress string
	ListenPort  int
	Backlog     int
	// 0 means no limit
	MaxConnections int
	// bounds the whole response write, zero disables it
	WriteTimeout time.Duration
}

// Server hands every accepted connection to its own goroutine running
// Handler, then closes the connection. Handlers share no state.
type Server struct {
	Config  ServerConfig
	Handler types.Handler
	Logger  *slog.Logger

	activeConnections int64
	wg                sync.WaitGroup
}

func NewServer(config ServerConfig, handler types.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Config: config, Handler: handler, Logger: logger}
}

// number of connections currently being handled
func (s *Server) ActiveConnections() int64 {
	return atomic.LoadInt64(&s.activeConnections)
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln and
// waits for in-flight handlers to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// handle context cancellation
	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				// intentional shutdown
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.Logger.Warn("accept error", "err", err)
			time.Sleep(5 * time.Millisecond)
			continue
		}

		if !s.admit() {
			s.Logger.Warn("connection limit reached", "remote", conn.RemoteAddr().String())
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) admit() bool {
	limit := int64(s.Config.MaxConnections)
	if limit <= 0 {
		atomic.AddInt64(&s.activeConnections, 1)
		return true
	}
	for {
		n := atomic.LoadInt64(&s.activeConnections)
		if n >= limit {
			return false
		}
		if atomic.CompareAndSwapInt64(&s.activeConnections, n, n+1) {
			return true
		}
	}
}

// runs the handler for one connection; faults stay inside this goroutine
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer atomic.AddInt64(&s.activeConnections, -1)
	defer conn.Close()

	logger := s.Logger.With("remote", conn.RemoteAddr().String())

	if err := socket.SetClientOptions(conn); err != nil {
		logger.Debug("failed to set client options", "err", err)
	}
	if s.Config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.Config.WriteTimeout))
	}

	if err := s.Handler.Handle(conn); err != nil {
		logger.Error("output error", "err", err)
	}
}

// ListenAndServe binds the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := socket.CreateServerSocket(s.Config.BindAddress, s.Config.ListenPort, s.Config.Backlog)
	if err != nil {
		return fmt.Errorf("setting up listener socket: %w", err)
	}
	s.Logger.Info("listening", "addr", ln.Addr().String())

	return s.Serve(ctx, ln)
}

// StartServer runs the server until SIGINT or SIGTERM.
func StartServer(config ServerConfig, handler types.Handler, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s := NewServer(config, handler, logger)
	if err := s.ListenAndServe(ctx); err != nil {
		return err
	}
	s.Logger.Info("server shutdown complete")
	return nil
}

// Package server serves the globe as a screensaver over SSH. Every
// connection gets its own scene.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"sync/atomic"

	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/assets"
	"github.com/Faultbox/globe/internal/config"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/scene"
)

// Server wraps the SSH listener.
type Server struct {
	cfg    *config.Config
	assets *assets.Manager
	srv    *ssh.Server

	active atomic.Int32
	log    *zap.Logger
}

// HostKeyPath returns the configured host key, or host_key in the config
// directory.
func HostKeyPath(cfg config.ServerConfig) string {
	if cfg.HostKey != "" {
		return cfg.HostKey
	}
	return filepath.Join(config.ConfigDir(), "host_key")
}

// New creates a server, generating a host key on first use.
func New(cfg *config.Config, m *assets.Manager) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		assets: m,
		log:    logger.Named("server"),
	}

	keyPath := HostKeyPath(cfg.Server)
	created, err := EnsureHostKey(keyPath)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info("generated host key", zap.String("path", keyPath))
	}

	s.srv = &ssh.Server{
		Addr:    cfg.Server.Addr,
		Handler: s.handle,
	}
	if err := s.srv.SetOption(ssh.HostKeyFile(keyPath)); err != nil {
		return nil, fmt.Errorf("set host key: %w", err)
	}
	return s, nil
}

// Active returns the number of connected viewers.
func (s *Server) Active() int { return int(s.active.Load()) }

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		s.srv.Close()
	}()

	s.log.Info("listening", zap.String("addr", l.Addr().String()))
	err := s.srv.Serve(l)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) acquire() bool {
	if n := s.active.Add(1); int(n) > s.cfg.Server.MaxSessions {
		s.active.Add(-1)
		return false
	}
	return true
}

func (s *Server) release() { s.active.Add(-1) }

func (s *Server) handle(sess ssh.Session) {
	log := s.log.With(
		zap.String("user", sess.User()),
		zap.String("remote", sess.RemoteAddr().String()),
	)

	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "globe: a terminal is required, try ssh -t")
		sess.Exit(1)
		return
	}
	if !s.acquire() {
		log.Warn("session refused, server full", zap.Int("max", s.cfg.Server.MaxSessions))
		fmt.Fprintln(sess, "globe: too many viewers, try again later")
		sess.Exit(1)
		return
	}
	defer s.release()

	sc, err := scene.New(s.cfg, s.assets)
	if err != nil {
		log.Error("creating scene", zap.Error(err))
		sess.Exit(1)
		return
	}
	view, err := newSession(sc, sess, ptyReq.Window.Width, ptyReq.Window.Height, log)
	if err != nil {
		fmt.Fprintln(sess, "globe: terminal too small")
		sess.Exit(1)
		return
	}

	log.Info("viewer connected", zap.Int("active", s.Active()))
	defer log.Info("viewer disconnected")

	ctx := context.Context(sess.Context())
	if t := s.cfg.Server.IdleTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	if err := view.run(ctx, sess, winCh, s.cfg.FrameInterval()); err != nil && !errors.Is(err, context.Canceled) {
		log.Debug("session ended", zap.Error(err))
	}
	sess.Exit(0)
}

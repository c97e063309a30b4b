package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/Kalyan9AI/blubblegame/internal/audio"
	"github.com/Kalyan9AI/blubblegame/internal/config"
	"github.com/Kalyan9AI/blubblegame/internal/game"
	"github.com/Kalyan9AI/blubblegame/internal/session"
	"github.com/Kalyan9AI/blubblegame/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config error", "err", err)
	}
	log.Info("ssh config", "host", cfg.SSHHost, "port", cfg.SSHPort, "db", cfg.DBPath)

	// One shared store: the best score is machine-wide, arcade style.
	var prefs store.Store
	sq, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Warn("settings db unavailable, scores will not persist", "err", err)
		prefs = &store.Memory{}
	} else {
		prefs = sq
		defer sq.Close()
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)),
		wish.WithMiddleware(
			gameMiddleware(prefs, cfg),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting SSH server", "addr", net.JoinHostPort(cfg.SSHHost, cfg.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per SSH session. Each player gets their
// own controller; the best score is shared through the store.
func gameMiddleware(prefs store.Store, cfg config.Config) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log.Info("new game session",
				"user", sess.User(), "terminal", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			// Synthesized audio cannot cross the wire; ring the
			// client's terminal bell instead.
			ctrl := session.NewController(session.Options{
				Store:    prefs,
				Feedback: audio.NewBell(sess, false),
				Rand:     rand.New(rand.NewSource(seed)),
				ViewportWidth: func() int {
					w, _, _ := sizeTracker.getSize()
					if w <= 0 {
						return 120
					}
					return w
				},
			})

			ctx, cancel := context.WithCancel(sess.Context())
			defer cancel()
			go ctrl.Run(ctx)

			c := game.NewClient(ctrl, sess, sess, game.Options{
				TermSizeFunc: sizeTracker.getSize,
			})
			if err := c.Run(ctx); err != nil {
				log.Error("game error", "user", sess.User(), "err", err)
			}

			log.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

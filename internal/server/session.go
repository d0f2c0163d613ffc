package server

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/engine/canvas"
	"github.com/Faultbox/globe/internal/scene"
)

// session plays one screensaver over an SSH channel.
type session struct {
	scene *scene.Scene
	out   io.Writer

	cv         *canvas.Canvas
	offX, offY int
	sb         strings.Builder

	log *zap.Logger
}

func newSession(sc *scene.Scene, out io.Writer, cols, rows int, log *zap.Logger) (*session, error) {
	s := &session{scene: sc, out: out, log: log}
	if err := s.resize(cols, rows); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) resize(cols, rows int) error {
	cv, err := s.scene.Canvas(cols, rows)
	if err != nil {
		return err
	}
	s.cv = cv
	s.offX = (cols - cv.Width()) / 2
	s.offY = (rows - cv.Height()) / 2
	return nil
}

// frame renders the scene and returns the bytes to send.
func (s *session) frame(prefix string) string {
	s.scene.Draw(s.cv)
	s.sb.Reset()
	s.sb.WriteString(prefix)
	encodeFrame(&s.sb, s.cv, s.offX, s.offY)
	return s.sb.String()
}

// run animates until any input arrives, in is closed, or ctx ends.
// A context deadline ends the session quietly.
func (s *session) run(ctx context.Context, in io.Reader, winCh <-chan ssh.Window, interval time.Duration) error {
	if _, err := io.WriteString(s.out, enterScreen); err != nil {
		return err
	}
	defer io.WriteString(s.out, leaveScreen)

	input := make(chan struct{})
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := in.Read(buf)
			if n > 0 || err != nil {
				close(input)
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	prefix := ""
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				s.log.Debug("session timed out")
				return nil
			}
			return ctx.Err()
		case <-input:
			return nil
		case win, ok := <-winCh:
			if !ok {
				winCh = nil
				continue
			}
			if err := s.resize(win.Width, win.Height); err != nil {
				s.log.Debug("resize ignored", zap.Error(err))
				continue
			}
			prefix = clearScreen
		case now := <-ticker.C:
			s.scene.Tick(now.Sub(last).Seconds(), now)
			last = now
			if _, err := io.WriteString(s.out, s.frame(prefix)); err != nil {
				return err
			}
			prefix = ""
		}
	}
}

package server

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/Faultbox/globe/internal/assets"
	"github.com/Faultbox/globe/internal/config"
	"github.com/Faultbox/globe/internal/engine/canvas"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/scene"
)

func TestEnsureHostKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "host_key")

	created, err := EnsureHostKey(path)
	if err != nil || !created {
		t.Fatalf("EnsureHostKey() = %v, %v; want true, nil", created, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	data, _ := os.ReadFile(path)
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "PRIVATE KEY" {
		t.Fatal("host key is not a PEM private key")
	}
	if _, err := x509.ParsePKCS8PrivateKey(block.Bytes); err != nil {
		t.Errorf("ParsePKCS8PrivateKey() error = %v", err)
	}

	created, err = EnsureHostKey(path)
	if err != nil || created {
		t.Errorf("second EnsureHostKey() = %v, %v; want false, nil", created, err)
	}
	again, _ := os.ReadFile(path)
	if string(again) != string(data) {
		t.Error("existing host key was overwritten")
	}
}

func TestHostKeyPath(t *testing.T) {
	if got := HostKeyPath(config.ServerConfig{HostKey: "/tmp/k"}); got != "/tmp/k" {
		t.Errorf("HostKeyPath() = %q", got)
	}
	if got := HostKeyPath(config.ServerConfig{}); filepath.Base(got) != "host_key" {
		t.Errorf("HostKeyPath() = %q, want host_key in the config dir", got)
	}
}

func TestEncodeFrame(t *testing.T) {
	cv, err := canvas.New(8, 16, canvas.DefaultCellSize)
	if err != nil {
		t.Fatal(err)
	}
	cv.Set(0, 0, 'a')
	cv.Set(1, 1, 'b')

	var sb strings.Builder
	encodeFrame(&sb, cv, 3, 1)
	want := "\x1b[2;4Ha \x1b[3;4H b"
	if sb.String() != want {
		t.Errorf("encodeFrame() = %q, want %q", sb.String(), want)
	}
}

func newTestSession(t *testing.T, w io.Writer) *session {
	t.Helper()
	cfg := config.Default()
	cfg.Render.RefreshRate = 200
	sc, err := scene.New(cfg, assets.NewManager(""))
	if err != nil {
		t.Fatal(err)
	}
	s, err := newSession(sc, w, 80, 24, logger.Named("test"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// syncBuffer guards a strings.Builder shared with the session goroutine.
type syncBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

func TestSessionQuitsOnInput(t *testing.T) {
	var out syncBuffer
	s := newTestSession(t, &out)

	inR, inW := io.Pipe()
	winCh := make(chan ssh.Window)
	done := make(chan error, 1)
	go func() { done <- s.run(context.Background(), inR, winCh, 5*time.Millisecond) }()

	time.Sleep(50 * time.Millisecond)
	winCh <- ssh.Window{Width: 40, Height: 40}
	time.Sleep(20 * time.Millisecond)
	inW.Write([]byte("x"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not return after input")
	}

	got := out.String()
	if !strings.HasPrefix(got, enterScreen) {
		t.Error("output should start by entering the alternate screen")
	}
	if !strings.HasSuffix(got, leaveScreen) {
		t.Error("output should end by leaving the alternate screen")
	}
	if !strings.Contains(got, clearScreen+"\x1b[11;1H") {
		t.Error("resize should clear and redraw the 40x20 canvas centered vertically")
	}
	if s.cv.Width() != 40 || s.cv.Height() != 20 {
		t.Errorf("canvas = %dx%d after resize, want 40x20", s.cv.Width(), s.cv.Height())
	}
}

func TestSessionTimeout(t *testing.T) {
	s := newTestSession(t, io.Discard)
	inR, _ := io.Pipe()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := s.run(ctx, inR, nil, 5*time.Millisecond); err != nil {
		t.Errorf("run() error = %v, want nil on timeout", err)
	}
}

func TestSessionLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxSessions = 2
	s := &Server{cfg: cfg}

	if !s.acquire() || !s.acquire() {
		t.Fatal("first two sessions should be admitted")
	}
	if s.acquire() {
		t.Error("third session should be refused")
	}
	if s.Active() != 2 {
		t.Errorf("Active() = %d, want 2", s.Active())
	}
	s.release()
	if !s.acquire() {
		t.Error("session should be admitted after a release")
	}
}

func TestServeStopsOnContext(t *testing.T) {
	cfg := config.Default()
	cfg.Server.HostKey = filepath.Join(t.TempDir(), "host_key")
	cfg.Server.Addr = "127.0.0.1:0"

	s, err := New(cfg, assets.NewManager(""))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

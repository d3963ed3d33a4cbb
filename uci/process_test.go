package uci

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akanalytics/odonata-go/board"
)

func helperConfig(mode string) Config {
	return Config{
		Path:        os.Args[0],
		Env:         []string{helperEnv + "=" + mode},
		QuitTimeout: 5 * time.Second,
	}
}

func TestStartAndCloseProcess(t *testing.T) {
	c, err := Start(context.Background(), helperConfig("serve"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if got, want := c.Version(), "Odonata 0.8.0"; got != want {
		t.Errorf("Version() = %q, want %q", got, want)
	}
	mv, ok, err := c.BestMove(board.NewBoard(), SearchLimit{Depth: 3})
	if err != nil || !ok || mv.String() != "e2e4" {
		t.Errorf("BestMove = %v, %v, %v", mv, ok, err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestStopKillsUnresponsiveEngine(t *testing.T) {
	cfg := helperConfig("hang")
	cfg.QuitTimeout = 100 * time.Millisecond
	p, err := StartProcess(cfg)
	if err != nil {
		t.Fatal(err)
	}
	first := p.Stop()
	if first == nil {
		t.Error("Stop of a hung engine reported success")
	}
	select {
	case <-p.Done():
	default:
		t.Error("process still running after Stop")
	}
	if again := p.Stop(); again != first {
		t.Errorf("second Stop = %v, want %v", again, first)
	}
}

func TestStartHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Start(ctx, helperConfig("serve")); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestStartTimesOutHandshake(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	cfg := helperConfig("hang")
	cfg.QuitTimeout = 50 * time.Millisecond
	_, err := Start(ctx, cfg)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want deadline exceeded", err)
	}
}

func TestFindExecutable(t *testing.T) {
	if got, err := FindExecutable(os.Args[0]); err != nil || got != os.Args[0] {
		t.Errorf("FindExecutable(test binary) = %q, %v", got, err)
	}
	missing := filepath.Join(t.TempDir(), "no-such-engine")
	if _, err := FindExecutable(missing); !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("got %v, want ErrExecutableNotFound", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plain"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FindExecutable(filepath.Join(dir, "plain")); !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("non-executable file accepted: %v", err)
	}
}

func TestFindExecutableCandidates(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "target", "release", "odonata")
	if err := os.MkdirAll(filepath.Dir(exe), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	got, err := FindExecutable("")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("target", "release", "odonata") {
		t.Errorf("got %q", got)
	}
}

func TestConfigKey(t *testing.T) {
	a := Config{Path: "odonata", ConfigFile: "a.toml", LineCeiling: 10}
	b := Config{Path: "odonata", ConfigFile: "a.toml", Options: map[string]string{"Hash": "1"}}
	if a.Key() != b.Key() {
		t.Error("key depends on more than path and config file")
	}
	if a.Key() == (Config{Path: "odonata"}).Key() {
		t.Error("config file ignored by key")
	}
}

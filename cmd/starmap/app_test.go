package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"starmap/internal/persistence"
	"starmap/internal/shared/config"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	cfg.Storage.Backend = config.StorageBackendFile
	cfg.Galaxy.SystemCount = 15
	cfg.Generation.Seed = 42
	cfg.Generation.AttemptTimeout = time.Second
	cfg.Generation.EagerScan = false

	a, err := newApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("newApp() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = a.close() })
	return a
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestLoadOrGenerate_Absent(t *testing.T) {
	a := newTestApp(t)

	g, err := a.loadOrGenerate(context.Background(), filepath.Join(t.TempDir(), "new.rim"), false)
	if err != nil {
		t.Fatalf("loadOrGenerate() returned unexpected error: %v", err)
	}
	if g.Len() != 15 {
		t.Errorf("Len() = %d, want 15", g.Len())
	}
}

func TestLoadOrGenerate_Existing(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	key := filepath.Join(t.TempDir(), "saved.rim")

	cmd, _ := testCommand()
	if err := runGenerate(cmd, a, key, false); err != nil {
		t.Fatalf("runGenerate() returned unexpected error: %v", err)
	}
	saved, err := a.repo.LoadGalaxy(ctx, key)
	if err != nil {
		t.Fatalf("LoadGalaxy() returned unexpected error: %v", err)
	}

	g, err := a.loadOrGenerate(ctx, key, false)
	if err != nil {
		t.Fatalf("loadOrGenerate() returned unexpected error: %v", err)
	}
	for i := range saved.Systems {
		if g.Systems[i].Name != saved.Systems[i].Name || g.Systems[i].Position != saved.Systems[i].Position {
			t.Fatalf("system %d differs from the saved galaxy", i)
		}
	}
}

func TestLoadOrGenerate_Corrupt(t *testing.T) {
	a := newTestApp(t)
	key := filepath.Join(t.TempDir(), "corrupt.rim")
	if err := os.WriteFile(key, []byte("not a galaxy"), 0o644); err != nil {
		t.Fatalf("WriteFile() returned unexpected error: %v", err)
	}

	_, err := a.loadOrGenerate(context.Background(), key, false)
	if !errors.Is(err, persistence.ErrCorrupt) {
		t.Errorf("loadOrGenerate() error = %v, want ErrCorrupt", err)
	}

	g, err := a.loadOrGenerate(context.Background(), key, true)
	if err != nil {
		t.Fatalf("loadOrGenerate() with regenerate returned unexpected error: %v", err)
	}
	if g.Len() != 15 {
		t.Errorf("Len() = %d, want 15", g.Len())
	}
}

func TestRunGenerate_RefusesOverwrite(t *testing.T) {
	a := newTestApp(t)
	key := filepath.Join(t.TempDir(), "galaxy.rim")

	cmd, out := testCommand()
	if err := runGenerate(cmd, a, key, false); err != nil {
		t.Fatalf("runGenerate() returned unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Generated 15 systems") {
		t.Errorf("output = %q", out.String())
	}

	if err := runGenerate(cmd, a, key, false); err == nil {
		t.Error("Expected second generate without --force to fail")
	}
	if err := runGenerate(cmd, a, key, true); err != nil {
		t.Errorf("runGenerate() with force returned unexpected error: %v", err)
	}
}

func TestRunInspect(t *testing.T) {
	a := newTestApp(t)
	key := filepath.Join(t.TempDir(), "galaxy.rim")

	cmd, out := testCommand()
	if err := runGenerate(cmd, a, key, false); err != nil {
		t.Fatalf("runGenerate() returned unexpected error: %v", err)
	}
	out.Reset()

	if err := runInspect(cmd, a, key, 4); err != nil {
		t.Fatalf("runInspect() returned unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No Data Available For System") {
		t.Errorf("output = %q", out.String())
	}

	if err := runInspect(cmd, a, key, 15); err == nil {
		t.Error("Expected out of range index to fail")
	}
}

func TestKeyFromArgs(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{DefaultPath: "default.rim"}}

	if got := keyFromArgs(cfg, nil); got != "default.rim" {
		t.Errorf("keyFromArgs(nil) = %q", got)
	}
	if got := keyFromArgs(cfg, []string{"mine.rim"}); got != "mine.rim" {
		t.Errorf("keyFromArgs(mine.rim) = %q", got)
	}
}

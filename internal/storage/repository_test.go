package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"starmap/internal/galaxy"
	"starmap/internal/persistence"
	"starmap/internal/vmath"
)

func smallGalaxy() *galaxy.Galaxy {
	a := vmath.Vec3{X: 1}
	b := vmath.Vec3{X: -1}
	return &galaxy.Galaxy{Systems: []*galaxy.StarSystem{
		{Position: a, Origin: a, Connections: []int{1}, Name: 0xA1},
		{Position: b, Origin: b, Connections: []int{0}, Name: 0xB2},
	}}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewFileStore(discardLogger()), discardLogger())
	path := filepath.Join(t.TempDir(), "galaxy.rim")

	if err := repo.SaveGalaxy(ctx, path, smallGalaxy()); err != nil {
		t.Fatalf("SaveGalaxy() returned unexpected error: %v", err)
	}

	exists, err := repo.Exists(ctx, path)
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v", exists, err)
	}

	g, err := repo.LoadGalaxy(ctx, path)
	if err != nil {
		t.Fatalf("LoadGalaxy() returned unexpected error: %v", err)
	}
	if g.Len() != 2 || g.Systems[1].Name != 0xB2 || g.Systems[0].Connections[0] != 1 {
		t.Errorf("LoadGalaxy() = %+v", g.Systems)
	}
}

func TestRepository_AbsentAndCorruptAreDistinct(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewFileStore(discardLogger()), discardLogger())
	dir := t.TempDir()

	_, err := repo.LoadGalaxy(ctx, filepath.Join(dir, "absent.rim"))
	if !errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrCorrupt) {
		t.Errorf("absent: error = %v, want ErrNotFound only", err)
	}

	corrupt := filepath.Join(dir, "corrupt.rim")
	if err := os.WriteFile(corrupt, []byte(`{"systems":[{"connections":[`), 0o644); err != nil {
		t.Fatalf("WriteFile() returned unexpected error: %v", err)
	}

	_, err = repo.LoadGalaxy(ctx, corrupt)
	if !errors.Is(err, persistence.ErrCorrupt) || errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt: error = %v, want ErrCorrupt only", err)
	}
}

func TestRepository_SaveFailure(t *testing.T) {
	repo := NewRepository(NewFileStore(discardLogger()), discardLogger())
	path := filepath.Join(t.TempDir(), "missing", "galaxy.rim")

	if err := repo.SaveGalaxy(context.Background(), path, smallGalaxy()); err == nil {
		t.Error("Expected save into a missing directory to fail")
	}
}

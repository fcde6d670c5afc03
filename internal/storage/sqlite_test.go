package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	run, err := store.CreateRun(1, 60, []byte("a: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.RunByID(run.ID); err != nil {
		t.Errorf("run lost after reopen: %v", err)
	}
}

func TestCreateRunAndFrames(t *testing.T) {
	store := openTestStore(t)

	run, err := store.CreateRun(^uint64(0), 60, []byte("ball:\n  speed: 300\n"))
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("run ID should be set")
	}

	frames := []Frame{
		{Seq: 1, Delta: 16666666 * time.Nanosecond, Resumed: true},
		{Seq: 2, Delta: 17 * time.Millisecond, Left: true},
		{Seq: 3, Delta: 15 * time.Millisecond, Right: true},
	}
	if err := store.AppendFrames(run.ID, frames[:2]); err != nil {
		t.Fatalf("AppendFrames() failed: %v", err)
	}
	if err := store.AppendFrames(run.ID, frames[2:]); err != nil {
		t.Fatalf("AppendFrames() failed: %v", err)
	}

	got, err := store.Frames(run.ID)
	if err != nil {
		t.Fatalf("Frames() failed: %v", err)
	}
	if len(got) != len(frames) {
		t.Fatalf("Expected %d frames, got %d", len(frames), len(got))
	}
	for i := range frames {
		if got[i] != frames[i] {
			t.Errorf("frame %d = %+v, want %+v", i, got[i], frames[i])
		}
	}

	loaded, err := store.RunByID(run.ID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if loaded.Seed != ^uint64(0) {
		t.Errorf("seed = %d, want max uint64", loaded.Seed)
	}
	if loaded.Frames != 3 || loaded.TickRate != 60 {
		t.Errorf("run = %+v", loaded)
	}
	if string(loaded.Config) != "ball:\n  speed: 300\n" {
		t.Errorf("config = %q", loaded.Config)
	}
}

func TestDuplicateFrameRejected(t *testing.T) {
	store := openTestStore(t)
	run, err := store.CreateRun(1, 60, nil)
	if err != nil {
		t.Fatal(err)
	}

	err = store.AppendFrames(run.ID, []Frame{{Seq: 1}, {Seq: 1}})
	if err == nil {
		t.Fatal("expected duplicate seq to fail")
	}
	got, _ := store.Frames(run.ID)
	if len(got) != 0 {
		t.Errorf("failed batch should roll back, found %d frames", len(got))
	}
}

func TestRunByPrefix(t *testing.T) {
	store := openTestStore(t)
	run, err := store.CreateRun(5, 60, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.RunByID(run.ID[:8])
	if err != nil {
		t.Fatalf("RunByID(prefix) failed: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("got %s, want %s", got.ID, run.ID)
	}

	if _, err := store.RunByID("not-a-run"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunByPrefixAmbiguous(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 40; i++ {
		if _, err := store.CreateRun(uint64(i), 60, nil); err != nil {
			t.Fatal(err)
		}
	}

	// 40 random uuids cover at least one hex digit twice
	seen := map[byte]bool{}
	runs, err := store.Runs(100)
	if err != nil {
		t.Fatal(err)
	}
	var prefix string
	for _, r := range runs {
		if seen[r.ID[0]] {
			prefix = r.ID[:1]
			break
		}
		seen[r.ID[0]] = true
	}
	if _, err := store.RunByID(prefix); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("expected ErrAmbiguousID for %q, got %v", prefix, err)
	}
}

func TestRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	var ids []string
	for i := 0; i < 3; i++ {
		run, err := store.CreateRun(uint64(i), 60, nil)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, run.ID)
	}
	if err := store.AppendFrames(ids[0], []Frame{{Seq: 1}, {Seq: 2}}); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Runs(2)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("order = %s, %s", runs[0].ID, runs[1].ID)
	}

	all, _ := store.Runs(0)
	last := all[len(all)-1]
	if last.ID != ids[0] || last.Frames != 2 {
		t.Errorf("oldest run = %+v", last)
	}
}

func TestDeleteRun(t *testing.T) {
	store := openTestStore(t)
	run, err := store.CreateRun(1, 60, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AppendFrames(run.ID, []Frame{{Seq: 1}}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteRun(run.ID); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.RunByID(run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("run should be gone, got %v", err)
	}
	frames, _ := store.Frames(run.ID)
	if len(frames) != 0 {
		t.Error("frames should be deleted with the run")
	}
	if err := store.DeleteRun(run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}

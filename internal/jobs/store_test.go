package jobs

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBeginAndGet(t *testing.T) {
	store := openStore(t)
	ctx := t.Context()

	job, err := store.Begin(ctx, KindBuild, "/src/mika", "/out/mika")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if job.ID == "" {
		t.Fatal("job ID must not be empty")
	}
	if job.Status != StatusRunning {
		t.Errorf("status = %v", job.Status)
	}

	got, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Source != "/src/mika" || got.OutputDir != "/out/mika" || got.Kind != KindBuild {
		t.Errorf("job = %+v", got)
	}
}

func TestCompleteRecordsCounts(t *testing.T) {
	store := openStore(t)
	ctx := t.Context()

	job, err := store.Begin(ctx, KindBuild, "src", "out")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Complete(ctx, job.ID, 42, 5); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusCompleted || got.Layers != 42 || got.Slots != 5 {
		t.Errorf("job = %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestFailRecordsReason(t *testing.T) {
	store := openStore(t)
	ctx := t.Context()

	job, err := store.Begin(ctx, KindBatch, "src", "out")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Fail(ctx, job.ID, "render exploded"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	got, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusFailed || got.Error != "render exploded" {
		t.Errorf("job = %+v", got)
	}
}

func TestFinishUnknownJob(t *testing.T) {
	store := openStore(t)
	if err := store.Complete(t.Context(), "nope", 0, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestGetUnknownJob(t *testing.T) {
	store := openStore(t)
	if _, err := store.Get(t.Context(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := t.Context()

	var ids []string
	for i := 0; i < 3; i++ {
		job, err := store.Begin(ctx, KindBuild, "src", "out")
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		ids = append(ids, job.ID)
		time.Sleep(2 * time.Millisecond)
	}

	jobs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len = %d", len(jobs))
	}
	if jobs[0].ID != ids[2] || jobs[1].ID != ids[1] {
		t.Errorf("order = %s, %s; want %s, %s", jobs[0].ID, jobs[1].ID, ids[2], ids[1])
	}
}

func TestPruneKeepsRunning(t *testing.T) {
	store := openStore(t)
	ctx := t.Context()

	done, err := store.Begin(ctx, KindBuild, "src", "out")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Complete(ctx, done.ID, 1, 1); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	running, err := store.Begin(ctx, KindBuild, "src", "out")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	removed, err := store.Prune(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d", removed)
	}
	if _, err := store.Get(ctx, running.ID); err != nil {
		t.Errorf("running job pruned: %v", err)
	}
	if _, err := store.Get(ctx, done.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("completed job survived prune: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	job, err := store.Begin(t.Context(), KindBuild, "src", "out")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Get(t.Context(), job.ID); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}

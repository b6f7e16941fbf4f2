package repository_test

import (
	stdErrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/fman/internal/ordering"
	"github.com/NamanBalaji/fman/internal/repository"
	"github.com/NamanBalaji/fman/internal/sorter"
	"github.com/NamanBalaji/fman/internal/status"
)

func openRepo(t *testing.T) *repository.BboltRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	repo, err := repository.NewBboltRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestNewBboltRepository_OpenError(t *testing.T) {
	dir := t.TempDir()
	_, err := repository.NewBboltRepository(dir)
	if err == nil {
		t.Errorf("Expected error when opening DB on directory path, got nil")
	}
}

func TestSaveInvalidRecord(t *testing.T) {
	repo := openRepo(t)

	err := repo.Save(nil)
	if err == nil || err.Error() != "cannot save nil job record" {
		t.Errorf("Expected error 'cannot save nil job record', got %v", err)
	}

	if err := repo.Save(&repository.JobRecord{}); err == nil {
		t.Errorf("Expected error saving a record without ID, got nil")
	}
}

func TestSaveFindAllDelete(t *testing.T) {
	repo := openRepo(t)

	list, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %d items", len(list))
	}

	id := uuid.New()
	rec := &repository.JobRecord{ID: id, InputPath: "in.txt", OutputPath: "out.txt", State: "Done", Lines: 42}
	if err := repo.Save(rec); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	list, err = repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].Lines != 42 {
		t.Errorf("FindAll returned wrong data: %+v", list)
	}

	found, err := repo.Find(id)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if found.InputPath != "in.txt" || found.State != "Done" {
		t.Errorf("Find returned wrong data: %+v", found)
	}

	if _, err := repo.Find(uuid.New()); !stdErrors.Is(err, repository.ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
	if _, err := repo.Find(uuid.Nil); err == nil {
		t.Errorf("Expected error finding Nil ID, got nil")
	}

	if err := repo.Delete(uuid.Nil); err == nil {
		t.Errorf("Expected error deleting Nil ID, got nil")
	}
	if err := repo.Delete(uuid.New()); !stdErrors.Is(err, repository.ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound deleting non-existent ID, got %v", err)
	}
	if err := repo.Delete(id); err != nil {
		t.Errorf("Delete error for existing ID: %v", err)
	}

	list, err = repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list after delete, got %d", len(list))
	}
}

func TestFindAllOldestFirst(t *testing.T) {
	repo := openRepo(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	offsets := []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour}
	for _, off := range offsets {
		rec := &repository.JobRecord{ID: uuid.New(), Started: base.Add(off), Finished: base.Add(off + time.Minute)}
		if err := repo.Save(rec); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	list, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Started.Before(list[i-1].Started) {
			t.Errorf("records not ordered by start time: %v before %v", list[i-1].Started, list[i].Started)
		}
	}
	if list[0].Duration() != time.Minute {
		t.Errorf("Expected duration 1m, got %s", list[0].Duration())
	}
}

func TestClear(t *testing.T) {
	repo := openRepo(t)

	for range 3 {
		if err := repo.Save(&repository.JobRecord{ID: uuid.New()}); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	list, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected no records after Clear, got %d", len(list))
	}

	if err := repo.Save(&repository.JobRecord{ID: uuid.New()}); err != nil {
		t.Errorf("Save after Clear failed: %v", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	repo, err := repository.NewBboltRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	id := uuid.New()
	if err := repo.Save(&repository.JobRecord{ID: id, State: "Failed", Error: "boom"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	repo.Close()

	repo, err = repository.NewBboltRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen repository: %v", err)
	}
	defer repo.Close()

	rec, err := repo.Find(id)
	if err != nil {
		t.Fatalf("Find after reopen: %v", err)
	}
	if rec.Error != "boom" {
		t.Errorf("Expected error message to persist, got %q", rec.Error)
	}
}

func TestNewJobRecord(t *testing.T) {
	started := time.Now().Add(-time.Second)
	job := sorter.Job{
		InputPath:        "in.txt",
		OutputPath:       "out.txt",
		Policy:           ordering.Numeric{},
		Direction:        ordering.Descending,
		MaxLinesPerChunk: 10,
	}
	res := &sorter.Result{JobID: uuid.New(), State: status.Done, Chunks: 3, Lines: 25, Elapsed: 500 * time.Millisecond}

	rec := repository.NewJobRecord(job, res, nil, started)
	if rec.ID != res.JobID {
		t.Errorf("Expected record ID %s, got %s", res.JobID, rec.ID)
	}
	if rec.Policy != "numeric" || rec.Direction != "descending" {
		t.Errorf("Unexpected ordering fields: %s %s", rec.Policy, rec.Direction)
	}
	if rec.Chunks != 3 || rec.Lines != 25 || rec.State != "Done" || rec.Error != "" {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if rec.Duration() != 500*time.Millisecond {
		t.Errorf("Expected duration 500ms, got %s", rec.Duration())
	}

	rejected := repository.NewJobRecord(sorter.Job{InputPath: "x"}, nil, stdErrors.New("bad job"), started)
	if rejected.ID == uuid.Nil {
		t.Errorf("Expected a generated ID for a rejected job")
	}
	if rejected.State != "Failed" || rejected.Error != "bad job" || rejected.Policy != "lexicographic" {
		t.Errorf("Unexpected rejected record: %+v", rejected)
	}
}

func TestCloseBehavior(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := repository.NewBboltRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	err = repo.Close()
	if err != nil {
		t.Fatalf("Close error: %v", err)
	}

	err = repo.Save(&repository.JobRecord{ID: uuid.New()})
	if err == nil {
		t.Errorf("Expected error Save after Close, got nil")
	}
	_, err = repo.FindAll()
	if err == nil {
		t.Errorf("Expected error FindAll after Close, got nil")
	}
	err = repo.Delete(uuid.New())
	if err == nil {
		t.Errorf("Expected error Delete after Close, got nil")
	}
}

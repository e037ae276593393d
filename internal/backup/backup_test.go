package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/storage"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "hedaya.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Set(constants.KeyProfile, []byte(`{"pace":"gentle"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return dbPath
}

func readKey(t *testing.T, dbPath, key string) []byte {
	t.Helper()
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer store.Close()
	v, err := store.Get(key)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", key, err)
	}
	return v
}

// steppingClock returns a now func advancing one minute per call.
func steppingClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(path) != mgr.BackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(path), mgr.BackupDir())
	}
	if got := readKey(t, path, constants.KeyProfile); string(got) != `{"pace":"gentle"}` {
		t.Errorf("backup profile = %s", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.CreateBackup(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("CreateBackup() error = %v, want ErrNoDatabase", err)
	}
}

func TestBackupNamesSameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if first == second {
		t.Fatal("backups in the same second overwrote each other")
	}
	if filepath.Base(second) != "hedaya-20250310-093000-1.db" {
		t.Errorf("second backup = %s", filepath.Base(second))
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestListBackupsOrderAndFiltering(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}
	for _, junk := range []string{"notes.txt", "hedaya-yesterday.db", "hedaya-20250310-0900.db.bak"} {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), junk), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not newest first: %v then %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
}

func TestListBackupsNoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "hedaya.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3
	mgr.now = steppingClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))

	var newest string
	for i := 0; i < 5; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		newest = p
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Path != newest {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, newest)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))

	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := store.Set(constants.KeyProfile, []byte(`{"pace":"ambitious"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store.Close()

	previous, err := mgr.RestoreBackup(snapshot)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if previous == "" {
		t.Fatal("expected the current database to be backed up before restore")
	}
	if got := readKey(t, dbPath, constants.KeyProfile); string(got) != `{"pace":"gentle"}` {
		t.Errorf("restored profile = %s", got)
	}
	if got := readKey(t, previous, constants.KeyProfile); string(got) != `{"pace":"ambitious"}` {
		t.Errorf("pre-restore snapshot profile = %s", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackupRejectsInvalidFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for a missing backup")
	}

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("definitely not sqlite, just some text padding the header"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(junk); err == nil {
		t.Error("expected error for a corrupt backup")
	}
	if got := readKey(t, dbPath, constants.KeyProfile); string(got) != `{"pace":"gentle"}` {
		t.Errorf("database changed after failed restore: %s", got)
	}
}

package db

import (
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.sqlite")
	database, err := OpenAndMigrate(path)
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	t.Cleanup(func() { Close() })

	status, err := GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus: %v", err)
	}
	if status.Pending || status.Dirty || status.CurrentVersion != status.LatestVersion || status.LatestVersion == 0 {
		t.Fatalf("status = %+v", status)
	}

	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM journal_entries`).Scan(&n); err != nil {
		t.Fatalf("journal table missing: %v", err)
	}

	// Running again is a no-op.
	if err := RunMigrations(); err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}
	if Get() != database {
		t.Fatal("Get returned a different handle")
	}
}

func TestRunMigrations_NotOpen(t *testing.T) {
	Close()
	if err := RunMigrations(); err == nil {
		t.Fatal("expected error without an open database")
	}
}

package migration

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/fivemin/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func scripts(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, body := range files {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

func TestCurrentVersion(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(openTestDB(t), scripts(map[string]string{"001_a.sql": "CREATE TABLE a (id INTEGER);"}))

	v, err := r.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if v != 0 {
		t.Errorf("expected fresh version 0, got %d", v)
	}

	if err := r.SetVersion(ctx, 5); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}
	if v, _ = r.CurrentVersion(ctx); v != 5 {
		t.Errorf("expected version 5, got %d", v)
	}
}

func TestScripts(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    []int
		wantErr bool
	}{
		{
			name: "sorted",
			files: map[string]string{
				"003_c.sql":  "SELECT 1;",
				"001_a.sql":  "SELECT 1;",
				"002_b.sql":  "SELECT 1;",
				"README.txt": "ignored",
			},
			want: []int{1, 2, 3},
		},
		{
			name:    "missing separator",
			files:   map[string]string{"001.sql": "SELECT 1;"},
			wantErr: true,
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_a.sql": "SELECT 1;"},
			wantErr: true,
		},
		{
			name:    "duplicate version",
			files:   map[string]string{"001_a.sql": "SELECT 1;", "01_b.sql": "SELECT 1;"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, scripts(tt.files))
			got, err := r.Scripts()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Scripts: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d scripts, got %d", len(tt.want), len(got))
			}
			for i, v := range tt.want {
				if got[i].Version != v {
					t.Errorf("script %d: expected version %d, got %d", i, v, got[i].Version)
				}
			}
		})
	}
}

func TestApplyFromScratchAndIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	r := NewRunner(db, scripts(map[string]string{
		"001_users.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"002_posts.sql": "CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);",
	}))

	var logs []string
	n, err := r.Apply(ctx, func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 applied, got %d", n)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}
	if _, err := db.Exec("INSERT INTO posts (user_id) VALUES (1)"); err != nil {
		t.Errorf("posts table missing: %v", err)
	}

	n, err = r.Apply(ctx, nil)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if n != 0 {
		t.Errorf("expected nothing pending, got %d", n)
	}
}

func TestApplyFailureKeepsPreviousVersion(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(openTestDB(t), scripts(map[string]string{
		"001_ok.sql":  "CREATE TABLE ok (id INTEGER);",
		"002_bad.sql": "CREATE TABLE broken (",
	}))

	n, err := r.Apply(ctx, nil)
	if err == nil {
		t.Fatal("expected failure on malformed script")
	}
	if n != 1 {
		t.Errorf("expected 1 applied before failure, got %d", n)
	}
	if v, _ := r.CurrentVersion(ctx); v != 1 {
		t.Errorf("expected version 1 after failure, got %d", v)
	}
}

func TestSchemaTooNew(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(openTestDB(t), scripts(map[string]string{"001_a.sql": "SELECT 1;"}))
	if err := r.SetVersion(ctx, 9); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}

	if _, err := r.Apply(ctx, nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply: expected ErrSchemaTooNew, got %v", err)
	}
	if err := r.Validate(ctx); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Validate: expected ErrSchemaTooNew, got %v", err)
	}
}

func TestEmbeddedScriptsApply(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(openTestDB(t), migrations.SQLite())
	latest, err := r.LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if latest < 2 {
		t.Fatalf("expected at least 2 embedded scripts, got %d", latest)
	}
	if _, err := r.Apply(ctx, nil); err != nil {
		t.Fatalf("Apply embedded: %v", err)
	}
	if err := r.Validate(ctx); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

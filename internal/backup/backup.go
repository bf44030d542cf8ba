// Package backup keeps rotating point-in-time copies of the fivemin database.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/fivemin/internal/clock"
	"github.com/julianstephens/fivemin/internal/logger"
)

const (
	// MaxBackups is the number of backups kept after rotation.
	MaxBackups = 14
	// DirName is the backup folder created next to the database.
	DirName    = "backups"
	filePrefix = "fivemin-"
	fileSuffix = ".db"
	stampTime  = "20060102-150405"
)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, rotates and restores backups of one database file.
type Manager struct {
	dbPath string
	dir    string
	clock  clock.Clock
	keep   int
	copy   func(src, dst string) error
}

// NewManager returns a Manager storing backups in a "backups" folder beside dbPath.
// A nil clock reads the system clock.
func NewManager(dbPath string, clk clock.Clock) *Manager {
	if clk == nil {
		clk = clock.System{}
	}
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		clock:  clk,
		keep:   MaxBackups,
		copy:   copyFile,
	}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a consistent copy of the database and rotates old backups.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := vacuumInto(m.dbPath, path); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Info("Backup created", "path", path)
	return path, nil
}

// nextPath picks fivemin-<stamp>.db, adding -N when that name is taken.
func (m *Manager) nextPath() (string, error) {
	stamp := m.clock.Now().Local().Format(stampTime)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, n, fileSuffix))
	}
}

// vacuumInto copies src to dst through sqlite so the copy is never torn.
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", "file:"+src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		return err
	}
	return nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// parseName returns the timestamp and sequence encoded in a backup filename.
func parseName(name string) (time.Time, int, bool) {
	rest, ok := strings.CutPrefix(name, filePrefix)
	if !ok {
		return time.Time{}, 0, false
	}
	rest, ok = strings.CutSuffix(rest, fileSuffix)
	if !ok {
		return time.Time{}, 0, false
	}
	seq := 0
	if len(rest) > len(stampTime) {
		n, err := strconv.Atoi(strings.TrimPrefix(rest[len(stampTime):], "-"))
		if err != nil {
			return time.Time{}, 0, false
		}
		seq, rest = n, rest[:len(stampTime)]
	}
	ts, err := time.ParseInLocation(stampTime, rest, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, seq, true
}

// List returns existing backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type ranked struct {
		Info
		seq int
	}
	var found []ranked
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, seq, ok := parseName(e.Name())
		if !ok {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, ranked{
			Info: Info{Path: filepath.Join(m.dir, e.Name()), Timestamp: ts, Size: fi.Size()},
			seq:  seq,
		})
	}

	slices.SortFunc(found, func(a, b ranked) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return b.seq - a.seq
	})
	out := make([]Info, len(found))
	for i, r := range found {
		out[i] = r.Info
	}
	return out, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, b := range backups[min(m.keep, len(backups)):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}
	return nil
}

// Resolve finds a backup by absolute path, path relative to the working
// directory, or bare filename inside the backup directory.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	inDir := filepath.Join(m.dir, name)
	if _, err := os.Stat(inDir); err == nil {
		return inDir, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", m.dir)
}

// Restore replaces the database with backupPath. The current database, when
// present, is backed up first and that path is returned. The store must be
// closed before calling Restore.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	db, err := sql.Open("sqlite", "file:"+backupPath+"?mode=ro")
	if err != nil {
		return "", err
	}
	err = verify(db)
	db.Close()
	if err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.dbPath); err == nil {
		// Skips rotation so the backup being restored is never removed.
		previous, err = m.create()
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := m.copy(backupPath, tmp); err != nil {
		removeTemp(tmp)
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		removeTemp(tmp)
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("Database restored", "from", backupPath, "previous", previous)
	return previous, nil
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove temporary restore file", "path", path, "error", err)
	}
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}

package persist

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type SQLite struct {
	db *sql.DB
}

// OpenSQLite migrates and opens the database at path, creating its directory.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "mkdir db dir")
	}
	if err := runMigrations(path); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return &SQLite{db: db}, nil
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000", path)
}

// runMigrations uses its own connection; closing the migrator closes it.
func runMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, sessionID string) (Snapshot, bool, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, workflow, execution_client, consensus_client, updated_at
	FROM sessions WHERE id = ?`, sessionID)
	var snap Snapshot
	if err := row.Scan(&snap.SessionID, &snap.Workflow, &snap.Execution, &snap.Consensus, &snap.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, errors.Wrap(err, "select session")
	}
	return snap, true, nil
}

func (s *SQLite) Save(ctx context.Context, snap Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO sessions(id, workflow, execution_client, consensus_client, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		workflow=excluded.workflow,
		execution_client=excluded.execution_client,
		consensus_client=excluded.consensus_client,
		updated_at=excluded.updated_at;
	`, snap.SessionID, snap.Workflow, snap.Execution, snap.Consensus, snap.UpdatedAt)
	return errors.Wrap(err, "upsert session")
}

func (s *SQLite) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return errors.Wrap(err, "delete session")
}

func (s *SQLite) Close() error { return s.db.Close() }

package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore almacén persistente local sobre un archivo SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite abre (o crea) la base en path, aplica pragmas y migraciones.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: abrir sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: conectar sqlite: %w", err)
	}
	// SQLite admite un solo escritor.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: %s: %w", pragma, err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("storage: migraciones: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("storage: proveedor de migraciones: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("storage: aplicar migraciones: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, entityType, id string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE entity_type = ? AND id = ?`, entityType, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select record: %w", err)
	}
	return data, true, nil
}

func (s *SQLiteStore) GetAll(ctx context.Context, entityType string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM records WHERE entity_type = ? ORDER BY seq`, entityType)
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	defer rows.Close()
	var out [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Put(ctx context.Context, entityType, id string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (entity_type, id, data) VALUES (?, ?, ?)
		ON CONFLICT (entity_type, id) DO UPDATE SET data = excluded.data`,
		entityType, id, data)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, entityType, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE entity_type = ? AND id = ?`, entityType, id)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) CompareAndSwap(ctx context.Context, entityType, id string, old, new []byte) (bool, error) {
	var (
		res sql.Result
		err error
	)
	if old == nil {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO records (entity_type, id, data) VALUES (?, ?, ?)
			ON CONFLICT (entity_type, id) DO NOTHING`,
			entityType, id, new)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE records SET data = ? WHERE entity_type = ? AND id = ? AND data = ?`,
			new, entityType, id, old)
	}
	if err != nil {
		return false, fmt.Errorf("compare and swap: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("compare and swap: %w", err)
	}
	return n == 1, nil
}

// Close cierra la conexión.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

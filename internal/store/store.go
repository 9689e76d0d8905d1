// Package store persists API credentials and process settings in SQLite,
// per spec §6 ("Persisted state").
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Credential mirrors the api_keys table, per spec §3 ("Credential record").
type Credential struct {
	KeyID      string    `db:"key_id"`
	SecretHash string    `db:"secret_hash"`
	Label      string    `db:"label"`
	Owner      string    `db:"owner"`
	Active     bool      `db:"active"`
	IsAdmin    bool      `db:"is_admin"`
	CreatedAt  time.Time `db:"created_at"`
}

// Store wraps a SQLite connection pool for the api_keys and settings tables.
type Store struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS api_keys (
	key_id      TEXT PRIMARY KEY,
	secret_hash TEXT NOT NULL,
	label       TEXT NOT NULL,
	owner       TEXT NOT NULL,
	active      INTEGER NOT NULL DEFAULT 1,
	is_admin    INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Open connects to the sqlite database at dsn and ensures the schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite is not safe for concurrent writers across conns
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// GetCredential looks up a credential by key-id. Returns sql.ErrNoRows
// when absent — callers must not distinguish this from any other
// miss to preserve the auth verifier's constant-response-shape contract.
func (s *Store) GetCredential(ctx context.Context, keyID string) (*Credential, error) {
	var cred Credential
	err := s.db.GetContext(ctx, &cred, `SELECT key_id, secret_hash, label, owner, active, is_admin, created_at FROM api_keys WHERE key_id = ?`, keyID)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// CreateCredential inserts a new credential record.
func (s *Store) CreateCredential(ctx context.Context, cred Credential) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_keys (key_id, secret_hash, label, owner, active, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cred.KeyID, cred.SecretHash, cred.Label, cred.Owner, cred.Active, cred.IsAdmin, cred.CreatedAt)
	return err
}

// SetActive flips a credential's active flag (deactivation only — never
// hard-deleted, per spec §3).
func (s *Store) SetActive(ctx context.Context, keyID string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE api_keys SET active = ? WHERE key_id = ?`, active, keyID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// SetAdmin flips a credential's admin flag.
func (s *Store) SetAdmin(ctx context.Context, keyID string, admin bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE api_keys SET is_admin = ? WHERE key_id = ?`, admin, keyID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// ListCredentials returns all credentials, newest first, for operator visibility.
func (s *Store) ListCredentials(ctx context.Context) ([]Credential, error) {
	var creds []Credential
	err := s.db.SelectContext(ctx, &creds, `SELECT key_id, secret_hash, label, owner, active, is_admin, created_at FROM api_keys ORDER BY created_at DESC`)
	return creds, err
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetSetting reads a single settings value, or ("", false) when absent.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting upserts a settings value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
)

// bootstrapLockID identifies the PostgreSQL advisory lock that serializes
// first-account creation. Arbitrary, but must be unique within the database.
const bootstrapLockID int64 = 0x66616e2d626f6f74

// CreateFirstAdmin inserts the bootstrap account, but only while the
// admin_users table is empty. The emptiness check and the insert happen in a
// single conditional statement; a losing attempt matches zero rows and gets
// ErrConflict. Callers must not rely on a prior count alone.
//
// The conditional statement alone is race-free on SQLite (single write
// connection) and MySQL (gap lock on the scanned range), but not on
// PostgreSQL: under READ COMMITTED two concurrent inserts with distinct
// usernames each snapshot an empty table and both commit. There the insert
// runs inside a transaction holding an advisory lock instead.
func (s *Store) CreateFirstAdmin(ctx context.Context, admin *model.Admin) error {
	admin.CreatedAt = time.Now().UTC()

	q := `INSERT INTO admin_users (username, password_hash, role, created_at)
		SELECT ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM admin_users)`
	if s.driver == DriverMySQL {
		q = `INSERT INTO admin_users (username, password_hash, role, created_at)
			SELECT ?, ?, ?, ? FROM DUAL
			WHERE NOT EXISTS (SELECT 1 FROM admin_users)`
	}
	args := []any{admin.Username, admin.PasswordHash, admin.Role, admin.CreatedAt}

	var result sql.Result
	var err error
	if s.driver == DriverPostgres {
		result, err = s.execFirstAdminPostgres(ctx, q, args)
	} else {
		result, err = s.db.ExecContext(ctx, s.rebind(q), args...)
	}
	if err != nil {
		// A unique violation here means another request won the race
		// between our statement's existence check and its insert.
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert first admin: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert first admin rows affected: %w", err)
	}
	if n == 0 {
		return ErrConflict
	}

	// RowsAffected == 1 but LastInsertId is unreliable for conditional
	// inserts on some engines, so re-read the row for the ID.
	created, err := s.GetAdminByUsername(ctx, admin.Username)
	if err != nil {
		return fmt.Errorf("reload first admin: %w", err)
	}
	admin.ID = created.ID
	return nil
}

// execFirstAdminPostgres runs the bootstrap insert while holding
// pg_advisory_xact_lock, so concurrent attempts serialize and the second
// one sees the first one's committed row in its NOT EXISTS scan.
func (s *Store) execFirstAdminPostgres(ctx context.Context, q string, args []any) (sql.Result, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin bootstrap tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", bootstrapLockID); err != nil {
		return nil, fmt.Errorf("acquire bootstrap lock: %w", err)
	}

	result, err := tx.ExecContext(ctx, s.rebind(q), args...)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bootstrap tx: %w", err)
	}
	return result, nil
}

// CreateAdmin inserts an additional admin account. A username collision
// yields ErrConflict.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	admin.CreatedAt = time.Now().UTC()

	const q = `INSERT INTO admin_users (username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?)`

	id, err := s.insertID(ctx, q, admin.Username, admin.PasswordHash, admin.Role, admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	admin.ID = id
	return nil
}

// GetAdminByUsername returns an admin account by its exact username.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.GetContext(ctx, &admin,
		s.rebind("SELECT * FROM admin_users WHERE username = ?"), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return &admin, nil
}

// ListAdmins returns all admin accounts, newest first.
func (s *Store) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := s.db.SelectContext(ctx, &admins,
		"SELECT * FROM admin_users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// CountAdmins returns the number of admin accounts. Used as the bootstrap
// fast path only; CreateFirstAdmin is the authoritative gate.
func (s *Store) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM admin_users"); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}

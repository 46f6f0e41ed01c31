package postgres

import (
	"context"
	"database/sql"
	"errors"

	"room-sync/internal/database"
	"room-sync/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository serves the auth hot path with prepared statements over the
// pool's stdlib adapter.
type UserRepository struct {
	stmtCreate        *sql.Stmt
	stmtGetByID       *sql.Stmt
	stmtGetByEmail    *sql.Stmt
	stmtExistsByEmail *sql.Stmt
}

func NewUserRepository(db database.DB) (*UserRepository, error) {
	sqldb := db.SQLDB()
	if sqldb == nil {
		return nil, errors.New("nil sql db")
	}

	r := &UserRepository{}

	var err error
	r.stmtCreate, err = sqldb.PrepareContext(
		context.Background(),
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtExistsByEmail, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExistsByEmail)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Email, u.PasswordHash)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExistsByEmail.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

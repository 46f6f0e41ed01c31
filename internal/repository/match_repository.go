package repository

import (
	"context"
	"errors"
	"time"

	"room-sync/internal/database"
	"room-sync/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type MatchRepository interface {
	// Create persists a new pending match for the canonical pair. Returns
	// match.ErrDuplicate when a record for the pair already exists; the
	// uniqueness constraint makes this safe under concurrent callers.
	Create(ctx context.Context, m match.Match) (match.Match, error)

	GetByID(ctx context.Context, id uuid.UUID) (match.Match, error)

	// UpdateStatus moves a pending match to a terminal status. Returns
	// match.ErrInvalidStateTransition when the record is no longer pending.
	UpdateStatus(ctx context.Context, id uuid.UUID, to match.Status) (match.Match, error)

	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status match.Status) ([]match.Match, error)

	// ListDecidedPartnerIDs returns the partners of every accepted or
	// rejected match involving the user, for candidate exclusion.
	ListDecidedPartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, user_a_id, user_b_id, compatibility_score, status, created_at, updated_at`

func (r *PostgresMatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.UserAID, m.UserBID = match.CanonicalPair(m.UserAID, m.UserBID)
	m.Status = match.StatusPending
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO matches (id, user_a_id, user_b_id, compatibility_score, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.UserAID, m.UserBID, m.Score, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return match.Match{}, match.ErrDuplicate
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, to match.Status) (match.Match, error) {
	// Conditional update keeps the terminal-state guard race-free: two
	// concurrent decisions cannot both see a pending row.
	row := r.db.QueryRow(ctx,
		`UPDATE matches SET status = $2, updated_at = $3
		 WHERE id = $1 AND status = $4
		 RETURNING `+matchColumns,
		id, to, time.Now().UTC(), match.StatusPending,
	)
	m, err := scanMatch(row)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, match.ErrNotFound) {
		return match.Match{}, err
	}

	// Nothing updated: distinguish a missing record from a terminal one.
	existing, gerr := r.GetByID(ctx, id)
	if gerr != nil {
		return match.Match{}, gerr
	}
	return existing, match.ErrInvalidStateTransition
}

func (r *PostgresMatchRepository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status match.Status) ([]match.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE (user_a_id = $1 OR user_b_id = $1) AND status = $2
		 ORDER BY created_at DESC`,
		userID, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0, 16)
	for rows.Next() {
		var m match.Match
		if err := rows.Scan(&m.ID, &m.UserAID, &m.UserBID, &m.Score, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresMatchRepository) ListDecidedPartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT CASE WHEN user_a_id = $1 THEN user_b_id ELSE user_a_id END
		 FROM matches
		 WHERE (user_a_id = $1 OR user_b_id = $1) AND status <> $2`,
		userID, match.StatusPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, 16)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type matchScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row matchScanner) (match.Match, error) {
	var m match.Match
	if err := row.Scan(&m.ID, &m.UserAID, &m.UserBID, &m.Score, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}

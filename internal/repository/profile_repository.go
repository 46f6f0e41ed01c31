package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"room-sync/internal/database"
	"room-sync/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CandidateFilter narrows the candidate pool before ranking. Zero values
// mean "no constraint".
type CandidateFilter struct {
	City    string
	MaxRent float64
	Limit   int
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Raw, error)
	Upsert(ctx context.Context, raw profile.Raw) error
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]profile.Raw, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `user_id, name, city, smoking, pets, work_from_home, schedule, cleanliness, max_rent, interests`

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Raw, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM preference_profiles WHERE user_id = $1`,
		userID,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, raw profile.Raw) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO preference_profiles
			(user_id, name, city, smoking, pets, work_from_home, schedule, cleanliness, max_rent, interests, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			smoking = EXCLUDED.smoking,
			pets = EXCLUDED.pets,
			work_from_home = EXCLUDED.work_from_home,
			schedule = EXCLUDED.schedule,
			cleanliness = EXCLUDED.cleanliness,
			max_rent = EXCLUDED.max_rent,
			interests = EXCLUDED.interests,
			updated_at = EXCLUDED.updated_at`,
		raw.UserID,
		raw.Name,
		raw.City,
		raw.Smoking,
		raw.Pets,
		raw.WorkFromHome,
		raw.Schedule,
		raw.Cleanliness,
		raw.MaxRent,
		raw.Interests,
		time.Now().UTC(),
	)
	return err
}

func (r *PostgresProfileRepository) ListCandidates(ctx context.Context, filter CandidateFilter) ([]profile.Raw, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + profileColumns + ` FROM preference_profiles WHERE 1=1`)

	args := make([]any, 0, 3)
	if city := strings.TrimSpace(filter.City); city != "" {
		args = append(args, strings.ToLower(city))
		sb.WriteString(` AND lower(city) = $` + itoa(len(args)))
	}
	if filter.MaxRent > 0 {
		args = append(args, filter.MaxRent)
		sb.WriteString(` AND max_rent <= $` + itoa(len(args)))
	}
	sb.WriteString(` ORDER BY user_id`)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(` LIMIT $` + itoa(len(args)))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Raw, 0, 64)
	for rows.Next() {
		raw, err := scanProfileRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, rows.Err()
}

type profileScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row profileScanner) (profile.Raw, error) {
	raw, err := scanProfileRows(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Raw{}, profile.ErrNotFound
		}
		return profile.Raw{}, err
	}
	return raw, nil
}

func scanProfileRows(row profileScanner) (profile.Raw, error) {
	var raw profile.Raw
	if err := row.Scan(
		&raw.UserID,
		&raw.Name,
		&raw.City,
		&raw.Smoking,
		&raw.Pets,
		&raw.WorkFromHome,
		&raw.Schedule,
		&raw.Cleanliness,
		&raw.MaxRent,
		&raw.Interests,
	); err != nil {
		return profile.Raw{}, err
	}
	return raw, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

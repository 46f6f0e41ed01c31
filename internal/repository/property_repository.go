package repository

import (
	"context"
	"errors"
	"strings"

	"room-sync/internal/database"
	"room-sync/internal/domain/property"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PropertyRepository interface {
	List(ctx context.Context, filter property.Filter) ([]property.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (property.Property, error)
}

type PostgresPropertyRepository struct {
	db database.DB
}

func NewPostgresPropertyRepository(db database.DB) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{db: db}
}

const propertyColumns = `id, title, description, city, area, price, bedrooms, bathrooms, available, amenities, created_at`

func (r *PostgresPropertyRepository) List(ctx context.Context, filter property.Filter) ([]property.Property, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + propertyColumns + ` FROM properties WHERE available = TRUE`)

	args := make([]any, 0, 3)
	if city := strings.TrimSpace(filter.City); city != "" {
		args = append(args, strings.ToLower(city))
		sb.WriteString(` AND lower(city) = $` + itoa(len(args)))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		sb.WriteString(` AND price <= $` + itoa(len(args)))
	}
	sb.WriteString(` ORDER BY price ASC, id ASC`)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(` LIMIT $` + itoa(len(args)))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]property.Property, 0, 32)
	for rows.Next() {
		var p property.Property
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.City, &p.Area,
			&p.Price, &p.Bedrooms, &p.Bathrooms, &p.Available, &p.Amenities, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (property.Property, error) {
	row := r.db.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)

	var p property.Property
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.City, &p.Area,
		&p.Price, &p.Bedrooms, &p.Bathrooms, &p.Available, &p.Amenities, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return property.Property{}, property.ErrNotFound
		}
		return property.Property{}, err
	}
	return p, nil
}

package seeder

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"room-sync/internal/database"
)

// DemoSeeder loads a small fixture set for local development. Inserts are
// keyed on fixed UUIDs with ON CONFLICT DO NOTHING, so reruns are no-ops.
type DemoSeeder struct {
	logger *log.Logger
}

func NewDemoSeeder(logger *log.Logger) *DemoSeeder {
	if logger == nil {
		logger = log.Default()
	}
	return &DemoSeeder{logger: logger}
}

type demoUser struct {
	id          string
	email       string
	name        string
	city        string
	smoking     bool
	pets        bool
	wfh         bool
	schedule    string
	cleanliness int
	maxRent     float64
	interests   []string
}

var demoUsers = []demoUser{
	{
		id: "6f1e7d3a-0001-4a70-9a8e-9f3f6f1e0001", email: "alice@demo.room-sync.dev",
		name: "Alice", city: "lisbon", pets: true, wfh: true,
		schedule: "early_bird", cleanliness: 4, maxRent: 900,
		interests: []string{"cooking", "hiking", "yoga"},
	},
	{
		id: "6f1e7d3a-0002-4a70-9a8e-9f3f6f1e0002", email: "bruno@demo.room-sync.dev",
		name: "Bruno", city: "lisbon", pets: true,
		schedule: "early_bird", cleanliness: 5, maxRent: 1100,
		interests: []string{"cooking", "cycling", "yoga"},
	},
	{
		id: "6f1e7d3a-0003-4a70-9a8e-9f3f6f1e0003", email: "carla@demo.room-sync.dev",
		name: "Carla", city: "porto", smoking: true,
		schedule: "night_owl", cleanliness: 2, maxRent: 600,
		interests: []string{"gaming", "music"},
	},
	{
		id: "6f1e7d3a-0004-4a70-9a8e-9f3f6f1e0004", email: "daniel@demo.room-sync.dev",
		name: "Daniel", city: "lisbon", wfh: true,
		schedule: "flexible", cleanliness: 3, maxRent: 800,
		interests: []string{"hiking", "music", "photography"},
	},
}

type demoProperty struct {
	id        string
	title     string
	city      string
	area      string
	price     float64
	bedrooms  int
	bathrooms int
	amenities []string
}

var demoProperties = []demoProperty{
	{
		id: "a2b4c6d8-0001-4e10-8c2d-a2b4c6d80001", title: "Sunny 2BR near Alameda",
		city: "lisbon", area: "Alameda", price: 1400, bedrooms: 2, bathrooms: 1,
		amenities: []string{"balcony", "dishwasher", "elevator"},
	},
	{
		id: "a2b4c6d8-0002-4e10-8c2d-a2b4c6d80002", title: "Riverside studio",
		city: "porto", area: "Ribeira", price: 750, bedrooms: 1, bathrooms: 1,
		amenities: []string{"river view", "washing machine"},
	},
	{
		id: "a2b4c6d8-0003-4e10-8c2d-a2b4c6d80003", title: "Shared flat with terrace",
		city: "lisbon", area: "Graca", price: 1650, bedrooms: 3, bathrooms: 2,
		amenities: []string{"terrace", "dishwasher", "parking"},
	},
}

const demoPassword = "roomsync-demo"

func (s *DemoSeeder) Run(ctx context.Context, db database.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for _, u := range demoUsers {
		if _, err := db.Exec(ctx, `
			INSERT INTO users (id, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING`,
			u.id, u.email, string(hash),
		); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}

		if _, err := db.Exec(ctx, `
			INSERT INTO preference_profiles
				(user_id, name, city, smoking, pets, work_from_home, schedule, cleanliness, max_rent, interests)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (user_id) DO NOTHING`,
			u.id, u.name, u.city, u.smoking, u.pets, u.wfh, u.schedule, u.cleanliness, u.maxRent, u.interests,
		); err != nil {
			return fmt.Errorf("seed profile %s: %w", u.email, err)
		}
	}

	for _, p := range demoProperties {
		if _, err := db.Exec(ctx, `
			INSERT INTO properties (id, title, city, area, price, bedrooms, bathrooms, amenities)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			p.id, p.title, p.city, p.area, p.price, p.bedrooms, p.bathrooms, p.amenities,
		); err != nil {
			return fmt.Errorf("seed property %s: %w", p.title, err)
		}
	}

	s.logger.Printf("[Seeder] demo data loaded | users=%d properties=%d", len(demoUsers), len(demoProperties))
	return nil
}

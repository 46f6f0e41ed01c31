package match

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("match not found")

	// ErrDuplicate means a record already exists for the unordered pair.
	ErrDuplicate = errors.New("match already exists for this pair")

	// ErrInvalidStateTransition guards the terminal states: once a match is
	// accepted or rejected it never changes again.
	ErrInvalidStateTransition = errors.New("invalid match state transition")

	ErrInvalidStatus = errors.New("invalid match status")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.TrimSpace(strings.ToLower(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.Terminal()
}

// Match is the persisted outcome of a compatibility decision between two
// users. UserAID/UserBID are stored in canonical order so the pair can be
// looked up regardless of who initiated it.
type Match struct {
	ID        uuid.UUID
	UserAID   uuid.UUID
	UserBID   uuid.UUID
	Score     int
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Match) Involves(userID uuid.UUID) bool {
	return m.UserAID == userID || m.UserBID == userID
}

func (m Match) PartnerOf(userID uuid.UUID) uuid.UUID {
	if m.UserAID == userID {
		return m.UserBID
	}
	if m.UserBID == userID {
		return m.UserAID
	}
	return uuid.Nil
}

// CanonicalPair orders two user ids deterministically. Storing pairs this way
// lets a single uniqueness constraint cover both directions.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MatchCreatedEvent struct {
	Type      string    `json:"type"`
	MatchID   uuid.UUID `json:"match_id"`
	PartnerID uuid.UUID `json:"partner_id"`
	Score     int       `json:"score"`
	Timestamp string    `json:"timestamp"`
}

type MatchDecidedEvent struct {
	Type      string    `json:"type"`
	MatchID   uuid.UUID `json:"match_id"`
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
}

// HubNotifier adapts the hub to the match usecase's notifier port.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) MatchCreated(userID, partnerID, matchID uuid.UUID, score int) {
	if n == nil || n.hub == nil {
		return
	}

	evt := MatchCreatedEvent{
		Type:      "match_created",
		MatchID:   matchID,
		PartnerID: partnerID,
		Score:     score,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Publish(userID, b)
}

func (n *HubNotifier) MatchDecided(userID, matchID uuid.UUID, status string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := MatchDecidedEvent{
		Type:      "match_decided",
		MatchID:   matchID,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Publish(userID, b)
}

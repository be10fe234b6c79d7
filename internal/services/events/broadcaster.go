// Package events publishes combat-state changes to session viewers over
// Redis Pub/Sub. Delivery is fire-and-forget: the orchestrator publishes
// after a successful persistence write and never fails an operation on a
// broadcast error.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mythweaver/mythweaver/internal/errors"
	redisclient "github.com/mythweaver/mythweaver/internal/redis"
)

// EventType represents the type of event being broadcast
type EventType string

// Event types
const (
	EventTypeCombatStarted     EventType = "combat.started"
	EventTypeCombatEnded       EventType = "combat.ended"
	EventTypeCombatantAdded    EventType = "combatant.added"
	EventTypeCombatantUpdated  EventType = "combatant.updated"
	EventTypeCombatantRemoved  EventType = "combatant.removed"
	EventTypeTurnAdvanced      EventType = "turn.advanced"
	EventTypeActionTaken       EventType = "action.taken"
	EventTypeSpellSlotsUpdated EventType = "spellslots.updated"
)

// Event is the wire format pushed to session viewers
type Event struct {
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Broadcaster publishes events to all viewers of a session
type Broadcaster interface {
	Publish(ctx context.Context, event Event) error
}

// RedisBroadcaster publishes events to Redis Pub/Sub for distribution to
// connected viewers
type RedisBroadcaster struct {
	client redisclient.Client
	logger *slog.Logger
}

// NewRedisBroadcaster creates a new Redis-backed broadcaster
func NewRedisBroadcaster(client redisclient.Client, logger *slog.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client: client,
		logger: logger,
	}
}

// Channel returns the Pub/Sub channel name for a session
func Channel(sessionID string) string {
	return fmt.Sprintf("session:%s:events", sessionID)
}

// Publish sends an event to the session's channel
func (b *RedisBroadcaster) Publish(ctx context.Context, event Event) error {
	if event.SessionID == "" {
		return errors.InvalidArgument("event session ID is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal event")
	}

	if err := b.client.Publish(ctx, Channel(event.SessionID), payload).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish event")
	}

	b.logger.DebugContext(ctx, "published event",
		"type", event.Type,
		"session_id", event.SessionID)

	return nil
}

package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version    string      `json:"version"` // Event schema version (e.g., "1.0")
	Type       Type        `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Shop event types, mirrored from domain so subscribers can range over them
const (
	ItemBought          Type = domain.EventTypeItemBought
	ItemSold            Type = domain.EventTypeItemSold
	ItemReserved        Type = domain.EventTypeItemReserved
	ReservationReleased Type = domain.EventTypeReservationReleased
	PurchaseRestored    Type = domain.EventTypePurchaseRestored
	SelectionChanged    Type = domain.EventTypeSelectionChanged
	CharacterUpdated    Type = domain.EventTypeCharacterUpdated
	WorldUpdated        Type = domain.EventTypeWorldUpdated
	WeekRollover        Type = domain.EventTypeWeekRollover
)

// AllTypes lists every event the shop publishes
var AllTypes = []Type{
	ItemBought, ItemSold, ItemReserved, ReservationReleased, PurchaseRestored,
	SelectionChanged, CharacterUpdated, WorldUpdated, WeekRollover,
}

// WorldPayloadV1 is the payload for world.updated
type WorldPayloadV1 struct {
	Field string `json:"field"` // honor, quest or location
	Clan  string `json:"clan,omitempty"`
	Score int    `json:"score,omitempty"`
}

// Type-safe event constructors

// NewItemEvent creates an item.* or reservation.* event
func NewItemEvent(t Type, itemID, characterID string, price int, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: domain.ItemEventPayload{
			ItemID:      itemID,
			CharacterID: characterID,
			Price:       price,
		},
		OccurredAt: at,
	}
}

// NewSelectionEvent creates selection.changed or week.rollover
func NewSelectionEvent(t Type, week int, itemIDs []string, at time.Time) Event {
	return Event{
		Version:    EventSchemaVersion,
		Type:       t,
		Payload:    domain.SelectionEventPayload{Week: week, ItemIDs: itemIDs},
		OccurredAt: at,
	}
}

// NewCharacterUpdatedEvent creates character.updated
func NewCharacterUpdatedEvent(characterID string, at time.Time) Event {
	return Event{
		Version:    EventSchemaVersion,
		Type:       CharacterUpdated,
		Payload:    domain.CharacterEventPayload{CharacterID: characterID},
		OccurredAt: at,
	}
}

// NewWorldUpdatedEvent creates world.updated
func NewWorldUpdatedEvent(payload WorldPayloadV1, at time.Time) Event {
	return Event{
		Version:    EventSchemaVersion,
		Type:       WorldUpdated,
		Payload:    payload,
		OccurredAt: at,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously, in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes handler to every type in AllTypes
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range AllTypes {
		bus.Subscribe(t, handler)
	}
}

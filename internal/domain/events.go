package domain

// Event type constants used for event bus subscriptions, the SSE stream and metrics.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.bought")
const (
	// EventTypeItemBought is published after a successful purchase
	EventTypeItemBought = "item.bought"

	// EventTypeItemSold is published after a character sells an item back
	EventTypeItemSold = "item.sold"

	// EventTypeItemReserved is published when a reservation is created
	EventTypeItemReserved = "item.reserved"

	// EventTypeReservationReleased covers cancellation and expiry
	EventTypeReservationReleased = "reservation.released"

	// EventTypePurchaseRestored is published when an admin returns a sold item to stock
	EventTypePurchaseRestored = "purchase.restored"

	// EventTypeSelectionChanged is published whenever the weekly selection is recomputed with a different result
	EventTypeSelectionChanged = "selection.changed"

	// EventTypeCharacterUpdated is published after any character mutation
	EventTypeCharacterUpdated = "character.updated"

	// EventTypeWorldUpdated covers honor, quest and location changes
	EventTypeWorldUpdated = "world.updated"

	// EventTypeWeekRollover is published when the campaign week advances
	EventTypeWeekRollover = "week.rollover"
)

// ChangeSource names the store table (or document family) that changed
type ChangeSource string

const (
	ChangePurchases    ChangeSource = "purchases"
	ChangeReservations ChangeSource = "reservations"
	ChangeHonor        ChangeSource = "honor_scores"
	ChangeQuest        ChangeSource = "active_quest"
	ChangeLocation     ChangeSource = "party_location"
	ChangeCharacters   ChangeSource = "characters"
)

// ChangeNotice is delivered by a store subscription.
// It carries no data: subscribers reload a full snapshot.
type ChangeNotice struct {
	Source ChangeSource `json:"source"`
}

// ItemEventPayload is the payload for item.* and reservation.* events
type ItemEventPayload struct {
	ItemID      string `json:"item_id"`
	CharacterID string `json:"character_id,omitempty"`
	Price       int    `json:"price,omitempty"`
}

// SelectionEventPayload is the payload for selection.changed and week.rollover
type SelectionEventPayload struct {
	Week    int      `json:"week"`
	ItemIDs []string `json:"item_ids"`
}

// CharacterEventPayload is the payload for character.updated
type CharacterEventPayload struct {
	CharacterID string `json:"character_id"`
}

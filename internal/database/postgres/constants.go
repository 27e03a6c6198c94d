package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// NotifyChannel is the LISTEN channel the change triggers publish on
const NotifyChannel = "shop_changes"

// world_state keys
const (
	WorldKeyQuest    = "active_quest"
	WorldKeyLocation = "party_location"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Shop Operations
const (
	ErrMsgFailedToQueryPurchases    = "failed to query purchases"
	ErrMsgFailedToInsertPurchase    = "failed to insert purchase"
	ErrMsgFailedToDeletePurchase    = "failed to delete purchase"
	ErrMsgFailedToQueryReservations = "failed to query reservations"
	ErrMsgFailedToInsertReservation = "failed to insert reservation"
	ErrMsgFailedToDeleteReservation = "failed to delete reservation"
)

// Error Messages - World Operations
const (
	ErrMsgFailedToQueryHonor     = "failed to query honor scores"
	ErrMsgFailedToUpsertHonor    = "failed to upsert honor score"
	ErrMsgFailedToGetWorldState  = "failed to get world state"
	ErrMsgFailedToSaveWorldState = "failed to save world state"
)

// Error Messages - Character Operations
const (
	ErrMsgFailedToQueryCharacters    = "failed to query characters"
	ErrMsgFailedToGetCharacter       = "failed to get character"
	ErrMsgFailedToSaveCharacter      = "failed to save character"
	ErrMsgFailedToMarshalCharacter   = "failed to marshal character"
	ErrMsgFailedToUnmarshalCharacter = "failed to unmarshal character"
)

// Error Messages - Notifications
const (
	ErrMsgFailedToAcquireListener = "failed to acquire listener connection"
	ErrMsgFailedToListen          = "failed to listen for changes"
)

// Log Messages
const (
	LogMsgListenerStopped = "Change listener stopped"
)

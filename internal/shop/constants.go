package shop

import "time"

// Decline reasons reported in Result.Reason
const (
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonNoTrade           = "no_trade"
	ReasonReserved          = "reserved"
	ReasonConflict          = "already_purchased"
)

// Listing statuses
const (
	StatusAvailable  = "available"
	StatusReserved   = "reserved"
	StatusReservedBy = "reserved_by_you"
)

// Store operations, used as the metric label for remote write failures
const (
	OpBuy               = "buy"
	OpSell              = "sell"
	OpReserve           = "reserve"
	OpCancelReservation = "cancel_reservation"
	OpExpireReservation = "expire_reservation"
	OpRestorePurchase   = "restore_purchase"
	OpSetHonor          = "set_honor"
	OpSetQuest          = "set_quest"
	OpSetLocation       = "set_location"
)

// Snapshot reload sources that are not store tables
const (
	SourceStartup  = "startup"
	SourceManual   = "manual"
	SourceRollover = "rollover"
)

// ResubscribeDelay is the pause before reopening a dropped change subscription
const ResubscribeDelay = 5 * time.Second

// Warning templates
const (
	WarnFmtRemoteWrite = "saved locally but the shared store rejected the change: %v"
)

// Log messages
const (
	LogMsgRemoteWriteFailed   = "Remote write failed, keeping local change"
	LogMsgPublishFailed       = "Failed to publish shop event"
	LogMsgSnapshotFailed      = "Failed to load store snapshot"
	LogMsgSubscribeFailed     = "Failed to subscribe to store changes"
	LogMsgSubscriptionClosed  = "Store subscription closed, resubscribing"
	LogMsgSelectionRecomputed = "Weekly selection recomputed"
	LogMsgReservationExpired  = "Reservation expired"
	LogMsgPurchaseConflict    = "Purchase lost the race for a unique item"
)

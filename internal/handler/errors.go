package handler

// Client-facing messages; internal error text never reaches the response.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidFilter     = "Invalid filter"

	// Operation names, also used as the "op" log attribute
	ErrMsgBuyItemFailed     = "Failed to buy item"
	ErrMsgSellItemFailed    = "Failed to sell item"
	ErrMsgReserveItemFailed = "Failed to reserve item"
	ErrMsgCancelFailed      = "Failed to cancel reservation"
	ErrMsgExportFailed      = "Failed to export item"

	ErrMsgGetCharacterFailed    = "Failed to get character"
	ErrMsgListCharactersFailed  = "Failed to list characters"
	ErrMsgUpdateCharacterFailed = "Failed to update character"

	ErrMsgRestoreFailed  = "Failed to restore purchase"
	ErrMsgSetWorldFailed = "Failed to update world"
)

// User-facing messages for domain errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgCharacterNotFoundErr = "Character not found"
	ErrMsgNotInBackpackError   = "That item is not in the backpack"
	ErrMsgReservationNotFound  = "Reservation not found"
	ErrMsgAlreadyPurchasedErr  = "Someone already bought that item"
	ErrMsgItemReservedError    = "That item is reserved by another character"
	ErrMsgAlreadyReservedError = "You already reserved that item"
	ErrMsgAttunementFullError  = "No free attunement slots"
	ErrMsgNoTradeError         = "The local clan refuses to trade with the party"
	ErrMsgNotReserverError     = "That reservation belongs to another character"
	ErrMsgNotReservableError   = "Only rare and legendary items can be reserved"
	ErrMsgNotAttunedError      = "That item is not attuned"
	ErrMsgInvalidInputError    = "Invalid input"
	ErrMsgUnavailableError     = "Persistence is unavailable. Please try again later."
)


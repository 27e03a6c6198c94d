package handler

import (
	"context"
	"net/http"

	"github.com/osse101/KnightlyTreasures_Go/internal/character"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

// Item actions accepted by the character endpoints. An empty action means the first of each pair.
const (
	ActionAdd      = "add"
	ActionRemove   = "remove"
	ActionEquip    = "equip"
	ActionUnequip  = "unequip"
	ActionAttune   = "attune"
	ActionUnattune = "unattune"
)

// AdjustHPRequest applies damage (negative) or healing (positive)
type AdjustHPRequest struct {
	Delta int `json:"delta" validate:"min=-1000,max=1000"`
}

// BackpackRequest adds or removes a backpack item
type BackpackRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	Action string `json:"action" validate:"omitempty,oneof=add remove"`
}

// EquipRequest moves an item between backpack and equipment
type EquipRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	Action string `json:"action" validate:"omitempty,oneof=equip unequip"`
}

// AttuneRequest binds or releases an attunement slot
type AttuneRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
	Action string `json:"action" validate:"omitempty,oneof=attune unattune"`
}

// WishlistRequest toggles an item on the wishlist
type WishlistRequest struct {
	ItemID string `json:"item_id" validate:"required,max=100"`
}

// CurrencyRequest replaces the purse
type CurrencyRequest struct {
	PP int `json:"pp" validate:"gte=0"`
	GP int `json:"gp" validate:"gte=0"`
	EP int `json:"ep" validate:"gte=0"`
	SP int `json:"sp" validate:"gte=0"`
	CP int `json:"cp" validate:"gte=0"`
}

// HandleListCharacters returns every character sheet
// @Summary List characters
// @Tags characters
// @Produce json
// @Success 200 {array} domain.Character
// @Failure 500 {object} ErrorResponse
// @Router /characters [get]
func HandleListCharacters(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chars, err := svc.List(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgListCharactersFailed, err)
			return
		}
		if chars == nil {
			chars = []domain.Character{}
		}
		respondJSON(w, http.StatusOK, chars)
	}
}

// HandleGetCharacter returns one character sheet
// @Summary Get character
// @Tags characters
// @Produce json
// @Param id path string true "Character ID"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /characters/{id} [get]
func HandleGetCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}
		c, err := svc.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetCharacterFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleAdjustHP changes current hit points, clamped to the sheet's range
// @Summary Adjust hit points
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body AdjustHPRequest true "HP delta"
// @Success 200 {object} character.Result
// @Failure 404 {object} ErrorResponse
// @Router /characters/{id}/hp [post]
func HandleAdjustHP(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCharacterAction(w, r, "Adjust HP", func(ctx context.Context, id string, req AdjustHPRequest) (*character.Result, error) {
			return svc.AdjustHP(ctx, id, req.Delta)
		})
	}
}

// HandleBackpack adds or removes an item
// @Summary Add or remove backpack item
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body BackpackRequest true "Item and action"
// @Success 200 {object} character.Result
// @Failure 404 {object} ErrorResponse
// @Router /characters/{id}/items [post]
func HandleBackpack(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCharacterAction(w, r, "Update backpack", func(ctx context.Context, id string, req BackpackRequest) (*character.Result, error) {
			if req.Action == ActionRemove {
				return svc.RemoveItem(ctx, id, req.ItemID)
			}
			return svc.AddItem(ctx, id, req.ItemID)
		})
	}
}

// HandleEquip equips or unequips an item
// @Summary Equip or unequip item
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body EquipRequest true "Item and action"
// @Success 200 {object} character.Result
// @Failure 404 {object} ErrorResponse
// @Router /characters/{id}/equip [post]
func HandleEquip(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCharacterAction(w, r, "Equip item", func(ctx context.Context, id string, req EquipRequest) (*character.Result, error) {
			if req.Action == ActionUnequip {
				return svc.Unequip(ctx, id, req.ItemID)
			}
			return svc.Equip(ctx, id, req.ItemID)
		})
	}
}

// HandleAttune attunes or releases an item
// @Summary Attune or unattune item
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body AttuneRequest true "Item and action"
// @Success 200 {object} character.Result
// @Failure 409 {object} ErrorResponse
// @Router /characters/{id}/attune [post]
func HandleAttune(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCharacterAction(w, r, "Attune item", func(ctx context.Context, id string, req AttuneRequest) (*character.Result, error) {
			if req.Action == ActionUnattune {
				return svc.Unattune(ctx, id, req.ItemID)
			}
			return svc.Attune(ctx, id, req.ItemID)
		})
	}
}

// HandleWishlist toggles an item on the wishlist
// @Summary Toggle wishlist item
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body WishlistRequest true "Item"
// @Success 200 {object} character.Result
// @Router /characters/{id}/wishlist [post]
func HandleWishlist(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCharacterAction(w, r, "Toggle wishlist", func(ctx context.Context, id string, req WishlistRequest) (*character.Result, error) {
			return svc.ToggleWishlist(ctx, id, req.ItemID)
		})
	}
}

// HandleSetCurrency replaces a character's purse
// @Summary Set currency
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "Character ID"
// @Param request body CurrencyRequest true "Coin counts"
// @Success 200 {object} character.Result
// @Failure 400 {object} ValidationErrorResponse
// @Router /characters/{id}/currency [put]
func HandleSetCurrency(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleCharacterAction(w, r, "Set currency", func(ctx context.Context, id string, req CurrencyRequest) (*character.Result, error) {
			return svc.SetCurrency(ctx, id, domain.CoinPurse{PP: req.PP, GP: req.GP, EP: req.EP, SP: req.SP, CP: req.CP})
		})
	}
}

// handleCharacterAction resolves the {id} path parameter before delegating to handleAction
func handleCharacterAction[REQ any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	action func(context.Context, string, REQ) (*character.Result, error),
) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	logger.FromContext(r.Context()).Debug(opName, "character_id", id)

	handleAction(w, r, ErrMsgUpdateCharacterFailed, func(ctx context.Context, req REQ) (*character.Result, error) {
		return action(ctx, id, req)
	})
}

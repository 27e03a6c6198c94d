package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
)

// BuyRequest names the buyer and the shelf item
type BuyRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	ItemID      string `json:"item_id" validate:"required,max=100"`
}

// SellRequest names the seller and the item, by catalog id or display name
type SellRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	Item        string `json:"item" validate:"required,max=200,excludesall=\x00\n\r\t"`
}

// ReserveRequest asks to hold a rare or legendary item for a deposit
type ReserveRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	ItemID      string `json:"item_id" validate:"required,max=100"`
}

// InventoryQuery holds the shelf filters from the query string
type InventoryQuery struct {
	Category string `validate:"category"`
	Rarity   string `validate:"rarity"`
}

// InventoryResponse is the filtered shelf for the current week
type InventoryResponse struct {
	Week  int            `json:"week"`
	Items []shop.Listing `json:"items"`
}

// ExportResponse carries the plain-text item card
type ExportResponse struct {
	ItemID string `json:"item_id"`
	Text   string `json:"text"`
}

// HandleWeek returns the current shop week
// @Summary Current shop week
// @Description Week number, next rollover, active quest and party location
// @Tags shop
// @Produce json
// @Success 200 {object} shop.WeekInfo
// @Router /shop/week [get]
func HandleWeek(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Week(r.Context()))
	}
}

// HandleInventory returns this week's shelf, optionally filtered
// @Summary Weekly inventory
// @Description Lists this week's items with honor-adjusted prices and reservation status
// @Tags shop
// @Produce json
// @Param category query string false "weapon, armor, gear or all"
// @Param rarity query string false "common, uncommon, rare, legendary or all"
// @Param character_id query string false "Viewer, for wishlist and own reservations"
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /shop/inventory [get]
func HandleInventory(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := InventoryQuery{
			Category: GetOptionalQueryParam(r, "category", ""),
			Rarity:   GetOptionalQueryParam(r, "rarity", ""),
		}
		if err := GetValidator().ValidateStruct(q); err != nil {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidFilter,
				Fields: FormatValidationError(err),
			})
			return
		}

		filter := inventory.Filter{Category: strings.ToLower(q.Category), Rarity: strings.ToLower(q.Rarity)}
		characterID := GetOptionalQueryParam(r, CharacterQueryParam, "")
		items := svc.Listing(r.Context(), filter, characterID)

		respondJSON(w, http.StatusOK, InventoryResponse{
			Week:  svc.Week(r.Context()).Week,
			Items: items,
		})
	}
}

// HandleGetItem returns one shelf entry
// @Summary Shop item
// @Tags shop
// @Produce json
// @Param id path string true "Item ID"
// @Param character_id query string false "Viewer"
// @Success 200 {object} shop.Listing
// @Failure 404 {object} ErrorResponse
// @Router /shop/items/{id} [get]
func HandleGetItem(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		listing, err := svc.Item(r.Context(), itemID, GetOptionalQueryParam(r, CharacterQueryParam, ""))
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}
		respondJSON(w, http.StatusOK, listing)
	}
}

// HandleExportItem returns the item as a plain-text card for pasting into chat
// @Summary Export item card
// @Tags shop
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} ExportResponse
// @Failure 404 {object} ErrorResponse
// @Router /shop/items/{id}/export [get]
func HandleExportItem(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		text, err := svc.Export(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, ErrMsgExportFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, ExportResponse{ItemID: itemID, Text: text})
	}
}

// HandleBuy buys a shelf item for a character.
// A declined purchase (not enough coin) is a 200 with success=false.
// @Summary Buy item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyRequest true "Buyer and item"
// @Success 200 {object} shop.Result
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shop/buy [post]
func HandleBuy(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, ErrMsgBuyItemFailed, func(ctx context.Context, req BuyRequest) (*shop.Result, error) {
			LogRequestFields(logger.FromContext(ctx), "character_id", req.CharacterID, "item_id", req.ItemID)
			return svc.Buy(ctx, req.CharacterID, req.ItemID)
		})
	}
}

// HandleSell sells an item from a character's backpack
// @Summary Sell item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body SellRequest true "Seller and item"
// @Success 200 {object} shop.Result
// @Failure 404 {object} ErrorResponse
// @Router /shop/sell [post]
func HandleSell(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, ErrMsgSellItemFailed, func(ctx context.Context, req SellRequest) (*shop.Result, error) {
			LogRequestFields(logger.FromContext(ctx), "character_id", req.CharacterID, "item", req.Item)
			return svc.Sell(ctx, req.CharacterID, req.Item)
		})
	}
}

// HandleReserve places a deposit on a rare or legendary item
// @Summary Reserve item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body ReserveRequest true "Character and item"
// @Success 200 {object} shop.Result
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shop/reserve [post]
func HandleReserve(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, ErrMsgReserveItemFailed, func(ctx context.Context, req ReserveRequest) (*shop.Result, error) {
			LogRequestFields(logger.FromContext(ctx), "character_id", req.CharacterID, "item_id", req.ItemID)
			return svc.Reserve(ctx, req.CharacterID, req.ItemID)
		})
	}
}

// HandleCancelReservation releases a reservation. The deposit is not refunded.
// @Summary Cancel reservation
// @Tags shop
// @Produce json
// @Param itemID path string true "Item ID"
// @Param character_id query string true "Reserving character"
// @Success 200 {object} shop.Result
// @Failure 403 {object} ErrorResponse
// @Router /shop/reservations/{itemID} [delete]
func HandleCancelReservation(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}
		characterID, ok := GetQueryParam(r, w, CharacterQueryParam)
		if !ok {
			return
		}

		res, err := svc.CancelReservation(r.Context(), characterID, itemID)
		if err != nil {
			respondServiceError(w, r, ErrMsgCancelFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleParty returns the party HP summary
// @Summary Party hit points
// @Tags party
// @Produce json
// @Success 200 {array} state.PartyMember
// @Router /party [get]
func HandleParty(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Party(r.Context()))
	}
}

package handler

import (
	"context"
	"net/http"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/honor"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
)

// HonorRequest sets the party's standing with one clan
type HonorRequest struct {
	Clan  string `json:"clan" validate:"required,max=100"`
	Score int    `json:"score" validate:"min=-5,max=5"`
}

// QuestRequest replaces the active quest. A null quest clears it.
type QuestRequest struct {
	Quest *domain.ActiveQuest `json:"quest"`
}

// LocationRequest moves the party. A null location clears it.
type LocationRequest struct {
	Location *domain.PartyLocation `json:"location"`
}

// HandleRestorePurchase puts a bought rare or legendary item back into the pool
// @Summary Restore purchase
// @Description Deletes the purchase record so the item can appear again
// @Tags admin
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} shop.Result
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/purchases/{itemID}/restore [post]
func HandleRestorePurchase(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}

		res, err := svc.RestorePurchase(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, ErrMsgRestoreFailed, err)
			return
		}
		logger.FromContext(r.Context()).Info("Purchase restored", "item_id", itemID)
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleSetHonor records the party's honor with a clan
// @Summary Set clan honor
// @Tags admin
// @Accept json
// @Produce json
// @Param request body HonorRequest true "Clan and score"
// @Success 200 {object} shop.Result
// @Failure 400 {object} ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /admin/honor [put]
func HandleSetHonor(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, ErrMsgSetWorldFailed, func(ctx context.Context, req HonorRequest) (*shop.Result, error) {
			LogRequestFields(logger.FromContext(ctx), "clan", req.Clan, "score", req.Score, "min", honor.MinScore, "max", honor.MaxScore)
			return svc.SetHonor(ctx, req.Clan, req.Score)
		})
	}
}

// HandleSetQuest replaces the active quest
// @Summary Set active quest
// @Tags admin
// @Accept json
// @Produce json
// @Param request body QuestRequest true "Quest"
// @Success 200 {object} shop.Result
// @Security ApiKeyAuth
// @Router /admin/quest [put]
func HandleSetQuest(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, ErrMsgSetWorldFailed, func(ctx context.Context, req QuestRequest) (*shop.Result, error) {
			return svc.SetQuest(ctx, req.Quest)
		})
	}
}

// HandleSetLocation moves the party
// @Summary Set party location
// @Tags admin
// @Accept json
// @Produce json
// @Param request body LocationRequest true "Location"
// @Success 200 {object} shop.Result
// @Security ApiKeyAuth
// @Router /admin/location [put]
func HandleSetLocation(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, ErrMsgSetWorldFailed, func(ctx context.Context, req LocationRequest) (*shop.Result, error) {
			return svc.SetLocation(ctx, req.Location)
		})
	}
}

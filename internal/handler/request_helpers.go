package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

// CharacterQueryParam names the viewer on read endpoints that personalise listings
const CharacterQueryParam = "character_id"

// ValidationErrorResponse lists the failing fields of a rejected body
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest reads a JSON body into req and validates it.
// On error the 400 response has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.FromContext(r.Context()).Warn("Request body rejected", "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// requireParam writes a 400 and returns false when value is empty
func requireParam(r *http.Request, w http.ResponseWriter, name, value string) bool {
	if value != "" {
		return true
	}
	logger.FromContext(r.Context()).Warn("Missing request parameter", "param", name)
	respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
	return false
}

// GetQueryParam returns a required query parameter
func GetQueryParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	v := r.URL.Query().Get(name)
	return v, requireParam(r, w, name, v)
}

// GetPathParam returns a required chi URL parameter
func GetPathParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	v := chi.URLParam(r, name)
	return v, requireParam(r, w, name, v)
}

func GetOptionalQueryParam(r *http.Request, name, fallback string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return fallback
}

// LogRequestFields logs decoded request fields at debug level
func LogRequestFields(log *slog.Logger, keyvals ...any) {
	log.Debug("Request details", keyvals...)
}

// handleAction decodes REQ, runs action and writes its result as JSON
func handleAction[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	action func(context.Context, REQ) (RES, error),
) {
	var req REQ
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	res, err := action(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}

var bufferPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

// respondJSON encodes payload fully before touching the response, so an
// encoding failure can still be reported as a 500.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps err to a status and logs it; server faults at error level
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := statusForError(err)
	log := logger.FromContext(r.Context()).With("op", opName, "status", status, "error", err)
	if status >= http.StatusInternalServerError {
		log.Error("Service call failed")
	} else {
		log.Warn("Service call rejected")
	}
	respondError(w, status, message)
}

// errorStatuses is checked in order with errors.Is
var errorStatuses = []struct {
	target  error
	status  int
	message string
}{
	{domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
	{domain.ErrCharacterNotFound, http.StatusNotFound, ErrMsgCharacterNotFoundErr},
	{domain.ErrItemNotInBackpack, http.StatusNotFound, ErrMsgNotInBackpackError},
	{domain.ErrReservationNotFound, http.StatusNotFound, ErrMsgReservationNotFound},

	{domain.ErrAlreadyPurchased, http.StatusConflict, ErrMsgAlreadyPurchasedErr},
	{domain.ErrItemReserved, http.StatusConflict, ErrMsgItemReservedError},
	{domain.ErrAlreadyReserved, http.StatusConflict, ErrMsgAlreadyReservedError},
	{domain.ErrAttunementFull, http.StatusConflict, ErrMsgAttunementFullError},

	{domain.ErrNoTrade, http.StatusForbidden, ErrMsgNoTradeError},
	{domain.ErrNotReserver, http.StatusForbidden, ErrMsgNotReserverError},

	{domain.ErrNotReservable, http.StatusBadRequest, ErrMsgNotReservableError},
	{domain.ErrNotAttuned, http.StatusBadRequest, ErrMsgNotAttunedError},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},

	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrMsgUnavailableError},
}

// statusForError maps domain errors to a status and user-facing message.
// Anything unrecognised is a 500 with a generic message.
func statusForError(err error) (int, string) {
	if err != nil {
		for _, e := range errorStatuses {
			if errors.Is(err, e.target) {
				return e.status, e.message
			}
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

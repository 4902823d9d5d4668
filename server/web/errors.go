package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/moimlab/moim/server/service"
)

var errorStatuses = map[error]int{
	service.ErrUserNotFound:     http.StatusNotFound,
	service.ErrClubNotFound:     http.StatusNotFound,
	service.ErrEventNotFound:    http.StatusNotFound,
	service.ErrCategoryNotFound: http.StatusNotFound,
	service.ErrCityNotFound:     http.StatusNotFound,
	service.ErrEmailNotFound:    http.StatusNotFound,
	service.ErrNoJoinHistory:    http.StatusNotFound,

	service.ErrNotClubHost:         http.StatusForbidden,
	service.ErrNotEventHost:        http.StatusForbidden,
	service.ErrNotClubMember:       http.StatusForbidden,
	service.ErrNotEventParticipant: http.StatusForbidden,
	service.ErrNotSelf:             http.StatusForbidden,

	service.ErrClubNameTaken:       http.StatusConflict,
	service.ErrEmailTaken:          http.StatusConflict,
	service.ErrPasswordMismatch:    http.StatusConflict,
	service.ErrJoinPending:         http.StatusConflict,
	service.ErrAlreadyJoined:       http.StatusConflict,
	service.ErrJoinRefused:         http.StatusConflict,
	service.ErrNoJoinRequest:       http.StatusConflict,
	service.ErrAlreadyMember:       http.StatusConflict,
	service.ErrAlreadyRefused:      http.StatusConflict,
	service.ErrHostCannotLeave:     http.StatusConflict,
	service.ErrClubFull:            http.StatusConflict,
	service.ErrClubMaxBelowCount:   http.StatusConflict,
	service.ErrAlreadyHost:         http.StatusConflict,
	service.ErrDelegateNotMember:   http.StatusConflict,
	service.ErrAlreadyJoinedEvent:  http.StatusConflict,
	service.ErrNotJoinedEvent:      http.StatusConflict,
	service.ErrHostCannotLeaveEvt:  http.StatusConflict,
	service.ErrEventFull:           http.StatusConflict,
	service.ErrEventMaxBelowCount:  http.StatusConflict,
	service.ErrEventAlreadyStarted: http.StatusConflict,

	service.ErrEventStartsInPast:    http.StatusBadRequest,
	service.ErrEventEndsBeforeStart: http.StatusBadRequest,
	service.ErrNoEventCities:        http.StatusBadRequest,
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto HTTP statuses. Unknown errors
// are logged and reported as an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	for sentinel, status := range errorStatuses {
		if errors.Is(err, sentinel) {
			respondJSON(w, status, errorResponse{Error: sentinel.Error()})
			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

package web

import (
	"net/http"
	"time"

	"github.com/moimlab/moim/server/auth"
	"github.com/moimlab/moim/server/database"
)

func (h *handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newUser(*user))
}

type updateUserRequest struct {
	Email    *string    `json:"email"`
	Name     *string    `json:"name"`
	Birthday *time.Time `json:"birthday"`
	CityID   *int64     `json:"cityId"`
}

func (h *handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Users.UpdateUser(r.Context(), session.UserID, userID, database.UserUpdate{
		Email:    req.Email,
		Name:     req.Name,
		Birthday: req.Birthday,
		CityID:   req.CityID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newUser(*user))
}

func (h *handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	if err := h.Users.DeleteUser(r.Context(), session.UserID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

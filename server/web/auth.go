package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/moimlab/moim/server/auth"
	"github.com/moimlab/moim/server/service"
)

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

type signUpRequest struct {
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	Name       string     `json:"name"`
	Birthday   *time.Time `json:"birthday"`
	CategoryID *int64     `json:"categoryId"`
	CityID     *int64     `json:"cityId"`
}

func (h *handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "email, password and name are required"})
		return
	}

	user, session, err := h.Auth.SignUp(r.Context(), service.SignUp{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Birthday:   req.Birthday,
		CategoryID: req.CategoryID,
		CityID:     req.CityID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, signUpResponse{
		User:    newUser(*user),
		Session: newSession(*session),
	})
}

type signUpResponse struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newSession(*session))
}

func (h *handler) Logout(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)

	if err := h.Auth.Logout(r.Context(), session.Token); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "new password is required"})
		return
	}

	if err := h.Auth.ChangePassword(r.Context(), session.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package web

import (
	"net/http"

	"github.com/moimlab/moim/server/auth"
	"github.com/moimlab/moim/server/database"
	"github.com/moimlab/moim/server/service"
)

type createClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxPeople   int    `json:"maxPeople"`
}

func (h *handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)

	var req createClubRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}
	if req.MaxPeople < 1 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "maxPeople must be at least 1"})
		return
	}

	club, err := h.Clubs.CreateClub(r.Context(), session.UserID, service.CreateClub{
		Name:        req.Name,
		Description: req.Description,
		MaxPeople:   req.MaxPeople,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, newClub(*club))
}

func (h *handler) GetClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.Clubs.GetClubs(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]Club, 0, len(clubs))
	for _, club := range clubs {
		out = append(out, newClub(club))
	}
	respondJSON(w, http.StatusOK, out)
}

type updateClubRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MaxPeople   *int    `json:"maxPeople"`
}

func (h *handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	clubID, ok := pathID(w, r, "club_id")
	if !ok {
		return
	}

	var req updateClubRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MaxPeople != nil && *req.MaxPeople < 1 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "maxPeople must be at least 1"})
		return
	}

	club, err := h.Clubs.UpdateClub(r.Context(), clubID, session.UserID, database.ClubUpdate{
		Name:        req.Name,
		Description: req.Description,
		MaxPeople:   req.MaxPeople,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newClub(*club))
}

func (h *handler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	clubID, ok := pathID(w, r, "club_id")
	if !ok {
		return
	}

	if err := h.Clubs.DeleteClub(r.Context(), clubID, session.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) JoinClub(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	clubID, ok := pathID(w, r, "club_id")
	if !ok {
		return
	}

	if err := h.Clubs.JoinClub(r.Context(), clubID, session.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) OutClub(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	clubID, ok := pathID(w, r, "club_id")
	if !ok {
		return
	}

	if err := h.Clubs.OutClub(r.Context(), clubID, session.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type delegateClubRequest struct {
	NewHostID int64 `json:"newHostId"`
}

func (h *handler) DelegateClub(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	clubID, ok := pathID(w, r, "club_id")
	if !ok {
		return
	}

	var req delegateClubRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	club, err := h.Clubs.Delegate(r.Context(), clubID, session.UserID, req.NewHostID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newClub(*club))
}

type memberDecisionRequest struct {
	UserID int64 `json:"userId"`
}

func (h *handler) ApproveClubMember(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	clubID, ok := pathID(w, r, "club_id")
	if !ok {
		return
	}

	var req memberDecisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Clubs.Approve(r.Context(), clubID, session.UserID, req.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) RefuseClubMember(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	clubID, ok := pathID(w, r, "club_id")
	if !ok {
		return
	}

	var req memberDecisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Clubs.Refuse(r.Context(), clubID, session.UserID, req.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

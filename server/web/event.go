package web

import (
	"net/http"
	"time"

	"github.com/moimlab/moim/internal/xquery"
	"github.com/moimlab/moim/server/auth"
	"github.com/moimlab/moim/server/database"
)

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	CityIDs     []int64   `json:"cityIds"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	MaxPeople   int       `json:"maxPeople"`
	ClubID      *int64    `json:"clubId"`
}

func (h *handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)

	var req createEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}
	if len(req.CityIDs) == 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "at least one city is required"})
		return
	}
	if req.MaxPeople < 2 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "maxPeople must be at least 2"})
		return
	}

	event, err := h.Events.CreateEvent(r.Context(), session.UserID, database.EventCreate{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		CityIDs:     req.CityIDs,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxPeople:   req.MaxPeople,
		ClubID:      req.ClubID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, newEvent(*event, h.Now()))
}

func (h *handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	query := r.URL.Query()

	filter := database.EventFilter{
		HostID:     xquery.ParseInt64Ptr(query, "host_id"),
		CategoryID: xquery.ParseInt64Ptr(query, "category_id"),
		CityID:     xquery.ParseInt64Ptr(query, "city_id"),
	}

	events, err := h.Events.GetEvents(r.Context(), session.UserID, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newEvents(events, h.Now()))
}

func (h *handler) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)

	events, err := h.Events.GetMyEvents(r.Context(), session.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newEvents(events, h.Now()))
}

func (h *handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	eventID, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}

	detail, err := h.Events.GetEvent(r.Context(), eventID, session.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newEventDetail(*detail, h.Now()))
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *int64     `json:"categoryId"`
	CityIDs     []int64    `json:"cityIds"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	MaxPeople   *int       `json:"maxPeople"`
}

func (h *handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	eventID, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}

	var req updateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MaxPeople != nil && *req.MaxPeople < 2 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "maxPeople must be at least 2"})
		return
	}

	event, err := h.Events.UpdateEvent(r.Context(), eventID, session.UserID, database.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		CityIDs:     req.CityIDs,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxPeople:   req.MaxPeople,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newEvent(*event, h.Now()))
}

func (h *handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	eventID, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}

	if err := h.Events.DeleteEvent(r.Context(), eventID, session.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	eventID, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}

	if err := h.Events.JoinEvent(r.Context(), eventID, session.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) OutEvent(w http.ResponseWriter, r *http.Request) {
	session := auth.GetSession(r)
	eventID, ok := pathID(w, r, "event_id")
	if !ok {
		return
	}

	if err := h.Events.OutEvent(r.Context(), eventID, session.UserID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

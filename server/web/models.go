package web

import (
	"time"

	"github.com/moimlab/moim/server/database"
	"github.com/moimlab/moim/server/service"
)

func newUser(user database.User) User {
	u := User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if user.Birthday.Valid {
		u.Birthday = &user.Birthday.Time
	}
	if user.CategoryID.Valid {
		u.CategoryID = &user.CategoryID.Int64
	}
	if user.CityID.Valid {
		u.CityID = &user.CityID.Int64
	}
	return u
}

type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Birthday   *time.Time `json:"birthday,omitempty"`
	CategoryID *int64     `json:"categoryId,omitempty"`
	CityID     *int64     `json:"cityId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func newSession(session database.Session) Session {
	return Session{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newClub(club database.Club) Club {
	return Club{
		ID:          club.ID,
		HostID:      club.HostID,
		Name:        club.Name,
		Description: club.Description,
		MaxPeople:   club.MaxPeople,
		CreatedAt:   club.CreatedAt,
	}
}

type Club struct {
	ID          int64     `json:"id"`
	HostID      int64     `json:"hostId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MaxPeople   int       `json:"maxPeople"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newEvent(event database.Event, now time.Time) Event {
	e := Event{
		ID:          event.ID,
		HostID:      event.HostID,
		CategoryID:  event.CategoryID,
		Title:       event.Title,
		Description: event.Description,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		MaxPeople:   event.MaxPeople,
		Archived:    event.Archived,
		CityIDs:     event.CityIDs,
		Status:      string(service.StatusOf(event, now)),
		CreatedAt:   event.CreatedAt,
	}
	if event.ClubID.Valid {
		e.ClubID = &event.ClubID.Int64
	}
	return e
}

func newEvents(events []database.Event, now time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, event := range events {
		out = append(out, newEvent(event, now))
	}
	return out
}

type Event struct {
	ID          int64     `json:"id"`
	HostID      int64     `json:"hostId"`
	ClubID      *int64    `json:"clubId,omitempty"`
	CategoryID  int64     `json:"categoryId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	MaxPeople   int       `json:"maxPeople"`
	Archived    bool      `json:"archived"`
	CityIDs     []int64   `json:"cityIds"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newEventDetail(detail service.EventDetail, now time.Time) EventDetail {
	members := make([]EventMember, 0, len(detail.Members))
	for _, member := range detail.Members {
		members = append(members, EventMember(member))
	}
	reviews := make([]Review, 0, len(detail.Reviews))
	for _, review := range detail.Reviews {
		reviews = append(reviews, newReview(review))
	}
	return EventDetail{
		Event:   newEvent(detail.Event, now),
		Members: members,
		Reviews: reviews,
	}
}

type EventDetail struct {
	Event
	Members []EventMember `json:"members"`
	Reviews []Review      `json:"reviews"`
}

type EventMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newReview(review database.Review) Review {
	return Review{
		ID:          review.ID,
		EventID:     review.EventID,
		UserID:      review.UserID,
		Score:       review.Score,
		Title:       review.Title,
		Description: review.Description,
		CreatedAt:   review.CreatedAt,
	}
}

type Review struct {
	ID          int64     `json:"id"`
	EventID     int64     `json:"eventId"`
	UserID      int64     `json:"userId"`
	Score       int       `json:"score"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

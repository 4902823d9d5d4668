package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moimlab/moim/server/database"
)

type EventStore interface {
	InsertEvent(ctx context.Context, event database.EventCreate) (*database.Event, error)
	GetEvent(ctx context.Context, eventID int64) (*database.Event, error)
	GetEvents(ctx context.Context, filter database.EventFilter) ([]database.Event, error)
	UpdateEvent(ctx context.Context, eventID int64, update database.EventUpdate) (*database.Event, error)
	DeleteEvent(ctx context.Context, eventID int64) error

	IsEventMember(ctx context.Context, eventID int64, userID int64) (bool, error)
	CountEventMembers(ctx context.Context, eventID int64) (int, error)
	JoinEvent(ctx context.Context, eventID int64, userID int64) error
	LeaveEvent(ctx context.Context, eventID int64, userID int64) error
	GetEventMembers(ctx context.Context, eventID int64) ([]database.EventMemberUser, error)
	GetJoinedEvents(ctx context.Context, userID int64) ([]database.Event, error)
	GetEventReviews(ctx context.Context, eventID int64) ([]database.Review, error)

	GetClubJoinState(ctx context.Context, clubID int64, userID int64) (database.JoinState, error)
	GetJoinedClubIDs(ctx context.Context, userID int64) ([]int64, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
	MissingCityIDs(ctx context.Context, cityIDs []int64) ([]int64, error)
}

func NewEventService(store EventStore, now func() time.Time) *EventService {
	return &EventService{
		store: store,
		now:   now,
	}
}

type EventService struct {
	store EventStore
	now   func() time.Time
}

// EventStatus is derived from the clock, never stored.
type EventStatus string

const (
	EventStatusPending   EventStatus = "PENDING"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusCompleted EventStatus = "COMPLETED"
)

func StatusOf(event database.Event, now time.Time) EventStatus {
	switch {
	case now.Before(event.StartTime):
		return EventStatusPending
	case now.Before(event.EndTime):
		return EventStatusOngoing
	default:
		return EventStatusCompleted
	}
}

type EventDetail struct {
	Event   database.Event
	Status  EventStatus
	Members []database.EventMemberUser
	Reviews []database.Review
}

func (s *EventService) CreateEvent(ctx context.Context, userID int64, create database.EventCreate) (*database.Event, error) {
	now := s.now()
	if !create.StartTime.After(now) {
		return nil, ErrEventStartsInPast
	}
	if !create.EndTime.After(create.StartTime) {
		return nil, ErrEventEndsBeforeStart
	}

	if create.ClubID != nil {
		state, err := s.store.GetClubJoinState(ctx, *create.ClubID, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, ErrNotClubMember
			}
			return nil, err
		}
		if state != database.JoinStateJoined {
			return nil, ErrNotClubMember
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		ok, err := s.store.CategoryExists(egCtx, create.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCategoryNotFound
		}
		return nil
	})
	eg.Go(func() error {
		missing, err := s.store.MissingCityIDs(egCtx, create.CityIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return ErrCityNotFound
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	create.HostID = userID
	return s.store.InsertEvent(ctx, create)
}

// GetEvent returns the event with its participants and reviews. Club
// events are visible to club members only, archived events to their
// participants only.
func (s *EventService) GetEvent(ctx context.Context, eventID int64, userID int64) (*EventDetail, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if err = s.checkVisible(ctx, event, userID); err != nil {
		return nil, err
	}

	detail := EventDetail{
		Event:  *event,
		Status: StatusOf(*event, s.now()),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		detail.Members, err = s.store.GetEventMembers(egCtx, eventID)
		return err
	})
	eg.Go(func() error {
		var err error
		detail.Reviews, err = s.store.GetEventReviews(egCtx, eventID)
		return err
	})
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	return &detail, nil
}

// GetEvents lists events the user is allowed to see: open events, club
// events of the user's clubs, plus any event the user participates in.
// Archived events the user never joined are filtered out.
func (s *EventService) GetEvents(ctx context.Context, userID int64, filter database.EventFilter) ([]database.Event, error) {
	var (
		events    []database.Event
		clubIDs   []int64
		joinedIDs []int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		events, err = s.store.GetEvents(egCtx, filter)
		return err
	})
	eg.Go(func() error {
		var err error
		clubIDs, err = s.store.GetJoinedClubIDs(egCtx, userID)
		return err
	})
	eg.Go(func() error {
		joined, err := s.store.GetJoinedEvents(egCtx, userID)
		if err != nil {
			return err
		}
		for _, e := range joined {
			joinedIDs = append(joinedIDs, e.ID)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	memberClubs := make(map[int64]bool, len(clubIDs))
	for _, id := range clubIDs {
		memberClubs[id] = true
	}
	participating := make(map[int64]bool, len(joinedIDs))
	for _, id := range joinedIDs {
		participating[id] = true
	}

	visible := events[:0]
	for _, event := range events {
		if event.ClubID.Valid && !memberClubs[event.ClubID.Int64] {
			continue
		}
		if event.Archived && !participating[event.ID] {
			continue
		}
		visible = append(visible, event)
	}

	return visible, nil
}

// GetMyEvents returns every event the user holds a seat in, archived
// ones included.
func (s *EventService) GetMyEvents(ctx context.Context, userID int64) ([]database.Event, error) {
	return s.store.GetJoinedEvents(ctx, userID)
}

func (s *EventService) JoinEvent(ctx context.Context, eventID int64, userID int64) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if !s.now().Before(event.StartTime) {
		return ErrEventAlreadyStarted
	}

	if event.ClubID.Valid {
		state, err := s.store.GetClubJoinState(ctx, event.ClubID.Int64, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ErrNotClubMember
			}
			return err
		}
		if state != database.JoinStateJoined {
			return ErrNotClubMember
		}
	}

	if err = s.store.JoinEvent(ctx, eventID, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return ErrEventNotFound
		case errors.Is(err, database.ErrEventFull):
			return ErrEventFull
		case errors.Is(err, database.ErrDuplicate):
			return ErrAlreadyJoinedEvent
		}
		return err
	}

	return nil
}

func (s *EventService) OutEvent(ctx context.Context, eventID int64, userID int64) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if !s.now().Before(event.StartTime) {
		return ErrEventAlreadyStarted
	}

	if event.HostID == userID {
		return ErrHostCannotLeaveEvt
	}

	if err = s.store.LeaveEvent(ctx, eventID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotJoinedEvent
		}
		return err
	}

	return nil
}

func (s *EventService) UpdateEvent(ctx context.Context, eventID int64, userID int64, update database.EventUpdate) (*database.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.HostID != userID {
		return nil, ErrNotEventHost
	}

	if !s.now().Before(event.StartTime) {
		return nil, ErrEventAlreadyStarted
	}

	start, end := event.StartTime, event.EndTime
	if update.StartTime != nil {
		start = *update.StartTime
		if !start.After(s.now()) {
			return nil, ErrEventStartsInPast
		}
	}
	if update.EndTime != nil {
		end = *update.EndTime
	}
	if !end.After(start) {
		return nil, ErrEventEndsBeforeStart
	}

	if update.CategoryID != nil {
		ok, err := s.store.CategoryExists(ctx, *update.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCategoryNotFound
		}
	}
	if update.CityIDs != nil {
		// An empty replacement would orphan the event: every read joins
		// event_cities, so a cityless event is unreachable.
		if len(update.CityIDs) == 0 {
			return nil, ErrNoEventCities
		}
		missing, err := s.store.MissingCityIDs(ctx, update.CityIDs)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, ErrCityNotFound
		}
	}

	updated, err := s.store.UpdateEvent(ctx, eventID, update)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, database.ErrEventFull):
			return nil, ErrEventMaxBelowCount
		}
		return nil, err
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID int64, userID int64) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if event.HostID != userID {
		return ErrNotEventHost
	}

	if !s.now().Before(event.StartTime) {
		return ErrEventAlreadyStarted
	}

	if err = s.store.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	return nil
}

// checkVisible applies the same predicate as GetEvents: a club event
// needs JOINED club membership, an archived event needs a seat. Failing
// the predicate is Forbidden, not NotFound, so callers can tell access
// denial from absence.
func (s *EventService) checkVisible(ctx context.Context, event *database.Event, userID int64) error {
	if event.ClubID.Valid {
		state, err := s.store.GetClubJoinState(ctx, event.ClubID.Int64, userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ErrNotClubMember
			}
			return err
		}
		if state != database.JoinStateJoined {
			return ErrNotClubMember
		}
	}

	if event.Archived {
		joined, err := s.store.IsEventMember(ctx, event.ID, userID)
		if err != nil {
			return err
		}
		if !joined {
			return ErrNotEventParticipant
		}
	}

	return nil
}

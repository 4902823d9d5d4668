package service

import (
	"context"
	"time"

	"github.com/moimlab/moim/server/database"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

type mockClubStore struct {
	insertClubFunc             func(ctx context.Context, club database.ClubCreate) (*database.Club, error)
	getClubFunc                func(ctx context.Context, clubID int64) (*database.Club, error)
	getClubByNameFunc          func(ctx context.Context, name string) (*database.Club, error)
	getClubsFunc               func(ctx context.Context) ([]database.Club, error)
	updateClubFunc             func(ctx context.Context, clubID int64, update database.ClubUpdate) (*database.Club, error)
	deleteClubFunc             func(ctx context.Context, clubID int64, now time.Time) error
	delegateClubFunc           func(ctx context.Context, clubID int64, newHostID int64) (*database.Club, error)
	getClubJoinStateFunc       func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error)
	countJoinedClubMembersFunc func(ctx context.Context, clubID int64) (int, error)
	joinClubFunc               func(ctx context.Context, clubID int64, userID int64) error
	updateClubMemberStateFunc  func(ctx context.Context, clubID int64, userID int64, state database.JoinState) error
	leaveClubFunc              func(ctx context.Context, clubID int64, userID int64, now time.Time) error
}

func (m *mockClubStore) InsertClub(ctx context.Context, club database.ClubCreate) (*database.Club, error) {
	if m.insertClubFunc != nil {
		return m.insertClubFunc(ctx, club)
	}
	return nil, nil
}

func (m *mockClubStore) GetClub(ctx context.Context, clubID int64) (*database.Club, error) {
	if m.getClubFunc != nil {
		return m.getClubFunc(ctx, clubID)
	}
	return nil, database.ErrNotFound
}

func (m *mockClubStore) GetClubByName(ctx context.Context, name string) (*database.Club, error) {
	if m.getClubByNameFunc != nil {
		return m.getClubByNameFunc(ctx, name)
	}
	return nil, database.ErrNotFound
}

func (m *mockClubStore) GetClubs(ctx context.Context) ([]database.Club, error) {
	if m.getClubsFunc != nil {
		return m.getClubsFunc(ctx)
	}
	return nil, nil
}

func (m *mockClubStore) UpdateClub(ctx context.Context, clubID int64, update database.ClubUpdate) (*database.Club, error) {
	if m.updateClubFunc != nil {
		return m.updateClubFunc(ctx, clubID, update)
	}
	return nil, nil
}

func (m *mockClubStore) DeleteClub(ctx context.Context, clubID int64, now time.Time) error {
	if m.deleteClubFunc != nil {
		return m.deleteClubFunc(ctx, clubID, now)
	}
	return nil
}

func (m *mockClubStore) DelegateClub(ctx context.Context, clubID int64, newHostID int64) (*database.Club, error) {
	if m.delegateClubFunc != nil {
		return m.delegateClubFunc(ctx, clubID, newHostID)
	}
	return nil, nil
}

func (m *mockClubStore) GetClubJoinState(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
	if m.getClubJoinStateFunc != nil {
		return m.getClubJoinStateFunc(ctx, clubID, userID)
	}
	return "", database.ErrNotFound
}

func (m *mockClubStore) CountJoinedClubMembers(ctx context.Context, clubID int64) (int, error) {
	if m.countJoinedClubMembersFunc != nil {
		return m.countJoinedClubMembersFunc(ctx, clubID)
	}
	return 0, nil
}

func (m *mockClubStore) JoinClub(ctx context.Context, clubID int64, userID int64) error {
	if m.joinClubFunc != nil {
		return m.joinClubFunc(ctx, clubID, userID)
	}
	return nil
}

func (m *mockClubStore) UpdateClubMemberState(ctx context.Context, clubID int64, userID int64, state database.JoinState) error {
	if m.updateClubMemberStateFunc != nil {
		return m.updateClubMemberStateFunc(ctx, clubID, userID, state)
	}
	return nil
}

func (m *mockClubStore) LeaveClub(ctx context.Context, clubID int64, userID int64, now time.Time) error {
	if m.leaveClubFunc != nil {
		return m.leaveClubFunc(ctx, clubID, userID, now)
	}
	return nil
}

type mockEventStore struct {
	insertEventFunc       func(ctx context.Context, event database.EventCreate) (*database.Event, error)
	getEventFunc          func(ctx context.Context, eventID int64) (*database.Event, error)
	getEventsFunc         func(ctx context.Context, filter database.EventFilter) ([]database.Event, error)
	updateEventFunc       func(ctx context.Context, eventID int64, update database.EventUpdate) (*database.Event, error)
	deleteEventFunc       func(ctx context.Context, eventID int64) error
	isEventMemberFunc     func(ctx context.Context, eventID int64, userID int64) (bool, error)
	countEventMembersFunc func(ctx context.Context, eventID int64) (int, error)
	joinEventFunc         func(ctx context.Context, eventID int64, userID int64) error
	leaveEventFunc        func(ctx context.Context, eventID int64, userID int64) error
	getEventMembersFunc   func(ctx context.Context, eventID int64) ([]database.EventMemberUser, error)
	getJoinedEventsFunc   func(ctx context.Context, userID int64) ([]database.Event, error)
	getEventReviewsFunc   func(ctx context.Context, eventID int64) ([]database.Review, error)
	getClubJoinStateFunc  func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error)
	getJoinedClubIDsFunc  func(ctx context.Context, userID int64) ([]int64, error)
	categoryExistsFunc    func(ctx context.Context, categoryID int64) (bool, error)
	missingCityIDsFunc    func(ctx context.Context, cityIDs []int64) ([]int64, error)
}

func (m *mockEventStore) InsertEvent(ctx context.Context, event database.EventCreate) (*database.Event, error) {
	if m.insertEventFunc != nil {
		return m.insertEventFunc(ctx, event)
	}
	return nil, nil
}

func (m *mockEventStore) GetEvent(ctx context.Context, eventID int64) (*database.Event, error) {
	if m.getEventFunc != nil {
		return m.getEventFunc(ctx, eventID)
	}
	return nil, database.ErrNotFound
}

func (m *mockEventStore) GetEvents(ctx context.Context, filter database.EventFilter) ([]database.Event, error) {
	if m.getEventsFunc != nil {
		return m.getEventsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEventStore) UpdateEvent(ctx context.Context, eventID int64, update database.EventUpdate) (*database.Event, error) {
	if m.updateEventFunc != nil {
		return m.updateEventFunc(ctx, eventID, update)
	}
	return nil, nil
}

func (m *mockEventStore) DeleteEvent(ctx context.Context, eventID int64) error {
	if m.deleteEventFunc != nil {
		return m.deleteEventFunc(ctx, eventID)
	}
	return nil
}

func (m *mockEventStore) IsEventMember(ctx context.Context, eventID int64, userID int64) (bool, error) {
	if m.isEventMemberFunc != nil {
		return m.isEventMemberFunc(ctx, eventID, userID)
	}
	return false, nil
}

func (m *mockEventStore) CountEventMembers(ctx context.Context, eventID int64) (int, error) {
	if m.countEventMembersFunc != nil {
		return m.countEventMembersFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *mockEventStore) JoinEvent(ctx context.Context, eventID int64, userID int64) error {
	if m.joinEventFunc != nil {
		return m.joinEventFunc(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventStore) LeaveEvent(ctx context.Context, eventID int64, userID int64) error {
	if m.leaveEventFunc != nil {
		return m.leaveEventFunc(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventStore) GetEventMembers(ctx context.Context, eventID int64) ([]database.EventMemberUser, error) {
	if m.getEventMembersFunc != nil {
		return m.getEventMembersFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockEventStore) GetJoinedEvents(ctx context.Context, userID int64) ([]database.Event, error) {
	if m.getJoinedEventsFunc != nil {
		return m.getJoinedEventsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockEventStore) GetEventReviews(ctx context.Context, eventID int64) ([]database.Review, error) {
	if m.getEventReviewsFunc != nil {
		return m.getEventReviewsFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockEventStore) GetClubJoinState(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
	if m.getClubJoinStateFunc != nil {
		return m.getClubJoinStateFunc(ctx, clubID, userID)
	}
	return "", database.ErrNotFound
}

func (m *mockEventStore) GetJoinedClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.getJoinedClubIDsFunc != nil {
		return m.getJoinedClubIDsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockEventStore) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	if m.categoryExistsFunc != nil {
		return m.categoryExistsFunc(ctx, categoryID)
	}
	return true, nil
}

func (m *mockEventStore) MissingCityIDs(ctx context.Context, cityIDs []int64) ([]int64, error) {
	if m.missingCityIDsFunc != nil {
		return m.missingCityIDsFunc(ctx, cityIDs)
	}
	return nil, nil
}

type mockAuthStore struct {
	insertUserFunc         func(ctx context.Context, user database.UserCreate) (*database.User, error)
	getUserFunc            func(ctx context.Context, userID int64) (*database.User, error)
	getUserByEmailFunc     func(ctx context.Context, email string) (*database.User, error)
	updateUserPasswordFunc func(ctx context.Context, userID int64, passwordHash string) error
	insertSessionFunc      func(ctx context.Context, session database.Session) error
	deleteSessionFunc      func(ctx context.Context, token string) error
	deleteUserSessionsFunc func(ctx context.Context, userID int64) error
	categoryExistsFunc     func(ctx context.Context, categoryID int64) (bool, error)
	cityExistsFunc         func(ctx context.Context, cityID int64) (bool, error)
}

func (m *mockAuthStore) InsertUser(ctx context.Context, user database.UserCreate) (*database.User, error) {
	if m.insertUserFunc != nil {
		return m.insertUserFunc(ctx, user)
	}
	return nil, nil
}

func (m *mockAuthStore) GetUser(ctx context.Context, userID int64) (*database.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return nil, database.ErrNotFound
}

func (m *mockAuthStore) GetUserByEmail(ctx context.Context, email string) (*database.User, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(ctx, email)
	}
	return nil, database.ErrNotFound
}

func (m *mockAuthStore) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	if m.updateUserPasswordFunc != nil {
		return m.updateUserPasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

func (m *mockAuthStore) InsertSession(ctx context.Context, session database.Session) error {
	if m.insertSessionFunc != nil {
		return m.insertSessionFunc(ctx, session)
	}
	return nil
}

func (m *mockAuthStore) DeleteSession(ctx context.Context, token string) error {
	if m.deleteSessionFunc != nil {
		return m.deleteSessionFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthStore) DeleteUserSessions(ctx context.Context, userID int64) error {
	if m.deleteUserSessionsFunc != nil {
		return m.deleteUserSessionsFunc(ctx, userID)
	}
	return nil
}

func (m *mockAuthStore) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	if m.categoryExistsFunc != nil {
		return m.categoryExistsFunc(ctx, categoryID)
	}
	return true, nil
}

func (m *mockAuthStore) CityExists(ctx context.Context, cityID int64) (bool, error) {
	if m.cityExistsFunc != nil {
		return m.cityExistsFunc(ctx, cityID)
	}
	return true, nil
}

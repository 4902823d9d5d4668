package service

import (
	"context"
	"errors"
	"time"

	"github.com/moimlab/moim/server/database"
)

// ClubStore is the storage surface the club service needs. The
// race-sensitive operations (JoinClub, LeaveClub, UpdateClub,
// DeleteClub) are transactional scripts that re-check capacity and
// membership state under a row lock.
type ClubStore interface {
	InsertClub(ctx context.Context, club database.ClubCreate) (*database.Club, error)
	GetClub(ctx context.Context, clubID int64) (*database.Club, error)
	GetClubByName(ctx context.Context, name string) (*database.Club, error)
	GetClubs(ctx context.Context) ([]database.Club, error)
	UpdateClub(ctx context.Context, clubID int64, update database.ClubUpdate) (*database.Club, error)
	DeleteClub(ctx context.Context, clubID int64, now time.Time) error
	DelegateClub(ctx context.Context, clubID int64, newHostID int64) (*database.Club, error)
	GetClubJoinState(ctx context.Context, clubID int64, userID int64) (database.JoinState, error)
	CountJoinedClubMembers(ctx context.Context, clubID int64) (int, error)
	JoinClub(ctx context.Context, clubID int64, userID int64) error
	UpdateClubMemberState(ctx context.Context, clubID int64, userID int64, state database.JoinState) error
	LeaveClub(ctx context.Context, clubID int64, userID int64, now time.Time) error
}

func NewClubService(store ClubStore, now func() time.Time) *ClubService {
	return &ClubService{
		store: store,
		now:   now,
		// REFUSED is a terminal state: a refused user cannot apply
		// again. Relax this here if re-application is ever wanted.
		refusalIsFinal: true,
	}
}

type ClubService struct {
	store          ClubStore
	now            func() time.Time
	refusalIsFinal bool
}

type CreateClub struct {
	Name        string
	Description string
	MaxPeople   int
}

func (s *ClubService) CreateClub(ctx context.Context, userID int64, create CreateClub) (*database.Club, error) {
	_, err := s.store.GetClubByName(ctx, create.Name)
	if err == nil {
		return nil, ErrClubNameTaken
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	club, err := s.store.InsertClub(ctx, database.ClubCreate{
		HostID:      userID,
		Name:        create.Name,
		Description: create.Description,
		MaxPeople:   create.MaxPeople,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrClubNameTaken
		}
		return nil, err
	}

	return club, nil
}

func (s *ClubService) GetClubs(ctx context.Context) ([]database.Club, error) {
	return s.store.GetClubs(ctx)
}

// JoinClub files a PENDING join request. A previous request in any
// state blocks a new one; a full club rejects the request outright.
func (s *ClubService) JoinClub(ctx context.Context, clubID int64, userID int64) error {
	club, err := s.store.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	state, err := s.store.GetClubJoinState(ctx, clubID, userID)
	switch {
	case err == nil:
		switch state {
		case database.JoinStatePending:
			return ErrJoinPending
		case database.JoinStateJoined:
			return ErrAlreadyJoined
		case database.JoinStateRefused:
			if s.refusalIsFinal {
				return ErrJoinRefused
			}
		}
	case !errors.Is(err, database.ErrNotFound):
		return err
	}

	count, err := s.store.CountJoinedClubMembers(ctx, clubID)
	if err != nil {
		return err
	}
	if count >= club.MaxPeople {
		return ErrClubFull
	}

	if err = s.store.JoinClub(ctx, clubID, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return ErrClubNotFound
		case errors.Is(err, database.ErrClubFull):
			return ErrClubFull
		case errors.Is(err, database.ErrDuplicate):
			return ErrJoinPending
		}
		return err
	}

	return nil
}

// OutClub withdraws a PENDING request or leaves a joined club. Leaving
// cascades over the club's future events in the same transaction.
func (s *ClubService) OutClub(ctx context.Context, clubID int64, userID int64) error {
	club, err := s.store.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	state, err := s.store.GetClubJoinState(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNoJoinHistory
		}
		return err
	}
	if state == database.JoinStateRefused {
		return ErrJoinRefused
	}

	if userID == club.HostID {
		return ErrHostCannotLeave
	}

	if err = s.store.LeaveClub(ctx, clubID, userID, s.now()); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNoJoinHistory
		}
		return err
	}

	return nil
}

func (s *ClubService) UpdateClub(ctx context.Context, clubID int64, userID int64, update database.ClubUpdate) (*database.Club, error) {
	club, err := s.store.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	if club.HostID != userID {
		return nil, ErrNotClubHost
	}

	if update.MaxPeople != nil {
		count, err := s.store.CountJoinedClubMembers(ctx, clubID)
		if err != nil {
			return nil, err
		}
		if count > *update.MaxPeople {
			return nil, ErrClubMaxBelowCount
		}
	}

	updated, err := s.store.UpdateClub(ctx, clubID, update)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrClubNotFound
		case errors.Is(err, database.ErrClubFull):
			return nil, ErrClubMaxBelowCount
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrClubNameTaken
		}
		return nil, err
	}

	return updated, nil
}

// DeleteClub removes the club and cascades over its events: future ones
// are deleted, started and finished ones are detached and archived.
func (s *ClubService) DeleteClub(ctx context.Context, clubID int64, userID int64) error {
	club, err := s.store.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	if club.HostID != userID {
		return ErrNotClubHost
	}

	if err = s.store.DeleteClub(ctx, clubID, s.now()); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	return nil
}

// Delegate hands the club to another JOINED member. The outgoing host
// keeps their membership and seat.
func (s *ClubService) Delegate(ctx context.Context, clubID int64, userID int64, newHostID int64) (*database.Club, error) {
	club, err := s.store.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	if club.HostID != userID {
		return nil, ErrNotClubHost
	}

	if newHostID == userID {
		return nil, ErrAlreadyHost
	}

	state, err := s.store.GetClubJoinState(ctx, clubID, newHostID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	if state != database.JoinStateJoined {
		return nil, ErrDelegateNotMember
	}

	updated, err := s.store.DelegateClub(ctx, clubID, newHostID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Approve moves a PENDING or REFUSED request to JOINED.
func (s *ClubService) Approve(ctx context.Context, clubID int64, hostID int64, targetUserID int64) error {
	if err := s.checkJoinDecision(ctx, clubID, hostID, targetUserID, false); err != nil {
		return err
	}

	return s.store.UpdateClubMemberState(ctx, clubID, targetUserID, database.JoinStateJoined)
}

// Refuse moves a PENDING request to REFUSED.
func (s *ClubService) Refuse(ctx context.Context, clubID int64, hostID int64, targetUserID int64) error {
	if err := s.checkJoinDecision(ctx, clubID, hostID, targetUserID, true); err != nil {
		return err
	}

	return s.store.UpdateClubMemberState(ctx, clubID, targetUserID, database.JoinStateRefused)
}

func (s *ClubService) checkJoinDecision(ctx context.Context, clubID int64, hostID int64, targetUserID int64, refusing bool) error {
	club, err := s.store.GetClub(ctx, clubID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	if club.HostID != hostID {
		return ErrNotClubHost
	}

	state, err := s.store.GetClubJoinState(ctx, clubID, targetUserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNoJoinRequest
		}
		return err
	}

	if state == database.JoinStateJoined {
		return ErrAlreadyMember
	}
	if refusing && state == database.JoinStateRefused {
		return ErrAlreadyRefused
	}

	return nil
}

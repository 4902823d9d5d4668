package service

import (
	"context"
	"errors"
	"time"

	"github.com/moimlab/moim/server/database"
)

type UserStore interface {
	GetUser(ctx context.Context, userID int64) (*database.User, error)
	UpdateUser(ctx context.Context, userID int64, update database.UserUpdate) (*database.User, error)
	SoftDeleteUser(ctx context.Context, userID int64, now time.Time) error
	DeleteUserSessions(ctx context.Context, userID int64) error
	CityExists(ctx context.Context, cityID int64) (bool, error)
}

func NewUserService(store UserStore, now func() time.Time) *UserService {
	return &UserService{
		store: store,
		now:   now,
	}
}

type UserService struct {
	store UserStore
	now   func() time.Time
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*database.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// UpdateUser edits the caller's own profile.
func (s *UserService) UpdateUser(ctx context.Context, callerID int64, userID int64, update database.UserUpdate) (*database.User, error) {
	if callerID != userID {
		return nil, ErrNotSelf
	}

	if update.CityID != nil {
		ok, err := s.store.CityExists(ctx, *update.CityID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCityNotFound
		}
	}

	user, err := s.store.UpdateUser(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// DeleteUser soft deletes the account and revokes its sessions. The
// row sticks around so reviews and past events keep their author.
func (s *UserService) DeleteUser(ctx context.Context, callerID int64, userID int64) error {
	if callerID != userID {
		return ErrNotSelf
	}

	if err := s.store.SoftDeleteUser(ctx, userID, s.now()); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.store.DeleteUserSessions(ctx, userID)
}

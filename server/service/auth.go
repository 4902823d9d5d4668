package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/moimlab/moim/server/database"
)

type AuthStore interface {
	InsertUser(ctx context.Context, user database.UserCreate) (*database.User, error)
	GetUser(ctx context.Context, userID int64) (*database.User, error)
	GetUserByEmail(ctx context.Context, email string) (*database.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
	InsertSession(ctx context.Context, session database.Session) error
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID int64) error
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
	CityExists(ctx context.Context, cityID int64) (bool, error)
}

func NewAuthService(store AuthStore, sessionTTL time.Duration, newToken func() string, now func() time.Time) *AuthService {
	return &AuthService{
		store:      store,
		sessionTTL: sessionTTL,
		newToken:   newToken,
		now:        now,
	}
}

type AuthService struct {
	store      AuthStore
	sessionTTL time.Duration
	newToken   func() string
	now        func() time.Time
}

type SignUp struct {
	Email      string
	Password   string
	Name       string
	Birthday   *time.Time
	CategoryID *int64
	CityID     *int64
}

// SignUp creates the account and logs it straight in, returning the
// fresh session alongside the user.
func (s *AuthService) SignUp(ctx context.Context, signUp SignUp) (*database.User, *database.Session, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	if signUp.CategoryID != nil {
		eg.Go(func() error {
			ok, err := s.store.CategoryExists(egCtx, *signUp.CategoryID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCategoryNotFound
			}
			return nil
		})
	}
	if signUp.CityID != nil {
		eg.Go(func() error {
			ok, err := s.store.CityExists(egCtx, *signUp.CityID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCityNotFound
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(signUp.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.InsertUser(ctx, database.UserCreate{
		Email:        signUp.Email,
		PasswordHash: string(hash),
		Name:         signUp.Name,
		Birthday:     signUp.Birthday,
		CategoryID:   signUp.CategoryID,
		CityID:       signUp.CityID,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	session, err := s.newSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (s *AuthService) newSession(ctx context.Context, userID int64) (*database.Session, error) {
	now := s.now()
	session := database.Session{
		Token:     s.newToken(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.store.InsertSession(ctx, session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Login checks the credentials and issues a fresh session token. Old
// sessions of the user stay valid until they expire.
func (s *AuthService) Login(ctx context.Context, email string, password string) (*database.Session, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	return s.newSession(ctx, user.ID)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every session of the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current string, next string) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.store.UpdateUserPassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	return s.store.DeleteUserSessions(ctx, userID)
}

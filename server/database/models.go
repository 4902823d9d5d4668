package database

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type JoinState string

const (
	JoinStatePending JoinState = "PENDING"
	JoinStateJoined  JoinState = "JOINED"
	JoinStateRefused JoinState = "REFUSED"
)

type User struct {
	ID           int64         `db:"id"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	Name         string        `db:"name"`
	Birthday     sql.NullTime  `db:"birthday"`
	CategoryID   sql.NullInt64 `db:"category_id"`
	CityID       sql.NullInt64 `db:"city_id"`
	CreatedAt    time.Time     `db:"created_at"`
	DeletedAt    sql.NullTime  `db:"deleted_at"`
}

type UserCreate struct {
	Email        string
	PasswordHash string
	Name         string
	Birthday     *time.Time
	CategoryID   *int64
	CityID       *int64
}

type UserUpdate struct {
	Email    *string
	Name     *string
	Birthday *time.Time
	CityID   *int64
}

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type City struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Club struct {
	ID          int64     `db:"id"`
	HostID      int64     `db:"host_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	MaxPeople   int       `db:"max_people"`
	CreatedAt   time.Time `db:"created_at"`
}

type ClubCreate struct {
	HostID      int64
	Name        string
	Description string
	MaxPeople   int
}

type ClubUpdate struct {
	Name        *string
	Description *string
	MaxPeople   *int
}

type ClubMember struct {
	ClubID    int64     `db:"club_id"`
	UserID    int64     `db:"user_id"`
	State     JoinState `db:"state"`
	CreatedAt time.Time `db:"created_at"`
}

type Event struct {
	ID          int64         `db:"id"`
	HostID      int64         `db:"host_id"`
	ClubID      sql.NullInt64 `db:"club_id"`
	CategoryID  int64         `db:"category_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	StartTime   time.Time     `db:"start_time"`
	EndTime     time.Time     `db:"end_time"`
	MaxPeople   int           `db:"max_people"`
	Archived    bool          `db:"archived"`
	CreatedAt   time.Time     `db:"created_at"`
	CityIDs     pq.Int64Array `db:"city_ids"`
}

type EventCreate struct {
	HostID      int64
	Title       string
	Description string
	CategoryID  int64
	CityIDs     []int64
	StartTime   time.Time
	EndTime     time.Time
	MaxPeople   int
	ClubID      *int64
}

type EventUpdate struct {
	Title       *string
	Description *string
	CategoryID  *int64
	CityIDs     []int64
	StartTime   *time.Time
	EndTime     *time.Time
	MaxPeople   *int
}

// EventFilter narrows GetEvents. Nil fields are not applied.
type EventFilter struct {
	HostID     *int64
	CityID     *int64
	CategoryID *int64
}

type EventMemberUser struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Review struct {
	ID          int64     `db:"id"`
	EventID     int64     `db:"event_id"`
	UserID      int64     `db:"user_id"`
	Score       int       `db:"score"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

type SessionWithUser struct {
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	UserID    int64     `db:"user_id"`
	UserEmail string    `db:"user_email"`
	UserName  string    `db:"user_name"`
}

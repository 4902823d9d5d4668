package service

import "errors"

// Caller-facing errors. Handlers map these onto HTTP statuses: absent
// entities, missing permissions, state-machine conflicts and malformed
// timing are kept apart so callers can tell "does not exist" from
// "exists but not yours" from "exists but not right now".

// ===== Not found =====
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrClubNotFound     = errors.New("club not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCityNotFound     = errors.New("city not found")
	ErrEmailNotFound    = errors.New("no account with this email")
)

// ===== Forbidden =====
var (
	ErrNotClubHost         = errors.New("only the club host may do this")
	ErrNotEventHost        = errors.New("only the event host may do this")
	ErrNotClubMember       = errors.New("club events are limited to club members")
	ErrNotEventParticipant = errors.New("archived events are visible to their participants only")
	ErrNotSelf             = errors.New("only your own account may be changed")
)

// ===== Conflict =====
var (
	ErrClubNameTaken       = errors.New("a club with this name already exists")
	ErrEmailTaken          = errors.New("email already in use")
	ErrPasswordMismatch    = errors.New("password does not match")
	ErrJoinPending         = errors.New("join request already pending")
	ErrAlreadyJoined       = errors.New("already a member of this club")
	ErrJoinRefused         = errors.New("join request was refused")
	ErrNoJoinHistory       = errors.New("no join request for this club")
	ErrNoJoinRequest       = errors.New("user has not requested to join")
	ErrAlreadyMember       = errors.New("user is already a club member")
	ErrAlreadyRefused      = errors.New("user was already refused")
	ErrHostCannotLeave     = errors.New("the host cannot leave the club without delegating first")
	ErrClubFull            = errors.New("club is already at capacity")
	ErrClubMaxBelowCount   = errors.New("club capacity cannot go below the current member count")
	ErrAlreadyHost         = errors.New("user is already the host")
	ErrDelegateNotMember   = errors.New("hosting can only be delegated to a joined member")
	ErrAlreadyJoinedEvent  = errors.New("already participating in this event")
	ErrNotJoinedEvent      = errors.New("not participating in this event")
	ErrHostCannotLeaveEvt  = errors.New("the host cannot leave their own event")
	ErrEventFull           = errors.New("event is already at capacity")
	ErrEventMaxBelowCount  = errors.New("event capacity cannot go below the current participant count")
	ErrEventAlreadyStarted = errors.New("event has already started")
)

// ===== Validation =====
var (
	ErrEventStartsInPast    = errors.New("event must start in the future")
	ErrEventEndsBeforeStart = errors.New("event must end after it starts")
	ErrNoEventCities        = errors.New("event needs at least one city")
)

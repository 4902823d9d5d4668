package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moimlab/moim/server/database"
)

func testClub() *database.Club {
	return &database.Club{
		ID:        1,
		HostID:    10,
		Name:      "book club",
		MaxPeople: 3,
	}
}

func clubStoreWithClub(club *database.Club) *mockClubStore {
	return &mockClubStore{
		getClubFunc: func(ctx context.Context, clubID int64) (*database.Club, error) {
			if clubID == club.ID {
				return club, nil
			}
			return nil, database.ErrNotFound
		},
	}
}

func TestCreateClub_NameTaken(t *testing.T) {
	t.Parallel()

	store := &mockClubStore{
		getClubByNameFunc: func(ctx context.Context, name string) (*database.Club, error) {
			return testClub(), nil
		},
	}
	svc := NewClubService(store, fixedClock)

	_, err := svc.CreateClub(context.Background(), 10, CreateClub{Name: "book club", MaxPeople: 3})
	require.ErrorIs(t, err, ErrClubNameTaken)
}

func TestCreateClub_HostTakesFirstSeat(t *testing.T) {
	t.Parallel()

	var inserted database.ClubCreate
	store := &mockClubStore{
		insertClubFunc: func(ctx context.Context, club database.ClubCreate) (*database.Club, error) {
			inserted = club
			return &database.Club{ID: 1, HostID: club.HostID, Name: club.Name, MaxPeople: club.MaxPeople}, nil
		},
	}
	svc := NewClubService(store, fixedClock)

	club, err := svc.CreateClub(context.Background(), 10, CreateClub{Name: "book club", MaxPeople: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(10), club.HostID)
	assert.Equal(t, int64(10), inserted.HostID)
}

func TestJoinClub_Success(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	joined := false
	store.joinClubFunc = func(ctx context.Context, clubID int64, userID int64) error {
		joined = true
		return nil
	}
	svc := NewClubService(store, fixedClock)

	require.NoError(t, svc.JoinClub(context.Background(), 1, 20))
	assert.True(t, joined)
}

func TestJoinClub_PreviousRequestBlocks(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		state   database.JoinState
		wantErr error
	}{
		{database.JoinStatePending, ErrJoinPending},
		{database.JoinStateJoined, ErrAlreadyJoined},
		{database.JoinStateRefused, ErrJoinRefused},
	} {
		t.Run(string(tt.state), func(t *testing.T) {
			store := clubStoreWithClub(testClub())
			store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
				return tt.state, nil
			}
			svc := NewClubService(store, fixedClock)

			err := svc.JoinClub(context.Background(), 1, 20)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJoinClub_ClubFull(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.countJoinedClubMembersFunc = func(ctx context.Context, clubID int64) (int, error) {
		return 3, nil
	}
	svc := NewClubService(store, fixedClock)

	err := svc.JoinClub(context.Background(), 1, 20)
	require.ErrorIs(t, err, ErrClubFull)
}

func TestJoinClub_FullAtInsert(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.joinClubFunc = func(ctx context.Context, clubID int64, userID int64) error {
		return database.ErrClubFull
	}
	svc := NewClubService(store, fixedClock)

	err := svc.JoinClub(context.Background(), 1, 20)
	require.ErrorIs(t, err, ErrClubFull)
}

func TestJoinClub_ClubNotFound(t *testing.T) {
	t.Parallel()

	svc := NewClubService(&mockClubStore{}, fixedClock)

	err := svc.JoinClub(context.Background(), 99, 20)
	require.ErrorIs(t, err, ErrClubNotFound)
}

func TestOutClub_NoHistory(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	svc := NewClubService(store, fixedClock)

	err := svc.OutClub(context.Background(), 1, 20)
	require.ErrorIs(t, err, ErrNoJoinHistory)
}

func TestOutClub_HostMustDelegateFirst(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStateJoined, nil
	}
	svc := NewClubService(store, fixedClock)

	err := svc.OutClub(context.Background(), 1, 10)
	require.ErrorIs(t, err, ErrHostCannotLeave)
}

func TestOutClub_LeavesAtCurrentTime(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStateJoined, nil
	}
	var leftAt time.Time
	store.leaveClubFunc = func(ctx context.Context, clubID int64, userID int64, now time.Time) error {
		leftAt = now
		return nil
	}
	svc := NewClubService(store, fixedClock)

	require.NoError(t, svc.OutClub(context.Background(), 1, 20))
	assert.Equal(t, testNow, leftAt)
}

func TestOutClub_RefusedCannotLeave(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStateRefused, nil
	}
	svc := NewClubService(store, fixedClock)

	err := svc.OutClub(context.Background(), 1, 20)
	require.ErrorIs(t, err, ErrJoinRefused)
}

func TestUpdateClub_OnlyHost(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	svc := NewClubService(store, fixedClock)

	_, err := svc.UpdateClub(context.Background(), 1, 20, database.ClubUpdate{})
	require.ErrorIs(t, err, ErrNotClubHost)
}

func TestUpdateClub_MaxBelowMemberCount(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.countJoinedClubMembersFunc = func(ctx context.Context, clubID int64) (int, error) {
		return 3, nil
	}
	svc := NewClubService(store, fixedClock)

	newMax := 2
	_, err := svc.UpdateClub(context.Background(), 1, 10, database.ClubUpdate{MaxPeople: &newMax})
	require.ErrorIs(t, err, ErrClubMaxBelowCount)
}

func TestDeleteClub_OnlyHost(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	svc := NewClubService(store, fixedClock)

	err := svc.DeleteClub(context.Background(), 1, 20)
	require.ErrorIs(t, err, ErrNotClubHost)
}

func TestDeleteClub_CascadesAtCurrentTime(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	var deletedAt time.Time
	store.deleteClubFunc = func(ctx context.Context, clubID int64, now time.Time) error {
		deletedAt = now
		return nil
	}
	svc := NewClubService(store, fixedClock)

	require.NoError(t, svc.DeleteClub(context.Background(), 1, 10))
	assert.Equal(t, testNow, deletedAt)
}

func TestDelegate_TargetMustBeJoined(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		state database.JoinState
		err   error
	}{
		{"pending", database.JoinStatePending, nil},
		{"refused", database.JoinStateRefused, nil},
		{"no request", "", database.ErrNotFound},
	} {
		t.Run(tt.name, func(t *testing.T) {
			store := clubStoreWithClub(testClub())
			store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
				return tt.state, tt.err
			}
			svc := NewClubService(store, fixedClock)

			_, err := svc.Delegate(context.Background(), 1, 10, 20)
			require.ErrorIs(t, err, ErrDelegateNotMember)
		})
	}
}

func TestDelegate_Self(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	svc := NewClubService(store, fixedClock)

	_, err := svc.Delegate(context.Background(), 1, 10, 10)
	require.ErrorIs(t, err, ErrAlreadyHost)
}

func TestDelegate_Success(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStateJoined, nil
	}
	store.delegateClubFunc = func(ctx context.Context, clubID int64, newHostID int64) (*database.Club, error) {
		club := testClub()
		club.HostID = newHostID
		return club, nil
	}
	svc := NewClubService(store, fixedClock)

	club, err := svc.Delegate(context.Background(), 1, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), club.HostID)
}

func TestApprove_SetsJoined(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStatePending, nil
	}
	var setState database.JoinState
	store.updateClubMemberStateFunc = func(ctx context.Context, clubID int64, userID int64, state database.JoinState) error {
		setState = state
		return nil
	}
	svc := NewClubService(store, fixedClock)

	require.NoError(t, svc.Approve(context.Background(), 1, 10, 20))
	assert.Equal(t, database.JoinStateJoined, setState)
}

func TestApprove_RefusedCanStillBeApproved(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStateRefused, nil
	}
	svc := NewClubService(store, fixedClock)

	require.NoError(t, svc.Approve(context.Background(), 1, 10, 20))
}

func TestApprove_OnlyHost(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	svc := NewClubService(store, fixedClock)

	err := svc.Approve(context.Background(), 1, 20, 30)
	require.ErrorIs(t, err, ErrNotClubHost)
}

func TestApprove_NoRequest(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	svc := NewClubService(store, fixedClock)

	err := svc.Approve(context.Background(), 1, 10, 20)
	require.ErrorIs(t, err, ErrNoJoinRequest)
}

func TestApprove_AlreadyMember(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStateJoined, nil
	}
	svc := NewClubService(store, fixedClock)

	err := svc.Approve(context.Background(), 1, 10, 20)
	require.ErrorIs(t, err, ErrAlreadyMember)
}

func TestRefuse_SetsRefused(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStatePending, nil
	}
	var setState database.JoinState
	store.updateClubMemberStateFunc = func(ctx context.Context, clubID int64, userID int64, state database.JoinState) error {
		setState = state
		return nil
	}
	svc := NewClubService(store, fixedClock)

	require.NoError(t, svc.Refuse(context.Background(), 1, 10, 20))
	assert.Equal(t, database.JoinStateRefused, setState)
}

func TestRefuse_AlreadyRefused(t *testing.T) {
	t.Parallel()

	store := clubStoreWithClub(testClub())
	store.getClubJoinStateFunc = func(ctx context.Context, clubID int64, userID int64) (database.JoinState, error) {
		return database.JoinStateRefused, nil
	}
	svc := NewClubService(store, fixedClock)

	err := svc.Refuse(context.Background(), 1, 10, 20)
	require.ErrorIs(t, err, ErrAlreadyRefused)
}

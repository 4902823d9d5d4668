package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

func (d *Database) GetClubJoinState(ctx context.Context, clubID int64, userID int64) (JoinState, error) {
	query := `
		SELECT cm.state
		FROM club_members cm
		JOIN users u ON u.id = cm.user_id AND u.deleted_at IS NULL
		WHERE cm.club_id = $1 AND cm.user_id = $2
	`

	var state JoinState
	if err := d.db.GetContext(ctx, &state, query, clubID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("club membership: %w", ErrNotFound)
		}
		return "", fmt.Errorf("failed to get join state: %w", err)
	}

	return state, nil
}

func (d *Database) CountJoinedClubMembers(ctx context.Context, clubID int64) (int, error) {
	return countJoinedClubMembers(ctx, d.db, clubID)
}

func countJoinedClubMembers(ctx context.Context, q sqlx.QueryerContext, clubID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM club_members cm
		JOIN users u ON u.id = cm.user_id AND u.deleted_at IS NULL
		WHERE cm.club_id = $1 AND cm.state = 'JOINED'
	`

	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, clubID); err != nil {
		return 0, fmt.Errorf("failed to count joined club members: %w", err)
	}

	return count, nil
}

// JoinClub inserts a PENDING membership. The club row is locked first so
// the capacity count and the insert are serialized against concurrent
// joins; at most one of N racing requests wins the last seat.
func (d *Database) JoinClub(ctx context.Context, clubID int64, userID int64) error {
	return d.inTx(ctx, func(tx *sqlx.Tx) error {
		var maxPeople int
		if err := tx.GetContext(ctx, &maxPeople, "SELECT max_people FROM clubs WHERE id = $1 FOR UPDATE", clubID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("club %d: %w", clubID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock club: %w", err)
		}

		count, err := countJoinedClubMembers(ctx, tx, clubID)
		if err != nil {
			return err
		}
		if count >= maxPeople {
			return fmt.Errorf("club %d: %w", clubID, ErrClubFull)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO club_members (club_id, user_id, state) VALUES ($1, $2, $3)",
			clubID, userID, JoinStatePending)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("club membership: %w", ErrDuplicate)
			}
			return fmt.Errorf("failed to insert club membership: %w", err)
		}

		return nil
	})
}

func (d *Database) UpdateClubMemberState(ctx context.Context, clubID int64, userID int64, state JoinState) error {
	res, err := d.db.ExecContext(ctx,
		"UPDATE club_members SET state = $3 WHERE club_id = $1 AND user_id = $2",
		clubID, userID, state)
	if err != nil {
		return fmt.Errorf("failed to update club membership state: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("club membership: %w", ErrNotFound)
	}

	return nil
}

// LeaveClub removes the membership and cascades over the club's future
// events in one transaction: future events the user hosts are deleted
// entirely, future events they merely attend lose only their seat.
// Events that already started stay untouched.
func (d *Database) LeaveClub(ctx context.Context, clubID int64, userID int64, now time.Time) error {
	return d.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM events WHERE club_id = $1 AND host_id = $2 AND start_time > $3",
			clubID, userID, now)
		if err != nil {
			return fmt.Errorf("failed to delete hosted future events: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM event_members em
			USING events e
			WHERE em.event_id = e.id
			  AND em.user_id = $2
			  AND e.club_id = $1
			  AND e.start_time > $3
		`, clubID, userID, now)
		if err != nil {
			return fmt.Errorf("failed to remove future event memberships: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM club_members WHERE club_id = $1 AND user_id = $2", clubID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete club membership: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return fmt.Errorf("club membership: %w", ErrNotFound)
		}

		return nil
	})
}

// GetJoinedClubIDs returns the clubs the user holds JOINED state in.
func (d *Database) GetJoinedClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	var clubIDs []int64
	err := d.db.SelectContext(ctx, &clubIDs,
		"SELECT club_id FROM club_members WHERE user_id = $1 AND state = 'JOINED'", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get joined clubs: %w", err)
	}

	return clubIDs, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func (d *Database) IsEventMember(ctx context.Context, eventID int64, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM event_members em
			JOIN users u ON u.id = em.user_id AND u.deleted_at IS NULL
			WHERE em.event_id = $1 AND em.user_id = $2
		)
	`

	var joined bool
	if err := d.db.GetContext(ctx, &joined, query, eventID, userID); err != nil {
		return false, fmt.Errorf("failed to check event membership: %w", err)
	}

	return joined, nil
}

func (d *Database) CountEventMembers(ctx context.Context, eventID int64) (int, error) {
	return countEventMembers(ctx, d.db, eventID)
}

func countEventMembers(ctx context.Context, q sqlx.QueryerContext, eventID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM event_members em
		JOIN users u ON u.id = em.user_id AND u.deleted_at IS NULL
		WHERE em.event_id = $1
	`

	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, eventID); err != nil {
		return 0, fmt.Errorf("failed to count event members: %w", err)
	}

	return count, nil
}

// JoinEvent inserts the membership with the event row locked, so the
// capacity count and the insert are serialized against concurrent joins.
func (d *Database) JoinEvent(ctx context.Context, eventID int64, userID int64) error {
	return d.inTx(ctx, func(tx *sqlx.Tx) error {
		var maxPeople int
		if err := tx.GetContext(ctx, &maxPeople, "SELECT max_people FROM events WHERE id = $1 FOR UPDATE", eventID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("event %d: %w", eventID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock event: %w", err)
		}

		count, err := countEventMembers(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if count >= maxPeople {
			return fmt.Errorf("event %d: %w", eventID, ErrEventFull)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO event_members (event_id, user_id) VALUES ($1, $2)", eventID, userID)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("event membership: %w", ErrDuplicate)
			}
			return fmt.Errorf("failed to insert event membership: %w", err)
		}

		return nil
	})
}

func (d *Database) LeaveEvent(ctx context.Context, eventID int64, userID int64) error {
	res, err := d.db.ExecContext(ctx,
		"DELETE FROM event_members WHERE event_id = $1 AND user_id = $2", eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete event membership: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("event membership: %w", ErrNotFound)
	}

	return nil
}

func (d *Database) GetEventMembers(ctx context.Context, eventID int64) ([]EventMemberUser, error) {
	query := `
		SELECT u.id, u.name
		FROM event_members em
		JOIN users u ON u.id = em.user_id AND u.deleted_at IS NULL
		WHERE em.event_id = $1
		ORDER BY em.created_at, u.id
	`

	var members []EventMemberUser
	if err := d.db.SelectContext(ctx, &members, query, eventID); err != nil {
		return nil, fmt.Errorf("failed to get event members: %w", err)
	}

	return members, nil
}

// GetJoinedEvents returns every event the user has a seat in, including
// archived ones.
func (d *Database) GetJoinedEvents(ctx context.Context, userID int64) ([]Event, error) {
	query := `
		SELECT e.*, array_agg(ec.city_id ORDER BY ec.city_id) AS city_ids
		FROM events e
		JOIN event_cities ec ON ec.event_id = e.id
		JOIN event_members em ON em.event_id = e.id
		WHERE em.user_id = $1
		GROUP BY e.id
		ORDER BY e.start_time, e.id
	`

	var events []Event
	if err := d.db.SelectContext(ctx, &events, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get joined events: %w", err)
	}

	return events, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const selectEvents = `
	SELECT e.*, array_agg(ec.city_id ORDER BY ec.city_id) AS city_ids
	FROM events e
	JOIN event_cities ec ON ec.event_id = e.id
`

func (d *Database) InsertEvent(ctx context.Context, event EventCreate) (*Event, error) {
	var created Event
	err := d.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO events (host_id, club_id, category_id, title, description, start_time, end_time, max_people)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		`

		if err := tx.GetContext(ctx, &created, query,
			event.HostID, event.ClubID, event.CategoryID, event.Title, event.Description,
			event.StartTime, event.EndTime, event.MaxPeople); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}

		for _, cityID := range event.CityIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO event_cities (event_id, city_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
				created.ID, cityID); err != nil {
				return fmt.Errorf("failed to insert event city: %w", err)
			}
		}

		// The host takes the first seat.
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO event_members (event_id, user_id) VALUES ($1, $2)",
			created.ID, event.HostID); err != nil {
			return fmt.Errorf("failed to insert host membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	created.CityIDs = event.CityIDs
	return &created, nil
}

func (d *Database) GetEvent(ctx context.Context, eventID int64) (*Event, error) {
	query := selectEvents + `
		WHERE e.id = $1
		GROUP BY e.id
	`

	var event Event
	if err := d.db.GetContext(ctx, &event, query, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %d: %w", eventID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (d *Database) GetEvents(ctx context.Context, filter EventFilter) ([]Event, error) {
	query := selectEvents + " WHERE TRUE"
	var args []any

	if filter.HostID != nil {
		args = append(args, *filter.HostID)
		query += fmt.Sprintf(" AND e.host_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND e.category_id = $%d", len(args))
	}
	if filter.CityID != nil {
		args = append(args, *filter.CityID)
		query += fmt.Sprintf(" AND e.id IN (SELECT event_id FROM event_cities WHERE city_id = $%d)", len(args))
	}

	query += " GROUP BY e.id ORDER BY e.start_time, e.id"

	var events []Event
	if err := d.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	return events, nil
}

// UpdateEvent applies the partial update. Lowering max_people below the
// current member count fails with ErrEventFull, counted under the event
// row lock. A non-nil CityIDs replaces the event's city set.
func (d *Database) UpdateEvent(ctx context.Context, eventID int64, update EventUpdate) (*Event, error) {
	var updated Event
	err := d.inTx(ctx, func(tx *sqlx.Tx) error {
		var event Event
		if err := tx.GetContext(ctx, &event, "SELECT * FROM events WHERE id = $1 FOR UPDATE", eventID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("event %d: %w", eventID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock event: %w", err)
		}

		if update.MaxPeople != nil {
			count, err := countEventMembers(ctx, tx, eventID)
			if err != nil {
				return err
			}
			if count > *update.MaxPeople {
				return fmt.Errorf("event %d has %d members: %w", eventID, count, ErrEventFull)
			}
		}

		query := `
			UPDATE events
			SET title       = COALESCE($2, title),
			    description = COALESCE($3, description),
			    category_id = COALESCE($4, category_id),
			    start_time  = COALESCE($5, start_time),
			    end_time    = COALESCE($6, end_time),
			    max_people  = COALESCE($7, max_people)
			WHERE id = $1
			RETURNING *
		`

		if err := tx.GetContext(ctx, &updated, query, eventID,
			update.Title, update.Description, update.CategoryID,
			update.StartTime, update.EndTime, update.MaxPeople); err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}

		if update.CityIDs != nil {
			if _, err := tx.ExecContext(ctx, "DELETE FROM event_cities WHERE event_id = $1", eventID); err != nil {
				return fmt.Errorf("failed to clear event cities: %w", err)
			}
			for _, cityID := range update.CityIDs {
				if _, err := tx.ExecContext(ctx,
					"INSERT INTO event_cities (event_id, city_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
					eventID, cityID); err != nil {
					return fmt.Errorf("failed to insert event city: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var cityIDs []int64
	if err := d.db.SelectContext(ctx, &cityIDs,
		"SELECT city_id FROM event_cities WHERE event_id = $1 ORDER BY city_id", eventID); err != nil {
		return nil, fmt.Errorf("failed to get event cities: %w", err)
	}
	updated.CityIDs = cityIDs

	return &updated, nil
}

func (d *Database) DeleteEvent(ctx context.Context, eventID int64) error {
	res, err := d.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("event %d: %w", eventID, ErrNotFound)
	}

	return nil
}

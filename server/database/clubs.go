package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

func (d *Database) InsertClub(ctx context.Context, club ClubCreate) (*Club, error) {
	var created Club
	err := d.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO clubs (host_id, name, description, max_people)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		`

		if err := tx.GetContext(ctx, &created, query, club.HostID, club.Name, club.Description, club.MaxPeople); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("club with name %q: %w", club.Name, ErrDuplicate)
			}
			return fmt.Errorf("failed to insert club: %w", err)
		}

		// The founding host joins their own club immediately.
		_, err := tx.ExecContext(ctx,
			"INSERT INTO club_members (club_id, user_id, state) VALUES ($1, $2, $3)",
			created.ID, club.HostID, JoinStateJoined)
		if err != nil {
			return fmt.Errorf("failed to insert host membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (d *Database) GetClub(ctx context.Context, clubID int64) (*Club, error) {
	var club Club
	if err := d.db.GetContext(ctx, &club, "SELECT * FROM clubs WHERE id = $1", clubID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("club %d: %w", clubID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	return &club, nil
}

func (d *Database) GetClubByName(ctx context.Context, name string) (*Club, error) {
	var club Club
	if err := d.db.GetContext(ctx, &club, "SELECT * FROM clubs WHERE name = $1", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("club with name %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get club by name: %w", err)
	}

	return &club, nil
}

func (d *Database) GetClubs(ctx context.Context) ([]Club, error) {
	var clubs []Club
	if err := d.db.SelectContext(ctx, &clubs, "SELECT * FROM clubs ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to get clubs: %w", err)
	}

	return clubs, nil
}

// UpdateClub applies the partial update. Lowering max_people below the
// current JOINED member count fails with ErrClubFull; the count is taken
// with the club row locked so a concurrent join cannot slip past.
func (d *Database) UpdateClub(ctx context.Context, clubID int64, update ClubUpdate) (*Club, error) {
	var updated Club
	err := d.inTx(ctx, func(tx *sqlx.Tx) error {
		var club Club
		if err := tx.GetContext(ctx, &club, "SELECT * FROM clubs WHERE id = $1 FOR UPDATE", clubID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("club %d: %w", clubID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock club: %w", err)
		}

		if update.MaxPeople != nil {
			count, err := countJoinedClubMembers(ctx, tx, clubID)
			if err != nil {
				return err
			}
			if count > *update.MaxPeople {
				return fmt.Errorf("club %d has %d joined members: %w", clubID, count, ErrClubFull)
			}
		}

		query := `
			UPDATE clubs
			SET name        = COALESCE($2, name),
			    description = COALESCE($3, description),
			    max_people  = COALESCE($4, max_people)
			WHERE id = $1
			RETURNING *
		`

		if err := tx.GetContext(ctx, &updated, query, clubID, update.Name, update.Description, update.MaxPeople); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("club name: %w", ErrDuplicate)
			}
			return fmt.Errorf("failed to update club: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteClub removes the club and cascades over its events in one
// transaction: events that have not started yet are deleted outright
// (their memberships go with them), events already started or finished
// are detached from the club and archived, keeping their memberships and
// reviews. Club memberships are removed by the club_members FK cascade.
func (d *Database) DeleteClub(ctx context.Context, clubID int64, now time.Time) error {
	return d.inTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		if err := tx.GetContext(ctx, &id, "SELECT id FROM clubs WHERE id = $1 FOR UPDATE", clubID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("club %d: %w", clubID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock club: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM events WHERE club_id = $1 AND start_time > $2", clubID, now); err != nil {
			return fmt.Errorf("failed to delete future club events: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE events SET club_id = NULL, archived = TRUE WHERE club_id = $1", clubID); err != nil {
			return fmt.Errorf("failed to archive started club events: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM clubs WHERE id = $1", clubID); err != nil {
			return fmt.Errorf("failed to delete club: %w", err)
		}

		return nil
	})
}

func (d *Database) DelegateClub(ctx context.Context, clubID int64, newHostID int64) (*Club, error) {
	var updated Club
	err := d.db.GetContext(ctx, &updated,
		"UPDATE clubs SET host_id = $2 WHERE id = $1 RETURNING *", clubID, newHostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("club %d: %w", clubID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delegate club: %w", err)
	}

	return &updated, nil
}

package database

import (
	"context"
	"fmt"
)

func (d *Database) GetEventReviews(ctx context.Context, eventID int64) ([]Review, error) {
	query := `
		SELECT *
		FROM reviews
		WHERE event_id = $1
		ORDER BY created_at, id
	`

	var reviews []Review
	if err := d.db.SelectContext(ctx, &reviews, query, eventID); err != nil {
		return nil, fmt.Errorf("failed to get event reviews: %w", err)
	}

	return reviews, nil
}

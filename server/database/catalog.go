package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

func (d *Database) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := d.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

func (d *Database) GetCities(ctx context.Context) ([]City, error) {
	var cities []City
	if err := d.db.SelectContext(ctx, &cities, "SELECT * FROM cities ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get cities: %w", err)
	}

	return cities, nil
}

func (d *Database) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	err := d.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)", categoryID)
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}

	return exists, nil
}

func (d *Database) CityExists(ctx context.Context, cityID int64) (bool, error) {
	var exists bool
	err := d.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM cities WHERE id = $1)", cityID)
	if err != nil {
		return false, fmt.Errorf("failed to check city: %w", err)
	}

	return exists, nil
}

// MissingCityIDs returns the subset of cityIDs that do not exist.
func (d *Database) MissingCityIDs(ctx context.Context, cityIDs []int64) ([]int64, error) {
	query := `
		SELECT wanted.id
		FROM unnest($1::bigint[]) AS wanted(id)
		LEFT JOIN cities c ON c.id = wanted.id
		WHERE c.id IS NULL
	`

	var missing []int64
	if err := d.db.SelectContext(ctx, &missing, query, pq.Array(cityIDs)); err != nil {
		return nil, fmt.Errorf("failed to check cities: %w", err)
	}

	return missing, nil
}

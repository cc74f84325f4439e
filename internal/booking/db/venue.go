package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"ms-showcase/internal/database"
	"ms-showcase/internal/models"
)

// ListVenues returns every venue with its shows, ordered so that venues of the
// same city and state are adjacent.
func (d *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Relation("Shows").
		Order("v.city ASC", "v.state ASC", "v.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

func (d *DB) SearchVenues(ctx context.Context, term string) ([]models.Venue, error) {
	venues := []models.Venue{}
	q, filtered := database.WhereContains(d.Bun.NewSelect().Model(&venues).Relation("Shows"), "v.name", term)
	if err := q.Order("v.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	if filtered {
		return venues, nil
	}

	matched := []models.Venue{}
	for _, v := range venues {
		if database.ContainsFold(v.Name, term) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func (d *DB) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("v.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "venue", id)
	}
	return &venue, nil
}

// GetVenueWithShows loads the venue, its shows and each show's artist.
func (d *DB) GetVenueWithShows(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Relation("Shows", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("s.start_time ASC", "s.id ASC")
		}).
		Relation("Shows.Artist").
		Where("v.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "venue", id)
	}
	return &venue, nil
}

func (d *DB) CreateVenue(ctx context.Context, venue *models.Venue) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(venue).Exec(ctx); err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		return nil
	})
}

// UpdateVenue overwrites every mutable column of an existing venue.
func (d *DB) UpdateVenue(ctx context.Context, venue *models.Venue) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Venue)(nil)).Where("v.id = ?", venue.ID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("check venue %d: %w", venue.ID, err)
		}
		if !exists {
			return fmt.Errorf("venue %d: %w", venue.ID, ErrNotFound)
		}
		_, err = tx.NewUpdate().
			Model(venue).
			Column("name", "city", "state", "address", "phone", "genres",
				"image_link", "website_link", "facebook_link",
				"seeking_talent", "seeking_description").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update venue %d: %w", venue.ID, err)
		}
		return nil
	})
}

// DeleteVenue removes the venue and its shows in one transaction and returns
// the deleted row.
func (d *DB) DeleteVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&venue).Where("v.id = ?", id).Limit(1).Scan(ctx); err != nil {
			return notFound(err, "venue", id)
		}
		if _, err := tx.NewDelete().Model((*models.Show)(nil)).Where("venue_id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete shows of venue %d: %w", id, err)
		}
		if _, err := tx.NewDelete().Model((*models.Venue)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete venue %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

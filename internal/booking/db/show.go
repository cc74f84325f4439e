package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"ms-showcase/internal/models"
)

// ListShows returns every show with its artist and venue joined in.
func (d *DB) ListShows(ctx context.Context) ([]models.Show, error) {
	shows := []models.Show{}
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Artist").
		Relation("Venue").
		Order("s.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return shows, nil
}

// CreateShow inserts a show after checking both parents exist inside the
// same transaction.
func (d *DB) CreateShow(ctx context.Context, show *models.Show) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		artistExists, err := tx.NewSelect().Model((*models.Artist)(nil)).Where("a.id = ?", show.ArtistID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("check artist %d: %w", show.ArtistID, err)
		}
		if !artistExists {
			return &ReferenceError{Column: "artist_id", ID: show.ArtistID}
		}

		venueExists, err := tx.NewSelect().Model((*models.Venue)(nil)).Where("v.id = ?", show.VenueID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("check venue %d: %w", show.VenueID, err)
		}
		if !venueExists {
			return &ReferenceError{Column: "venue_id", ID: show.VenueID}
		}

		if _, err := tx.NewInsert().Model(show).Exec(ctx); err != nil {
			return fmt.Errorf("insert show: %w", err)
		}
		return nil
	})
}

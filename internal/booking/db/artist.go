package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"ms-showcase/internal/database"
	"ms-showcase/internal/models"
)

func (d *DB) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists := []models.Artist{}
	err := d.Bun.NewSelect().
		Model(&artists).
		Order("a.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (d *DB) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	artists := []models.Artist{}
	q, filtered := database.WhereContains(d.Bun.NewSelect().Model(&artists).Relation("Shows"), "a.name", term)
	if err := q.Order("a.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	if filtered {
		return artists, nil
	}

	matched := []models.Artist{}
	for _, a := range artists {
		if database.ContainsFold(a.Name, term) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (d *DB) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("a.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "artist", id)
	}
	return &artist, nil
}

// GetArtistWithShows loads the artist, its shows and each show's venue.
func (d *DB) GetArtistWithShows(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Relation("Shows", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("s.start_time ASC", "s.id ASC")
		}).
		Relation("Shows.Venue").
		Where("a.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "artist", id)
	}
	return &artist, nil
}

func (d *DB) CreateArtist(ctx context.Context, artist *models.Artist) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(artist).Exec(ctx); err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		return nil
	})
}

// UpdateArtist overwrites every mutable column of an existing artist.
func (d *DB) UpdateArtist(ctx context.Context, artist *models.Artist) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Artist)(nil)).Where("a.id = ?", artist.ID).Exists(ctx)
		if err != nil {
			return fmt.Errorf("check artist %d: %w", artist.ID, err)
		}
		if !exists {
			return fmt.Errorf("artist %d: %w", artist.ID, ErrNotFound)
		}
		_, err = tx.NewUpdate().
			Model(artist).
			Column("name", "city", "state", "phone", "genres",
				"image_link", "website_link", "facebook_link",
				"seeking_venue", "seeking_description").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update artist %d: %w", artist.ID, err)
		}
		return nil
	})
}

// DeleteArtist removes the artist and its shows in one transaction.
func (d *DB) DeleteArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&artist).Where("a.id = ?", id).Limit(1).Scan(ctx); err != nil {
			return notFound(err, "artist", id)
		}
		if _, err := tx.NewDelete().Model((*models.Show)(nil)).Where("artist_id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete shows of artist %d: %w", id, err)
		}
		if _, err := tx.NewDelete().Model((*models.Artist)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete artist %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/uptrace/bun"

	"ms-showcase/internal/models"
)

// SeedCategories are the trivia categories, in id order.
var SeedCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// Seed inserts sample listings and trivia questions. Tables that already hold
// rows are left alone, so running it twice is harmless. Show times are placed
// around now so both past and upcoming shows exist.
func Seed(ctx context.Context, db *bun.DB, now time.Time) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := seedListings(ctx, tx, now); err != nil {
			return err
		}
		return seedTrivia(ctx, tx)
	})
}

func seedListings(ctx context.Context, tx bun.Tx, now time.Time) error {
	n, err := tx.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count venues: %w", err)
	}
	if n > 0 {
		return nil
	}

	venues := []*models.Venue{
		{
			Name: "The Musical Hop", City: "San Francisco", State: "CA",
			Address: "1015 Folsom Street", Phone: "123-123-1234",
			Genres:        "Jazz,Reggae,Swing,Classical,Folk",
			WebsiteLink:   "https://www.themusicalhop.com",
			FacebookLink:  "https://www.facebook.com/TheMusicalHop",
			SeekingTalent: true, SeekingDescription: "We are on the lookout for a local artist to play every two weeks.",
		},
		{
			Name: "The Dueling Pianos Bar", City: "New York", State: "NY",
			Address: "335 Delancey Street", Phone: "914-003-1132",
			Genres:      "Classical,R&B,Hip-Hop",
			WebsiteLink: "https://www.theduelingpianos.com",
		},
		{
			Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA",
			Address: "34 Whiskey Moore Ave", Phone: "415-000-1234",
			Genres:      "Rock n Roll,Jazz,Classical,Folk",
			WebsiteLink: "https://www.parksquarelivemusicandcoffee.com",
		},
	}
	if _, err := tx.NewInsert().Model(&venues).Exec(ctx); err != nil {
		return fmt.Errorf("insert venues: %w", err)
	}

	artists := []*models.Artist{
		{
			Name: "Guns N Petals", City: "San Francisco", State: "CA",
			Phone: "326-123-5000", Genres: "Rock n Roll",
			SeekingVenue: true, SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
		{Name: "Matt Quevedo", City: "New York", State: "NY", Phone: "300-400-5000", Genres: "Jazz"},
		{Name: "The Wild Sax Band", City: "San Francisco", State: "CA", Phone: "432-325-5432", Genres: "Jazz,Classical"},
	}
	if _, err := tx.NewInsert().Model(&artists).Exec(ctx); err != nil {
		return fmt.Errorf("insert artists: %w", err)
	}

	day := 24 * time.Hour
	shows := []*models.Show{
		{VenueID: venues[0].ID, ArtistID: artists[0].ID, StartTime: now.Add(-30 * day)},
		{VenueID: venues[2].ID, ArtistID: artists[1].ID, StartTime: now.Add(-10 * day)},
		{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.Add(14 * day)},
		{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: now.Add(21 * day)},
		{VenueID: venues[0].ID, ArtistID: artists[2].ID, StartTime: now.Add(28 * day)},
	}
	if _, err := tx.NewInsert().Model(&shows).Exec(ctx); err != nil {
		return fmt.Errorf("insert shows: %w", err)
	}
	return nil
}

func seedTrivia(ctx context.Context, tx bun.Tx) error {
	n, err := tx.NewSelect().Model((*models.Category)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	categories := make([]*models.Category, 0, len(SeedCategories))
	for _, name := range SeedCategories {
		categories = append(categories, &models.Category{Type: name})
	}
	if _, err := tx.NewInsert().Model(&categories).Exec(ctx); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}

	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		byName[c.Type] = strconv.FormatInt(c.ID, 10)
	}

	questions := []*models.Question{
		{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: byName["Science"], Difficulty: 4},
		{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: byName["Science"], Difficulty: 3},
		{Question: "Which Dutch graphic artist-initials M C was a creator of optical illusions?", Answer: "Escher", Category: byName["Art"], Difficulty: 1},
		{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: byName["Art"], Difficulty: 3},
		{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: byName["Geography"], Difficulty: 2},
		{Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", Category: byName["Geography"], Difficulty: 2},
		{Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: byName["History"], Difficulty: 2},
		{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: byName["History"], Difficulty: 2},
		{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: byName["Entertainment"], Difficulty: 4},
		{Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Category: byName["Entertainment"], Difficulty: 4},
		{Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: byName["Sports"], Difficulty: 3},
		{Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: byName["Sports"], Difficulty: 4},
	}
	if _, err := tx.NewInsert().Model(&questions).Exec(ctx); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return nil
}

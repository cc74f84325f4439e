package models

import (
	"strings"

	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID                 int64   `bun:"id,pk,autoincrement" json:"id"`
	Name               string  `bun:"name,notnull" json:"name"`
	City               string  `bun:"city" json:"city"`
	State              string  `bun:"state" json:"state"`
	Address            string  `bun:"address" json:"address"`
	Phone              string  `bun:"phone" json:"phone"`
	Genres             string  `bun:"genres" json:"genres"`
	ImageLink          string  `bun:"image_link" json:"image_link"`
	WebsiteLink        string  `bun:"website_link" json:"website_link"`
	FacebookLink       string  `bun:"facebook_link" json:"facebook_link"`
	SeekingTalent      bool    `bun:"seeking_talent,notnull,default:false" json:"seeking_talent"`
	SeekingDescription string  `bun:"seeking_description" json:"seeking_description"`
	Shows              []*Show `bun:"rel:has-many,join:id=venue_id" json:"-"`
}

// GenreList splits the stored comma-separated genres.
func (v *Venue) GenreList() []string {
	return SplitGenres(v.Genres)
}

// SplitGenres turns "Jazz,Folk" into ["Jazz", "Folk"], dropping blanks.
func SplitGenres(genres string) []string {
	var out []string
	for _, g := range strings.Split(genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// JoinGenres is the inverse of SplitGenres.
func JoinGenres(genres []string) string {
	var kept []string
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			kept = append(kept, g)
		}
	}
	return strings.Join(kept, ",")
}

package models

import "github.com/uptrace/bun"

type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int64   `bun:"id,pk,autoincrement" json:"id"`
	Name               string  `bun:"name,notnull" json:"name"`
	City               string  `bun:"city" json:"city"`
	State              string  `bun:"state" json:"state"`
	Phone              string  `bun:"phone" json:"phone"`
	Genres             string  `bun:"genres" json:"genres"`
	ImageLink          string  `bun:"image_link" json:"image_link"`
	WebsiteLink        string  `bun:"website_link" json:"website_link"`
	FacebookLink       string  `bun:"facebook_link" json:"facebook_link"`
	SeekingVenue       bool    `bun:"seeking_venue,notnull,default:false" json:"seeking_venue"`
	SeekingDescription string  `bun:"seeking_description" json:"seeking_description"`
	Shows              []*Show `bun:"rel:has-many,join:id=artist_id" json:"-"`
}

func (a *Artist) GenreList() []string {
	return SplitGenres(a.Genres)
}

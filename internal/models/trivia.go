package models

import "github.com/uptrace/bun"

type Question struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	Question   string `bun:"question,notnull" json:"question"`
	Answer     string `bun:"answer,notnull" json:"answer"`
	Category   string `bun:"category" json:"category"`
	Difficulty int    `bun:"difficulty" json:"difficulty"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Type string `bun:"type,notnull" json:"type"`
}

// CategoryMap is the id -> type mapping the trivia API returns.
type CategoryMap map[string]string

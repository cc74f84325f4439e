package database

import (
	"strings"
	"unicode"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// WhereContains narrows q to rows whose column contains term, ignoring case.
// LIKE wildcards in term match literally. SQLite's LOWER only folds ASCII,
// so for a non-ASCII term on SQLite q is returned untouched and the bool is
// false: the caller filters the scanned rows with ContainsFold instead.
func WhereContains(q *bun.SelectQuery, column, term string) (*bun.SelectQuery, bool) {
	pattern := "%" + likeEscaper.Replace(term) + "%"

	switch q.Dialect().Name() {
	case dialect.PG:
		return q.Where(column+" ILIKE ? ESCAPE '!'", pattern), true
	case dialect.SQLite:
		if !isASCII(term) {
			return q, false
		}
	}
	return q.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '!'", pattern), true
}

// ContainsFold reports whether s contains term under Unicode case folding.
func ContainsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

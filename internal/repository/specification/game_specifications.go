package specification

import (
	"strings"

	"gorm.io/gorm"
)

// NameContains matches a case-insensitive substring of the game name.
type NameContains struct {
	Query string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(s.Query))
	return db.Where(`LOWER(games.name) LIKE ? ESCAPE '\'`, "%"+escaped+"%")
}

type ByGenre struct {
	Genre string
}

func (s ByGenre) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("games.genre = ?", strings.ToLower(s.Genre))
}

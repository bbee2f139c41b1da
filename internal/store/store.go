package store

import "github.com/jmoiron/sqlx"

// Store bundles the repositories the dispatcher needs, all sharing one
// database handle. Constructed once at startup and injected.
type Store struct {
	Lists      *DBListRepository
	Words      *DBWordRepository
	Stats      *DBStatsRepository
	Searches   *DBSearchRepository
	Settings   *DBSettingsRepository
	Dictionary *DBDictionaryRepository
}

// New creates a Store over db.
func New(db *sqlx.DB) *Store {
	return &Store{
		Lists:      NewDBListRepository(db),
		Words:      NewDBWordRepository(db),
		Stats:      NewDBStatsRepository(db),
		Searches:   NewDBSearchRepository(db),
		Settings:   NewDBSettingsRepository(db),
		Dictionary: NewDBDictionaryRepository(db),
	}
}

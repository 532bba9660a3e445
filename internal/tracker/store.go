package tracker

import "context"

// Store is the persistence interface for the catalog and the log
// ledger. The SQLite implementation lives in internal/database.
//
// Lookup methods return (nil, nil) when the row does not exist; list
// methods return an empty slice. Only real storage failures error.
type Store interface {
	// Catalog
	InsertFood(f *Food) error
	FindFoodByID(id string) (*Food, error)
	FindFoodBySource(source FoodSource, sourceID string) (*Food, error)
	UpdateExternalFood(id string, nameMN, nameEN string, per Per100g) error
	ListFoodsWithAliases() ([]*FoodWithAliases, error)
	InsertAlias(foodID, alias, lang string) error
	InsertPortion(p *Portion) error
	ListPortionsByFood(foodID string) ([]*Portion, error)
	FindPortionByID(id string) (*Portion, error)

	// Seeding. Safe to call on every start: inserts missing seed foods
	// and missing aliases for existing ones, never overwrites.
	Seed() error

	// Ledger
	InsertLog(e *LogEntry) error
	ListLogsByDay(userID string, date Date) ([]*LogEntry, error)
	ListLogsForRange(userID string, start, end Date) ([]*LogEntry, error)
	DeleteLog(id string) error
	CopyLogs(userID string, from, to Date) (int, error)
	ListRecentFoods(userID string, limit int) ([]*RecentFood, error)
	ListLogDates(userID string) ([]Date, error)

	Close() error
}

// NutritionLookup is the external food-composition collaborator. Its
// only contract with this engine is to produce a Food-shaped record
// per external identifier. A (nil, nil) return means "no result" and
// is a normal outcome, not an error.
type NutritionLookup interface {
	Lookup(ctx context.Context, query string) (*ExternalFood, error)
}

package tracker

import "time"

// FoodSource identifies where a catalog entry came from.
type FoodSource string

const (
	SourceCustom FoodSource = "custom" // user-entered or seed food
	SourceUSDA   FoodSource = "usda"   // backed by a FoodData Central record
	SourceRecipe FoodSource = "recipe" // derived from a recipe
)

// Meal is the slot a log entry is bucketed under.
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnack     Meal = "snack"
)

// UnitMode records how the user entered the amount: raw grams or a
// named portion multiplied by a count.
type UnitMode string

const (
	UnitGrams   UnitMode = "grams"
	UnitPortion UnitMode = "portion"
)

// Per100g holds a food's macro values per 100 grams.
// These are frozen into log entries at logging time and must never be
// edited in place once logs reference the food.
type Per100g struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// Totals holds scaled macro totals for a logged amount.
type Totals struct {
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// Food is a catalog entry.
type Food struct {
	ID        string
	Source    FoodSource
	SourceID  string // external identifier, empty for custom foods
	NameMN    string // Mongolian display name
	NameEN    string // optional English name
	Per100g   Per100g
	CreatedAt time.Time
}

// Alias is an alternate search string for a food. Aliases are stored
// lowercased; uniqueness is on (food, alias).
type Alias struct {
	ID     string
	FoodID string
	Alias  string
	Lang   string // "mn" or "en"
}

// Portion is a named serving size for a food, e.g. "1 ширхэг" = 50 g.
// At most one portion per food is the default; with no portions the
// implicit default is 100 g.
type Portion struct {
	ID        string
	FoodID    string
	LabelMN   string
	Grams     float64
	IsDefault bool
}

// LogMetadata is the optional recipe-provenance side channel on a log
// entry. Stored as JSON in the metadata column.
type LogMetadata struct {
	RecipeID int64  `json:"recipe_id"`
	ImageURL string `json:"image_url"`
}

// LogEntry is an immutable record of a food consumed on a given day.
// GramsTotal and the macro totals are a point-in-time snapshot: they
// never recompute from the food's current per-100g values.
type LogEntry struct {
	ID            string
	UserID        string
	FoodID        string
	LoggedAt      time.Time
	LogDate       Date
	Meal          Meal
	UnitMode      UnitMode
	Quantity      float64
	PortionID     string // empty when logged in grams
	PortionLabel  string
	GramsTotal    float64
	Totals        Totals
	Metadata      *LogMetadata
	FoodNameMN    string // joined display name, populated by list queries
}

// FoodWithAliases pairs a food with its lowercased alias strings for
// the search engine.
type FoodWithAliases struct {
	Food    *Food
	Aliases []string
}

// RecentFood is a de-duplicated "recently logged" catalog entry.
type RecentFood struct {
	FoodID  string
	NameMN  string
	NameEN  string
	Per100g Per100g
}

// ExternalFood is a Food-shaped record produced by an external
// nutrition lookup, keyed by its source identifier.
type ExternalFood struct {
	SourceID string
	NameEN   string
	Per100g  Per100g
}

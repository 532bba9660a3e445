package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultUserID tags ledger rows for the single on-device user.
const DefaultUserID = "local-user"

// Service is the orchestration layer over the catalog store and the
// log ledger. All nutrition totals flow through the nutrition math in
// this package; no caller re-derives them.
type Service struct {
	store    Store
	lookup   NutritionLookup // nil disables the external fallback
	logger   Logger
	clock    Clock
	idgen    IDGenerator
	validate *validator.Validate
	userID   string
}

// NewService creates a Service with the provided dependencies.
// lookup may be nil; search then never falls back to an external API.
func NewService(store Store, lookup NutritionLookup, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:    store,
		lookup:   lookup,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		validate: validator.New(),
		userID:   DefaultUserID,
	}
}

// Search ranks catalog foods against a free-text query. An empty or
// whitespace-only query returns an empty list without touching the
// store.
func (s *Service) Search(query string) ([]*Food, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	candidates, err := s.store.ListFoodsWithAliases()
	if err != nil {
		return nil, fmt.Errorf("loading search candidates: %w", err)
	}
	return SearchFoods(query, candidates), nil
}

// SearchWithFallback searches locally first; on an empty result it
// consults the external nutrition lookup, caches the top hit in the
// catalog, and returns it. Every fallback miss (no lookup configured,
// no mapping, lookup failure, nothing extractable) degrades to an
// empty list — observable via the debug log, never an error. Storage
// failures while caching still propagate.
func (s *Service) SearchWithFallback(ctx context.Context, query string) ([]*Food, error) {
	local, err := s.Search(query)
	if err != nil || len(local) > 0 {
		return local, err
	}

	if s.lookup == nil {
		s.logger.Debug("external lookup disabled, returning empty result", "query", query)
		return nil, nil
	}

	ext, err := s.lookup.Lookup(ctx, query)
	if err != nil {
		s.logger.Debug("external lookup failed, returning empty result", "query", query, "error", err)
		return nil, nil
	}
	if ext == nil {
		s.logger.Debug("external lookup found nothing", "query", query)
		return nil, nil
	}

	food, err := s.UpsertExternalFood(strings.TrimSpace(query), ext)
	if err != nil {
		return nil, fmt.Errorf("caching external food: %w", err)
	}
	return []*Food{food}, nil
}

// LogFoodParams describes one logging action.
type LogFoodParams struct {
	FoodID   string
	Date     Date
	Meal     Meal
	Amount   Amount
	Metadata *LogMetadata
}

// logPayload is the flat shape validated before any write.
type logPayload struct {
	FoodID     string  `validate:"required"`
	LogDate    string  `validate:"required,datetime=2006-01-02"`
	Meal       string  `validate:"required,oneof=breakfast lunch dinner snack"`
	UnitMode   string  `validate:"required,oneof=grams portion"`
	Quantity   float64 `validate:"gt=0"`
	GramsTotal float64 `validate:"gte=0"`
	Calories   float64 `validate:"gte=0"`
	ProteinG   float64 `validate:"gte=0"`
	CarbsG     float64 `validate:"gte=0"`
	FatG       float64 `validate:"gte=0"`
}

// LogFood resolves the amount to grams, scales the food's per-100g
// macros, validates the resulting payload and persists it. The stored
// totals are a frozen snapshot; later food edits never alter them.
func (s *Service) LogFood(p LogFoodParams) (*LogEntry, error) {
	if p.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", ErrValidation)
	}

	food, err := s.store.FindFoodByID(p.FoodID)
	if err != nil {
		return nil, fmt.Errorf("loading food: %w", err)
	}
	if food == nil {
		return nil, fmt.Errorf("food %s: %w", p.FoodID, ErrNotFound)
	}

	var (
		quantity     float64
		portionID    string
		portionLabel string
	)
	switch a := p.Amount.(type) {
	case Grams:
		quantity = a.Input
		portionLabel = "г"
	case PortionAmount:
		quantity = a.Quantity
		portionID = a.PortionID
		portionLabel = a.Label
	}

	gramsTotal := GramsTotal(p.Amount)
	totals := Scale(food.Per100g, gramsTotal)

	payload := logPayload{
		FoodID:     p.FoodID,
		LogDate:    string(p.Date),
		Meal:       string(p.Meal),
		UnitMode:   string(p.Amount.Mode()),
		Quantity:   quantity,
		GramsTotal: gramsTotal,
		Calories:   totals.Calories,
		ProteinG:   totals.ProteinG,
		CarbsG:     totals.CarbsG,
		FatG:       totals.FatG,
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	entry := &LogEntry{
		ID:           s.idgen.New(),
		UserID:       s.userID,
		FoodID:       p.FoodID,
		LoggedAt:     s.clock.Now(),
		LogDate:      p.Date,
		Meal:         p.Meal,
		UnitMode:     p.Amount.Mode(),
		Quantity:     quantity,
		PortionID:    portionID,
		PortionLabel: portionLabel,
		GramsTotal:   gramsTotal,
		Totals:       totals,
		Metadata:     p.Metadata,
		FoodNameMN:   food.NameMN,
	}
	if err := s.store.InsertLog(entry); err != nil {
		return nil, fmt.Errorf("inserting log: %w", err)
	}

	s.logger.Info("food logged", "food", food.NameMN, "date", p.Date, "meal", p.Meal, "grams", gramsTotal)
	return entry, nil
}

// LogsByDay returns all logs for one civil date, joined with the
// food's display name, ordered by logging time ascending.
func (s *Service) LogsByDay(date Date) ([]*LogEntry, error) {
	return s.store.ListLogsByDay(s.userID, date)
}

// LogsForRange returns logs for the inclusive date range, ordered by
// (date, logging time).
func (s *Service) LogsForRange(start, end Date) ([]*LogEntry, error) {
	return s.store.ListLogsForRange(s.userID, start, end)
}

// DeleteLog hard-deletes a log entry. Deleting an id that does not
// exist is a no-op.
func (s *Service) DeleteLog(id string) error {
	return s.store.DeleteLog(id)
}

// CopyDay re-logs every entry from one day onto another with fresh
// identifiers and timestamps but identical snapshots. Returns the
// number copied; zero means the source day was empty, not an error.
func (s *Service) CopyDay(from, to Date) (int, error) {
	n, err := s.store.CopyLogs(s.userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("copying logs from %s to %s: %w", from, to, err)
	}
	if n > 0 {
		s.logger.Info("day copied", "from", from, "to", to, "count", n)
	}
	return n, nil
}

// RecentFoods returns distinct foods ordered by most recent log,
// capped at limit.
func (s *Service) RecentFoods(limit int) ([]*RecentFood, error) {
	return s.store.ListRecentFoods(s.userID, limit)
}

// Streak counts consecutive logged days ending at today. A day with
// no log today means the streak is 0.
func (s *Service) Streak(today Date) (int, error) {
	dates, err := s.store.ListLogDates(s.userID)
	if err != nil {
		return 0, fmt.Errorf("loading log dates: %w", err)
	}
	set := make(map[Date]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	count := 0
	for d := today; set[d]; d = d.AddDays(-1) {
		count++
	}
	return count, nil
}

// FoodByID loads one catalog entry.
func (s *Service) FoodByID(id string) (*Food, error) {
	food, err := s.store.FindFoodByID(id)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, fmt.Errorf("food %s: %w", id, ErrNotFound)
	}
	return food, nil
}

// FoodPortions lists a food's portions, default first.
func (s *Service) FoodPortions(foodID string) ([]*Portion, error) {
	return s.store.ListPortionsByFood(foodID)
}

// PortionByID loads one portion.
func (s *Service) PortionByID(id string) (*Portion, error) {
	portion, err := s.store.FindPortionByID(id)
	if err != nil {
		return nil, err
	}
	if portion == nil {
		return nil, fmt.Errorf("portion %s: %w", id, ErrNotFound)
	}
	return portion, nil
}

// CustomFoodParams describes a user-entered catalog entry.
type CustomFoodParams struct {
	NameMN   string  `validate:"required"`
	NameEN   string
	Calories float64 `validate:"gte=0"`
	ProteinG float64 `validate:"gte=0"`
	CarbsG   float64 `validate:"gte=0"`
	FatG     float64 `validate:"gte=0"`
	Portions []CustomPortion
}

// CustomPortion is one named serving size on a custom food.
type CustomPortion struct {
	LabelMN   string
	Grams     float64
	IsDefault bool
}

// CreateCustomFood inserts a user-entered food with a lowercased name
// alias and its portions. With no portions given, 100г (default) and
// 1 ширхэг are created.
func (s *Service) CreateCustomFood(p CustomFoodParams) (*Food, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	nameEN := p.NameEN
	if nameEN == "" {
		nameEN = p.NameMN
	}
	food := &Food{
		ID:        s.idgen.New(),
		Source:    SourceCustom,
		NameMN:    p.NameMN,
		NameEN:    nameEN,
		Per100g:   Per100g{Calories: p.Calories, ProteinG: p.ProteinG, CarbsG: p.CarbsG, FatG: p.FatG},
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.InsertFood(food); err != nil {
		return nil, fmt.Errorf("inserting food: %w", err)
	}
	if err := s.store.InsertAlias(food.ID, strings.ToLower(strings.TrimSpace(p.NameMN)), "mn"); err != nil {
		return nil, fmt.Errorf("inserting name alias: %w", err)
	}

	portions := p.Portions
	if len(portions) == 0 {
		portions = []CustomPortion{
			{LabelMN: "100г", Grams: 100, IsDefault: true},
			{LabelMN: "1 ширхэг", Grams: 100},
		}
	}
	for _, cp := range portions {
		portion := &Portion{
			ID:        s.idgen.New(),
			FoodID:    food.ID,
			LabelMN:   cp.LabelMN,
			Grams:     cp.Grams,
			IsDefault: cp.IsDefault,
		}
		if err := s.store.InsertPortion(portion); err != nil {
			return nil, fmt.Errorf("inserting portion: %w", err)
		}
	}

	s.logger.Info("custom food created", "food", food.NameMN, "id", food.ID)
	return food, nil
}

// UpsertExternalFood caches an externally looked-up food exactly once
// per source identifier. An existing row gets its English name and
// macros refreshed; a new row is inserted with mn/en aliases and a
// default 100г portion.
func (s *Service) UpsertExternalFood(queryMN string, ext *ExternalFood) (*Food, error) {
	existing, err := s.store.FindFoodBySource(SourceUSDA, ext.SourceID)
	if err != nil {
		return nil, fmt.Errorf("finding external food: %w", err)
	}

	if existing != nil {
		if err := s.store.UpdateExternalFood(existing.ID, existing.NameMN, ext.NameEN, ext.Per100g); err != nil {
			return nil, fmt.Errorf("updating external food: %w", err)
		}
		return s.store.FindFoodByID(existing.ID)
	}

	food := &Food{
		ID:        s.idgen.New(),
		Source:    SourceUSDA,
		SourceID:  ext.SourceID,
		NameMN:    queryMN,
		NameEN:    ext.NameEN,
		Per100g:   ext.Per100g,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.InsertFood(food); err != nil {
		return nil, fmt.Errorf("inserting external food: %w", err)
	}
	if err := s.store.InsertAlias(food.ID, strings.ToLower(queryMN), "mn"); err != nil {
		return nil, fmt.Errorf("inserting mn alias: %w", err)
	}
	if err := s.store.InsertAlias(food.ID, strings.ToLower(ext.NameEN), "en"); err != nil {
		return nil, fmt.Errorf("inserting en alias: %w", err)
	}
	portion := &Portion{
		ID:        s.idgen.New(),
		FoodID:    food.ID,
		LabelMN:   "100г",
		Grams:     100,
		IsDefault: true,
	}
	if err := s.store.InsertPortion(portion); err != nil {
		return nil, fmt.Errorf("inserting default portion: %w", err)
	}

	s.logger.Info("external food cached", "source_id", ext.SourceID, "name", ext.NameEN)
	return food, nil
}

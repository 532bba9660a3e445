package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/database/migrations"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the tracker.Store interface using SQLite.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	clock tracker.Clock
	idgen tracker.IDGenerator
}

// NewSQLiteStore opens a SQLite database at path, runs pending
// migrations and returns the store. path can be a file path or
// ":memory:". Initialization is idempotent; it runs on every start.
// clock and idgen may be nil for the real implementations.
func NewSQLiteStore(path string, clock tracker.Clock, idgen tracker.IDGenerator) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return NewSQLiteStoreFromDB(db, clock, idgen, path), nil
}

// NewSQLiteStoreFromDB wraps an existing connection. The caller is
// responsible for the connection being configured and migrated.
func NewSQLiteStoreFromDB(db *sql.DB, clock tracker.Clock, idgen tracker.IDGenerator, path string) *SQLiteStore {
	if clock == nil {
		clock = tracker.RealClock{}
	}
	if idgen == nil {
		idgen = tracker.UUIDGenerator{}
	}
	return &SQLiteStore{db: db, path: path, clock: clock, idgen: idgen}
}

// OpenConnection opens and configures a SQLite connection with the
// appropriate PRAGMAs. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Food operations

const foodColumns = `id, source, COALESCE(source_id, ''), name_mn, COALESCE(name_en, ''),
	calories_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g, created_at`

func (s *SQLiteStore) InsertFood(f *tracker.Food) error {
	_, err := s.db.Exec(
		`INSERT INTO foods (id, source, source_id, name_mn, name_en,
			calories_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, string(f.Source), nullable(f.SourceID), f.NameMN, nullable(f.NameEN),
		f.Per100g.Calories, f.Per100g.ProteinG, f.Per100g.CarbsG, f.Per100g.FatG, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting food: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindFoodByID(id string) (*tracker.Food, error) {
	row := s.db.QueryRow(`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id)
	food, err := scanFood(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding food by id: %w", err)
	}
	return food, nil
}

func (s *SQLiteStore) FindFoodBySource(source tracker.FoodSource, sourceID string) (*tracker.Food, error) {
	row := s.db.QueryRow(
		`SELECT `+foodColumns+` FROM foods WHERE source = ? AND source_id = ?`,
		string(source), sourceID,
	)
	food, err := scanFood(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding food by source: %w", err)
	}
	return food, nil
}

// UpdateExternalFood refreshes the names and per-100g macros of an
// externally sourced row. Custom foods are never updated this way:
// their per-100g values are immutable once logs reference them.
func (s *SQLiteStore) UpdateExternalFood(id string, nameMN, nameEN string, per tracker.Per100g) error {
	_, err := s.db.Exec(
		`UPDATE foods SET name_mn = ?, name_en = ?,
			calories_per_100g = ?, protein_g_per_100g = ?, carbs_g_per_100g = ?, fat_g_per_100g = ?
		 WHERE id = ? AND source != 'custom'`,
		nameMN, nullable(nameEN), per.Calories, per.ProteinG, per.CarbsG, per.FatG, id,
	)
	if err != nil {
		return fmt.Errorf("updating external food: %w", err)
	}
	return nil
}

// ListFoodsWithAliases returns the full foods×aliases join in catalog
// insertion order. The dataset is hundreds of rows; the search engine
// filters and ranks it in memory.
func (s *SQLiteStore) ListFoodsWithAliases() ([]*tracker.FoodWithAliases, error) {
	rows, err := s.db.Query(
		`SELECT ` + foodColumnsPrefixed + `, COALESCE(a.alias, '')
		 FROM foods f
		 LEFT JOIN food_aliases a ON a.food_id = f.id
		 ORDER BY f.rowid, a.rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing foods with aliases: %w", err)
	}
	defer rows.Close()

	var result []*tracker.FoodWithAliases
	index := make(map[string]*tracker.FoodWithAliases)
	for rows.Next() {
		var f tracker.Food
		var alias string
		if err := rows.Scan(
			&f.ID, &f.Source, &f.SourceID, &f.NameMN, &f.NameEN,
			&f.Per100g.Calories, &f.Per100g.ProteinG, &f.Per100g.CarbsG, &f.Per100g.FatG,
			&f.CreatedAt, &alias,
		); err != nil {
			return nil, fmt.Errorf("scanning food row: %w", err)
		}

		entry, ok := index[f.ID]
		if !ok {
			food := f
			entry = &tracker.FoodWithAliases{Food: &food}
			index[f.ID] = entry
			result = append(result, entry)
		}
		if alias != "" {
			entry.Aliases = append(entry.Aliases, alias)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating food rows: %w", err)
	}
	return result, nil
}

// InsertAlias adds an alias, ignoring duplicates on (food, alias).
func (s *SQLiteStore) InsertAlias(foodID, alias, lang string) error {
	if alias == "" {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO food_aliases (id, food_id, alias, lang) VALUES (?, ?, ?, ?)`,
		s.idgen.New(), foodID, alias, lang,
	)
	if err != nil {
		return fmt.Errorf("inserting alias: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertPortion(p *tracker.Portion) error {
	_, err := s.db.Exec(
		`INSERT INTO food_portions (id, food_id, label_mn, grams, is_default) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.FoodID, p.LabelMN, p.Grams, boolToInt(p.IsDefault),
	)
	if err != nil {
		return fmt.Errorf("inserting portion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListPortionsByFood(foodID string) ([]*tracker.Portion, error) {
	rows, err := s.db.Query(
		`SELECT id, food_id, label_mn, grams, is_default
		 FROM food_portions WHERE food_id = ? ORDER BY is_default DESC, grams ASC`,
		foodID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing portions: %w", err)
	}
	defer rows.Close()

	var result []*tracker.Portion
	for rows.Next() {
		var p tracker.Portion
		var isDefault int
		if err := rows.Scan(&p.ID, &p.FoodID, &p.LabelMN, &p.Grams, &isDefault); err != nil {
			return nil, fmt.Errorf("scanning portion row: %w", err)
		}
		p.IsDefault = isDefault != 0
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portion rows: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) FindPortionByID(id string) (*tracker.Portion, error) {
	var p tracker.Portion
	var isDefault int
	err := s.db.QueryRow(
		`SELECT id, food_id, label_mn, grams, is_default FROM food_portions WHERE id = ?`, id,
	).Scan(&p.ID, &p.FoodID, &p.LabelMN, &p.Grams, &isDefault)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding portion by id: %w", err)
	}
	p.IsDefault = isDefault != 0
	return &p, nil
}

// Log operations

func (s *SQLiteStore) InsertLog(e *tracker.LogEntry) error {
	var metadata any
	if e.Metadata != nil {
		encoded, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("encoding log metadata: %w", err)
		}
		metadata = string(encoded)
	}

	_, err := s.db.Exec(
		`INSERT INTO food_logs (id, user_id, food_id, logged_at, log_date, meal, unit_mode,
			quantity, portion_id, portion_label_mn, grams_total, calories, protein_g, carbs_g, fat_g, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.FoodID, e.LoggedAt, string(e.LogDate), string(e.Meal), string(e.UnitMode),
		e.Quantity, nullable(e.PortionID), e.PortionLabel, e.GramsTotal,
		e.Totals.Calories, e.Totals.ProteinG, e.Totals.CarbsG, e.Totals.FatG, metadata,
	)
	if err != nil {
		return fmt.Errorf("inserting log: %w", err)
	}
	return nil
}

const logColumns = `l.id, l.user_id, l.food_id, l.logged_at, l.log_date, l.meal, l.unit_mode,
	l.quantity, COALESCE(l.portion_id, ''), l.portion_label_mn, l.grams_total,
	l.calories, l.protein_g, l.carbs_g, l.fat_g, COALESCE(l.metadata, ''), f.name_mn`

func (s *SQLiteStore) ListLogsByDay(userID string, date tracker.Date) ([]*tracker.LogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+logColumns+` FROM food_logs l JOIN foods f ON f.id = l.food_id
		 WHERE l.user_id = ? AND l.log_date = ? ORDER BY l.logged_at ASC`,
		userID, string(date),
	)
	if err != nil {
		return nil, fmt.Errorf("listing logs by day: %w", err)
	}
	defer rows.Close()
	return collectLogs(rows)
}

func (s *SQLiteStore) ListLogsForRange(userID string, start, end tracker.Date) ([]*tracker.LogEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+logColumns+` FROM food_logs l JOIN foods f ON f.id = l.food_id
		 WHERE l.user_id = ? AND l.log_date >= ? AND l.log_date <= ?
		 ORDER BY l.log_date ASC, l.logged_at ASC`,
		userID, string(start), string(end),
	)
	if err != nil {
		return nil, fmt.Errorf("listing logs for range: %w", err)
	}
	defer rows.Close()
	return collectLogs(rows)
}

// DeleteLog removes a log entry. Deleting a non-existent id is a no-op.
func (s *SQLiteStore) DeleteLog(id string) error {
	if _, err := s.db.Exec(`DELETE FROM food_logs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting log: %w", err)
	}
	return nil
}

// CopyLogs re-inserts every log from one day onto another in a single
// transaction: fresh identifiers and logging timestamps, identical
// food/quantity/macro snapshots. Returns the number copied.
func (s *SQLiteStore) CopyLogs(userID string, from, to tracker.Date) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(
		`SELECT food_id, meal, unit_mode, quantity, portion_id, portion_label_mn,
			grams_total, calories, protein_g, carbs_g, fat_g, metadata
		 FROM food_logs WHERE user_id = ? AND log_date = ? ORDER BY logged_at ASC`,
		userID, string(from),
	)
	if err != nil {
		return 0, fmt.Errorf("reading source logs: %w", err)
	}

	type sourceLog struct {
		foodID, meal, unitMode, portionLabel string
		portionID, metadata                  sql.NullString
		quantity, gramsTotal                 float64
		calories, proteinG, carbsG, fatG     float64
	}
	var sources []sourceLog
	for rows.Next() {
		var l sourceLog
		if err := rows.Scan(&l.foodID, &l.meal, &l.unitMode, &l.quantity, &l.portionID,
			&l.portionLabel, &l.gramsTotal, &l.calories, &l.proteinG, &l.carbsG, &l.fatG, &l.metadata); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning source log: %w", err)
		}
		sources = append(sources, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating source logs: %w", err)
	}

	now := s.clock.Now()
	for _, l := range sources {
		_, err := tx.Exec(
			`INSERT INTO food_logs (id, user_id, food_id, logged_at, log_date, meal, unit_mode,
				quantity, portion_id, portion_label_mn, grams_total, calories, protein_g, carbs_g, fat_g, metadata)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.idgen.New(), userID, l.foodID, now, string(to), l.meal, l.unitMode,
			l.quantity, l.portionID, l.portionLabel, l.gramsTotal,
			l.calories, l.proteinG, l.carbsG, l.fatG, l.metadata,
		)
		if err != nil {
			return 0, fmt.Errorf("copying log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(sources), nil
}

// ListRecentFoods returns distinct foods ordered by most recent log.
// De-duplication happens here rather than in SQL so the cap applies
// after duplicates collapse.
func (s *SQLiteStore) ListRecentFoods(userID string, limit int) ([]*tracker.RecentFood, error) {
	rows, err := s.db.Query(
		`SELECT f.id, f.name_mn, COALESCE(f.name_en, ''),
			f.calories_per_100g, f.protein_g_per_100g, f.carbs_g_per_100g, f.fat_g_per_100g
		 FROM food_logs l JOIN foods f ON f.id = l.food_id
		 WHERE l.user_id = ? ORDER BY l.logged_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent foods: %w", err)
	}
	defer rows.Close()

	var result []*tracker.RecentFood
	seen := make(map[string]bool)
	for rows.Next() {
		var r tracker.RecentFood
		if err := rows.Scan(&r.FoodID, &r.NameMN, &r.NameEN,
			&r.Per100g.Calories, &r.Per100g.ProteinG, &r.Per100g.CarbsG, &r.Per100g.FatG); err != nil {
			return nil, fmt.Errorf("scanning recent food: %w", err)
		}
		if seen[r.FoodID] {
			continue
		}
		seen[r.FoodID] = true
		result = append(result, &r)
		if len(result) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent foods: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) ListLogDates(userID string) ([]tracker.Date, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT log_date FROM food_logs WHERE user_id = ? ORDER BY log_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing log dates: %w", err)
	}
	defer rows.Close()

	var dates []tracker.Date
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning log date: %w", err)
		}
		dates = append(dates, tracker.Date(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log dates: %w", err)
	}
	return dates, nil
}

// Path returns the database file path (or ":memory:").
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckStatus(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteStore) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// helpers

const foodColumnsPrefixed = `f.id, f.source, COALESCE(f.source_id, ''), f.name_mn, COALESCE(f.name_en, ''),
	f.calories_per_100g, f.protein_g_per_100g, f.carbs_g_per_100g, f.fat_g_per_100g, f.created_at`

func scanFood(row *sql.Row) (*tracker.Food, error) {
	var f tracker.Food
	err := row.Scan(
		&f.ID, &f.Source, &f.SourceID, &f.NameMN, &f.NameEN,
		&f.Per100g.Calories, &f.Per100g.ProteinG, &f.Per100g.CarbsG, &f.Per100g.FatG, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func collectLogs(rows *sql.Rows) ([]*tracker.LogEntry, error) {
	var result []*tracker.LogEntry
	for rows.Next() {
		var e tracker.LogEntry
		var logDate, meal, unitMode, metadata string
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.FoodID, &e.LoggedAt, &logDate, &meal, &unitMode,
			&e.Quantity, &e.PortionID, &e.PortionLabel, &e.GramsTotal,
			&e.Totals.Calories, &e.Totals.ProteinG, &e.Totals.CarbsG, &e.Totals.FatG,
			&metadata, &e.FoodNameMN,
		); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		e.LogDate = tracker.Date(logDate)
		e.Meal = tracker.Meal(meal)
		e.UnitMode = tracker.UnitMode(unitMode)
		if metadata != "" {
			var m tracker.LogMetadata
			if err := json.Unmarshal([]byte(metadata), &m); err != nil {
				return nil, fmt.Errorf("decoding log metadata: %w", err)
			}
			e.Metadata = &m
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log rows: %w", err)
	}
	return result, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Compile-time check that SQLiteStore implements tracker.Store
var _ tracker.Store = (*SQLiteStore)(nil)

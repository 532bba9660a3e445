package database

import "fmt"

// Seed installs the built-in food catalog. It heals forward: missing
// foods are inserted, and foods that already exist get any aliases or
// portions added since they were first seeded. Existing rows are never
// overwritten, so user edits and log references stay intact.
func (s *SQLiteStore) Seed() error {
	for _, sf := range seedFoods {
		foodID := "seed-" + sf.key

		existing, err := s.FindFoodByID(foodID)
		if err != nil {
			return fmt.Errorf("checking seed food %s: %w", sf.key, err)
		}
		if existing == nil {
			_, err := s.db.Exec(
				`INSERT OR IGNORE INTO foods (id, source, source_id, name_mn, name_en,
					calories_per_100g, protein_g_per_100g, carbs_g_per_100g, fat_g_per_100g, created_at)
				 VALUES (?, 'custom', NULL, ?, ?, ?, ?, ?, ?, ?)`,
				foodID, sf.nameMN, nullable(sf.nameEN),
				sf.per.Calories, sf.per.ProteinG, sf.per.CarbsG, sf.per.FatG, s.clock.Now(),
			)
			if err != nil {
				return fmt.Errorf("seeding food %s: %w", sf.key, err)
			}
		}

		for _, alias := range sf.aliasesMN {
			if err := s.InsertAlias(foodID, alias, "mn"); err != nil {
				return fmt.Errorf("seeding alias for %s: %w", sf.key, err)
			}
		}
		for _, alias := range sf.aliasesEN {
			if err := s.InsertAlias(foodID, alias, "en"); err != nil {
				return fmt.Errorf("seeding alias for %s: %w", sf.key, err)
			}
		}

		for i, p := range sf.portions {
			portionID := fmt.Sprintf("seed-%s-p%d", sf.key, i+1)
			_, err := s.db.Exec(
				`INSERT OR IGNORE INTO food_portions (id, food_id, label_mn, grams, is_default)
				 VALUES (?, ?, ?, ?, ?)`,
				portionID, foodID, p.labelMN, p.grams, boolToInt(p.isDefault),
			)
			if err != nil {
				return fmt.Errorf("seeding portion for %s: %w", sf.key, err)
			}
		}
	}
	return nil
}

package database_test

import (
	"testing"
	"time"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/testutil"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

func fixedTime() time.Time {
	return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
}

func insertFood(t *testing.T, store tracker.Store, id, nameMN string) *tracker.Food {
	t.Helper()
	food := &tracker.Food{
		ID:        id,
		Source:    tracker.SourceCustom,
		NameMN:    nameMN,
		NameEN:    nameMN,
		Per100g:   tracker.Per100g{Calories: 100, ProteinG: 10, CarbsG: 5, FatG: 2},
		CreatedAt: fixedTime(),
	}
	if err := store.InsertFood(food); err != nil {
		t.Fatalf("InsertFood() error = %v", err)
	}
	return food
}

func TestSQLiteStore_Foods(t *testing.T) {
	t.Run("insert and find by id", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		got, err := store.FindFoodByID("f1")
		if err != nil {
			t.Fatalf("FindFoodByID() error = %v", err)
		}
		if got == nil {
			t.Fatal("FindFoodByID() = nil, want food")
		}
		if got.NameMN != "Бууз" {
			t.Errorf("NameMN = %q, want Бууз", got.NameMN)
		}
	})

	t.Run("missing food returns nil without error", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		got, err := store.FindFoodByID("missing")
		if err != nil {
			t.Fatalf("FindFoodByID() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindFoodByID() = %+v, want nil", got)
		}
	})

	t.Run("find by source", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		food := &tracker.Food{
			ID: "ext1", Source: tracker.SourceUSDA, SourceID: "171688",
			NameMN: "алим", NameEN: "Apple",
			Per100g:   tracker.Per100g{Calories: 52},
			CreatedAt: fixedTime(),
		}
		if err := store.InsertFood(food); err != nil {
			t.Fatalf("InsertFood() error = %v", err)
		}

		got, err := store.FindFoodBySource(tracker.SourceUSDA, "171688")
		if err != nil {
			t.Fatalf("FindFoodBySource() error = %v", err)
		}
		if got == nil || got.ID != "ext1" {
			t.Fatalf("FindFoodBySource() = %+v, want ext1", got)
		}

		none, err := store.FindFoodBySource(tracker.SourceUSDA, "999")
		if err != nil {
			t.Fatalf("FindFoodBySource() error = %v", err)
		}
		if none != nil {
			t.Errorf("FindFoodBySource(unknown) = %+v, want nil", none)
		}
	})

	t.Run("update never touches custom foods", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		err := store.UpdateExternalFood("f1", "changed", "Changed", tracker.Per100g{Calories: 1})
		if err != nil {
			t.Fatalf("UpdateExternalFood() error = %v", err)
		}

		got, _ := store.FindFoodByID("f1")
		if got.NameMN != "Бууз" {
			t.Errorf("custom food was updated: NameMN = %q", got.NameMN)
		}
	})

	t.Run("aliases are grouped per food", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")
		insertFood(t, store, "f2", "Банш")
		for _, a := range []string{"бууз", "buuz"} {
			if err := store.InsertAlias("f1", a, "mn"); err != nil {
				t.Fatalf("InsertAlias() error = %v", err)
			}
		}

		foods, err := store.ListFoodsWithAliases()
		if err != nil {
			t.Fatalf("ListFoodsWithAliases() error = %v", err)
		}
		if len(foods) != 2 {
			t.Fatalf("ListFoodsWithAliases() = %d foods, want 2", len(foods))
		}
		if foods[0].Food.ID != "f1" || len(foods[0].Aliases) != 2 {
			t.Errorf("f1 aliases = %v, want 2", foods[0].Aliases)
		}
		if len(foods[1].Aliases) != 0 {
			t.Errorf("f2 aliases = %v, want none", foods[1].Aliases)
		}
	})

	t.Run("duplicate alias is ignored", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		if err := store.InsertAlias("f1", "buuz", "en"); err != nil {
			t.Fatalf("InsertAlias() error = %v", err)
		}
		if err := store.InsertAlias("f1", "buuz", "en"); err != nil {
			t.Fatalf("second InsertAlias() error = %v", err)
		}

		foods, _ := store.ListFoodsWithAliases()
		if len(foods[0].Aliases) != 1 {
			t.Errorf("aliases = %v, want exactly one", foods[0].Aliases)
		}
	})
}

func TestSQLiteStore_Portions(t *testing.T) {
	store := testutil.NewTestStore(t)
	insertFood(t, store, "f1", "Бууз")

	portions := []*tracker.Portion{
		{ID: "p1", FoodID: "f1", LabelMN: "100г", Grams: 100},
		{ID: "p2", FoodID: "f1", LabelMN: "1 ширхэг", Grams: 55, IsDefault: true},
	}
	for _, p := range portions {
		if err := store.InsertPortion(p); err != nil {
			t.Fatalf("InsertPortion() error = %v", err)
		}
	}

	got, err := store.ListPortionsByFood("f1")
	if err != nil {
		t.Fatalf("ListPortionsByFood() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPortionsByFood() = %d, want 2", len(got))
	}
	if got[0].ID != "p2" {
		t.Errorf("first portion = %s, want the default p2", got[0].ID)
	}

	one, err := store.FindPortionByID("p1")
	if err != nil {
		t.Fatalf("FindPortionByID() error = %v", err)
	}
	if one == nil || one.Grams != 100 {
		t.Errorf("FindPortionByID() = %+v", one)
	}

	none, err := store.FindPortionByID("missing")
	if err != nil {
		t.Fatalf("FindPortionByID() error = %v", err)
	}
	if none != nil {
		t.Errorf("FindPortionByID(missing) = %+v, want nil", none)
	}
}

func TestSQLiteStore_Logs(t *testing.T) {
	newLog := func(id string, date tracker.Date, at time.Time) *tracker.LogEntry {
		return &tracker.LogEntry{
			ID:           id,
			UserID:       tracker.DefaultUserID,
			FoodID:       "f1",
			LoggedAt:     at,
			LogDate:      date,
			Meal:         tracker.MealLunch,
			UnitMode:     tracker.UnitGrams,
			Quantity:     100,
			PortionLabel: "г",
			GramsTotal:   100,
			Totals:       tracker.Totals{Calories: 100, ProteinG: 10, CarbsG: 5, FatG: 2},
		}
	}

	t.Run("list by day joins the food name", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		if err := store.InsertLog(newLog("l1", "2024-01-15", fixedTime())); err != nil {
			t.Fatalf("InsertLog() error = %v", err)
		}
		if err := store.InsertLog(newLog("l2", "2024-01-16", fixedTime())); err != nil {
			t.Fatalf("InsertLog() error = %v", err)
		}

		logs, err := store.ListLogsByDay(tracker.DefaultUserID, "2024-01-15")
		if err != nil {
			t.Fatalf("ListLogsByDay() error = %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("ListLogsByDay() = %d, want 1", len(logs))
		}
		if logs[0].FoodNameMN != "Бууз" {
			t.Errorf("FoodNameMN = %q, want Бууз", logs[0].FoodNameMN)
		}
	})

	t.Run("orders a day by logging time", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		later := newLog("l1", "2024-01-15", fixedTime().Add(time.Hour))
		earlier := newLog("l2", "2024-01-15", fixedTime())
		store.InsertLog(later)
		store.InsertLog(earlier)

		logs, err := store.ListLogsByDay(tracker.DefaultUserID, "2024-01-15")
		if err != nil {
			t.Fatalf("ListLogsByDay() error = %v", err)
		}
		if len(logs) != 2 || logs[0].ID != "l2" {
			t.Errorf("order = [%s %s], want l2 first", logs[0].ID, logs[1].ID)
		}
	})

	t.Run("range query is inclusive and date-ordered", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		for i, date := range []tracker.Date{"2024-01-14", "2024-01-15", "2024-01-16", "2024-01-17"} {
			entry := newLog("l"+string(rune('1'+i)), date, fixedTime())
			if err := store.InsertLog(entry); err != nil {
				t.Fatalf("InsertLog() error = %v", err)
			}
		}

		logs, err := store.ListLogsForRange(tracker.DefaultUserID, "2024-01-15", "2024-01-16")
		if err != nil {
			t.Fatalf("ListLogsForRange() error = %v", err)
		}
		if len(logs) != 2 {
			t.Fatalf("ListLogsForRange() = %d, want 2", len(logs))
		}
		if logs[0].LogDate != "2024-01-15" || logs[1].LogDate != "2024-01-16" {
			t.Errorf("dates = [%s %s]", logs[0].LogDate, logs[1].LogDate)
		}
	})

	t.Run("metadata survives the round trip", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		entry := newLog("l1", "2024-01-15", fixedTime())
		entry.Metadata = &tracker.LogMetadata{RecipeID: 42, ImageURL: "file:///tmp/buuz.jpg"}
		if err := store.InsertLog(entry); err != nil {
			t.Fatalf("InsertLog() error = %v", err)
		}

		logs, _ := store.ListLogsByDay(tracker.DefaultUserID, "2024-01-15")
		if logs[0].Metadata == nil {
			t.Fatal("Metadata = nil")
		}
		if logs[0].Metadata.RecipeID != 42 || logs[0].Metadata.ImageURL != "file:///tmp/buuz.jpg" {
			t.Errorf("Metadata = %+v", logs[0].Metadata)
		}
	})

	t.Run("rejects a log for an unknown food", func(t *testing.T) {
		store := testutil.NewTestStore(t)

		if err := store.InsertLog(newLog("l1", "2024-01-15", fixedTime())); err == nil {
			t.Error("InsertLog() with unknown food succeeded, want FK error")
		}
	})

	t.Run("log dates are distinct and newest first", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		insertFood(t, store, "f1", "Бууз")

		for i, date := range []tracker.Date{"2024-01-14", "2024-01-15", "2024-01-15"} {
			store.InsertLog(newLog("l"+string(rune('1'+i)), date, fixedTime()))
		}

		dates, err := store.ListLogDates(tracker.DefaultUserID)
		if err != nil {
			t.Fatalf("ListLogDates() error = %v", err)
		}
		want := []tracker.Date{"2024-01-15", "2024-01-14"}
		if len(dates) != 2 || dates[0] != want[0] || dates[1] != want[1] {
			t.Errorf("ListLogDates() = %v, want %v", dates, want)
		}
	})
}

func TestSQLiteStore_CopyLogs(t *testing.T) {
	store := testutil.NewTestStore(t)
	insertFood(t, store, "f1", "Бууз")

	for i, grams := range []float64{100, 55} {
		entry := &tracker.LogEntry{
			ID:           "src" + string(rune('1'+i)),
			UserID:       tracker.DefaultUserID,
			FoodID:       "f1",
			LoggedAt:     fixedTime().Add(time.Duration(i) * time.Minute),
			LogDate:      "2024-01-15",
			Meal:         tracker.MealLunch,
			UnitMode:     tracker.UnitGrams,
			Quantity:     grams,
			PortionLabel: "г",
			GramsTotal:   grams,
			Totals:       tracker.Totals{Calories: grams},
		}
		if err := store.InsertLog(entry); err != nil {
			t.Fatalf("InsertLog() error = %v", err)
		}
	}

	count, err := store.CopyLogs(tracker.DefaultUserID, "2024-01-15", "2024-01-16")
	if err != nil {
		t.Fatalf("CopyLogs() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CopyLogs() = %d, want 2", count)
	}

	copied, err := store.ListLogsByDay(tracker.DefaultUserID, "2024-01-16")
	if err != nil {
		t.Fatalf("ListLogsByDay() error = %v", err)
	}
	if len(copied) != 2 {
		t.Fatalf("copied day has %d entries, want 2", len(copied))
	}
	for _, c := range copied {
		if c.ID == "src1" || c.ID == "src2" {
			t.Errorf("copied entry reuses source id %s", c.ID)
		}
		if c.LogDate != "2024-01-16" {
			t.Errorf("copied LogDate = %s", c.LogDate)
		}
	}

	// The source day is untouched.
	source, _ := store.ListLogsByDay(tracker.DefaultUserID, "2024-01-15")
	if len(source) != 2 {
		t.Errorf("source day has %d entries, want 2", len(source))
	}
}

func TestSQLiteStore_RecentFoods(t *testing.T) {
	store := testutil.NewTestStore(t)
	insertFood(t, store, "f1", "Бууз")
	insertFood(t, store, "f2", "Банш")

	logs := []struct {
		id     string
		foodID string
		at     time.Time
	}{
		{"l1", "f1", fixedTime()},
		{"l2", "f2", fixedTime().Add(time.Minute)},
		{"l3", "f1", fixedTime().Add(2 * time.Minute)},
	}
	for _, l := range logs {
		entry := &tracker.LogEntry{
			ID: l.id, UserID: tracker.DefaultUserID, FoodID: l.foodID,
			LoggedAt: l.at, LogDate: "2024-01-15",
			Meal: tracker.MealSnack, UnitMode: tracker.UnitGrams,
			Quantity: 100, PortionLabel: "г", GramsTotal: 100,
		}
		if err := store.InsertLog(entry); err != nil {
			t.Fatalf("InsertLog() error = %v", err)
		}
	}

	recents, err := store.ListRecentFoods(tracker.DefaultUserID, 10)
	if err != nil {
		t.Fatalf("ListRecentFoods() error = %v", err)
	}
	if len(recents) != 2 {
		t.Fatalf("ListRecentFoods() = %d, want 2", len(recents))
	}
	if recents[0].FoodID != "f1" || recents[1].FoodID != "f2" {
		t.Errorf("recents = [%s %s], want [f1 f2]", recents[0].FoodID, recents[1].FoodID)
	}
}

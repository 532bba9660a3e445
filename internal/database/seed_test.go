package database_test

import (
	"testing"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/testutil"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

func TestSeed(t *testing.T) {
	t.Run("installs the built-in catalog", func(t *testing.T) {
		store := testutil.SeededTestStore(t)

		buuz, err := store.FindFoodByID("seed-buuz")
		if err != nil {
			t.Fatalf("FindFoodByID() error = %v", err)
		}
		if buuz == nil {
			t.Fatal("seed-buuz not installed")
		}
		if buuz.NameMN != "Бууз" {
			t.Errorf("NameMN = %q, want Бууз", buuz.NameMN)
		}

		portions, err := store.ListPortionsByFood("seed-buuz")
		if err != nil {
			t.Fatalf("ListPortionsByFood() error = %v", err)
		}
		if len(portions) == 0 {
			t.Error("seed-buuz has no portions")
		}
	})

	t.Run("seeded foods are searchable by latin alias", func(t *testing.T) {
		store := testutil.SeededTestStore(t)

		candidates, err := store.ListFoodsWithAliases()
		if err != nil {
			t.Fatalf("ListFoodsWithAliases() error = %v", err)
		}
		got := tracker.SearchFoods("buuz", candidates)
		if len(got) == 0 {
			t.Fatal("SearchFoods(buuz) found nothing")
		}
		if got[0].ID != "seed-buuz" {
			t.Errorf("top result = %s, want seed-buuz", got[0].ID)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := testutil.SeededTestStore(t)

		before, err := store.ListFoodsWithAliases()
		if err != nil {
			t.Fatalf("ListFoodsWithAliases() error = %v", err)
		}

		if err := store.Seed(); err != nil {
			t.Fatalf("second Seed() error = %v", err)
		}

		after, err := store.ListFoodsWithAliases()
		if err != nil {
			t.Fatalf("ListFoodsWithAliases() error = %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("food count changed: %d -> %d", len(before), len(after))
		}
		for i := range after {
			if len(after[i].Aliases) != len(before[i].Aliases) {
				t.Errorf("%s alias count changed: %d -> %d",
					after[i].Food.ID, len(before[i].Aliases), len(after[i].Aliases))
			}
		}
	})

	t.Run("heals forward without touching user data", func(t *testing.T) {
		store := testutil.SeededTestStore(t)

		// A user-added alias on a seeded food must survive re-seeding.
		if err := store.InsertAlias("seed-buuz", "мои бузы", "mn"); err != nil {
			t.Fatalf("InsertAlias() error = %v", err)
		}

		if err := store.Seed(); err != nil {
			t.Fatalf("re-Seed() error = %v", err)
		}

		candidates, _ := store.ListFoodsWithAliases()
		found := false
		for _, c := range candidates {
			if c.Food.ID != "seed-buuz" {
				continue
			}
			for _, a := range c.Aliases {
				if a == "мои бузы" {
					found = true
				}
			}
		}
		if !found {
			t.Error("user alias lost after re-seeding")
		}
	})
}

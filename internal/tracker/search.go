package tracker

import (
	"sort"
	"strings"
)

// Scoring weights. Exact substring and prefix hits dominate so that
// typo-free queries rank first; the trigram term degrades gracefully
// for minor misspellings without an edit-distance pass per keystroke.
const (
	substringWeight = 0.5
	prefixWeight    = 0.3
	trigramWeight   = 0.5

	// maxSearchResults bounds the ranked list handed to the caller.
	maxSearchResults = 50
)

// SearchFoods ranks the candidate catalog against a free-text query.
// The query is matched case-insensitively against the display name,
// the secondary-language name, and every alias. Substring matching
// happens here rather than in SQL: SQLite's LIKE is case-sensitive
// outside ASCII, which makes it unreliable for Cyrillic queries.
//
// An empty or whitespace-only query returns an empty list.
// Ties keep catalog insertion order (stable sort).
func SearchFoods(query string, candidates []*FoodWithAliases) []*Food {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type scored struct {
		food  *Food
		score float64
	}
	var results []scored
	for _, c := range candidates {
		if !matchesQuery(q, c) {
			continue
		}
		s := scoreFood(q, c)
		if s <= 0 {
			// Should not happen once the substring filter passed,
			// but the contract drops zero scores explicitly.
			continue
		}
		results = append(results, scored{food: c.Food, score: s})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	foods := make([]*Food, len(results))
	for i, r := range results {
		foods[i] = r.food
	}
	return foods
}

func matchesQuery(q string, c *FoodWithAliases) bool {
	if strings.Contains(strings.ToLower(c.Food.NameMN), q) {
		return true
	}
	if c.Food.NameEN != "" && strings.Contains(strings.ToLower(c.Food.NameEN), q) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	return false
}

// scoreFood scores a candidate against a lowercased query. The
// secondary-language name is treated as one more alias:
// +0.5 when q is a substring of the name or any alias,
// +0.3 additionally when q is a prefix of the name or any alias,
// +0.5 × trigram similarity between q and name+aliases.
func scoreFood(q string, c *FoodWithAliases) float64 {
	name := strings.ToLower(c.Food.NameMN)
	aliases := make([]string, 0, len(c.Aliases)+1)
	for _, a := range c.Aliases {
		aliases = append(aliases, strings.ToLower(a))
	}
	if c.Food.NameEN != "" {
		aliases = append(aliases, strings.ToLower(c.Food.NameEN))
	}

	var score float64
	substr := strings.Contains(name, q)
	prefix := strings.HasPrefix(name, q)
	for _, a := range aliases {
		substr = substr || strings.Contains(a, q)
		prefix = prefix || strings.HasPrefix(a, q)
	}
	if substr {
		score += substringWeight
	}
	if prefix {
		score += prefixWeight
	}

	union := strings.Join(append([]string{name}, aliases...), " ")
	score += trigramWeight * TrigramSimilarity(q, union)
	return score
}

// TrigramSimilarity is the Dice coefficient over the multisets of
// overlapping length-3 rune substrings of a and b:
// 2·|shared| / (|trigrams(a)| + |trigrams(b)|).
// Strings shorter than 3 runes have no trigrams; similarity is 0.
func TrigramSimilarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	counts := make(map[string]int, len(ta))
	var na int
	for _, t := range ta {
		counts[t]++
		na++
	}
	var nb, shared int
	for _, t := range tb {
		nb++
		if counts[t] > 0 {
			counts[t]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(na+nb)
}

func trigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}

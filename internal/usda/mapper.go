package usda

import "strings"

// mnToEnFoodMap maps normalized Mongolian (Cyrillic) queries to
// English search terms for the FoodData Central API. Extend this map
// to support more foods.
var mnToEnFoodMap = map[string]string{
	"өндөг":          "egg",
	"цагаан будаа":   "white rice cooked",
	"будаа":          "rice",
	"тахианы цээж":   "chicken breast roasted",
	"тахиа":          "chicken",
	"үхрийн мах":     "beef",
	"мах":            "meat",
	"сүү":            "milk",
	"талх":           "bread",
	"банана":         "banana",
	"алим":           "apple",
	"тараг":          "yogurt",
	"бяслаг":         "cheese",
	"төмс":           "potato",
	"лууван":         "carrot",
	"улаан лооль":    "tomato",
	"өргөст хэмх":    "cucumber",
	"бууз":           "buuz steamed dumpling",
	"хуушуур":        "fried dumpling",
	"банш":           "bansh dumpling",
	"цуйван":         "tsuivan noodles",
	"шөл":            "soup",
	"гурилтай шөл":   "noodle soup",
	"овьёос":         "oatmeal",
	"самар":          "nuts",
	"тос":            "oil",
	"шар тос":        "butter",
	"өрөм":           "cream",
	"айраг":          "airag fermented milk",
	"ааруул":         "aaruul dried curd",
	"мантуу":         "mantuu steamed bun",
	"боорцог":        "boortsog fried dough",
	"гамбир":         "pancake",
	"нийслэл салат":  "capital salad",
	"ундаа":          "soft drink",
	"ус":             "water",
	"цай":            "tea",
	"сүүтэй цай":     "milk tea",
	"кофе":           "coffee",
}

// MapQuery looks up the English search term for a Mongolian query.
// The query is lowercased and whitespace-normalized before lookup.
func MapQuery(query string) (string, bool) {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	en, ok := mnToEnFoodMap[normalized]
	return en, ok
}

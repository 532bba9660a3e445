package database

import "github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"

type seedPortion struct {
	labelMN   string
	grams     float64
	isDefault bool
}

type seedFoodDef struct {
	key       string
	nameMN    string
	nameEN    string
	per       tracker.Per100g
	aliasesMN []string
	aliasesEN []string
	portions  []seedPortion
}

// seedFoods is the built-in Mongolian food catalog. Macros are per
// 100 g. Keys are stable: they form the food ids, so renaming a key
// would orphan existing log entries.
var seedFoods = []seedFoodDef{
	{
		key: "buuz", nameMN: "Бууз", nameEN: "Steamed dumplings",
		per:       tracker.Per100g{Calories: 245, ProteinG: 12.5, CarbsG: 20.3, FatG: 12.8},
		aliasesMN: []string{"бууз"},
		aliasesEN: []string{"buuz", "dumpling"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 55, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "khuushuur", nameMN: "Хуушуур", nameEN: "Fried meat pastry",
		per:       tracker.Per100g{Calories: 290, ProteinG: 11.2, CarbsG: 24.6, FatG: 16.4},
		aliasesMN: []string{"хуушуур"},
		aliasesEN: []string{"khuushuur", "huushuur"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 90, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "tsuivan", nameMN: "Цуйван", nameEN: "Stir-fried noodles",
		per:       tracker.Per100g{Calories: 195, ProteinG: 8.6, CarbsG: 23.4, FatG: 7.5},
		aliasesMN: []string{"цуйван"},
		aliasesEN: []string{"tsuivan"},
		portions: []seedPortion{
			{labelMN: "1 таваг", grams: 350, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "bansh", nameMN: "Банш", nameEN: "Small boiled dumplings",
		per:       tracker.Per100g{Calories: 220, ProteinG: 11.8, CarbsG: 21.5, FatG: 9.9},
		aliasesMN: []string{"банш"},
		aliasesEN: []string{"bansh"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 20, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "guriltai-shul", nameMN: "Гурилтай шөл", nameEN: "Noodle soup with meat",
		per:       tracker.Per100g{Calories: 85, ProteinG: 5.2, CarbsG: 9.1, FatG: 3.1},
		aliasesMN: []string{"гурилтай шөл", "шөл"},
		aliasesEN: []string{"guriltai shul", "noodle soup"},
		portions: []seedPortion{
			{labelMN: "1 аяга", grams: 400, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "khorkhog", nameMN: "Хорхог", nameEN: "Stone-cooked mutton",
		per:       tracker.Per100g{Calories: 280, ProteinG: 22.4, CarbsG: 1.2, FatG: 20.6},
		aliasesMN: []string{"хорхог"},
		aliasesEN: []string{"khorkhog"},
		portions: []seedPortion{
			{labelMN: "1 порц", grams: 250, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "boortsog", nameMN: "Боорцог", nameEN: "Fried dough",
		per:       tracker.Per100g{Calories: 410, ProteinG: 7.3, CarbsG: 52.8, FatG: 18.9},
		aliasesMN: []string{"боорцог"},
		aliasesEN: []string{"boortsog"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 25, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "niislel-salad", nameMN: "Нийслэл салат", nameEN: "Capital potato salad",
		per:       tracker.Per100g{Calories: 215, ProteinG: 5.4, CarbsG: 10.2, FatG: 17.1},
		aliasesMN: []string{"нийслэл салат", "салат"},
		aliasesEN: []string{"niislel salad", "potato salad"},
		portions: []seedPortion{
			{labelMN: "1 порц", grams: 150, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "suutei-tsai", nameMN: "Сүүтэй цай", nameEN: "Milk tea",
		per:       tracker.Per100g{Calories: 42, ProteinG: 1.6, CarbsG: 3.8, FatG: 2.3},
		aliasesMN: []string{"сүүтэй цай", "цай"},
		aliasesEN: []string{"suutei tsai", "milk tea"},
		portions: []seedPortion{
			{labelMN: "1 аяга", grams: 250, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "airag", nameMN: "Айраг", nameEN: "Fermented mare's milk",
		per:       tracker.Per100g{Calories: 50, ProteinG: 2.1, CarbsG: 5.4, FatG: 1.9},
		aliasesMN: []string{"айраг"},
		aliasesEN: []string{"airag", "kumis"},
		portions: []seedPortion{
			{labelMN: "1 аяга", grams: 250, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "aaruul", nameMN: "Ааруул", nameEN: "Dried curd",
		per:       tracker.Per100g{Calories: 350, ProteinG: 32.5, CarbsG: 28.4, FatG: 11.2},
		aliasesMN: []string{"ааруул"},
		aliasesEN: []string{"aaruul", "dried curd"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 15, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "byaslag", nameMN: "Бяслаг", nameEN: "Mongolian cheese",
		per:       tracker.Per100g{Calories: 310, ProteinG: 22.8, CarbsG: 3.1, FatG: 23.5},
		aliasesMN: []string{"бяслаг"},
		aliasesEN: []string{"byaslag", "cheese"},
		portions: []seedPortion{
			{labelMN: "1 зүсэм", grams: 30, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "tarag", nameMN: "Тараг", nameEN: "Yogurt",
		per:       tracker.Per100g{Calories: 62, ProteinG: 3.4, CarbsG: 4.9, FatG: 3.2},
		aliasesMN: []string{"тараг"},
		aliasesEN: []string{"tarag", "yogurt"},
		portions: []seedPortion{
			{labelMN: "1 аяга", grams: 200, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "suu", nameMN: "Сүү", nameEN: "Milk",
		per:       tracker.Per100g{Calories: 64, ProteinG: 3.2, CarbsG: 4.8, FatG: 3.6},
		aliasesMN: []string{"сүү"},
		aliasesEN: []string{"suu", "milk"},
		portions: []seedPortion{
			{labelMN: "1 аяга", grams: 250, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "honin-makh", nameMN: "Хонины мах", nameEN: "Mutton",
		per:       tracker.Per100g{Calories: 294, ProteinG: 24.5, CarbsG: 0, FatG: 21.1},
		aliasesMN: []string{"хонины мах", "мах"},
		aliasesEN: []string{"honini makh", "mutton", "lamb"},
		portions: []seedPortion{
			{labelMN: "1 порц", grams: 200, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "ukhriin-makh", nameMN: "Үхрийн мах", nameEN: "Beef",
		per:       tracker.Per100g{Calories: 250, ProteinG: 26.1, CarbsG: 0, FatG: 15.4},
		aliasesMN: []string{"үхрийн мах"},
		aliasesEN: []string{"uhriin makh", "beef"},
		portions: []seedPortion{
			{labelMN: "1 порц", grams: 200, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "takhian-makh", nameMN: "Тахианы мах", nameEN: "Chicken",
		per:       tracker.Per100g{Calories: 215, ProteinG: 27.3, CarbsG: 0, FatG: 11.2},
		aliasesMN: []string{"тахианы мах", "тахиа"},
		aliasesEN: []string{"tahianii makh", "chicken"},
		portions: []seedPortion{
			{labelMN: "1 порц", grams: 150, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "ondog", nameMN: "Өндөг", nameEN: "Egg",
		per:       tracker.Per100g{Calories: 155, ProteinG: 12.6, CarbsG: 1.1, FatG: 10.6},
		aliasesMN: []string{"өндөг"},
		aliasesEN: []string{"ondog", "egg"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 50, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "talkh", nameMN: "Талх", nameEN: "Bread",
		per:       tracker.Per100g{Calories: 265, ProteinG: 8.8, CarbsG: 49.2, FatG: 3.3},
		aliasesMN: []string{"талх"},
		aliasesEN: []string{"talh", "bread"},
		portions: []seedPortion{
			{labelMN: "1 зүсэм", grams: 35, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "tsagaan-budaa", nameMN: "Цагаан будаа", nameEN: "White rice, cooked",
		per:       tracker.Per100g{Calories: 130, ProteinG: 2.7, CarbsG: 28.2, FatG: 0.3},
		aliasesMN: []string{"цагаан будаа", "будаа"},
		aliasesEN: []string{"budaa", "rice"},
		portions: []seedPortion{
			{labelMN: "1 аяга", grams: 180, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "toms", nameMN: "Төмс", nameEN: "Potato",
		per:       tracker.Per100g{Calories: 77, ProteinG: 2, CarbsG: 17.5, FatG: 0.1},
		aliasesMN: []string{"төмс"},
		aliasesEN: []string{"toms", "potato"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 170, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "luuvan", nameMN: "Лууван", nameEN: "Carrot",
		per:       tracker.Per100g{Calories: 41, ProteinG: 0.9, CarbsG: 9.6, FatG: 0.2},
		aliasesMN: []string{"лууван"},
		aliasesEN: []string{"luuvan", "carrot"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 60, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "baitsaa", nameMN: "Байцаа", nameEN: "Cabbage",
		per:       tracker.Per100g{Calories: 25, ProteinG: 1.3, CarbsG: 5.8, FatG: 0.1},
		aliasesMN: []string{"байцаа"},
		aliasesEN: []string{"baitsaa", "cabbage"},
		portions: []seedPortion{
			{labelMN: "1 аяга", grams: 90, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
	{
		key: "alim", nameMN: "Алим", nameEN: "Apple",
		per:       tracker.Per100g{Calories: 52, ProteinG: 0.3, CarbsG: 13.8, FatG: 0.2},
		aliasesMN: []string{"алим"},
		aliasesEN: []string{"alim", "apple"},
		portions: []seedPortion{
			{labelMN: "1 ширхэг", grams: 180, isDefault: true},
			{labelMN: "100г", grams: 100},
		},
	},
}

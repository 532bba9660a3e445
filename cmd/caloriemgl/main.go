package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/app"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/config"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/goal"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "LogAdd", "Search").
func newApp(operation string) (*app.App, error) {
	// A .env in the working directory may carry USDA_API_KEY.
	_ = godotenv.Load()

	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

func today() tracker.Date {
	return tracker.DateOf(time.Now())
}

var rootCmd = &cobra.Command{
	Use:   "caloriemgl",
	Short: "Mongolian food catalog and calorie log",
}

// init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

// search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the food catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		online, _ := cmd.Flags().GetBool("online")

		a, err := newApp("Search")
		if err != nil {
			return err
		}
		defer a.Close()

		query := strings.Join(args, " ")
		var results []*tracker.Food
		if online {
			results, err = a.Service().SearchWithFallback(cmd.Context(), query)
		} else {
			results, err = a.Service().Search(query)
		}
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No foods found.")
			return nil
		}

		// On a terminal, cap the list the way the app's search sheet does.
		if term.IsTerminal(int(os.Stdout.Fd())) {
			limit := a.Config().Search.DisplayLimit
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}
		}

		for _, f := range results {
			name := f.NameMN
			if f.NameEN != "" && f.NameEN != f.NameMN {
				name = fmt.Sprintf("%s (%s)", f.NameMN, f.NameEN)
			}
			fmt.Printf("%s  %-30s  %.0f kcal/100g  P:%.1f C:%.1f F:%.1f\n",
				f.ID, name,
				f.Per100g.Calories, f.Per100g.ProteinG, f.Per100g.CarbsG, f.Per100g.FatG)
		}
		return nil
	},
}

// log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage the food log",
}

var logAddCmd = &cobra.Command{
	Use:   "add FOOD_ID",
	Short: "Log a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		meal, _ := cmd.Flags().GetString("meal")
		grams, _ := cmd.Flags().GetFloat64("grams")
		portionID, _ := cmd.Flags().GetString("portion")
		qty, _ := cmd.Flags().GetFloat64("qty")

		a, err := newApp("LogAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		if date == "" {
			date = string(today())
		}
		logDate, err := tracker.ParseDate(date)
		if err != nil {
			return err
		}

		var amount tracker.Amount
		if portionID != "" {
			portion, err := a.Service().PortionByID(portionID)
			if err != nil {
				return err
			}
			amount = tracker.PortionAmount{
				PortionID:    portion.ID,
				PortionGrams: portion.Grams,
				Label:        portion.LabelMN,
				Quantity:     qty,
			}
		} else {
			amount = tracker.Grams{Input: grams}
		}

		entry, err := a.Service().LogFood(tracker.LogFoodParams{
			FoodID: args[0],
			Date:   logDate,
			Meal:   tracker.Meal(meal),
			Amount: amount,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Logged %s: %.0fg, %.1f kcal (%s, %s)\n",
			entry.FoodNameMN, entry.GramsTotal, entry.Totals.Calories, entry.Meal, entry.LogDate)
		return nil
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged foods for a day or range",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		a, err := newApp("LogList")
		if err != nil {
			return err
		}
		defer a.Close()

		var entries []*tracker.LogEntry
		if from != "" && to != "" {
			start, err := tracker.ParseDate(from)
			if err != nil {
				return err
			}
			end, err := tracker.ParseDate(to)
			if err != nil {
				return err
			}
			entries, err = a.Service().LogsForRange(start, end)
			if err != nil {
				return err
			}
		} else {
			if date == "" {
				date = string(today())
			}
			day, err := tracker.ParseDate(date)
			if err != nil {
				return err
			}
			entries, err = a.Service().LogsByDay(day)
			if err != nil {
				return err
			}
		}

		if len(entries) == 0 {
			fmt.Println("No logs.")
			return nil
		}

		var totals tracker.Totals
		for _, e := range entries {
			qty := fmt.Sprintf("%.0f%s", e.Quantity, "г")
			if e.UnitMode == tracker.UnitPortion {
				qty = fmt.Sprintf("%.1f × %s", e.Quantity, e.PortionLabel)
			}
			fmt.Printf("%s  %s  %-9s  %-25s  %-14s  %.1f kcal\n",
				e.ID, e.LogDate, e.Meal, e.FoodNameMN, qty, e.Totals.Calories)
			totals.Calories += e.Totals.Calories
			totals.ProteinG += e.Totals.ProteinG
			totals.CarbsG += e.Totals.CarbsG
			totals.FatG += e.Totals.FatG
		}
		fmt.Printf("\nTotal: %.1f kcal  P:%.1f  C:%.1f  F:%.1f\n",
			totals.Calories, totals.ProteinG, totals.CarbsG, totals.FatG)
		return nil
	},
}

var logCopyCmd = &cobra.Command{
	Use:   "copy FROM_DATE TO_DATE",
	Short: "Copy all logs from one day onto another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("LogCopy")
		if err != nil {
			return err
		}
		defer a.Close()

		from, err := tracker.ParseDate(args[0])
		if err != nil {
			return err
		}
		to, err := tracker.ParseDate(args[1])
		if err != nil {
			return err
		}

		count, err := a.Service().CopyDay(from, to)
		if err != nil {
			return err
		}

		fmt.Printf("Copied %d log(s) from %s to %s\n", count, from, to)
		return nil
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete LOG_ID",
	Short: "Delete a log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("LogDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteLog(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

// recent command
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently logged foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("Recent")
		if err != nil {
			return err
		}
		defer a.Close()

		if limit <= 0 {
			limit = a.Config().Search.RecentLimit
		}
		foods, err := a.Service().RecentFoods(limit)
		if err != nil {
			return err
		}

		if len(foods) == 0 {
			fmt.Println("No recent foods.")
			return nil
		}
		for _, f := range foods {
			fmt.Printf("%s  %-30s  %.0f kcal/100g\n", f.FoodID, f.NameMN, f.Per100g.Calories)
		}
		return nil
	},
}

// food command
var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog",
}

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom food",
	RunE: func(cmd *cobra.Command, args []string) error {
		nameMN, _ := cmd.Flags().GetString("name")
		nameEN, _ := cmd.Flags().GetString("name-en")
		cal, _ := cmd.Flags().GetFloat64("calories")
		protein, _ := cmd.Flags().GetFloat64("protein")
		carbs, _ := cmd.Flags().GetFloat64("carbs")
		fat, _ := cmd.Flags().GetFloat64("fat")

		a, err := newApp("FoodAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		food, err := a.Service().CreateCustomFood(tracker.CustomFoodParams{
			NameMN:   nameMN,
			NameEN:   nameEN,
			Calories: cal,
			ProteinG: protein,
			CarbsG:   carbs,
			FatG:     fat,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created food %s (%s)\n", food.NameMN, food.ID)
		return nil
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show FOOD_ID",
	Short: "Show a food and its portions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("FoodShow")
		if err != nil {
			return err
		}
		defer a.Close()

		food, err := a.Service().FoodByID(args[0])
		if err != nil {
			return err
		}
		portions, err := a.Service().FoodPortions(food.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s", food.NameMN)
		if food.NameEN != "" && food.NameEN != food.NameMN {
			fmt.Printf(" (%s)", food.NameEN)
		}
		fmt.Printf("  [%s]\n", food.Source)
		fmt.Printf("Per 100g: %.0f kcal  P:%.1f  C:%.1f  F:%.1f\n",
			food.Per100g.Calories, food.Per100g.ProteinG, food.Per100g.CarbsG, food.Per100g.FatG)

		if len(portions) > 0 {
			fmt.Println("Portions:")
			for _, p := range portions {
				def := ""
				if p.IsDefault {
					def = "  [default]"
				}
				fmt.Printf("  %s  %-15s  %.0fg%s\n", p.ID, p.LabelMN, p.Grams, def)
			}
		}
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's intake and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Status")
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.BuildStatus(today())
		if err != nil {
			return err
		}

		fmt.Printf("Today: %.1f kcal  P:%.1f  C:%.1f  F:%.1f\n",
			report.TodayTotals.Calories, report.TodayTotals.ProteinG,
			report.TodayTotals.CarbsG, report.TodayTotals.FatG)
		fmt.Printf("Streak: %d day(s)\n", report.Streak)

		p := report.Profile
		if p == nil {
			fmt.Println("\nNo profile found. Complete onboarding to see goal progress.")
			return nil
		}

		if p.DailyCalorieGoal > 0 {
			fmt.Printf("Goal: %d kcal (%.0f%% used)\n",
				p.DailyCalorieGoal, report.TodayTotals.Calories/float64(p.DailyCalorieGoal)*100)
		}

		fmt.Printf("\nPlan: %s → %s (%s)\n", p.PlanStartDate, p.PlanTargetDate,
			goal.PlanDescription(p.GoalType(), a.Pace()))
		fmt.Printf("Week %d of %d (%d left, %.0f%% elapsed)\n",
			report.WeeksElapsed+1, report.WeeksTotal, report.WeeksLeft, report.ProgressPct*100)
		if report.TrendOK {
			fmt.Printf("Trend weight: %.1f kg (target %.1f kg)\n", report.TrendKg, p.TargetWeightKg)
		}
		fmt.Printf("%s", report.Result.Message)
		if report.Result.ETADate != "" {
			fmt.Printf("  (ETA %s)", report.Result.ETADate)
		}
		fmt.Println()
		return nil
	},
}

// streak command
var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the consecutive logged-day streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Streak")
		if err != nil {
			return err
		}
		defer a.Close()

		streak, err := a.Service().Streak(today())
		if err != nil {
			return err
		}
		fmt.Printf("%d day(s)\n", streak)
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export DEST",
	Short: "Export a snapshot of the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Export(args[0]); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", args[0])
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("online", false, "Fall back to the USDA database when nothing matches locally")

	logAddCmd.Flags().String("date", "", "Log date (YYYY-MM-DD, default today)")
	logAddCmd.Flags().String("meal", "snack", "Meal: breakfast, lunch, dinner or snack")
	logAddCmd.Flags().Float64("grams", 0, "Amount in grams")
	logAddCmd.Flags().String("portion", "", "Portion ID (use 'food show' to list)")
	logAddCmd.Flags().Float64("qty", 1, "Portion quantity")

	logListCmd.Flags().String("date", "", "Day to list (YYYY-MM-DD, default today)")
	logListCmd.Flags().String("from", "", "Range start (YYYY-MM-DD)")
	logListCmd.Flags().String("to", "", "Range end (YYYY-MM-DD)")

	recentCmd.Flags().IntP("limit", "n", 0, "Maximum number of foods to show")

	foodAddCmd.Flags().String("name", "", "Mongolian name (required)")
	foodAddCmd.Flags().String("name-en", "", "English name")
	foodAddCmd.Flags().Float64("calories", 0, "Calories per 100g")
	foodAddCmd.Flags().Float64("protein", 0, "Protein g per 100g")
	foodAddCmd.Flags().Float64("carbs", 0, "Carbs g per 100g")
	foodAddCmd.Flags().Float64("fat", 0, "Fat g per 100g")
	foodAddCmd.MarkFlagRequired("name")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logCopyCmd)
	logCmd.AddCommand(logDeleteCmd)

	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodShowCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(foodCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(exportCmd)
}

package app

import (
	"fmt"
	"os"
	"time"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/config"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/database"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/goal"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/profile"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/usda"
)

// App is the application layer between the CLI and the tracker
// service. It constructs all dependencies from config, loads the user
// profile, and manages the DB lifecycle on Close.
type App struct {
	cfg     *config.Config
	store   *database.SQLiteStore
	service *tracker.Service
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "LogAdd",
// "Search"); it tags every log line of the run. The caller must call
// Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	runID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, runID, operation)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	store, err := database.NewStoreFromConfig(cfg.Database, nil, nil)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating store: %w", err)
	}

	// Seeding heals forward on every start: new catalog entries and
	// aliases land without touching existing rows.
	if err := store.Seed(); err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}

	var lookup tracker.NutritionLookup
	if key := usdaAPIKey(cfg); key != "" {
		lookup = usda.NewClient(key, cfg.USDA.BaseURL, log)
	}

	svc := tracker.NewService(store, lookup, log, tracker.RealClock{}, tracker.UUIDGenerator{})

	return &App{
		cfg:     cfg,
		store:   store,
		service: svc,
		logFile: logFile,
	}, nil
}

// usdaAPIKey resolves the FoodData Central key: config first, then the
// USDA_API_KEY environment variable. Empty disables the fallback.
func usdaAPIKey(cfg *config.Config) string {
	if cfg.USDA.APIKey != "" {
		return cfg.USDA.APIKey
	}
	return os.Getenv("USDA_API_KEY")
}

// Service exposes the underlying tracker service to the CLI.
func (a *App) Service() *tracker.Service {
	return a.service
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Profile loads the user profile. Returns (nil, nil) if the user has
// not completed onboarding.
func (a *App) Profile() (*profile.Profile, error) {
	return profile.ReadFromFile(a.cfg.ProfilePath)
}

// Pace converts the configured pace policy for the goal timeline.
func (a *App) Pace() goal.PaceConfig {
	return goal.PaceConfig{
		LoseKgPerWeek:  a.cfg.Pace.LoseKgPerWeek,
		GainKgPerWeek:  a.cfg.Pace.GainKgPerWeek,
		ToleranceWeeks: a.cfg.Pace.ToleranceWeeks,
	}
}

// StatusReport is everything the status command displays: the goal
// projection plus today's intake against the calorie goal.
type StatusReport struct {
	Profile      *profile.Profile
	TrendKg      float64
	TrendOK      bool
	Result       goal.TrackResult
	ProgressPct  float64
	WeeksElapsed int
	WeeksLeft    int
	WeeksTotal   int
	TodayTotals  tracker.Totals
	Streak       int
}

// BuildStatus recomputes the goal projection fresh from the profile's
// weigh-in history. Profile is nil in the report when onboarding is
// incomplete; the intake fields are still filled in.
func (a *App) BuildStatus(today tracker.Date) (*StatusReport, error) {
	report := &StatusReport{}

	logs, err := a.service.LogsByDay(today)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		report.TodayTotals.Calories += l.Totals.Calories
		report.TodayTotals.ProteinG += l.Totals.ProteinG
		report.TodayTotals.CarbsG += l.Totals.CarbsG
		report.TodayTotals.FatG += l.Totals.FatG
	}

	streak, err := a.service.Streak(today)
	if err != nil {
		return nil, err
	}
	report.Streak = streak

	p, err := a.Profile()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return report, nil
	}
	report.Profile = p

	pace := a.Pace()
	report.TrendKg, report.TrendOK = goal.TrendWeight(p.Weights(), today)
	report.Result = goal.OnTrackStatus(
		p.Weights(), p.PlanStartWeightKg, p.TargetWeightKg,
		p.PlanTargetDate, today, p.GoalType(), pace,
	)
	report.ProgressPct = goal.ProgressPct(p.PlanStartDate, p.PlanTargetDate, today)
	report.WeeksElapsed = goal.WeeksElapsed(p.PlanStartDate, today)
	report.WeeksLeft = goal.WeeksLeft(p.PlanTargetDate, today)
	report.WeeksTotal = goal.WeeksTotal(p.PlanStartDate, p.PlanTargetDate)

	return report, nil
}

// Close closes all resources.
func (a *App) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

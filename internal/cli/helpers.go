package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nutrilog/internal/analysis"
	"nutrilog/internal/config"
	"nutrilog/internal/logger"
	"nutrilog/internal/service"
	"nutrilog/internal/store"
)

// now is the clock used by every command
var now = time.Now

// session is everything a command needs once config and storage are open
type session struct {
	cfg     *config.Config
	db      *store.DB
	tracker *service.Tracker
}

// openDB resolves config, starts logging and opens the database
func openDB() (*config.Config, *store.DB, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if debugMode {
		cfg.Debug = true
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return cfg, db, nil
}

// openSession opens storage and loads the tracker for the signed-in user,
// or the local user when nobody is signed in. notify receives achievement unlocks.
func openSession(notify func(analysis.Evaluation)) (*session, error) {
	cfg, db, err := openDB()
	if err != nil {
		return nil, err
	}

	userID := service.DefaultUserID
	var profile *store.Profile
	account, err := db.GetAuth()
	switch {
	case err == nil:
		userID = account.UserID
		profile = account.Profile()
	case !errors.Is(err, store.ErrNoAuth):
		db.Close()
		return nil, fmt.Errorf("checking auth: %w", err)
	}

	tracker, err := service.NewTracker(db, userID, service.Options{
		Profile:       profile,
		Clock:         now,
		OnAchievement: notify,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &session{cfg: cfg, db: db, tracker: tracker}, nil
}

// withTracker runs fn against the current user's tracker
func withTracker(cmd *cobra.Command, fn func(*session) error) error {
	out := cmd.OutOrStdout()
	s, err := openSession(func(ev analysis.Evaluation) {
		printUnlocked(out, ev)
	})
	if err != nil {
		return err
	}
	defer s.db.Close()
	return fn(s)
}

func printUnlocked(out io.Writer, ev analysis.Evaluation) {
	for _, m := range ev.NewMilestones {
		if rule, ok := analysis.FindMilestoneRule(m.ID); ok {
			fmt.Fprintln(out, successStyle.Render("Milestone unlocked: "+rule.Name)+" - "+rule.Description)
		}
	}
	for _, c := range ev.NewChallenges {
		if rule, ok := analysis.FindChallengeRule(c.ID); ok {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Challenge complete: %s (+%d pts)", rule.Name, c.PointsAwarded)))
		}
	}
}

func parseFloatArg(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return v, nil
}

func parseDateOrToday(date string) (string, error) {
	date = strings.TrimSpace(date)
	switch date {
	case "", "today":
		return now().Format(store.DateLayout), nil
	case "tomorrow":
		return now().AddDate(0, 0, 1).Format(store.DateLayout), nil
	case "yesterday":
		return now().AddDate(0, 0, -1).Format(store.DateLayout), nil
	}
	if _, err := time.Parse(store.DateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// matchID resolves a full id from a unique prefix
func matchID(prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("id is required")
	}
	var found []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%q: %w", prefix, service.ErrEntryNotFound)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", prefix, len(found))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatMacros(m analysis.MacroTotals) string {
	return fmt.Sprintf("%.0f kcal  P %.1fg  C %.1fg  F %.1fg", m.Calories, m.Protein, m.Carbs, m.Fat)
}

// formatWater renders millilitres in the configured unit
func formatWater(ml float64, unit string) string {
	if unit == store.UnitOZ {
		return fmt.Sprintf("%.1f oz", ml/analysis.MLPerOunce)
	}
	return fmt.Sprintf("%.0f ml", ml)
}

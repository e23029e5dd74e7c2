package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/habitnotes/habitnotes/internal/core/domain"
)

const (
	DriverFilesystem = "filesystem"
	DriverPostgres   = "postgres"
)

// Config holds all configuration for the service: the server surface, the
// document store backing, and the tracker snapshot handed to the engine.
type Config struct {
	Port string

	DocstoreDriver string
	NotesDir       string

	DBUser     string
	DBPassword string
	DBName     string
	DBHost     string
	DBPort     string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	APIPassword string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration

	EnsureInterval time.Duration

	Tracker domain.TrackerConfig
}

// Load reads configuration from environment variables, with .env support.
// Variables already set in the environment win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DocstoreDriver: getEnv("DOCSTORE_DRIVER", DriverFilesystem),
		NotesDir:       getEnv("NOTES_DIR", "./notes"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		APIPassword:    os.Getenv("API_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTIssuer:      getEnv("JWT_ISSUER", "habitnotes"),
	}

	switch cfg.DocstoreDriver {
	case DriverFilesystem, DriverPostgres:
	default:
		return nil, fmt.Errorf("DOCSTORE_DRIVER must be %q or %q", DriverFilesystem, DriverPostgres)
	}

	if cfg.APIPassword == "" {
		return nil, fmt.Errorf("API_PASSWORD is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttlHours, err := getEnvInt("JWT_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cfg.JWTTTL = time.Duration(ttlHours) * time.Hour

	ensureSeconds, err := getEnvInt("ENSURE_INTERVAL_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.EnsureInterval = time.Duration(ensureSeconds) * time.Second

	tracker, err := loadTracker()
	if err != nil {
		return nil, err
	}
	cfg.Tracker = tracker

	return cfg, nil
}

func loadTracker() (domain.TrackerConfig, error) {
	tracker := domain.TrackerConfig{
		DailyNotesFolder: os.Getenv("DAILY_NOTES_FOLDER"),
		DateFormat:       getEnv("DATE_FORMAT", domain.DefaultDateFormat),
		Habits:           splitList(os.Getenv("HABITS")),
		HabitsWithValues: splitList(os.Getenv("HABITS_WITH_VALUES")),
		StreakMode:       getEnv("STREAK_MODE", domain.StreakModeStrict),
	}

	switch tracker.StreakMode {
	case domain.StreakModeStrict, domain.StreakModeLenient:
	default:
		return tracker, fmt.Errorf("STREAK_MODE must be %q or %q", domain.StreakModeStrict, domain.StreakModeLenient)
	}

	if raw := os.Getenv("AUTO_DETECT_HABITS"); raw != "" {
		autoDetect, err := strconv.ParseBool(raw)
		if err != nil {
			return tracker, fmt.Errorf("AUTO_DETECT_HABITS must be a boolean: %w", err)
		}
		tracker.AutoDetectHabits = autoDetect
	}

	activeDays, err := parseActiveDays(os.Getenv("HABIT_ACTIVE_DAYS"))
	if err != nil {
		return tracker, err
	}
	tracker.HabitActiveDays = activeDays

	return tracker, nil
}

// parseActiveDays parses "Read:1,2,3;Run:0,6" into the per-habit weekday
// map. An empty day list for a habit means active every day and is kept as
// an empty slice.
func parseActiveDays(raw string) (map[string][]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	result := make(map[string][]int)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, daysRaw, found := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if name == "" || !found {
			return nil, fmt.Errorf("HABIT_ACTIVE_DAYS entry %q must look like Name:0,1,2", entry)
		}

		var days []int
		for _, d := range strings.Split(daysRaw, ",") {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			day, err := strconv.Atoi(d)
			if err != nil || day < 0 || day > 6 {
				return nil, fmt.Errorf("HABIT_ACTIVE_DAYS entry %q: weekdays must be 0-6", entry)
			}
			days = append(days, day)
		}
		result[name] = days
	}

	return result, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Environment    string   // ENV: production, development, etc.
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)

	JournalStore string // mongo, postgres or memory
	MongoURI     string
	PostgresURI  string
	RedisURI     string

	OpenAIAPIKey           string
	OpenAIModel            string
	OpenAIBaseURL          string
	InsightTimeout         time.Duration
	InsightBreakerFailure  uint32
	InsightBreakerCooldown time.Duration

	StatsCacheTTL        time.Duration
	AnalyzeRatePerMinute int

	LogLevel string
	LogFile  string
}

// Store backends understood by JOURNAL_STORE.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	store := strings.ToLower(strings.TrimSpace(getEnv("JOURNAL_STORE", StoreMongo)))
	switch store {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		store = StoreMongo
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		AllowedOrigins: allowedOrigins,

		JournalStore: store,
		MongoURI:     getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/journal")),
		PostgresURI:  getEnv("POSTGRES_URI", "postgres://localhost:5432/journal?sslmode=disable"),
		RedisURI:     getEnv("REDIS_URI", "redis://localhost:6379/0"),

		OpenAIAPIKey:           strings.TrimSpace(getEnv("OPENAI_API_KEY", "")),
		OpenAIModel:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:          getEnv("OPENAI_BASE_URL", ""),
		InsightTimeout:         getDuration("INSIGHT_TIMEOUT", 8*time.Second),
		InsightBreakerFailure:  uint32(getInt("INSIGHT_BREAKER_FAILURES", 3)),
		InsightBreakerCooldown: getDuration("INSIGHT_BREAKER_COOLDOWN", 30*time.Second),

		StatsCacheTTL:        getDuration("STATS_CACHE_TTL", 5*time.Minute),
		AnalyzeRatePerMinute: getInt("ANALYZE_RATE_PER_MINUTE", 20),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// RemoteInsightEnabled reports whether an OpenAI credential is configured.
func (c *Config) RemoteInsightEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt falls back to defaultValue on missing, malformed or non-positive values.
func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const (
	DefaultPort          = 4321
	DefaultSQLiteURL     = "file:project51.db"
	DefaultStatsCacheTTL = 10 * time.Second
	DefaultKafkaTopic    = "votes"
	DefaultGeoLookupURL  = "http://ip-api.com/json/"
	DefaultGeoTimeout    = 2 * time.Second
	DefaultSystemName    = "Project 51"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	IPHashSalt   string

	RedisURL      string
	StatsCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	GeoLookupURL     string
	GeoLookupTimeout time.Duration

	SystemName string
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var brokers, statsTTL, geoTimeout string

	fs := flag.NewFlagSet("project51", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Identity token HMAC key (prefer env)")

	// Optional integrations
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for the tally cache")
	fs.StringVar(&statsTTL, "stats-ttl", "", "Tally cache lifetime")
	fs.StringVar(&brokers, "kafka-brokers", "", "Comma separated Kafka brokers")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", "", "Kafka topic for vote events")
	fs.StringVar(&cfg.GeoLookupURL, "geo-url", "", "Fallback geolocation endpoint")
	fs.StringVar(&geoTimeout, "geo-timeout", "", "Fallback geolocation timeout")
	fs.StringVar(&cfg.SystemName, "system", "", "System name reported by health")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), DatabaseSQLite)
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres:
	default:
		return Config{}, fmt.Errorf("unknown database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	cfg.IPHashSalt = firstNonEmpty(cfg.IPHashSalt, os.Getenv("IP_HASH_SALT"))
	cfg.RedisURL = firstNonEmpty(cfg.RedisURL, os.Getenv("REDIS_URL"))
	cfg.KafkaTopic = firstNonEmpty(cfg.KafkaTopic, os.Getenv("KAFKA_TOPIC"), DefaultKafkaTopic)
	cfg.GeoLookupURL = firstNonEmpty(cfg.GeoLookupURL, os.Getenv("GEO_LOOKUP_URL"), DefaultGeoLookupURL)
	cfg.SystemName = firstNonEmpty(cfg.SystemName, os.Getenv("SYSTEM_NAME"), DefaultSystemName)

	var err error
	cfg.StatsCacheTTL, err = parseDuration("STATS_CACHE_TTL", firstNonEmpty(statsTTL, os.Getenv("STATS_CACHE_TTL")), DefaultStatsCacheTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.GeoLookupTimeout, err = parseDuration("GEO_LOOKUP_TIMEOUT", firstNonEmpty(geoTimeout, os.Getenv("GEO_LOOKUP_TIMEOUT")), DefaultGeoTimeout)
	if err != nil {
		return Config{}, err
	}

	cfg.KafkaBrokers = splitList(firstNonEmpty(brokers, os.Getenv("KAFKA_BROKERS")))

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseDuration(name, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", name)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

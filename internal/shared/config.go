package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	StoreDriver    string // mongo|mysql
	DatabaseURL    string
	DatabaseName   string
	MySQLDSN       string
	SeedOnStart    bool
	SeedWorkers    int
	SearchLimit    int
	SearchRegex    bool
	RequestTimeout time.Duration
	CORSOrigins    []string

	// terminal client
	APIURL   string
	APIRPS   int
	Debounce time.Duration
}

func (c Config) Production() bool { return c.AppEnv == "prod" || c.AppEnv == "production" }

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer env value")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":3001"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		StoreDriver:    strings.ToLower(env("STORE_DRIVER", "mongo")),
		DatabaseURL:    env("DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName:   env("DATABASE_NAME", "test"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/finder?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		SeedWorkers:    atoi("SEED_WORKERS", 3),
		SearchLimit:    atoi("SEARCH_LIMIT", 10),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		CORSOrigins:    splitList(env("CORS_ORIGINS", "*")),
		APIURL:         strings.TrimRight(env("FINDER_API_URL", "http://localhost:3001"), "/"),
		APIRPS:         atoi("FINDER_API_RPS", 10),
		Debounce:       time.Duration(atoi("FINDER_DEBOUNCE_MS", 300)) * time.Millisecond,
	}
	c.SeedOnStart = boolEnv("SEED_ON_START", !c.Production())
	c.SearchRegex = boolEnv("SEARCH_REGEX", false)
	if c.StoreDriver != "mongo" && c.StoreDriver != "mysql" {
		log.Warn().Str("driver", c.StoreDriver).Msg("unknown STORE_DRIVER, using mongo")
		c.StoreDriver = "mongo"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

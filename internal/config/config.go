package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The signing secret and database settings
// are injected into components at construction; business logic never
// reads the environment directly.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBDriver     string // "mysql" (default) or "sqlite3" for local development
	DBUser       string // database username (mysql)
	DBPass       string // database password (optional)
	DBHost       string // database host address (mysql)
	DBPort       string // database port number (mysql)
	DBName       string // database name (mysql)
	SQLitePath   string // database file path when DBDriver is sqlite3
	JWTSecret    string // secret used to sign identity tokens
	AccessTTLMin int    // identity token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	AuditEnabled bool   // whether to start the RabbitMQ audit consumer
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Database host
// settings are only required for the mysql driver.
func Load() Config {
	cfg := Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBDriver:     getenv("DB_DRIVER", "mysql"),
		SQLitePath:   getenv("SQLITE_PATH", "docmanager.db"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
		AuditEnabled: getenv("AUDIT_CONSUMER_ENABLED", "false") == "true",
	}
	if cfg.DBDriver == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

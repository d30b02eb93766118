package config // package config loads application configuration from environment variables

import (
	"fmt" // fmt assembles the database URL from its parts
	"log" // log reports configuration errors and halts execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values. Each field corresponds
// to one or more environment variables. Redis, rate-limit and cache
// settings have their own loaders in this package; the RabbitMQ URL is
// read by the queue package itself.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DatabaseURL string // PostgreSQL connection URL
}

// Load reads configuration from the environment. DATABASE_URL wins when
// set; otherwise the URL is composed from DB_USER / DB_PASS / DB_HOST /
// DB_PORT / DB_NAME, and missing required parts are fatal.
func Load() Config {
	return Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        getenv("APP_PORT", "4000"),
		DatabaseURL: databaseURL(),
	}
}

func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := must("DB_USER")
	pass := os.Getenv("DB_PASS") // empty allowed
	host := must("DB_HOST")
	port := must("DB_PORT")
	name := must("DB_NAME")

	auth := user
	if pass != "" {
		auth = user + ":" + pass
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s", auth, host, port, name)
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

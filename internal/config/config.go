package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/types"
	"github.com/gangamma-trust/registration-portal/internal/utils"
)

type Config struct {
	Port          string
	SessionSecret string
	Variant       types.Variant
	PostgresDSN   string
	CORSOrigins   []string
}

// Load reads configuration from the process environment. A local .env file
// is honored when present; on the hosting platform the variables come from
// the environment directly.
func Load(log *logger.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded", "error", err)
	}

	variant := types.Variant(utils.GetEnv("FORM_VARIANT", string(types.VariantDonation), log))
	if !variant.Valid() {
		log.Warn("Unknown FORM_VARIANT, falling back to donation", "form_variant", string(variant))
		variant = types.VariantDonation
	}

	return Config{
		Port:          utils.GetEnv("PORT", "8080", log),
		SessionSecret: utils.GetEnv("SECRET_KEY", "fallback_secret_key", log),
		Variant:       variant,
		PostgresDSN:   postgresDSN(log),
		CORSOrigins:   splitOrigins(utils.GetEnv("CORS_ORIGINS", "*", log)),
	}
}

// postgresDSN prefers a full DATABASE_URL and otherwise assembles a DSN from
// the discrete POSTGRES_* variables.
func postgresDSN(log *logger.Logger) string {
	if raw := utils.GetEnv("DATABASE_URL", "", log); raw != "" {
		dsn, err := parseDatabaseURL(raw)
		if err != nil {
			log.Warn("Could not parse DATABASE_URL, falling back to POSTGRES_* vars", "error", err)
		} else {
			return dsn
		}
	}

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "gangamma", log)
	sslmode := utils.GetEnv("POSTGRES_SSLMODE", "disable", log)

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, name, sslmode,
	)
}

// parseDatabaseURL validates a postgres:// URL and normalizes it into the
// DSN handed to the driver. Hosted databases usually require TLS, so
// sslmode=require is assumed when the URL does not say otherwise.
func parseDatabaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported scheme %q in DATABASE_URL", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("DATABASE_URL has no host")
	}
	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
	}
	u.Scheme = "postgres"
	return u.String(), nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

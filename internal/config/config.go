package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret    string
	TokenTTLHours int

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string

	// Dev convenience: trust the role claim when the users table has no row.
	AllowClaimRole bool
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:       addr,
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		AuthSecret:     envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		TokenTTLHours:  envInt("TOKEN_TTL_HOURS", 8),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  os.Getenv("ADMIN_PASS_HASH"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		AllowClaimRole: envBool("ALLOW_CLAIM_ROLE", true),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

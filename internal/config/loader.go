package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the booking
// service.
type Config struct {
	HTTPPort   int
	SQLiteDSN  string
	BcryptCost int
}

// Load parses configuration values from the current process environment.
//
// Every value has a default; invalid entries are reported together rather
// than one at a time.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:   3001,
		SQLiteDSN:  "file:reza.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		BcryptCost: 10,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("REZA_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "REZA_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("REZA_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if costValue := strings.TrimSpace(os.Getenv("REZA_BCRYPT_COST")); costValue != "" {
		cost, err := strconv.Atoi(costValue)
		if err != nil || cost < 4 || cost > 31 {
			invalid = append(invalid, "REZA_BCRYPT_COST")
		} else {
			cfg.BcryptCost = cost
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("variables d'environnement invalides : %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

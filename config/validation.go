package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequirePostgres    bool
	RequireCORSOrigins bool
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI: {
			RequirePostgres: true,
		},
		Production: {
			RequirePostgres:    true,
			RequireCORSOrigins: true,
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the given environment
func ValidateConfig(cfg *Config, environment Environment) error {
	reqs := requirements[environment]

	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for postgres")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "is required for postgres")
		}
		if cfg.DBPassword == "" {
			add("DB_PASSWORD", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for postgres")
		}
	case DriverSQLite:
		if reqs.RequirePostgres {
			add("DB_DRIVER", fmt.Sprintf("sqlite is not allowed in %s", environment))
		}
		if cfg.DBPath == "" {
			add("DB_PATH", "is required for sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	for _, origin := range cfg.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			add("CORS_ORIGIN_SERVER", fmt.Sprintf("origin %q must start with http:// or https://", origin))
		}
	}
	if reqs.RequireCORSOrigins && len(cfg.CORSOrigins) == 0 {
		add("CORS_ORIGIN_SERVER", fmt.Sprintf("at least one origin is required in %s", environment))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

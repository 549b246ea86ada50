package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "flowboard-backend/internal/util/env"
	"flowboard-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string            `env:"DATABASE_DSN"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"     env-default:"development"`

	HTTPPort string `env:"HTTP_PORT" env-default:"4010"`

	// base URL used when building invite links and OAuth redirects
	SiteURL string `env:"SITE_URL" env-default:"http://localhost:4010"`

	JwtSecret         string `env:"JWT_SECRET"`
	SessionTTLHours   int    `env:"SESSION_TTL_HOURS"   env-default:"168"`
	InviteExpiresDays int    `env:"INVITE_EXPIRES_DAYS" env-default:"7"`

	// oauth
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	// when enabled, signup issues a one-time confirmation code instead
	// of an immediate session
	RequireEmailConfirmation bool `env:"REQUIRE_EMAIL_CONFIRMATION" env-default:"false"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			break
		}
	}

	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.IsTesting {
		if env.JwtSecret == "" {
			env.JwtSecret = "flowboard-test-secret"
		}

		return
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.JwtSecret == "" {
		log.Error("JWT_SECRET is empty")
		os.Exit(1)
	}

	if env.EnvMode != env_utils.EnvModeDevelopment &&
		env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!", "mode", env.EnvMode)
}

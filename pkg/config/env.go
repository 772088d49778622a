package config

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvDataDir  = "BDIR_DATA_DIR"
	EnvPort     = "BDIR_PORT"
	EnvBind     = "BDIR_BIND"
	EnvAPIKey   = "BDIR_API_KEY"
	EnvLogLevel = "BDIR_LOG_LEVEL"
	EnvPurpose  = "BDIR_PURPOSE"
)

// ApplyEnv loads the given .env files, if they exist, and overrides c from
// the BDIR_* environment variables. Variables already set in the process
// environment win over the files.
func ApplyEnv(c *Config, files ...string) error {
	var existing []string
	for _, f := range files {
		if ConfigExists(f) {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return errors.Wrap(err, "failed to load env file")
		}
	}

	if v, ok := os.LookupEnv(EnvDataDir); ok {
		c.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvPort)
		}
		c.Port = port
	}
	if v, ok := os.LookupEnv(EnvBind); ok {
		c.Bind = v
	}
	if v, ok := os.LookupEnv(EnvAPIKey); ok {
		c.Security.APIKey = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPurpose); ok {
		c.Codec.Purpose = v
	}
	return nil
}

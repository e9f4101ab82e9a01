// Package config loads connection and logging settings from the environment,
// optionally seeded by a .env file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"gorm.io/datalayer/connection"
	"gorm.io/datalayer/logger"
)

// AppFs filesystem used to look up .env files
var AppFs = afero.NewOsFs()

const (
	keyDriver        = "DBDRIVER"
	keyHost          = "DBHOST"
	keyPort          = "DBPORT"
	keyName          = "DBNAME"
	keyUser          = "DBUSER"
	keyPass          = "DBPASS"
	keyOptions       = "DBOPTIONS"
	keyLogLevel      = "DBLOGLEVEL"
	keyLogFormat     = "DBLOGFORMAT"
	keySlowThreshold = "DBSLOWTHRESHOLD"
)

// Config settings of one application
type Config struct {
	Connection connection.Config
	Logger     logger.Config
	// LogFormat one of slog, zap, zerolog, logrus
	LogFormat string
}

// EnvFiles returns the .env files Load reads, lowest priority first
func EnvFiles() []string {
	files := []string{}
	if home, err := homedir.Dir(); err == nil {
		files = append(files, filepath.Join(home, ".datalayer.env"))
	}
	return append(files, ".env", ".env.local")
}

// Load reads EnvFiles then the process environment, which always wins
func Load() (*Config, error) {
	return LoadFiles(EnvFiles()...)
}

// LoadFiles is Load with an explicit list of env files
func LoadFiles(files ...string) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyDriver, "mysql")
	v.SetDefault(keyHost, "localhost")
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyLogFormat, "slog")
	v.SetDefault(keySlowThreshold, "200ms")

	for _, file := range files {
		values, err := readEnvFile(file)
		if err != nil {
			return nil, err
		}
		for k, val := range values {
			v.SetDefault(k, val)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		Connection: connection.Config{
			Driver:   v.GetString(keyDriver),
			Host:     v.GetString(keyHost),
			Port:     v.GetInt(keyPort),
			DBName:   v.GetString(keyName),
			Username: v.GetString(keyUser),
			Password: v.GetString(keyPass),
		},
		LogFormat: strings.ToLower(v.GetString(keyLogFormat)),
	}

	if raw := v.GetString(keyOptions); raw != "" {
		options, err := url.ParseQuery(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", keyOptions, err)
		}
		cfg.Connection.Options = make(map[string]string, len(options))
		for k := range options {
			cfg.Connection.Options[k] = options.Get(k)
		}
	}

	level, ok := logger.ParseLevel(v.GetString(keyLogLevel))
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", keyLogLevel, v.GetString(keyLogLevel))
	}
	slow, err := time.ParseDuration(v.GetString(keySlowThreshold))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", keySlowThreshold, err)
	}
	cfg.Logger = logger.Config{
		LogLevel:                  level,
		SlowThreshold:             slow,
		IgnoreRecordNotFoundError: true,
	}

	return cfg, nil
}

func readEnvFile(name string) (map[string]string, error) {
	f, err := AppFs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return values, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile   = "config.json"
	DefaultDatabaseFile = "studytime.db"
	DefaultVersion      = 1
	DefaultTheme        = "unipd-dark"

	envPrefix = "STUDYTIME"
)

// Settings holds everything the application needs before touching the store
type Settings struct {
	DatabaseFile string `mapstructure:"database_file" validate:"required"`
	Version      int    `mapstructure:"version" validate:"gte=1"`
	Theme        string `mapstructure:"theme" validate:"oneof=unipd-dark unipd-light"`
}

// StartupError is fatal: the program must stop before any UI is shown
type StartupError struct {
	Reason string
	Err    error
}

func (e *StartupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("startup failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("startup failed: %s", e.Reason)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// IsStartupError reports whether err (or anything it wraps) is a StartupError
func IsStartupError(err error) bool {
	var se *StartupError
	return errors.As(err, &se)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the settings file at path. A missing file is not an error: every
// setting falls back to its own default. Malformed content is a StartupError.
//
// STUDYTIME_* variables override the file. A .env next to the settings file
// supplies such variables when the environment does not.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("database_file", DefaultDatabaseFile)
	v.SetDefault("version", DefaultVersion)
	v.SetDefault("theme", DefaultTheme)

	if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
		return nil, &StartupError{Reason: fmt.Sprintf("cannot parse settings file %s", path), Err: err}
	}

	if err := applyDotEnv(v, filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, &StartupError{Reason: "cannot parse .env file", Err: err}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, &StartupError{Reason: fmt.Sprintf("invalid settings in %s", path), Err: err}
	}

	if err := validate.Struct(&settings); err != nil {
		return nil, &StartupError{Reason: fmt.Sprintf("invalid settings in %s", path), Err: err}
	}

	return &settings, nil
}

// Default returns the compiled-in settings
func Default() *Settings {
	return &Settings{
		DatabaseFile: DefaultDatabaseFile,
		Version:      DefaultVersion,
		Theme:        DefaultTheme,
	}
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

func applyDotEnv(v *viper.Viper, path string) error {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	prefix := envPrefix + "_"
	for name, value := range vars {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(strings.ToLower(strings.TrimPrefix(name, prefix)), value)
	}
	return nil
}

// Package settings loads the binaries' runtime configuration and sets up logging.
package settings

import (
	"fmt"
	"os"
	"strconv"

	"circular_platform/pkg/core/kpi"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"gopkg.in/yaml.v2"
)

// DefaultPath is used when APP_CONFIG is unset.
const DefaultPath = "config/app.yaml"

type Server struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// App is the contents of config/app.yaml.
type App struct {
	Organization string      `yaml:"organization"`
	Server       Server      `yaml:"server"`
	Targets      kpi.Targets `yaml:"targets"`
}

// Default returns the configuration used when no file is present.
func Default() App {
	return App{
		Server:  Server{Port: 8080, LogLevel: "info"},
		Targets: kpi.DefaultTargets(),
	}
}

// Load reads .env (if any), then the YAML file named by APP_CONFIG, then the
// PORT and LOG_LEVEL overrides. A missing config file is not an error.
func Load() (App, error) {
	_ = godotenv.Load()

	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = DefaultPath
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return App{}, err
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return App{}, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	return cfg, nil
}

// LoadFile overlays the YAML at path onto Default.
func LoadFile(path string) (App, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return App{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return App{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Targets.WarnBand <= 0 {
		cfg.Targets.WarnBand = kpi.DefaultWarnBand
	}
	return cfg, nil
}

// SetupLogger configures the global phuslu logger.
func SetupLogger(level string) {
	writer := log.Writer(&log.IOWriter{Writer: os.Stderr})
	if log.IsTerminal(os.Stderr.Fd()) {
		writer = &log.ConsoleWriter{ColorOutput: true, EndWithMessage: true}
	}
	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(level),
		Caller:     0,
		TimeFormat: "15:04:05",
		Writer:     writer,
	}
}

// Addr returns the listen address for the configured port.
func (a App) Addr() string {
	return ":" + strconv.Itoa(a.Server.Port)
}

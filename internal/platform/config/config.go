package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	DefaultSubjects = []string{"DSA", "Development", "DS", "GATE"}
	DefaultMoods    = []string{"Focus Mode", "Calm", "Motivated", "Lofi", "Stressed", "Tired", "Happy"}
)

type Config struct {
	DataPath       string
	SessionLogPath string
	GoalsPath      string
	DBPath         string
	ReportsPath    string
	ReportTemplate string
	Subjects       []string
	Moods          []string
	LogLevel       string
	LogFormat      string
}

type fileConfig struct {
	SessionLog     string   `toml:"session_log"`
	Goals          string   `toml:"goals"`
	ReportsDir     string   `toml:"reports_dir"`
	ReportTemplate string   `toml:"report_template"`
	Subjects       []string `toml:"subjects"`
	Moods          []string `toml:"moods"`
	LogLevel       string   `toml:"log_level"`
	LogFormat      string   `toml:"log_format"`
}

func New(dataPath string) (Config, error) {
	if strings.TrimSpace(dataPath) == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	return Config{
		DataPath:       dataPath,
		SessionLogPath: filepath.Join(dataPath, "study_logs.csv"),
		GoalsPath:      filepath.Join(dataPath, "goals.csv"),
		DBPath:         filepath.Join(dataPath, ".focusflow", "focusflow.db"),
		ReportsPath:    filepath.Join(dataPath, "reports"),
		Subjects:       append([]string(nil), DefaultSubjects...),
		Moods:          append([]string(nil), DefaultMoods...),
		LogLevel:       "warn",
		LogFormat:      "text",
	}, nil
}

// FilePath is the optional TOML override for a data directory.
func FilePath(dataPath string) string {
	return filepath.Join(dataPath, ".focusflow", "config.toml")
}

// Load builds the defaults for dataPath and applies config.toml when present.
// Relative paths in the file are resolved against dataPath.
func Load(dataPath string) (Config, error) {
	cfg, err := New(dataPath)
	if err != nil {
		return Config{}, err
	}
	path := FilePath(dataPath)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.apply(fc)
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) {
	if fc.SessionLog != "" {
		c.SessionLogPath = c.resolve(fc.SessionLog)
	}
	if fc.Goals != "" {
		c.GoalsPath = c.resolve(fc.Goals)
	}
	if fc.ReportsDir != "" {
		c.ReportsPath = c.resolve(fc.ReportsDir)
	}
	if fc.ReportTemplate != "" {
		c.ReportTemplate = c.resolve(fc.ReportTemplate)
	}
	if len(fc.Subjects) > 0 {
		c.Subjects = fc.Subjects
	}
	if len(fc.Moods) > 0 {
		c.Moods = fc.Moods
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataPath, path)
}

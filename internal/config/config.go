package config

import (
	"errors"
	"os"
	"sync"
)

// DefaultReminderType is the single canonical default for the reminder
// delivery type, used both for GET defaults and the /test fallback.
const DefaultReminderType = "both"

const (
	DefaultReminderTime = "19:00"
)

type Config struct {
	Env            string
	Port           string
	LogLevel       string
	DBType         string
	DBDSN          string
	FileLogs       string
	FileMilestones string
	FileSettings   string
	AuthMode       string
	AuthToken      string
	AuthServiceURL string
	ReminderCron   bool
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:            getEnv("APP_ENV", "development"),
			Port:           getEnv("PORT", "8080"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			DBType:         getEnv("STORAGE_BACKEND", "file"),
			DBDSN:          getEnv("POSTGRES_DSN", ""),
			FileLogs:       getEnv("STUDY_LOGS_FILE", "data/study_logs.json"),
			FileMilestones: getEnv("MILESTONES_FILE", "data/milestones.json"),
			FileSettings:   getEnv("USER_SETTINGS_FILE", "data/user_settings.json"),
			AuthMode:       getEnv("AUTH_MODE", ""),
			AuthToken:      getEnv("AUTH_LOCAL_TOKEN", "MOCK-TOKEN"),
			AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
			ReminderCron:   getEnv("REMINDER_SCHEDULER", "on") != "off",
		}
		if cfg.AuthMode == "" {
			if cfg.Env == "development" {
				cfg.AuthMode = "local"
			} else {
				cfg.AuthMode = "remote"
			}
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileLogs == "" || c.FileMilestones == "" || c.FileSettings == "") {
		return errors.New("File storage requires STUDY_LOGS_FILE, MILESTONES_FILE and USER_SETTINGS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.AuthMode != "local" && c.AuthMode != "remote" {
		return errors.New("AUTH_MODE must be one of: local, remote")
	}
	if c.AuthMode == "remote" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required when AUTH_MODE=remote")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		f, err := os.Open(".env")
		if err != nil {
			return err
		}
		defer f.Close()
		var lines []string
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				lines = append(lines, string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
		for _, line := range lines {
			for _, l := range splitLines(line) {
				if len(l) == 0 || l[0] == '#' {
					continue
				}
				kv := splitKV(l)
				if len(kv) == 2 {
					os.Setenv(kv[0], kv[1])
				}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}

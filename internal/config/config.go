// Package config loads application settings from environment variables with
// defaults and validates them on startup.
package config

import (
	"fmt"
	"strings"
)

const DefaultCoachMessage = "Great work today! Attached is your FTP and power zones. " +
	"The FTP number is calculated as 95% of the average watts from your 20-minute test. " +
	"Keep up the hard work and reach out with any questions. We are stronger together!"

// Config holds all application configuration.
type Config struct {
	Logging LoggingConfig
	Zones   ZonesConfig
	Roster  RosterConfig
	Message MessageConfig
	Export  ExportConfig
}

type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is console or json (default: console)
	Format string `env:"LOG_FORMAT" default:"console"`

	// File receives log output. Empty means stderr for commands and no logging for the TUI.
	File string `env:"LOG_FILE"`
}

type ZonesConfig struct {
	// File is an optional YAML zone table replacing the default five zones
	File string `env:"ZONES_FILE"`
}

type RosterConfig struct {
	// StrictFTP drops rows whose FTP is not a positive number (default: false)
	StrictFTP bool `env:"ROSTER_STRICT_FTP" default:"false"`
}

type MessageConfig struct {
	// Body is the coach message used for texts, mails and copied summaries
	// (default: DefaultCoachMessage)
	Body string `env:"COACH_MESSAGE"`

	// Subject is the mail subject line
	Subject string `env:"COACH_EMAIL_SUBJECT" default:"Your FTP and power zones"`
}

type ExportConfig struct {
	// Dir is where exported workbooks are written (default: current directory)
	Dir string `env:"EXPORT_DIR" default:"."`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: console, json", c.Logging.Format))
	}

	if strings.TrimSpace(c.Message.Body) == "" {
		errs = append(errs, "COACH_MESSAGE must not be blank")
	}

	if c.Export.Dir == "" {
		errs = append(errs, "EXPORT_DIR must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, File: %q}, ", c.Logging.Level, c.Logging.Format, c.Logging.File))
	b.WriteString(fmt.Sprintf("Zones: {File: %q}, ", c.Zones.File))
	b.WriteString(fmt.Sprintf("Roster: {StrictFTP: %v}, ", c.Roster.StrictFTP))
	b.WriteString(fmt.Sprintf("Export: {Dir: %q}", c.Export.Dir))
	b.WriteString("}")
	return b.String()
}

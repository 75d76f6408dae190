package initializer

import (
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhgaber/branchbank/pkg/config"
)

// SetupLogger builds the application logger: charmbracelet/log behind a
// standard *slog.Logger front end, installed as the slog default.
func SetupLogger(cfg config.Log) *slog.Logger {
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	handler := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

package main

import (
	"log/slog"
	"os"

	"corebank/internal/config"

	"github.com/charmbracelet/log"
)

func setupLogger(cfg config.Config) *slog.Logger {
	level := log.InfoLevel
	if parsed, err := log.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}
	formatter := log.TextFormatter
	if cfg.LogFormat == "json" {
		formatter = log.JSONFormatter
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Formatter:       formatter,
		Prefix:          "bank",
	})
	return slog.New(handler)
}

package main

import (
	"fmt"
	"io"
	"os"

	"tomato/internal/config"
	"tomato/internal/core/timekeeper"
	xlog "tomato/internal/log"
	"tomato/internal/notify"
)

// loadConfig reads configuration and sets up logging. Flags win over the
// file and the environment.
func loadConfig(console bool, logOutput io.Writer) (config.Config, error) {
	if logOutput == nil {
		logOutput = os.Stderr
	}
	// Warnings raised while loading go through the flag level.
	xlog.Configure(xlog.Config{
		Level:   logLevel,
		Output:  logOutput,
		Service: appName,
		Console: console,
	})

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	xlog.Reconfigure(xlog.Config{
		Level:   cfg.LogLevel,
		Output:  logOutput,
		Service: appName,
		Console: console,
	})

	logger := xlog.WithComponent("main")
	logger.Info().
		Str("config", cfg.Path).
		Int("focus_minutes", cfg.FocusMinutes).
		Int("break_minutes", cfg.BreakMinutes).
		Bool("notifications", cfg.Notifications).
		Msg("configuration loaded")
	return cfg, nil
}

// newTimer wires the session timer to a notification scheduler driving
// sender.
func newTimer(cfg config.Config, sender notify.Sender) (*timekeeper.TimeKeeper, *notify.Scheduler) {
	if !cfg.Notifications {
		sender = notify.LogSender{Logger: xlog.WithComponent("notify")}
	}
	scheduler := notify.NewScheduler(sender, notify.Config{})
	keeper := timekeeper.New(cfg.TimerConfig(), timekeeper.Config{
		TickInterval: cfg.TickInterval,
		Notifier:     scheduler,
		ResetToFocus: cfg.ResetToFocus,
		ClampAdjust:  cfg.ClampAdjust,
	})
	return keeper, scheduler
}

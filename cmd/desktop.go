package main

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"tomato/internal/core/timekeeper"
	xlog "tomato/internal/log"
	"tomato/internal/notify"
	"tomato/internal/platform"
	"tomato/internal/ui/animation"
	"tomato/internal/ui/controls"
	"tomato/internal/ui/preferences"
	"tomato/internal/ui/timerview"
	"tomato/internal/ui/tray"
	"tomato/resources"
)

func runDesktop() error {
	cfg, err := loadConfig(false, nil)
	if err != nil {
		return err
	}
	logger := xlog.WithComponent("main")

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn().Err(err).Msg("another instance is running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.tomato.app")
	activeIcon := resources.MustIcon(resources.IconActive)
	idleIcon := resources.MustIcon(resources.IconIdle)
	fyneApp.SetIcon(activeIcon)

	keeper, scheduler := newTimer(cfg, notify.NewFyneSender(fyneApp))
	defer scheduler.Close()
	defer keeper.Close()
	controller := controls.New(keeper)

	prefsWindow := preferences.New(fyneApp, cfg.Settings(), controller.SaveSettings)
	timerWindow := timerview.New(fyneApp, timerview.Config{
		Title:     "tomato",
		Animation: animation.DefaultConfig(),
	}, controller, func() {
		prefsWindow.UpdateSettings(controller.Settings())
		prefsWindow.Show()
	})

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnToggle: controller.Toggle,
			OnReset:  timerWindow.AskReset,
			OnEdit: func() {
				prefsWindow.UpdateSettings(controller.Settings())
				prefsWindow.Show()
			},
			OnShow: timerWindow.Show,
			OnQuit: fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(idleIcon)
		timerWindow.SetCloseIntercept(timerWindow.Hide)
	} else {
		logger.Info().Msg("system tray unsupported on this platform")
	}

	fyneApp.Lifecycle().SetOnEnteredForeground(controller.Resume)

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			timerWindow.Update(event.Status)
			if trayManager == nil {
				continue
			}
			status := event.Status
			fyne.Do(func() {
				trayManager.SetStatus(statusLine(status))
				trayManager.SetRunning(status.Active)
				if status.Active {
					desktopApp.SetSystemTrayIcon(activeIcon)
				} else {
					desktopApp.SetSystemTrayIcon(idleIcon)
				}
			})
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
	return nil
}

func statusLine(status timekeeper.Status) string {
	line := fmt.Sprintf("%s %s", status.Session, controls.FormatRemaining(status.Remaining))
	if !status.Active {
		line += " (stopped)"
	}
	return line
}

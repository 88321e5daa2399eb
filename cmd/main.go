package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/audio"
	"pomodoro/internal/core/display"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/overlay"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/terminal"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	appName = "Pomodoro"
	appID   = "io.pomodoro.app"

	eventBuffer = 16
)

type options struct {
	tui        bool
	configPath string
	work       time.Duration
	brk        time.Duration
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath, err = storage.ResolveConfigPath(appName)
		if err != nil {
			log.Printf("settings: %v", err)
			return
		}
	}

	if opts.tui {
		// The terminal owns stdout and stderr while the program runs.
		logDir := filepath.Dir(configPath)
		_ = os.MkdirAll(logDir, 0o755)
		logFile, err := tea.LogToFile(filepath.Join(logDir, "pomodoro.log"), "pomodoro")
		if err == nil {
			defer logFile.Close()
		} else {
			log.SetOutput(io.Discard)
		}
	}

	settings, err := storage.LoadSettings(configPath)
	if err != nil {
		log.Printf("settings: %v", err)
	}
	settings = opts.apply(settings)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	keeper := timekeeper.New(settings.TimeKeeperConfig(), timekeeper.Config{TickInterval: time.Second})
	player := audio.NewPlayer(chimeOptions(settings))
	keeper.SetNotifier(player)
	keeper.SetIdleChecker(platform.NewIdleProvider())

	if settings.Autostart {
		if err := platform.SyncAutostart(platform.NewService(), appName, true); err != nil {
			log.Printf("autostart: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.tui {
		runTerminal(ctx, configPath, keeper, player)
		return
	}
	runDesktop(ctx, guard, configPath, settings, keeper, player)
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&opts.tui, "tui", false, "run in the terminal instead of a window")
	flags.StringVar(&opts.configPath, "config", "", "settings file (default: user config dir)")
	flags.DurationVar(&opts.work, "work", 0, "work interval override, e.g. 50m")
	flags.DurationVar(&opts.brk, "break", 0, "break interval override, e.g. 10m")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() > 0 {
		err := fmt.Errorf("unexpected argument %q", flags.Arg(0))
		fmt.Fprintln(output, err)
		return opts, err
	}
	if opts.work < 0 || opts.brk < 0 {
		err := errors.New("durations must not be negative")
		fmt.Fprintln(output, err)
		return opts, err
	}
	return opts, nil
}

// apply returns settings with command line overrides.
func (opts options) apply(settings preferences.Settings) preferences.Settings {
	if opts.work > 0 {
		settings.WorkDuration = opts.work
	}
	if opts.brk > 0 {
		settings.BreakDuration = opts.brk
	}
	return settings
}

func chimeOptions(settings preferences.Settings) audio.Options {
	return audio.Options{
		Asset:   resources.Chime(),
		File:    settings.ChimeFile,
		Volume:  settings.ChimeVolume,
		Enabled: settings.ChimeEnabled,
	}
}

func watchSettings(ctx context.Context, configPath string, apply func(preferences.Settings)) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		log.Printf("settings watch: %v", err)
		return
	}
	go func() {
		err := storage.Watch(ctx, configPath, func(updated preferences.Settings, err error) {
			if err != nil {
				log.Printf("settings: %v", err)
				return
			}
			apply(updated)
		})
		if err != nil {
			log.Printf("settings watch: %v", err)
		}
	}()
}

func runTerminal(ctx context.Context, configPath string, keeper *timekeeper.TimeKeeper, player *audio.Player) {
	watchSettings(ctx, configPath, func(updated preferences.Settings) {
		keeper.UpdateConfig(updated.TimeKeeperConfig())
		player.UpdateOptions(chimeOptions(updated))
	})

	events := keeper.Subscribe(eventBuffer)
	keeper.Start()
	defer keeper.Stop()

	program := tea.NewProgram(terminal.New(keeper, events), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Printf("terminal: %v", err)
	}
}

func runDesktop(ctx context.Context, guard *platform.InstanceGuard, configPath string, settings preferences.Settings, keeper *timekeeper.TimeKeeper, player *audio.Player) {
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon("tomato.png"))

	timerWindow := window.New(fyneApp, appName, display.Relay(keeper))
	breakOverlay := overlay.New(fyneApp)
	breakOverlay.SetOnSkip(keeper.Skip)

	// applySettings must run on the UI goroutine; it owns settings.
	applySettings := func(updated preferences.Settings) {
		if updated.Autostart != settings.Autostart {
			if err := platform.SyncAutostart(platform.NewService(), appName, updated.Autostart); err != nil {
				log.Printf("autostart: %v", err)
			}
		}
		settings = updated
		keeper.UpdateConfig(settings.TimeKeeperConfig())
		player.UpdateOptions(chimeOptions(settings))
		breakOverlay.Update(display.Render(keeper.Snapshot()), settings.BreakOverlay)
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(configPath, updated); err != nil {
			log.Printf("settings: %v", err)
		}
		applySettings(updated)
	})

	showTimer := func() {
		timerWindow.Show()
		timerWindow.Window().RequestFocus()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, appName, tray.Icons{
			Working: resources.MustIcon("tomato.png"),
			Break:   resources.MustIcon("tomato_break.png"),
			Paused:  resources.MustIcon("tomato_paused.png"),
		}, tray.Callbacks{
			OnShow:        showTimer,
			OnPreferences: prefsWindow.Show,
			OnTogglePause: keeper.TogglePause,
			OnSkip:        keeper.Skip,
			OnReset:       keeper.Reset,
			OnQuit:        fyneApp.Quit,
		})
		timerWindow.Window().SetCloseIntercept(func() {
			timerWindow.Window().Hide()
		})
	} else {
		log.Printf("system tray unsupported on this platform")
		timerWindow.Window().SetMaster()
	}

	go guard.Serve(func() {
		fyne.Do(showTimer)
	})

	render := func(view display.View) {
		timerWindow.Render(view)
		if trayManager != nil {
			trayManager.SetView(view)
		}
		breakOverlay.Update(view, settings.BreakOverlay)
	}

	watchSettings(ctx, configPath, func(updated preferences.Settings) {
		fyne.Do(func() {
			prefsWindow.UpdateSettings(updated)
			applySettings(updated)
		})
	})

	events := keeper.Subscribe(eventBuffer)
	go func() {
		for event := range events {
			switch event.Type {
			case timekeeper.EventIdleError:
				log.Printf("idle: %s", event.Message)
				continue
			case timekeeper.EventIdlePause:
				log.Printf("idle: %s", event.Message)
			}
			view := display.Render(event.Snapshot)
			fyne.Do(func() {
				render(view)
			})
		}
	}()

	fyneApp.Lifecycle().SetOnStopped(func() {
		keeper.Stop()
		timerWindow.Close()
	})

	render(display.Render(keeper.Snapshot()))
	keeper.Start()
	timerWindow.Show()
	fyneApp.Run()
}

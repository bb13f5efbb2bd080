package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"minderd/internal/config"
	"minderd/internal/scheduler"
	"minderd/internal/timeutil"
	"minderd/internal/update"
)

func main() {
	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())

	now := time.Now()
	date := timeutil.Today(now)
	tasks, err := update.LoadTasksFor(cfg.TasksPath, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minderd failed: %v\n", err)
		os.Exit(1)
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModelWithConfig(engine, tasks, date, notifier, cfg, now)
	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "minderd failed: %v\n", err)
		os.Exit(1)
	}
}

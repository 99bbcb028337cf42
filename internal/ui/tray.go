package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"
	"github.com/reelpack/reelpack-agent/internal/exports"
)

type Tray struct {
	repo   exports.Repository
	logger *slog.Logger

	statusItem  *systray.MenuItem
	exportsItem *systray.MenuItem

	mu sync.Mutex

	onOpenOutput func() error
	onQuit       func()
}

type TrayConfig struct {
	Repository   exports.Repository
	Logger       *slog.Logger
	OnOpenOutput func() error
	OnQuit       func()
}

func NewTray(cfg TrayConfig) *Tray {
	return &Tray{
		repo:         cfg.Repository,
		logger:       cfg.Logger,
		onOpenOutput: cfg.OnOpenOutput,
		onQuit:       cfg.OnQuit,
	}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("Reelpack")
	systray.SetTooltip("Reelpack Agent")

	t.mu.Lock()
	t.statusItem = systray.AddMenuItem("Status: Idle", "Current agent status")
	t.statusItem.Disable()

	t.exportsItem = systray.AddMenuItem("Exports: 0", "Completed export runs")
	t.exportsItem.Disable()
	t.mu.Unlock()

	systray.AddSeparator()

	openOutputItem := systray.AddMenuItem("Open Output Folder...", "Open the export output folder")

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit Reelpack Agent")

	if count, err := t.repo.CountRuns(context.Background()); err == nil {
		t.UpdateExportCount(count)
	}

	go func() {
		for {
			select {
			case <-openOutputItem.ClickedCh:
				t.handleOpenOutput()
			case <-quitItem.ClickedCh:
				t.logger.Info("quit requested from tray")
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()

	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

func (t *Tray) handleOpenOutput() {
	if t.onOpenOutput != nil {
		if err := t.onOpenOutput(); err != nil {
			t.logger.Error("failed to open output folder", "error", err)
		}
	}
}

// UpdateStatus is a no-op until the menu is built; a run can finish before
// the tray is ready.
func (t *Tray) UpdateStatus(status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.statusItem == nil {
		return
	}
	t.statusItem.SetTitle("Status: " + status)
}

func (t *Tray) UpdateExportCount(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exportsItem == nil {
		return
	}
	t.exportsItem.SetTitle(fmt.Sprintf("Exports: %d", count))
}

func (t *Tray) Quit() {
	systray.Quit()
}

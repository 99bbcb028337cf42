package ui

import (
	"io"
	"log/slog"
	"testing"
)

func TestTray_UpdatesBeforeReadyAreSafe(t *testing.T) {
	tray := NewTray(TrayConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	// A run can finish before systray has built the menu; updates must not
	// panic on the missing items.
	tray.UpdateStatus("Degraded")
	tray.UpdateExportCount(3)
}

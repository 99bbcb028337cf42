package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/reelpack/reelpack-agent/internal/api"
	"github.com/reelpack/reelpack-agent/internal/bundle"
	"github.com/reelpack/reelpack-agent/internal/config"
	"github.com/reelpack/reelpack-agent/internal/db"
	"github.com/reelpack/reelpack-agent/internal/exports"
	"github.com/reelpack/reelpack-agent/internal/logging"
	"github.com/reelpack/reelpack-agent/internal/metadata"
	"github.com/reelpack/reelpack-agent/internal/ui"
)

var Version = "0.1.0"

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	// .env is for local development only.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputRoot(), 0755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting reelpack agent", "version", Version, "data_dir", cfg.DataDir())

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := exports.NewRepository(database.Conn())

	deviceID, err := ensureDeviceID(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure device ID: %w", err)
	}

	authToken, err := ensureAuthToken(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║                   REELPACK AGENT v0.1.0                   ║")
	fmt.Println("╠═══════════════════════════════════════════════════════════╣")
	fmt.Printf("║  API URL:    http://127.0.0.1:%-27d ║\n", cfg.Port())
	fmt.Printf("║  Auth Token: %-45s ║\n", authToken)
	fmt.Printf("║  Output:     %-45s ║\n", logging.SanitizePath(cfg.OutputRoot()))
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	var proc metadata.Processor
	if ffmpegProc, err := metadata.NewFFmpegProcessor(cfg.FFmpegPath(), logger); err != nil {
		logger.Warn("ffmpeg unavailable, metadata injection disabled", "error", err)
		proc = metadata.NewStubProcessor(logger)
	} else {
		proc = ffmpegProc
	}

	packager := bundle.NewPackager(cfg.VoiceDir(), proc, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	quitCh := make(chan struct{})

	var tray *ui.Tray
	if !cfg.Headless() {
		tray = ui.NewTray(ui.TrayConfig{
			Repository: repo,
			Logger:     logger,
			OnOpenOutput: func() error {
				logger.Info("open output folder requested from tray (file browser launch not implemented in v0)")
				return nil
			},
			OnQuit: func() {
				close(quitCh)
			},
		})
	}

	serverCfg := api.ServerConfig{
		Port:              cfg.Port(),
		Packager:          packager,
		Repository:        repo,
		DefaultOutputRoot: cfg.OutputRoot(),
		Logger:            logger,
		StartTime:         startTime,
		DeviceID:          deviceID,
	}
	if tray != nil {
		serverCfg.OnRunRecorded = func(run *exports.Run) {
			if count, err := repo.CountRuns(context.Background()); err == nil {
				tray.UpdateExportCount(count)
			}
			if run.ErrorCount > 0 {
				tray.UpdateStatus("Degraded")
			} else {
				tray.UpdateStatus("Idle")
			}
		}
	}

	apiServer := api.NewServer(serverCfg)

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			close(quitCh)
		case <-quitCh:
		}
	}()

	if tray == nil {
		logger.Info("running in headless mode (no system tray)")
	} else {
		go tray.Run()
	}

	<-quitCh

	logger.Info("initiating graceful shutdown")

	if tray != nil {
		tray.Quit()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func ensureDeviceID(repo exports.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "device_id")
	if err == nil && existing != "" {
		return existing, nil
	}

	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	deviceID := hex.EncodeToString(idBytes)

	if err := repo.SetConfig(ctx, "device_id", deviceID); err != nil {
		return "", err
	}

	return deviceID, nil
}

func ensureAuthToken(repo exports.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, "auth_token")
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, "auth_token", token); err != nil {
		return "", err
	}

	return token, nil
}

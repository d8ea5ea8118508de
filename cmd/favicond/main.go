package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgnsrekt/favicond/internal/api"
	"github.com/dgnsrekt/favicond/internal/config"
	"github.com/dgnsrekt/favicond/internal/controller"
	"github.com/dgnsrekt/favicond/internal/entry"
	"github.com/dgnsrekt/favicond/internal/entrystore"
	"github.com/dgnsrekt/favicond/internal/events"
	"github.com/dgnsrekt/favicond/internal/history"
	"github.com/dgnsrekt/favicond/internal/icons"
	"github.com/dgnsrekt/favicond/internal/integration"
	"github.com/dgnsrekt/favicond/internal/netutil"
	"github.com/dgnsrekt/favicond/internal/notify"
	"github.com/dgnsrekt/favicond/internal/setup"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	slog.Info("config loaded",
		"bind_addr", cfg.BindAddr,
		"port_auto_fallback", cfg.PortAutoFallback,
		"port_candidates", cfg.PortCandidates,
		"config_root", cfg.ConfigRoot,
		"db_path", cfg.DBPath,
		"setup_file", cfg.SetupFile,
		"history_dir", cfg.HistoryDir,
		"notify_enabled", cfg.NotifyURL != "",
		"log_level", cfg.LogLevel,
		"log_file", cfg.LogFile,
	)

	bindAddr, err := netutil.SelectBindAddr(cfg.BindAddr, cfg.PortCandidates, cfg.PortAutoFallback)
	if err != nil {
		slog.Error("failed to select bind address", "preferred", cfg.BindAddr, "error", err)
		os.Exit(1)
	}

	store, err := entrystore.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open entry store", "db_path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	historyWriter := history.NewWriter(cfg.HistoryDir, 256, cfg.HistoryMaxSizeMB)
	defer func() { _ = historyWriter.Close() }()

	broker := events.NewBroker()
	resolver := icons.NewResolver(cfg.ConfigRoot)
	pages := integration.New(resolver, broker)
	hooks := entry.MultiHooks{pages, history.NewRecorder(historyWriter)}
	if n := notify.New(cfg.NotifyURL, nil); n != nil {
		hooks = append(hooks, n)
	}
	mgr := entry.NewManager(store, hooks)
	pages.Bind(mgr)

	block, err := setup.Load(cfg.SetupFile)
	if err != nil {
		slog.Error("failed to read setup file", "setup_file", cfg.SetupFile, "error", err)
		os.Exit(1)
	}
	if block != nil {
		if _, err := setup.Apply(context.Background(), mgr, block); err != nil {
			slog.Error("failed to apply setup block", "setup_file", cfg.SetupFile, "error", err)
			os.Exit(1)
		}
	}

	svc := controller.NewService(mgr, resolver, pages)
	h := api.NewServer(svc, api.Options{Broker: broker, WWWDir: cfg.WWWDir()})

	srv := &http.Server{Addr: bindAddr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		slog.Info("favicond listening", "addr", bindAddr, "docs", "http://"+bindAddr+"/docs")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stdout, logWriter), &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}

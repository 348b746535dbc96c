package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CryptoAnalyst/internal/app"
	"CryptoAnalyst/internal/config"
	"CryptoAnalyst/internal/notifier"
	"CryptoAnalyst/internal/scheduler"
	"CryptoAnalyst/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoAnalyst server starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init analysis pipeline (fetcher, news, cache, recorder)
	a := app.New(cfg, app.Options{Persist: true})
	defer a.Close()

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	var alerts scheduler.Notifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, "", cfg.Proxy)
		alerts = tn
	} else {
		log.Println("[INFO] Telegram disabled, alerts are recorded only")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, a.Service, alerts, a.Recorder, cfg.Schedule.Watchlist)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: warm the cache immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunRefreshNow()
	}

	srv := server.New(cfg.Server.Addr, cfg.Server.ShutdownTimeout, a.Service)
	if err := srv.Run(ctx); err != nil {
		log.Printf("[ERROR] %v", err)
	}
	log.Println("[INFO] CryptoAnalyst stopped")
}

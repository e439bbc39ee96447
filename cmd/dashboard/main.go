package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketLens/internal/config"
	"MarketLens/internal/dashboard"
	"MarketLens/internal/provider"
	"MarketLens/internal/recorder"
	"MarketLens/internal/scheduler"
	"MarketLens/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketLens starting...")

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

	// Init upstream client
	baseURL := cfg.DataSource.BaseURL
	if baseURL == "" {
		baseURL = provider.DefaultBaseURL
	}
	yahoo := provider.NewYahooClient(baseURL, cfg.Proxy, time.Duration(cfg.DataSource.TimeoutSeconds)*time.Second)
	log.Printf("[INFO] data source: %s (%s)", yahoo.Name(), baseURL)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init provider with TTL cache
	data := provider.New(yahoo,
		provider.WithTTL(time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
		provider.WithQuotes(yahoo),
		provider.WithRecorder(rec),
	)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init watchlist warmer
	sched := scheduler.New(ctx, data, cfg.Watchlist.Tickers, cfg.Watchlist.RangeDays)
	if err := sched.Register(cfg.Watchlist.Cron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: warm the cache immediately on start
	if os.Getenv("WARM_ON_START") == "true" {
		log.Println("[INFO] WARM_ON_START enabled, warming watchlist now")
		go sched.RunNow()
	}

	// Init views and HTTP API
	svc := dashboard.NewService(data)
	nav := dashboard.NewNavContext(time.Now())
	srv := server.New(cfg.Server.Addr, svc, nav)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Println("[INFO] MarketLens is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-errCh:
		log.Printf("[ERROR] http server: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] MarketLens stopped")
}

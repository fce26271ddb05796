package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"naija-tax/config"
	httpLayer "naija-tax/http"
	"naija-tax/repository"
	"naija-tax/scheduler"
	"naija-tax/service"
)

type stores struct {
	counter     repository.CounterRepository
	submissions repository.SubmissionRepository
	close       func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.CounterBackend {
	case config.BackendRedis:
		counter := repository.NewRedisCounter(cfg.RedisAddr, cfg.RedisKey)
		if err := counter.Ping(ctx); err != nil {
			counter.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &stores{
			counter:     counter,
			submissions: repository.NewSubmissionRepositoryMemory(),
			close:       func() { counter.Close() },
		}, nil

	case config.BackendSQLite:
		db, err := repository.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			counter:     db,
			submissions: db,
			close:       func() { db.Close() },
		}, nil

	default:
		return &stores{
			counter:     repository.NewCounterRepositoryMemory(),
			submissions: repository.NewSubmissionRepositoryMemory(),
			close:       func() {},
		}, nil
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Before any store is opened: log.Fatalf skips deferred closes.
	if err := scheduler.ValidateSchedule(cfg.DigestSchedule); err != nil {
		log.Fatalf("Invalid DIGEST_SCHEDULE: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s counter store: %v", cfg.CounterBackend, err)
	}
	defer st.close()
	log.Printf("Counter backend: %s", cfg.CounterBackend)

	smtpCfg := service.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		FromName: cfg.SMTP.FromName,
	}

	var mailer service.Mailer
	if smtpCfg.Configured() {
		mailer = service.NewSMTPMailer(smtpCfg)
	} else {
		log.Println("Warning: SMTP credentials not set, tax reports cannot be emailed")
	}

	calcRepo := repository.NewCalculationRepositoryMemory(repository.DefaultCalculationHistory)
	taxService := service.NewTaxService(calcRepo)
	reportService := service.NewReportService(mailer, st.counter, st.submissions, service.ReportOptions{
		AdminEmail: cfg.AdminEmail,
		Location:   cfg.Timezone,
	})

	var rateLimiter *httpLayer.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		rateLimiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
		defer rateLimiter.Stop()
	}

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		TaxHandler:    httpLayer.NewTaxHandler(taxService),
		ReportHandler: httpLayer.NewReportHandler(taxService, reportService),
		RateLimiter:   rateLimiter,
		TrustProxy:    cfg.TrustProxy,
	})

	sched := scheduler.New(cfg.DigestSchedule, cfg.Timezone, reportService)
	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Tax calculator API listening on http://localhost:%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-ctx.Done():
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	sched.Stop()

	log.Println("Server exited")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brainscroller/site/internal/config"
	"github.com/brainscroller/site/internal/handler"
	"github.com/brainscroller/site/internal/logging"
	"github.com/brainscroller/site/internal/router"
	"github.com/brainscroller/site/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", "json")
		logging.Fatal("config load failed", "error", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	st, err := buildStore(ctx, cfg.Store)
	if err != nil {
		logging.Fatal("store setup failed", "driver", cfg.Store.Driver, "error", err)
	}
	defer st.close()

	sender, err := buildSender(cfg.Mail, slog.Default())
	if err != nil {
		logging.Fatal("mail setup failed", "driver", cfg.Mail.Driver, "error", err)
	}
	if !cfg.Mail.Enabled() {
		slog.Warn("mail disabled, the operator is not notified of submissions")
	}

	contactService := service.NewContactService(newComposer(cfg.Mail), sender, st.repo)

	mux := router.Setup(router.Options{
		Health:  handler.New(st.db, "BrainScroller API"),
		Contact: handler.NewContactHandler(contactService),
		Legal:   handler.NewLegalHandler(handler.LegalConfig{DocsDir: cfg.Legal.DocsDir}),
		AppLinks: handler.NewAppLinksHandler(handler.AppLinksConfig{
			AppStoreURL:  cfg.Links.AppStoreURL,
			PlayStoreURL: cfg.Links.PlayStoreURL,
		}),
		CORSOrigins:       cfg.Server.CORSOrigins,
		ContactRatePerMin: cfg.Server.RateLimitPerMinute,
		MetricsEnabled:    cfg.Server.MetricsEnabled,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening",
			"addr", server.Addr,
			"store", cfg.Store.Driver,
			"mail", cfg.Mail.Driver,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

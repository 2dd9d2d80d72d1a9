package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/ewilliams-labs/setcurve/internal/adapters/rest"
	"github.com/ewilliams-labs/setcurve/internal/config"
	"github.com/ewilliams-labs/setcurve/internal/core/curve"
	"github.com/ewilliams-labs/setcurve/internal/core/engine"
	"github.com/ewilliams-labs/setcurve/internal/core/services"
	"github.com/ewilliams-labs/setcurve/internal/core/templates"
	"github.com/ewilliams-labs/setcurve/internal/worker"
)

func main() {
	// 1. Configuration
	// A missing .env is fine; the environment and defaults still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// 2. Template Catalog
	defs := templates.Builtin()
	if cfg.Templates.File != "" {
		extra, err := templates.LoadFile(cfg.Templates.File)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		defs = append(defs, extra...)
	}
	catalog, err := templates.NewCatalog(defs...)
	if err != nil {
		log.Fatalf("FATAL: invalid template catalog: %v", err)
	}
	log.Printf("INFO: loaded %d templates", catalog.Len())

	// 3. Initialize Core Logic
	ev := curve.NewEvaluator(curve.Config{
		TempoWeight:  cfg.Engine.TempoWeight,
		EnergyWeight: cfg.Engine.EnergyWeight,
		TempoSpread:  cfg.Engine.TempoSpread,
	})
	svc := services.NewMixer(catalog, engine.New(ev), ev)

	// 4. Initialize "Driving" Adapter (The Interface)
	pool := worker.NewPool(svc, cfg.Worker.QueueSize)
	pool.Start(cfg.Worker.Count)
	defer pool.Stop()

	handler := rest.NewHandler(svc, pool, validator.New(validator.WithRequiredStructEnabled()))

	// 5. Start the Server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           rest.LogRequests(handler),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}
	log.Printf("INFO: setcurve API is running on http://localhost:%s", cfg.Server.Port)

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Printf("FATAL: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

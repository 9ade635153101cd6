// pdftoolkit/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdftoolkit/api"
	"pdftoolkit/config"
	"pdftoolkit/pdf"
	"pdftoolkit/task"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.ResultFolder, 0o755); err != nil {
		log.Fatalf("Failed to create result folder: %v", err)
	}

	// 2. Initialize the document engine and the preview opener
	lib := pdf.NewPlainLibrary()
	var opener pdf.Opener = pdf.NopOpener{}
	if cfg.Preview {
		opener = pdf.DefaultAppOpener{}
	}

	// 3. Initialize the single-task runner and the status view
	runner := task.NewRunner(cfg, lib, opener)
	status := api.NewStatus()

	// 4. Set up router and server
	router := api.SetupRouter(runner, status, cfg)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 5. Start the consumer loop and the HTTP server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The server owns the one consumer: it drains the event queue on a fixed
	// cadence, folds events into the status snapshot and idles the runner on
	// terminal events.
	go task.Poll(ctx, runner, cfg.PollInterval, status)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 6. Wait for interrupt signal for graceful shutdown
	<-ctx.Done()

	stop()
	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

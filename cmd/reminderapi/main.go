// The reminderapi command runs the reminder store service the bot persists to.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haleemairfan/ReminderBot/internal/api"
	"github.com/haleemairfan/ReminderBot/internal/config"
	"github.com/haleemairfan/ReminderBot/internal/database"
)

func main() {
	logger := log.New(os.Stdout, "[ReminderAPI] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	db, err := database.New(cfg.DatabaseURL, database.DefaultSQLitePath)
	if err != nil {
		logger.Fatalf("database init failed: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: api.New(db, logger).Handler(),
	}

	go func() {
		logger.Printf("reminder API starting on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
}

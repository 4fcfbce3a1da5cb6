package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haleemairfan/ReminderBot/internal/bot"
	"github.com/haleemairfan/ReminderBot/internal/config"
	"github.com/haleemairfan/ReminderBot/internal/gateway"
	"github.com/haleemairfan/ReminderBot/internal/openai"
	"github.com/haleemairfan/ReminderBot/internal/twilio"
)

func main() {
	logger := log.New(os.Stdout, "[ReminderBot] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	store := gateway.NewClient(cfg.APIBaseURL)
	transport := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, logger)
	summarizer := openai.New(cfg.OpenAIAPIKey)

	reminderBot := bot.New(cfg, store, transport, summarizer, logger)
	reminderBot.Start()
	if err := reminderBot.StartScheduler(); err != nil {
		logger.Fatalf("scheduler start: %v", err)
	}

	http.Handle("/twilio/webhook", transport.WebhookHandler(reminderBot.Enqueue))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: nil,
	}

	go func() {
		logger.Printf("server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Liveness probe for the process supervisor. Separate port, shares no
	// state with the dialogue logic.
	probe := &http.Server{
		Addr:    ":" + cfg.ProbePort,
		Handler: probeHandler(),
	}
	go func() {
		logger.Printf("probe responder on :%s", cfg.ProbePort)
		if err := probe.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("probe server error: %v", err)
		}
	}()

	waitForShutdown(server, probe, reminderBot, logger)
}

func probeHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Bot is running.")
	})
	return mux
}

func waitForShutdown(server, probe *http.Server, reminderBot *bot.Bot, logger *log.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
	if err := probe.Shutdown(ctx); err != nil {
		logger.Printf("probe shutdown error: %v", err)
	}
	reminderBot.StopScheduler()
	reminderBot.Stop()
}

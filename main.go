package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"

	"checkmate-bot/internal/config"
	"checkmate-bot/internal/database"
	"checkmate-bot/internal/handlers"
	"checkmate-bot/internal/state"
	"checkmate-bot/internal/syncer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	ctx := context.Background()
	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDB, "checkmate_data")
	if err != nil {
		log.Fatal("Failed to initialize MongoDB:", err)
	}
	defer db.Close(ctx)

	// Resolve the startup document: remote, then cache, then defaults
	cache := database.NewFileCache(cfg.CacheFile)
	doc := database.LoadInitial(ctx, db, cache)

	tracker := state.New(doc, time.Now())
	sync := syncer.New(tracker, db, cache, cfg.SaveDebounce)

	// Create Telegram bot
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal("Failed to create Telegram bot:", err)
	}

	bot.Debug = false
	log.Printf("Bot started: %s", bot.Self.UserName)

	// Set up handlers
	eventHandler := handlers.NewEventHandler(tracker, sync, db, cfg)

	// Scheduled announcements: weekly matching post and monthly fine rollup
	c := cron.New()
	_, err = c.AddFunc("0 9 * * 1", func() {
		log.Println("Posting weekly matching...")
		eventHandler.Commands().AnnounceWeeklyMatching(bot)
	})
	if err != nil {
		log.Fatal("Failed to add weekly cron job:", err)
	}
	_, err = c.AddFunc("0 9 1 * *", func() {
		log.Println("Posting monthly fine summary...")
		eventHandler.Commands().MonthlyFineSummary(bot)
	})
	if err != nil {
		log.Fatal("Failed to add monthly cron job:", err)
	}
	c.Start()

	fmt.Println("Bot is running...")

	// Start listening for updates
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	// Handle updates
	go func() {
		for update := range updates {
			if update.Message != nil {
				eventHandler.HandleMessage(bot, update.Message)
			} else if update.EditedMessage != nil {
				eventHandler.HandleMessage(bot, update.EditedMessage)
			} else if update.CallbackQuery != nil {
				eventHandler.HandleCallbackQuery(bot, update.CallbackQuery)
			}
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	fmt.Println("Shutting down bot...")
	sync.Flush()
}

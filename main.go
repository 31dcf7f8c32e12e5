package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"rolemenu/bot"
	"rolemenu/dal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var (
	botToken string
	guildID  string
	dbPath   string
	logLevel string
)

func init() {
	godotenv.Load()

	flag.StringVar(
		&botToken,
		"token",
		os.Getenv("ROLEMENU_TOKEN"),
		"Bot access token.",
	)
	flag.StringVar(
		&guildID,
		"guild",
		os.Getenv("ROLEMENU_GUILD"),
		"Test guild ID. If not set, slash commands will be registered globally.",
	)
	flag.StringVar(
		&dbPath,
		"db",
		envOr("ROLEMENU_DB", "rolemenu.db"),
		"SQLite database file path.",
	)
	flag.StringVar(
		&logLevel,
		"log-level",
		envOr("ROLEMENU_LOG_LEVEL", "info"),
		"Log level (trace, debug, info, warn, error).",
	)
	flag.Parse()

	if botToken == "" {
		fmt.Println("-token must be provided.")
		fmt.Println()
		flag.Usage()
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func initLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
}

func main() {
	logger := initLogger()

	db, err := dal.InitDB(dbPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", dbPath).Msg("Failed to connect to database")
	}
	logger.Info().Str("path", dbPath).Msg("Connected to database")

	store := dal.NewGormStore(db)

	rolebot, err := bot.New(botToken, guildID, store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start bot")
	}
	defer rolebot.Shutdown()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}

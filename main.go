/* main.go
 * The "main" method for running the tournament service. Starts the HTTP API and, unless disabled, the Discord bot
 * over the same engine. For details see `readme.md`
 * Usage: go run . -addr=":8080" -db="arena" -bot="true"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arena-bot/api/api"
	"arena-bot/bot"
	"arena-bot/web"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	envErr := godotenv.Load()

	//Flags
	addrPtr := flag.String("addr", envOrDefault("HTTP_ADDR", ":8080"), "Address the HTTP API listens on")
	dbPtr := flag.String("db", envOrDefault("MONGO_DB", "arena"), "Mongo database name")
	botPtr := flag.String("bot", "true", "Run the Discord bot: takes true or false as argument")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(parseLogLevel(os.Getenv("LOG_LEVEL")))

	if envErr != nil {
		log.Warn().Msg("no .env file loaded, using the process environment")
	}

	runBot, err := convertStrToBool(*botPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid \"bot\" flag. Should be true or false")
	}
	joinRate, err := envInt("JOIN_RATE_PER_MINUTE", 0)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := api.NewAPI(ctx, *dbPtr, os.Getenv("MONGO_URI"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()

	if date, err := a.EnsureToday(ctx); err != nil {
		log.Warn().Err(err).Msg("could not prepare today's daily tournaments")
	} else {
		log.Info().Str("date", date).Msg("daily tournaments ready")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return web.Start(gctx, web.Config{
			Addr:              *addrPtr,
			API:               a,
			JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
			CORSOrigins:       splitOrigins(os.Getenv("CORS_ORIGINS")),
			JoinRatePerMinute: joinRate,
		})
	})

	if runBot {
		b, err := bot.NewBot(os.Getenv("DISCORD_TOKEN"), a)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize bot")
		}
		g.Go(func() error {
			return b.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("arena bot stopped with an error")
		return
	}
	log.Info().Msg("arena bot stopped")
}

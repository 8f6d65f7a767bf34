package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/benbjohnson/clock"

	"github.com/Bubblyworld/lichess-bot/config"
	"github.com/Bubblyworld/lichess-bot/lichess"
)

var apiKey = flag.String("api-key", "", "The Lichess API key to use for this bot's requests. Overrides LICHESS_API_KEY.")
var envFile = flag.String("env-file", ".env", "Optional file of environment variables to load.")

func main() {
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if cfg.APIKey == "" {
		fmt.Println("Lichess-Bot requires a Lichess API key in order to run.")
		flag.PrintDefaults()

		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := lichess.NewClient(cfg.APIKey, lichess.WithHost(cfg.URL))

	username := cfg.Username
	if username == "" {
		account, err := client.GetAccount(ctx)
		if err != nil {
			log.Fatalf("bot: Error fetching account: %v", err)
		}
		if !account.IsBot() {
			log.Printf("bot: Warning, %s is not a bot account.", account.Username)
		}
		username = account.Username
	}
	log.Printf("bot: Playing as %s.", username)

	state := NewState(client, cfg, username, clock.New())

	var waitGroup sync.WaitGroup
	waitGroup.Add(3)

	// Without the event stream there is nothing left to do.
	go func() {
		ListenForEventsForever(ctx, state, &waitGroup)
		stop()
	}()
	go AcceptChallengesForever(ctx, state, &waitGroup)
	go WatchGamesForever(ctx, state, &waitGroup)

	waitGroup.Wait()
}

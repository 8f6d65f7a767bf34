package main

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/Bubblyworld/lichess-bot/config"
	"github.com/Bubblyworld/lichess-bot/lichess"
	"github.com/Bubblyworld/lichess-bot/model"
)

// lichessAPI is the part of *lichess.Client the bot needs.
type lichessAPI interface {
	Host() string
	StreamEvents(ctx context.Context) (<-chan lichess.EventMessage, error)
	StreamGameState(ctx context.Context, id string) (<-chan lichess.GameStateMessage, error)
	AcceptChallenge(ctx context.Context, id string) error
	DeclineChallenge(ctx context.Context, id, reason string) error
	AbortGame(ctx context.Context, id string) error
}

type State struct {
	client   lichessAPI
	policy   *model.ChallengePolicy
	username string
	cfg      *config.Config
	clock    clock.Clock

	stateMu     sync.Mutex
	challenges  []*model.Challenge
	retries     map[string]int
	activeGames []*Game
}

func NewState(client lichessAPI, cfg *config.Config, username string, clk clock.Clock) *State {
	return &State{
		client:   client,
		policy:   cfg.Challenge.Policy(),
		username: username,
		cfg:      cfg,
		clock:    clk,
		retries:  make(map[string]int),
	}
}

package main

import (
	"context"
	"log"
	"sync"

	"github.com/Bubblyworld/lichess-bot/lichess"
)

func ListenForEventsForever(ctx context.Context, state *State, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	eventsChannel, err := state.client.StreamEvents(ctx)
	if err != nil {
		log.Printf("bot: Error getting events stream: %v", err)
		return
	}

	for msg := range eventsChannel {
		handleEvent(ctx, state, msg)
	}

	log.Printf("bot: Event stream closed.")
}

func handleEvent(ctx context.Context, state *State, msg lichess.EventMessage) {
	switch msg.Type {
	case lichess.ChallengeEventType:
		event := msg.Data.(lichess.ChallengeEvent)
		handleChallenge(ctx, state, event.Challenge)

	case lichess.ChallengeCanceledEventType, lichess.ChallengeDeclinedEventType:
		event := msg.Data.(lichess.ChallengeEvent)
		state.RemoveChallenge(event.Challenge.ID)

	case lichess.GameStartEventType:
		event := msg.Data.(lichess.GameEvent)
		state.PushGame(&Game{
			ID: event.GameID(),
		})

	case lichess.GameFinishEventType:
		event := msg.Data.(lichess.GameEvent)
		log.Printf("bot: Game %s has finished.", event.GameID())
		state.RemoveGame(event.GameID())

	default:
		log.Printf("bot: Ignoring unknown event %q.", msg.Raw)
	}
}

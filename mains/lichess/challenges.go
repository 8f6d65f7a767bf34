package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Bubblyworld/lichess-bot/lichess"
	"github.com/Bubblyworld/lichess-bot/model"
)

const maxAcceptRetries = 3

func (state *State) PushChallenge(challenge *model.Challenge) {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	state.challenges = append(state.challenges, challenge)
}

// PopChallenge takes the best scoring pending challenge.
func (state *State) PopChallenge() *model.Challenge {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	if len(state.challenges) == 0 {
		return nil
	}

	model.Rank(state.challenges)
	challenge := state.challenges[0]
	state.challenges = state.challenges[1:]
	return challenge
}

func (state *State) RemoveChallenge(challengeID string) {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	var challenges []*model.Challenge
	for _, challenge := range state.challenges {
		if challenge.ID != challengeID {
			challenges = append(challenges, challenge)
		}
	}

	state.challenges = challenges
	delete(state.retries, challengeID)
}

func (state *State) retry(challengeID string) int {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	state.retries[challengeID]++
	return state.retries[challengeID]
}

// handleChallenge declines unsupported challenges straight away and queues
// the rest until there is room for another game.
func handleChallenge(ctx context.Context, state *State, record lichess.Challenge) {
	challenge, err := model.NewChallenge(record)
	if err != nil {
		log.Printf("bot: Skipping challenge: %v", err)
		return
	}

	if state.policy.IsSupported(challenge) {
		log.Printf("bot: Queueing %s.", challenge)
		state.PushChallenge(challenge)
		return
	}

	reason := state.policy.DeclineReason(challenge)
	if name, ok := state.policy.Veto(challenge); ok {
		log.Printf("bot: Declining %s (%s).", challenge, name)
	} else {
		log.Printf("bot: Declining %s (%s).", challenge, reason)
	}

	if err := state.client.DeclineChallenge(ctx, challenge.ID, reason); err != nil {
		log.Printf("bot: Error declining challenge %s: %v", challenge.ID, err)
	}
}

// acceptNext accepts the best pending challenge if we have room for it and
// reports whether a challenge was taken off the queue.
func acceptNext(ctx context.Context, state *State) bool {
	if state.GameCount() >= state.cfg.Concurrency {
		return false
	}

	challenge := state.PopChallenge()
	if challenge == nil {
		return false
	}

	if err := state.client.AcceptChallenge(ctx, challenge.ID); err != nil {
		log.Printf("bot: Error accepting challenge %s: %v", challenge.ID, err)

		if state.retry(challenge.ID) < maxAcceptRetries {
			state.PushChallenge(challenge)
		} else {
			state.RemoveChallenge(challenge.ID)
		}
		return true
	}

	log.Printf("bot: Accepted %s.", challenge)
	state.RemoveChallenge(challenge.ID)
	return true
}

func AcceptChallengesForever(ctx context.Context, state *State, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	ticker := state.clock.Ticker(time.Second)
	defer ticker.Stop()

	for {
		// One at a time, so the game count catches up with gameStart events.
		acceptNext(ctx, state)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

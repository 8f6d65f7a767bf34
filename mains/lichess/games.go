package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Bubblyworld/lichess-bot/lichess"
	"github.com/Bubblyworld/lichess-bot/model"
)

// Game tracks one started game. Session is nil until the gameFull message
// arrives and is only touched by the goroutine watching the game.
type Game struct {
	ID      string
	Session *model.Game

	isWatching bool
	mutex      sync.Mutex
}

func (state *State) PushGame(game *Game) {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	for _, active := range state.activeGames {
		if active.ID == game.ID {
			return
		}
	}
	state.activeGames = append(state.activeGames, game)
}

func (state *State) RemoveGame(gameID string) {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	var games []*Game
	for _, game := range state.activeGames {
		if game.ID != gameID {
			games = append(games, game)
		}
	}

	state.activeGames = games
}

func (state *State) GameCount() int {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	return len(state.activeGames)
}

func (state *State) games() []*Game {
	state.stateMu.Lock()
	defer state.stateMu.Unlock()

	return append([]*Game(nil), state.activeGames...)
}

func lockGame(game *Game) bool {
	game.mutex.Lock()
	defer game.mutex.Unlock()

	acquiredLock := false
	if !game.isWatching {
		acquiredLock = true
		game.isWatching = true
	}

	return acquiredLock
}

func unlockGame(game *Game) {
	game.mutex.Lock()
	defer game.mutex.Unlock()

	game.isWatching = false
}

func WatchGamesForever(ctx context.Context, state *State, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	ticker := state.clock.Ticker(time.Second)
	defer ticker.Stop()

	for {
		for _, game := range state.games() {
			if lockGame(game) {
				go func(game *Game) {
					defer unlockGame(game)
					watchGame(ctx, state, game)
				}(game)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func watchGame(ctx context.Context, state *State, game *Game) {
	// Releases the stream whichever way we leave.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gameStateCh, err := state.client.StreamGameState(ctx, game.ID)
	if err != nil {
		log.Printf("bot: Error getting update stream for game %s: %v", game.ID, err)
		return
	}

	ticker := state.clock.Ticker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-gameStateCh:
			if !ok {
				log.Printf("bot: Update stream for game %s closed.", game.ID)
				state.RemoveGame(game.ID)
				return
			}

			isOver, err := handleMessage(state, game, msg)
			if err != nil {
				log.Printf("bot: Error handling update message for game %s: %v", game.ID, err)
				state.RemoveGame(game.ID)
				return
			}
			if isOver {
				log.Printf("bot: Game %s has finished.", game.ID)
				state.RemoveGame(game.ID)
				return
			}

		case <-ticker.C:
			if abortIfStale(ctx, state, game) {
				state.RemoveGame(game.ID)
				return
			}
		}
	}
}

// handleMessage applies one game stream message and reports whether the
// game is over.
func handleMessage(state *State, game *Game, msg lichess.GameStateMessage) (bool, error) {
	switch msg.Type {
	case lichess.GameFullGameStateType:
		full := msg.Data.(lichess.GameFull)
		session, err := model.NewGame(full, state.username, state.client.Host(),
			state.cfg.AbortTime, state.clock)
		if err != nil {
			return false, err
		}

		game.Session = session
		log.Printf("bot: Watching %s.", session)
		return isFinished(full.State.Status), nil

	case lichess.GameStateGameStateType:
		if game.Session == nil {
			return false, fmt.Errorf("game state for %s arrived before gameFull", game.ID)
		}

		update := msg.Data.(lichess.GameState)
		plies := game.Session.Plies()
		game.Session.UpdateState(update)

		// Moves are still coming in, so give the opponent more time.
		if game.Session.Plies() != plies {
			game.Session.AbortIn(state.cfg.AbortTime)
		}
		return isFinished(update.Status), nil

	case lichess.ChatLineGameStateType:
		chatLine := msg.Data.(lichess.ChatLine)
		log.Printf("bot: Chat in %s from %s: %s", game.ID, chatLine.Username, chatLine.Text)

	case lichess.OpponentGoneGameStateType:
		gone := msg.Data.(lichess.OpponentGone)
		if gone.Gone {
			log.Printf("bot: Opponent left game %s.", game.ID)
		}

	default:
		log.Printf("bot: Ignoring unknown update for game %s.", game.ID)
	}

	return false, nil
}

// abortIfStale aborts the game when nobody has moved in time and reports
// whether the game was aborted.
func abortIfStale(ctx context.Context, state *State, game *Game) bool {
	if game.Session == nil || !game.Session.ShouldAbortNow() {
		return false
	}

	log.Printf("bot: Aborting %s, no moves in time.", game.Session)
	if err := state.client.AbortGame(ctx, game.ID); err != nil {
		log.Printf("bot: Error aborting game %s: %v", game.ID, err)
		return false
	}

	return true
}

func isFinished(status string) bool {
	switch status {
	case "", "created", "started":
		return false
	default:
		return true
	}
}

package lichess

import (
	"context"
	"encoding/json"
	"log"
)

type GameStateType int

const (
	UnknownGameStateType GameStateType = iota
	GameFullGameStateType
	GameStateGameStateType
	ChatLineGameStateType
	OpponentGoneGameStateType
)

type GameStateMessage struct {
	Type GameStateType
	Data interface{}
}

func (msg *GameStateMessage) UnmarshalJSON(bytes []byte) error {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(bytes, &header); err != nil {
		return err
	}

	var err error
	switch header.Type {
	case "gameFull":
		var gameFull GameFull
		err = json.Unmarshal(bytes, &gameFull)
		msg.Type, msg.Data = GameFullGameStateType, gameFull

	case "gameState":
		var gameState GameState
		err = json.Unmarshal(bytes, &gameState)
		msg.Type, msg.Data = GameStateGameStateType, gameState

	case "chatLine":
		var chatLine ChatLine
		err = json.Unmarshal(bytes, &chatLine)
		msg.Type, msg.Data = ChatLineGameStateType, chatLine

	case "opponentGone":
		var gone OpponentGone
		err = json.Unmarshal(bytes, &gone)
		msg.Type, msg.Data = OpponentGoneGameStateType, gone

	default:
		msg.Type = UnknownGameStateType
	}

	return err
}

func (lc *Client) StreamGameState(ctx context.Context, id string) (<-chan GameStateMessage, error) {
	res, err := lc.doRequest(ctx, "GET", "/api/bot/game/stream/"+id, nil)
	if err != nil {
		return nil, err
	}

	gameStateChannel := make(chan GameStateMessage)
	go func() {
		defer res.Body.Close()
		defer close(gameStateChannel)
		decoder := json.NewDecoder(res.Body)

		for decoder.More() {
			var msg GameStateMessage
			if err := decoder.Decode(&msg); err != nil {
				log.Printf("api: StreamGameState %s: %v", id, err)
				return
			}

			select {
			case gameStateChannel <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return gameStateChannel, nil
}

func (lc *Client) AbortGame(ctx context.Context, id string) error {
	return lc.doEmptyRequest(ctx, "POST", "/api/bot/game/"+id+"/abort", nil)
}

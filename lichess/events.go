package lichess

import (
	"context"
	"encoding/json"
	"log"
)

type EventType int

const (
	UnknownEventType EventType = iota
	ChallengeEventType
	ChallengeCanceledEventType
	ChallengeDeclinedEventType
	GameStartEventType
	GameFinishEventType
)

type ChallengeEvent struct {
	Type      string    `json:"type"`
	Challenge Challenge `json:"challenge"`
}

type GameEvent struct {
	Type string `json:"type"`

	Game struct {
		ID     string `json:"id"`
		GameID string `json:"gameId"`
		Color  string `json:"color"`
		Rated  bool   `json:"rated"`
	} `json:"game"`
}

// GameID prefers the full game id which newer payloads carry separately.
func (event *GameEvent) GameID() string {
	if event.Game.GameID != "" {
		return event.Game.GameID
	}
	return event.Game.ID
}

type EventMessage struct {
	Type EventType
	Raw  string
	Data interface{}
}

func (msg *EventMessage) UnmarshalJSON(bytes []byte) error {
	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(bytes, &header); err != nil {
		return err
	}

	msg.Raw = header.Type
	switch header.Type {
	case "challenge", "challengeCanceled", "challengeDeclined":
		var challenge ChallengeEvent
		if err := json.Unmarshal(bytes, &challenge); err != nil {
			return err
		}

		msg.Type = map[string]EventType{
			"challenge":         ChallengeEventType,
			"challengeCanceled": ChallengeCanceledEventType,
			"challengeDeclined": ChallengeDeclinedEventType,
		}[header.Type]
		msg.Data = challenge

	case "gameStart", "gameFinish":
		var game GameEvent
		if err := json.Unmarshal(bytes, &game); err != nil {
			return err
		}

		msg.Type = GameStartEventType
		if header.Type == "gameFinish" {
			msg.Type = GameFinishEventType
		}
		msg.Data = game

	default:
		msg.Type = UnknownEventType
	}

	return nil
}

// StreamEvents follows the account's incoming event stream until the
// server closes it or ctx is cancelled.
func (lc *Client) StreamEvents(ctx context.Context) (<-chan EventMessage, error) {
	res, err := lc.doRequest(ctx, "GET", "/api/stream/event", nil)
	if err != nil {
		return nil, err
	}

	eventChannel := make(chan EventMessage)
	go func() {
		defer res.Body.Close()
		defer close(eventChannel)
		decoder := json.NewDecoder(res.Body)

		for decoder.More() {
			var msg EventMessage
			if err := decoder.Decode(&msg); err != nil {
				log.Printf("api: StreamEvents: %v", err)
				return
			}

			select {
			case eventChannel <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return eventChannel, nil
}

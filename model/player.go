// Package model holds the bot's view of challenges, games and players, and
// the policy deciding which challenges to accept and when to abort a game.
// Nothing in here talks to the network.
package model

import (
	"fmt"

	"github.com/Bubblyworld/lichess-bot/lichess"
)

// Player describes one side of a game or the sender of a challenge. Zero
// values stand in for absent fields: AI opponents have no name or rating,
// and AILevel is only set for them.
type Player struct {
	ID          string
	Name        string
	Title       string
	Rating      int
	Provisional bool
	AILevel     int
}

func NewPlayer(user lichess.User) Player {
	return Player{
		ID:          user.ID,
		Name:        user.Name,
		Title:       user.Title,
		Rating:      user.Rating,
		Provisional: user.Provisional,
		AILevel:     user.AILevel,
	}
}

// anonymous stands in for a challenger the server didn't tell us about.
var anonymous = Player{Name: "Anonymous"}

func (p Player) IsAI() bool {
	return p.AILevel != 0
}

func (p Player) IsBot() bool {
	return p.Title == lichess.BotTitle
}

func (p Player) String() string {
	if p.IsAI() {
		return fmt.Sprintf("AI level %d", p.AILevel)
	}

	rating := fmt.Sprint(p.Rating)
	if p.Provisional {
		rating += "?"
	}
	return fmt.Sprintf("%s%s(%s)", titlePrefix(p.Title), p.Name, rating)
}

func titlePrefix(title string) string {
	if title == "" {
		return ""
	}
	return title + " "
}

package model

import (
	"fmt"
	"strconv"

	"github.com/Bubblyworld/lichess-bot/lichess"
)

// NoIncrement marks challenges without a clock, e.g. correspondence.
const NoIncrement = -1

// Challenge is an incoming challenge reduced to what the policy looks at.
// Everything is computed in NewChallenge and never changes afterwards.
type Challenge struct {
	ID        string
	Rated     bool
	Variant   string
	PerfName  string
	Speed     string
	Increment int // seconds, or NoIncrement

	Challenger *Player // nil on the wire becomes the anonymous player
	DestUser   *Player

	ChallengerIsBot       bool
	ChallengerMasterTitle string // empty for bots, whatever their title
	ChallengerName        string
	ChallengerRatingInt   int
	ChallengerProvisional bool
}

func NewChallenge(record lichess.Challenge) (*Challenge, error) {
	if record.Variant == nil || record.Variant.Key == "" {
		return nil, malformed("challenge", record.ID, "variant", nil)
	}
	if record.Perf == nil {
		return nil, malformed("challenge", record.ID, "perf", nil)
	}

	increment := NoIncrement
	if record.TimeControl != nil && record.TimeControl.Increment != nil {
		increment = *record.TimeControl.Increment
	}

	challenger := anonymous
	if record.Challenger != nil {
		challenger = NewPlayer(*record.Challenger)
	}

	c := &Challenge{
		ID:        record.ID,
		Rated:     record.Rated,
		Variant:   record.Variant.Key,
		PerfName:  record.Perf.Name,
		Speed:     record.Speed,
		Increment: increment,

		Challenger: &challenger,

		ChallengerIsBot:       challenger.IsBot(),
		ChallengerName:        challenger.Name,
		ChallengerRatingInt:   challenger.Rating,
		ChallengerProvisional: challenger.Provisional,
	}
	if !c.ChallengerIsBot {
		c.ChallengerMasterTitle = challenger.Title
	}
	if record.DestUser != nil {
		dest := NewPlayer(*record.DestUser)
		c.DestUser = &dest
	}

	return c, nil
}

// ChallengerRating is the rating for display, "?" when unknown.
func (c *Challenge) ChallengerRating() string {
	if c.ChallengerRatingInt == 0 {
		return "?"
	}
	return strconv.Itoa(c.ChallengerRatingInt)
}

func (c *Challenge) Mode() string {
	if c.Rated {
		return ModeRated
	}
	return ModeCasual
}

func (c *Challenge) ChallengerFullName() string {
	return titlePrefix(c.Challenger.Title) + c.ChallengerName
}

func (c *Challenge) String() string {
	return fmt.Sprintf("%s %s challenge from %s(%s)",
		c.PerfName, c.Mode(), c.ChallengerFullName(), c.ChallengerRating())
}

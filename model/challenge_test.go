package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bubblyworld/lichess-bot/lichess"
)

const challengeJSON = `{
	"id": "H9fIRZUk",
	"url": "https://lichess.org/H9fIRZUk",
	"status": "created",
	"challenger": {"id": "bobby", "name": "Bobby", "title": "FM", "rating": 1635, "provisional": true, "online": true},
	"destUser": {"id": "lisao", "name": "Lisao", "title": "BOT", "rating": 1500, "online": true},
	"variant": {"key": "standard", "name": "Standard", "short": "Std"},
	"rated": true,
	"speed": "rapid",
	"timeControl": {"type": "clock", "limit": 600, "increment": 5, "show": "10+5"},
	"color": "random",
	"perf": {"icon": "#", "name": "Rapid"}
}`

func TestNewChallengeFromJSON(t *testing.T) {
	var record lichess.Challenge
	require.NoError(t, json.Unmarshal([]byte(challengeJSON), &record))

	c, err := NewChallenge(record)
	require.NoError(t, err)

	assert.Equal(t, "H9fIRZUk", c.ID)
	assert.Equal(t, "standard", c.Variant)
	assert.Equal(t, "Rapid", c.PerfName)
	assert.Equal(t, "rapid", c.Speed)
	assert.Equal(t, 5, c.Increment)
	assert.True(t, c.Rated)
	assert.Equal(t, "Bobby", c.ChallengerName)
	assert.Equal(t, 1635, c.ChallengerRatingInt)
	assert.Equal(t, "1635", c.ChallengerRating())
	assert.True(t, c.ChallengerProvisional)
	assert.False(t, c.ChallengerIsBot)
	assert.Equal(t, "FM", c.ChallengerMasterTitle)
	require.NotNil(t, c.DestUser)
	assert.Equal(t, "Lisao", c.DestUser.Name)

	assert.Equal(t, "FM Bobby", c.ChallengerFullName())
	assert.Equal(t, "Rapid rated challenge from FM Bobby(1635)", c.String())
}

func TestNewChallengeAnonymous(t *testing.T) {
	c, err := NewChallenge(lichess.Challenge{
		ID:      "anon",
		Speed:   "correspondence",
		Variant: &lichess.Variant{Key: "standard"},
		Perf:    &lichess.Perf{Name: "Correspondence"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Anonymous", c.ChallengerName)
	assert.Equal(t, 0, c.ChallengerRatingInt)
	assert.Equal(t, "?", c.ChallengerRating())
	assert.False(t, c.ChallengerProvisional)
	assert.False(t, c.ChallengerIsBot)
	assert.Empty(t, c.ChallengerMasterTitle)
	assert.Equal(t, NoIncrement, c.Increment)
	assert.Nil(t, c.DestUser)
	assert.Equal(t, "Correspondence casual challenge from Anonymous(?)", c.String())
}

func TestNewChallengeBotHasNoMasterTitle(t *testing.T) {
	c, err := NewChallenge(lichess.Challenge{
		ID:         "bot",
		Variant:    &lichess.Variant{Key: "standard"},
		Perf:       &lichess.Perf{Name: "Blitz"},
		Challenger: &lichess.User{Name: "stockbot", Title: lichess.BotTitle, Rating: 2100},
	})
	require.NoError(t, err)

	assert.True(t, c.ChallengerIsBot)
	assert.Empty(t, c.ChallengerMasterTitle)
	assert.Equal(t, "BOT stockbot", c.ChallengerFullName())
}

func TestNewChallengeMalformed(t *testing.T) {
	_, err := NewChallenge(lichess.Challenge{ID: "novariant", Perf: &lichess.Perf{Name: "Blitz"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))

	var malformedErr *MalformedRecordError
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, "novariant", malformedErr.ID)
	assert.Equal(t, "variant", malformedErr.Field)

	_, err = NewChallenge(lichess.Challenge{ID: "noperf", Variant: &lichess.Variant{Key: "standard"}})
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, "perf", malformedErr.Field)
	assert.Contains(t, err.Error(), "challenge noperf")
}

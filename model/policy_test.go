package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bubblyworld/lichess-bot/lichess"
)

func intPtr(i int) *int {
	return &i
}

func newTestChallenge(t *testing.T, rated bool, increment *int, challenger *lichess.User) *Challenge {
	t.Helper()

	c, err := NewChallenge(lichess.Challenge{
		ID:          "chal1",
		Rated:       rated,
		Speed:       "blitz",
		Variant:     &lichess.Variant{Key: "standard", Name: "Standard"},
		Perf:        &lichess.Perf{Name: "Blitz"},
		TimeControl: &lichess.TimeControl{Type: "clock", Limit: 180, Increment: increment},
		Challenger:  challenger,
	})
	require.NoError(t, err)
	return c
}

func newTestPolicy() *ChallengePolicy {
	return &ChallengePolicy{
		Variants:     []string{"standard"},
		TimeControls: []string{"blitz"},
		Modes:        []string{ModeRated, ModeCasual},
		MaxIncrement: intPtr(5),
		MinIncrement: intPtr(0),
	}
}

func alice() *lichess.User {
	return &lichess.User{ID: "alice", Name: "alice", Rating: 1500}
}

func TestIsSupportedExample(t *testing.T) {
	c := newTestChallenge(t, true, intPtr(2), alice())
	policy := newTestPolicy()

	assert.True(t, policy.IsSupported(c))
	assert.Equal(t, 1700, c.Score())
	assert.Empty(t, policy.DeclineReason(c))
}

func TestIsSupportedProvisionalOnlyRated(t *testing.T) {
	user := alice()
	user.Provisional = true
	c := newTestChallenge(t, true, intPtr(2), user)

	policy := newTestPolicy()
	policy.Modes = []string{ModeRated}

	assert.False(t, policy.IsSupported(c))
	assert.Equal(t, lichess.DeclineCasual, policy.DeclineReason(c))
	assert.Equal(t, []string{ModeRated}, policy.Modes)
}

func TestIsSupportedBlacklistWins(t *testing.T) {
	policy := newTestPolicy()
	policy.Blacklist = []string{"alice"}

	for _, rated := range []bool{true, false} {
		for _, inc := range []*int{nil, intPtr(0), intPtr(2), intPtr(500)} {
			c := newTestChallenge(t, rated, inc, alice())
			assert.False(t, policy.IsSupported(c))

			name, ok := policy.Veto(c)
			assert.True(t, ok)
			assert.Equal(t, "blacklisted", name)
		}
	}
}

func TestIsSupportedBlacklistIsExact(t *testing.T) {
	policy := newTestPolicy()
	policy.Blacklist = []string{"Alice", "alice2"}

	c := newTestChallenge(t, false, intPtr(2), alice())
	assert.True(t, policy.IsSupported(c))
}

func TestIsSupportedBots(t *testing.T) {
	bot := &lichess.User{ID: "stockbot", Name: "stockbot", Title: lichess.BotTitle, Rating: 2000}

	t.Run("rejected by default", func(t *testing.T) {
		policy := newTestPolicy()
		for _, rated := range []bool{true, false} {
			c := newTestChallenge(t, rated, intPtr(2), bot)
			assert.False(t, policy.IsSupported(c))
			assert.Equal(t, lichess.DeclineNoBot, policy.DeclineReason(c))
		}
	})

	t.Run("casual only", func(t *testing.T) {
		policy := newTestPolicy()
		policy.AcceptBot = true
		modes := append([]string(nil), policy.Modes...)

		rated := newTestChallenge(t, true, intPtr(2), bot)
		assert.False(t, policy.IsSupported(rated))
		assert.Equal(t, modes, policy.Modes)

		casual := newTestChallenge(t, false, intPtr(2), bot)
		assert.True(t, policy.IsSupported(casual))
	})

	t.Run("rated allowed", func(t *testing.T) {
		policy := newTestPolicy()
		policy.AcceptBot = true
		policy.AcceptBotRated = true

		c := newTestChallenge(t, true, intPtr(2), bot)
		assert.True(t, policy.IsSupported(c))
	})
}

func TestIsSupportedDefaults(t *testing.T) {
	policy := newTestPolicy()
	policy.MaxIncrement = nil
	policy.MinIncrement = nil

	assert.True(t, policy.IsSupported(newTestChallenge(t, true, intPtr(180), alice())))
	assert.False(t, policy.IsSupported(newTestChallenge(t, true, intPtr(181), alice())))
	assert.True(t, policy.IsSupported(newTestChallenge(t, true, intPtr(0), alice())))
}

func TestIsSupportedTimeControl(t *testing.T) {
	correspondence := newTestChallenge(t, false, nil, alice())
	require.Equal(t, NoIncrement, correspondence.Increment)

	for _, bounds := range [][2]int{{0, 0}, {5, 3}, {180, 0}, {-10, -20}} {
		assert.True(t, IsSupportedTimeControl(correspondence, []string{"blitz"}, bounds[0], bounds[1]))
		assert.False(t, IsSupportedTimeControl(correspondence, []string{"rapid"}, bounds[0], bounds[1]))
	}

	c := newTestChallenge(t, false, intPtr(3), alice())
	assert.True(t, IsSupportedTimeControl(c, []string{"blitz"}, 3, 3))
	assert.False(t, IsSupportedTimeControl(c, []string{"blitz"}, 2, 0))
	assert.False(t, IsSupportedTimeControl(c, []string{"blitz"}, 10, 4))
	assert.False(t, IsSupportedTimeControl(c, []string{"bullet"}, 10, 0))
}

func TestIsSupportedModeAndVariant(t *testing.T) {
	rated := newTestChallenge(t, true, intPtr(2), alice())
	casual := newTestChallenge(t, false, intPtr(2), alice())

	assert.True(t, IsSupportedMode(rated, []string{ModeRated}))
	assert.False(t, IsSupportedMode(rated, []string{ModeCasual}))
	assert.True(t, IsSupportedMode(casual, []string{ModeCasual}))
	assert.False(t, IsSupportedMode(casual, nil))

	assert.True(t, IsSupportedVariant(rated, []string{"chess960", "standard"}))
	assert.False(t, IsSupportedVariant(rated, []string{"chess960"}))
}

func TestDeclineReason(t *testing.T) {
	policy := newTestPolicy()

	c := newTestChallenge(t, false, intPtr(30), alice())
	assert.Equal(t, lichess.DeclineTimeControl, policy.DeclineReason(c))

	policy.Modes = []string{ModeRated}
	c = newTestChallenge(t, false, intPtr(2), alice())
	assert.Equal(t, lichess.DeclineRated, policy.DeclineReason(c))

	policy.Variants = []string{"chess960"}
	assert.Equal(t, lichess.DeclineVariant, policy.DeclineReason(c))
}

func TestScore(t *testing.T) {
	casual := newTestChallenge(t, false, intPtr(2), alice())
	assert.Equal(t, 1500, casual.Score())

	titled := alice()
	titled.Title = "GM"
	ratedTitled := newTestChallenge(t, true, intPtr(2), titled)
	assert.Equal(t, casual.Score()+400, ratedTitled.Score())

	stronger := alice()
	stronger.Rating = 1501
	assert.Greater(t, newTestChallenge(t, false, intPtr(2), stronger).Score(), casual.Score())

	bot := &lichess.User{Name: "bot", Title: lichess.BotTitle, Rating: 1500}
	assert.Equal(t, 1500, newTestChallenge(t, false, intPtr(2), bot).Score())

	anon := newTestChallenge(t, true, intPtr(2), nil)
	assert.Equal(t, 200, anon.Score())
}

func TestRank(t *testing.T) {
	low := newTestChallenge(t, false, intPtr(2), &lichess.User{Name: "low", Rating: 1200})
	first := newTestChallenge(t, false, intPtr(2), &lichess.User{Name: "first", Rating: 1600})
	second := newTestChallenge(t, false, intPtr(2), &lichess.User{Name: "second", Rating: 1600})
	high := newTestChallenge(t, true, intPtr(2), &lichess.User{Name: "high", Rating: 1500})

	challenges := []*Challenge{low, first, second, high}
	Rank(challenges)

	assert.Equal(t, []*Challenge{high, first, second, low}, challenges)
}

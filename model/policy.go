package model

import (
	"cmp"
	"slices"

	"github.com/Bubblyworld/lichess-bot/lichess"
)

const (
	ModeRated  = "rated"
	ModeCasual = "casual"
)

const (
	DefaultMaxIncrement = 180
	DefaultMinIncrement = 0
)

const (
	ratedBonus  = 200
	titledBonus = 200
)

// ChallengePolicy is the operator's acceptance policy. It is only ever
// read, so one value can be shared by concurrent evaluations. Nil
// increment bounds fall back to DefaultMaxIncrement and DefaultMinIncrement.
type ChallengePolicy struct {
	Blacklist    []string
	Variants     []string
	TimeControls []string
	Modes        []string

	MaxIncrement *int // seconds
	MinIncrement *int // seconds

	AcceptBot      bool
	AcceptBotRated bool
}

type veto struct {
	name    string
	reason  string
	rejects func(p *ChallengePolicy, c *Challenge) bool
}

// Checked in order before anything else. Any hit rejects the challenge.
var vetoes = []veto{
	{
		name:   "blacklisted",
		reason: lichess.DeclineGeneric,
		rejects: func(p *ChallengePolicy, c *Challenge) bool {
			return slices.Contains(p.Blacklist, c.ChallengerName)
		},
	},
	{
		name:   "bot",
		reason: lichess.DeclineNoBot,
		rejects: func(p *ChallengePolicy, c *Challenge) bool {
			return c.ChallengerIsBot && !p.AcceptBot
		},
	},
}

func IsSupportedVariant(c *Challenge, variants []string) bool {
	return slices.Contains(variants, c.Variant)
}

// IsSupportedTimeControl ignores the increment bounds for challenges that
// have no increment at all.
func IsSupportedTimeControl(c *Challenge, speeds []string, incMax, incMin int) bool {
	if !slices.Contains(speeds, c.Speed) {
		return false
	}
	if c.Increment < 0 {
		return true
	}
	return incMin <= c.Increment && c.Increment <= incMax
}

func IsSupportedMode(c *Challenge, modes []string) bool {
	return slices.Contains(modes, c.Mode())
}

func (p *ChallengePolicy) maxIncrement() int {
	if p.MaxIncrement == nil {
		return DefaultMaxIncrement
	}
	return *p.MaxIncrement
}

func (p *ChallengePolicy) minIncrement() int {
	if p.MinIncrement == nil {
		return DefaultMinIncrement
	}
	return *p.MinIncrement
}

// Veto returns the name of the first veto rejecting c, if any.
func (p *ChallengePolicy) Veto(c *Challenge) (string, bool) {
	v := p.firstVeto(c)
	if v == nil {
		return "", false
	}
	return v.name, true
}

func (p *ChallengePolicy) firstVeto(c *Challenge) *veto {
	for i := range vetoes {
		if vetoes[i].rejects(p, c) {
			return &vetoes[i]
		}
	}
	return nil
}

// EffectiveModes returns the modes allowed for this particular challenge.
// Rated games are off the table against bots unless AcceptBotRated is set,
// and against provisional challengers. The result is always a new slice.
func (p *ChallengePolicy) EffectiveModes(c *Challenge) []string {
	modes := slices.Clone(p.Modes)
	if (c.ChallengerIsBot && !p.AcceptBotRated) || c.ChallengerProvisional {
		modes = slices.DeleteFunc(modes, func(mode string) bool {
			return mode == ModeRated
		})
	}
	return modes
}

func (p *ChallengePolicy) IsSupported(c *Challenge) bool {
	if p.firstVeto(c) != nil {
		return false
	}

	return IsSupportedTimeControl(c, p.TimeControls, p.maxIncrement(), p.minIncrement()) &&
		IsSupportedVariant(c, p.Variants) &&
		IsSupportedMode(c, p.EffectiveModes(c))
}

// DeclineReason picks the lichess decline reason for a challenge, or ""
// when the challenge is supported.
func (p *ChallengePolicy) DeclineReason(c *Challenge) string {
	if v := p.firstVeto(c); v != nil {
		return v.reason
	}

	switch {
	case !IsSupportedTimeControl(c, p.TimeControls, p.maxIncrement(), p.minIncrement()):
		return lichess.DeclineTimeControl
	case !IsSupportedVariant(c, p.Variants):
		return lichess.DeclineVariant
	case !IsSupportedMode(c, p.EffectiveModes(c)):
		if c.Rated {
			return lichess.DeclineCasual
		}
		return lichess.DeclineRated
	}
	return ""
}

// Score ranks challenges that are all supported, higher first.
func (c *Challenge) Score() int {
	score := c.ChallengerRatingInt
	if c.Rated {
		score += ratedBonus
	}
	if c.ChallengerMasterTitle != "" {
		score += titledBonus
	}
	return score
}

// Rank sorts challenges by descending score. Equal scores keep their order.
func Rank(challenges []*Challenge) {
	slices.SortStableFunc(challenges, func(a, b *Challenge) int {
		return cmp.Compare(b.Score(), a.Score())
	})
}

package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/notnil/chess"

	"github.com/Bubblyworld/lichess-bot/lichess"
)

const StartPos = "startpos"

// UnlimitedClock is used for games without a clock: ten years in ms.
const UnlimitedClock int64 = 1000 * 3600 * 24 * 365 * 10

// AbortablePlies is the number of plies after which a game can no longer
// be aborted.
const AbortablePlies = 6

const (
	White = "white"
	Black = "black"
)

// Game is a running game seen from the bot's side. Colours and players are
// fixed at construction; State is replaced as snapshots arrive. A Game
// belongs to the goroutine watching it.
type Game struct {
	ID          string
	Speed       string
	PerfName    string
	VariantName string

	ClockInitial   int64 // ms
	ClockIncrement int64 // ms

	White Player
	Black Player

	InitialFen  string
	WhiteStarts bool

	IsWhite       bool
	MyColor       string
	OpponentColor string
	Me            Player
	Opponent      Player

	State   lichess.GameState
	AbortAt time.Time

	baseURL string
	clock   clock.Clock
}

// NewGame builds a game from the gameFull message of a game stream. The
// abort deadline starts abortAfter from now. A nil clk means wall time.
func NewGame(full lichess.GameFull, username, baseURL string, abortAfter time.Duration, clk clock.Clock) (*Game, error) {
	if clk == nil {
		clk = clock.New()
	}
	if full.Variant == nil {
		return nil, malformed("game", full.ID, "variant", nil)
	}

	whiteStarts, err := whiteToMove(full.ID, full.Variant.Key, full.InitialFen)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:          full.ID,
		Speed:       full.Speed,
		PerfName:    "{perf?}",
		VariantName: full.Variant.Name,

		ClockInitial: UnlimitedClock,

		White: NewPlayer(full.White),
		Black: NewPlayer(full.Black),

		InitialFen:  full.InitialFen,
		WhiteStarts: whiteStarts,

		State:   full.State,
		AbortAt: clk.Now().Add(abortAfter),

		baseURL: baseURL,
		clock:   clk,
	}
	if full.Perf != nil {
		g.PerfName = full.Perf.Name
	}
	if full.Clock != nil && full.Clock.Initial != nil {
		g.ClockInitial = *full.Clock.Initial
	}
	if full.Clock != nil && full.Clock.Increment != nil {
		g.ClockIncrement = *full.Clock.Increment
	}

	g.IsWhite = isPlayer(g.White, username)
	if g.IsWhite {
		g.MyColor, g.OpponentColor = White, Black
		g.Me, g.Opponent = g.White, g.Black
	} else {
		g.MyColor, g.OpponentColor = Black, White
		g.Me, g.Opponent = g.Black, g.White
	}

	return g, nil
}

// isPlayer matches on the user id, which lichess keeps as the lowercased
// username, and falls back to the exact name when the id is missing.
func isPlayer(p Player, username string) bool {
	if p.ID != "" {
		return p.ID == strings.ToLower(username)
	}
	return p.Name != "" && p.Name == username
}

// whiteToMove reads the side-to-move field. Variant FENs carry extra
// sections (pockets, check counters, Shredder castling), so the full
// position is only validated for standard chess.
func whiteToMove(id, variant, fen string) (bool, error) {
	if fen == StartPos {
		return true, nil
	}

	fields := strings.Fields(fen)
	if len(fields) < 2 || (fields[1] != "w" && fields[1] != "b") {
		return false, malformed("game", id, "initialFen", nil)
	}

	switch variant {
	case "", "standard", "fromPosition":
		opt, err := chess.FEN(fen)
		if err != nil {
			return false, malformed("game", id, "initialFen", err)
		}
		return chess.NewGame(opt).Position().Turn() == chess.White, nil
	}
	return fields[1] == "w", nil
}

// UpdateState replaces the current snapshot.
func (g *Game) UpdateState(state lichess.GameState) {
	g.State = state
}

// Plies counts the moves in the current snapshot.
func (g *Game) Plies() int {
	return len(strings.Fields(g.State.Moves))
}

// IsAbortable is decided by the current snapshot alone.
func (g *Game) IsAbortable() bool {
	return g.Plies() < AbortablePlies
}

// AbortIn moves the abort deadline to d from now. Does nothing once the
// game can no longer be aborted.
func (g *Game) AbortIn(d time.Duration) {
	if g.IsAbortable() {
		g.AbortAt = g.clock.Now().Add(d)
	}
}

func (g *Game) ShouldAbortNow() bool {
	return g.IsAbortable() && g.clock.Now().After(g.AbortAt)
}

func (g *Game) MyRemainingSeconds() float64 {
	if g.IsWhite {
		return float64(g.State.WTime) / 1000
	}
	return float64(g.State.BTime) / 1000
}

func (g *Game) URL() string {
	base, err := url.Parse(g.baseURL)
	if err != nil {
		return g.ID + "/" + g.MyColor
	}
	return base.ResolveReference(&url.URL{Path: g.ID + "/" + g.MyColor}).String()
}

func (g *Game) String() string {
	return fmt.Sprintf("%s %s vs %s", g.URL(), g.PerfName, g.Opponent)
}

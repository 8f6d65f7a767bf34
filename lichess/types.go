package lichess

// BotTitle is the title lichess gives to bot accounts.
const BotTitle = "BOT"

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Rating      int    `json:"rating"`
	Provisional bool   `json:"provisional"`
	AILevel     int    `json:"aiLevel"`

	Online bool `json:"online"`
}

type Variant struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Short string `json:"short"`
}

type Perf struct {
	Icon string `json:"icon"`
	Name string `json:"name"`
}

type Clock struct {
	Initial   *int64 `json:"initial"`   // ms
	Increment *int64 `json:"increment"` // ms
}

type TimeControl struct {
	Type      string `json:"type"`
	Limit     int    `json:"limit"`     // s
	Increment *int   `json:"increment"` // s
	Show      string `json:"show"`
}

// Challenge is the challenge object found in "challenge" events. Optional
// parts of the payload are pointers so that their absence can be told apart
// from zero values.
type Challenge struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Rated  bool   `json:"rated"`
	Speed  string `json:"speed"`
	Color  string `json:"color"`

	Variant     *Variant     `json:"variant"`
	Perf        *Perf        `json:"perf"`
	TimeControl *TimeControl `json:"timeControl"`

	Challenger *User `json:"challenger"`
	DestUser   *User `json:"destUser"`
}

// GameState is a snapshot of a running game. Moves is a space separated
// list of moves in UCI format.
type GameState struct {
	Type   string `json:"type"`
	Moves  string `json:"moves"`
	Status string `json:"status"`
	Winner string `json:"winner"`

	WTime int64 `json:"wtime"` // ms
	WInc  int64 `json:"winc"`  // ms
	BTime int64 `json:"btime"` // ms
	BInc  int64 `json:"binc"`  // ms
}

// GameFull is the first message of a game stream.
type GameFull struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Rated bool   `json:"rated"`
	Speed string `json:"speed"`

	White   User     `json:"white"`
	Black   User     `json:"black"`
	Variant *Variant `json:"variant"`
	Perf    *Perf    `json:"perf"`
	Clock   *Clock   `json:"clock"`

	InitialFen string    `json:"initialFen"`
	State      GameState `json:"state"`
}

type ChatLine struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Text     string `json:"text"`
	Room     string `json:"room"`
}

type OpponentGone struct {
	Type              string `json:"type"`
	Gone              bool   `json:"gone"`
	ClaimWinInSeconds int    `json:"claimWinInSeconds"`
}

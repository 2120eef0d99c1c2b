package domain

import "math/rand"

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the state while a game is running.
	PhasePlaying Phase = "playing"
)

// Round governs turn direction and which actions are available.
type Round int

const (
	// RoundSetupForward places the first settlement and road in seat order.
	RoundSetupForward Round = iota
	// RoundSetupReverse places the second pair in reverse order and pays out.
	RoundSetupReverse
	// RoundMain is the open roll, build, trade cycle.
	RoundMain
)

// Setup reports whether r is one of the placement rounds.
func (r Round) Setup() bool {
	return r == RoundSetupForward || r == RoundSetupReverse
}

func (r Round) String() string {
	switch r {
	case RoundSetupForward:
		return "SETUP_1"
	case RoundSetupReverse:
		return "SETUP_2"
	case RoundMain:
		return "MAIN"
	default:
		return "UNKNOWN"
	}
}

// Pieces counts the building pieces a player has left to place.
type Pieces struct {
	Roads       int
	Settlements int
	Cities      int
}

// StartingPieces is every player's inventory at game start.
var StartingPieces = Pieces{Roads: 15, Settlements: 5, Cities: 4}

// Player holds the per-player economic state of a game.
type Player struct {
	UserID string
	Name   string

	Resources Bundle
	Cards     Hand

	// VictoryPoints includes hidden victory point cards; PublicVictoryPoints does not.
	VictoryPoints       int
	PublicVictoryPoints int

	Nodes   NodeSet
	Harbors [NumHarborKinds]bool
	Pieces  Pieces

	Knights     int
	LongestRoad int

	// Forfeit is the number of resources still owed after a 7.
	Forfeit int
}

// NewPlayer returns a player with a full piece inventory.
func NewPlayer(userID, name string) *Player {
	return &Player{
		UserID: userID,
		Name:   name,
		Nodes:  make(NodeSet),
		Pieces: StartingPieces,
	}
}

// AddPoints adjusts both the private and public totals.
func (p *Player) AddPoints(n int) {
	p.VictoryPoints += n
	p.PublicVictoryPoints += n
}

// TradeResponse is a player's answer to an open trade offer.
type TradeResponse int

const (
	TradeInitiator TradeResponse = -1
	TradePending   TradeResponse = 0
	TradeAccepted  TradeResponse = 1
	TradeDeclined  TradeResponse = 2
)

// Trade is an open player-to-player offer from the current player.
type Trade struct {
	Give      Bundle
	Take      Bundle
	Responses []TradeResponse
}

// Settled reports whether every respondent has declined.
func (t *Trade) Settled() bool {
	for _, r := range t.Responses {
		if r == TradePending || r == TradeAccepted {
			return false
		}
	}
	return true
}

// AnyAccepted reports whether at least one respondent accepted.
func (t *Trade) AnyAccepted() bool {
	for _, r := range t.Responses {
		if r == TradeAccepted {
			return true
		}
	}
	return false
}

// Game is the authoritative state of one running game.
type Game struct {
	Board   *Board
	Players []*Player

	Turn   Seat
	Round  Round
	Rolled bool

	CardPlayed bool
	// FreshCards locks card kinds drawn this turn that the player did not hold before.
	FreshCards [NumCardKinds]bool
	Deck       []DevCard

	RobberPending bool
	RobTargets    []Seat
	Trade         *Trade

	LongestRoad Seat
	LargestArmy Seat
}

// NewGame seats players in the given order on a fresh board.
func NewGame(players []*Player, rng *rand.Rand) *Game {
	return &Game{
		Board:       NewBoard(rng),
		Players:     players,
		Turn:        0,
		Round:       RoundSetupForward,
		Deck:        ShuffleDeck(NewDeck(), rng),
		LongestRoad: NoSeat,
		LargestArmy: NoSeat,
	}
}

// SeatOf returns the seat of userID.
func (g *Game) SeatOf(userID string) (Seat, bool) {
	for i, p := range g.Players {
		if p.UserID == userID {
			return Seat(i), true
		}
	}
	return NoSeat, false
}

// ValidSeat reports whether s indexes a seated player.
func (g *Game) ValidSeat(s Seat) bool {
	return s >= 0 && int(s) < len(g.Players)
}

// Player returns the player in seat s.
func (g *Game) Player(s Seat) *Player {
	return g.Players[s]
}

// Current returns the player whose turn it is.
func (g *Game) Current() *Player {
	return g.Players[g.Turn]
}

// ForfeitsPending reports whether anyone still owes resources after a 7.
func (g *Game) ForfeitsPending() bool {
	for _, p := range g.Players {
		if p.Forfeit > 0 {
			return true
		}
	}
	return false
}

// RobberyUnresolved reports whether a 7 or knight is still being settled.
func (g *Game) RobberyUnresolved() bool {
	return g.RobberPending || len(g.RobTargets) > 0 || g.ForfeitsPending()
}

// AdvanceTurn moves to the next seat, switching rounds at the ends of the
// setup snake, and clears per-turn state.
func (g *Game) AdvanceTurn() {
	g.Round, g.Turn = NextTurn(g.Round, g.Turn, len(g.Players))
	g.Rolled = false
	g.CardPlayed = false
	g.FreshCards = [NumCardKinds]bool{}
	g.Trade = nil
}

// Aggregates broadcast to every player.

func (g *Game) PublicVictoryPoints() []int {
	return g.collect(func(p *Player) int { return p.PublicVictoryPoints })
}

func (g *Game) ResourceCounts() []int {
	return g.collect(func(p *Player) int { return p.Resources.Total() })
}

func (g *Game) CardCounts() []int {
	return g.collect(func(p *Player) int { return p.Cards.Total() })
}

func (g *Game) LongestRoads() []int {
	return g.collect(func(p *Player) int { return p.LongestRoad })
}

func (g *Game) KnightCounts() []int {
	return g.collect(func(p *Player) int { return p.Knights })
}

func (g *Game) collect(f func(*Player) int) []int {
	out := make([]int, len(g.Players))
	for i, p := range g.Players {
		out[i] = f(p)
	}
	return out
}

// Winner returns the first seat at or above target private points.
func (g *Game) Winner(target int) Seat {
	for i, p := range g.Players {
		if p.VictoryPoints >= target {
			return Seat(i)
		}
	}
	return NoSeat
}

package app

import "catan/internal/domain"

// EventKind identifies emitted events for Nakama dispatch. Game event kinds
// double as the "game" tag of the outbound envelope.
type EventKind string

// Lobby events.
const (
	EventPlayerJoined EventKind = "player_joined"
	EventJoinAccepted EventKind = "join_accepted"
	EventPlayerLeft   EventKind = "player_left"
	EventMatchClosed  EventKind = "match_closed"
)

// Game events.
const (
	EventGameStarted       EventKind = "started"
	EventTurnEnded         EventKind = "turn end"
	EventDiceRolled        EventKind = "roll"
	EventResourcesProduced EventKind = "resources"
	EventForfeitRequired   EventKind = "forfeit"
	EventForfeited         EventKind = "resources forfeited"
	EventMoveRobber        EventKind = "move robber"
	EventRobbery           EventKind = "robbery"
	EventChooseVictim      EventKind = "rob"
	EventSettlementBuilt   EventKind = "settlement"
	EventCityBuilt         EventKind = "upgrade"
	EventRoadBuilt         EventKind = "road"
	EventSetupPlacement    EventKind = "early game placement"
	EventCardDrawn         EventKind = "pickedUpCard"
	EventCardPlayed        EventKind = "card played"
	EventMarketTrade       EventKind = "market trade"
	EventTradeRequested    EventKind = "trade request"
	EventTradeStatus       EventKind = "trade status"
	EventTradeCompleted    EventKind = "trade completed"
	EventGameEnded         EventKind = "end"
	EventGameAborted       EventKind = "endPremature"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
	// State is the recipient's view of the game, merged into the envelope.
	State *StateBundle
}

// StateBundle is the per-player snapshot sent alongside most game events.
// The first five fields are private to the recipient.
type StateBundle struct {
	Resources     domain.Bundle               `json:"resources"`
	Cards         domain.Hand                 `json:"cards"`
	VictoryPoints int                         `json:"victoryPoints"`
	Harbors       [domain.NumHarborKinds]bool `json:"harbour"`
	Pieces        [3]int                      `json:"pieces"`

	PublicVictoryPoints []int       `json:"victoryPointsAllUsers"`
	ResourceCounts      []int       `json:"resourcesAllUsers"`
	CardCounts          []int       `json:"cardsAllUsers"`
	LongestRoads        []int       `json:"longestRoads"`
	Knights             []int       `json:"knights"`
	LongestRoad         domain.Seat `json:"userLongestRoad"`
	LargestArmy         domain.Seat `json:"userLargestArmy"`
}

type PlayerJoinedPayload struct {
	UserID string
	Name   string
}

type JoinAcceptedPayload struct {
	JoinedUsers []string `json:"joinedUsers"`
}

type PlayerLeftPayload struct {
	UserID string
	Name   string
}

type MatchClosedPayload struct {
	OwnerID string
}

type StartedPayload struct {
	Hexagons   [domain.BoardRows][domain.BoardCols][2]int `json:"hexagons"`
	Harbors    []domain.Harbor                            `json:"harbours"`
	Turn       domain.Seat                                `json:"turn"`
	NumOfUsers int                                        `json:"numOfUsers"`
	Users      []string                                   `json:"users"`
}

type TurnEndedPayload struct {
	Turn  domain.Seat `json:"turn"`
	Round int         `json:"round"`
}

type DiceRolledPayload struct {
	User   domain.Seat `json:"user"`
	Dice   int         `json:"dice"`
	Values [2]int      `json:"values"`
}

type ForfeitRequiredPayload struct {
	NumberForfeit int `json:"numberForfeit"`
}

type ForfeitedPayload struct {
	User domain.Seat `json:"user"`
}

type RobberyPayload struct {
	User   domain.Seat `json:"user"`
	Victim domain.Seat `json:"victim"`
	Robber [2]int      `json:"robber"`
}

type ChooseVictimPayload struct {
	Users []domain.Seat `json:"users"`
}

type PlacementPayload struct {
	User     domain.Seat `json:"user"`
	Position [3]int      `json:"position"`
}

type RoadPayload struct {
	User     domain.Seat `json:"user"`
	Position [2][3]int   `json:"position"`
}

type SetupPlacementPayload struct {
	User       domain.Seat `json:"user"`
	Settlement [3]int      `json:"settlement"`
	Road       [3]int      `json:"road"`
}

type CardDrawnPayload struct {
	User domain.Seat `json:"user"`
}

type CardPlayedPayload struct {
	User domain.Seat    `json:"user"`
	Card domain.DevCard `json:"card"`
}

type MarketTradePayload struct {
	User domain.Seat `json:"user"`
}

type TradeRequestedPayload struct {
	User  domain.Seat      `json:"user"`
	Trade [2]domain.Bundle `json:"trade"`
}

type TradeStatusPayload struct {
	Users     []domain.TradeResponse `json:"users"`
	Responded bool                   `json:"responded"`
	Failed    bool                   `json:"failed"`
}

type TradeCompletedPayload struct {
	User      domain.Seat `json:"user"`
	OtherUser domain.Seat `json:"otherUser"`
}

type GameEndedPayload struct {
	Winner domain.Seat `json:"winner"`
	// Not sent to clients; consumed by result recording.
	WinnerID  string   `json:"-"`
	PlayerIDs []string `json:"-"`
}

type GameAbortedPayload struct {
	UserID string `json:"-"`
}

func nodeWire(p domain.NodePos) [3]int {
	return [3]int{p.Row, p.Col, int(p.Corner)}
}

func edgeWire(e domain.Edge) [2][3]int {
	return [2][3]int{nodeWire(e.From), nodeWire(e.To)}
}

func hexWire(p domain.HexPos) [2]int {
	return [2]int{p.Row, p.Col}
}

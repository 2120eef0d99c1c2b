package app

import (
	"errors"

	"catan/internal/protocol"
)

// Kind classifies a rejected command.
type Kind int

const (
	KindUnknown Kind = iota
	// KindProtocol covers malformed or missing fields.
	KindProtocol
	// KindTurnOrder covers actions out of turn or in the wrong round.
	KindTurnOrder
	// KindInventory covers missing resources, pieces or cards.
	KindInventory
	// KindPlacement covers illegal board positions.
	KindPlacement
	// KindState covers acting on a trade, robbery or game that does not exist.
	KindState
	// KindLobby covers match creation, joining and starting.
	KindLobby
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindTurnOrder:
		return "turn_order"
	case KindInventory:
		return "inventory"
	case KindPlacement:
		return "placement"
	case KindState:
		return "state"
	case KindLobby:
		return "lobby"
	default:
		return "unknown"
	}
}

// Error is a rule violation. Msg is sent to the client verbatim.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf classifies err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if protocol.IsDecodeError(err) {
		return KindProtocol
	}
	return KindUnknown
}

var (
	ErrNotYourTurn       = newError(KindTurnOrder, "Not your turn")
	ErrWrongRound        = newError(KindTurnOrder, "Not right turn type")
	ErrDiceRound         = newError(KindTurnOrder, "Not correct round type")
	ErrNotEarlyGame      = newError(KindTurnOrder, "Not early game")
	ErrAlreadyRolled     = newError(KindTurnOrder, "Already rolled dice this turn")
	ErrNotRolled         = newError(KindTurnOrder, "Dice not rolled")
	ErrAlreadyPlayedCard = newError(KindTurnOrder, "Already played a card")
	ErrCardLocked        = newError(KindTurnOrder, "Cant play this card")
	ErrRobberPending     = newError(KindTurnOrder, "Robber must be resolved")

	ErrNotEnoughPieces    = newError(KindInventory, "Not enough pieces")
	ErrNotEnoughResources = newError(KindInventory, "Not enough resources")
	ErrNoCards            = newError(KindInventory, "No cards available")
	ErrNotEnoughCards     = newError(KindInventory, "Not enough cards")
	ErrInvalidCard        = newError(KindInventory, "Invalid card number")
	ErrInvalidAmount      = newError(KindInventory, "Invalid amount of resources")
	ErrInvalidTradeAmount = newError(KindInventory, "Invalid number of resources")

	ErrInvalidPosition = newError(KindPlacement, "Position is invalid")

	ErrInvalidMove      = newError(KindState, "Not valid move")
	ErrInvalidPlayer    = newError(KindState, "Not a valid player")
	ErrOwnTrade         = newError(KindState, "Cant respond to own trade request")
	ErrNoTrade          = newError(KindState, "No trades going on")
	ErrAlreadyResponded = newError(KindState, "Already confirmed trade")
	ErrNoAcceptedTrade  = newError(KindState, "No trades available")
	ErrInvalidUser      = newError(KindState, "Invalid user selected")
	ErrGameNotStarted   = newError(KindState, "Game not started")

	ErrAlreadyInGame = newError(KindLobby, "User already in a game")
	ErrInvalidKey    = newError(KindLobby, "Invalid game key")
	ErrGameStarted   = newError(KindLobby, "Game has already started")
	ErrMatchFull     = newError(KindLobby, "Game is full")
	ErrNotOwner      = newError(KindLobby, "Not game owner")
	ErrTooFewPlayers = newError(KindLobby, "Not enough users")
	ErrNotMember     = newError(KindLobby, "No game joined")
	ErrRateLimited   = newError(KindLobby, "Too many commands")
	ErrKeySpace      = newError(KindLobby, "Could not allocate a game key")
)

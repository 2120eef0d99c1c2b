// Package protocol decodes client command envelopes into typed commands.
// Every field is shape-checked here so that game logic only ever sees
// well-formed positions, bundles and indices.
package protocol

import "catan/internal/domain"

// Action is the top-level command verb.
type Action string

const (
	ActionName   Action = "name"
	ActionCreate Action = "create"
	ActionJoin   Action = "join"
	ActionStart  Action = "start"
	ActionGame   Action = "game"
)

// Game command discriminators.
const (
	CmdStartSettlement = "startSettlement"
	CmdDice            = "dice"
	CmdEnd             = "end"
	CmdSettlement      = "settlement"
	CmdCity            = "city"
	CmdRoad            = "road"
	CmdForfeit         = "forfeit"
	CmdRobber          = "robber"
	CmdRob             = "rob"
	CmdGetCard         = "getCard"
	CmdPlayCard        = "playCard"
	CmdMarketTrade     = "marketTrade"
	CmdUserTrade       = "userTrade"
	CmdOtherUserTrade  = "otherUserTrade"
	CmdAcceptTrade     = "acceptTrade"
)

// Request is a decoded top-level envelope.
type Request struct {
	Action  Action
	Name    string
	GameKey string
	Command Command
}

// Command is a decoded in-game action.
type Command interface {
	// Kind returns the wire discriminator.
	Kind() string
}

// StartSettlement places a setup settlement and a road leading away from it.
type StartSettlement struct {
	Settlement domain.NodePos
	Road       domain.NodePos
}

type RollDice struct{}

type EndTurn struct{}

type BuildSettlement struct {
	Position domain.NodePos
}

type BuildCity struct {
	Position domain.NodePos
}

type BuildRoad struct {
	Road domain.Edge
}

// Forfeit discards resources owed after a 7.
type Forfeit struct {
	Resources domain.Bundle
}

type MoveRobber struct {
	Position domain.HexPos
}

// Rob picks the victim when several players border the robber.
type Rob struct {
	Player domain.Seat
}

type DrawCard struct{}

// PlayCard plays a development card. Only the fields the card needs are set.
type PlayCard struct {
	Card           domain.DevCard
	RobberPosition domain.HexPos
	Monopoly       domain.Resource
	Resources      [2]domain.Resource
	Roads          []domain.Edge
}

// MarketTrade exchanges resources with the bank.
type MarketTrade struct {
	Give domain.Bundle
	Take domain.Bundle
}

// ProposeTrade opens an offer to the other players.
type ProposeTrade struct {
	Give domain.Bundle
	Take domain.Bundle
}

// RespondTrade answers the open offer.
type RespondTrade struct {
	Accept bool
}

// AcceptTrade commits the open offer with one accepting player.
type AcceptTrade struct {
	Player domain.Seat
}

func (StartSettlement) Kind() string { return CmdStartSettlement }
func (RollDice) Kind() string        { return CmdDice }
func (EndTurn) Kind() string         { return CmdEnd }
func (BuildSettlement) Kind() string { return CmdSettlement }
func (BuildCity) Kind() string       { return CmdCity }
func (BuildRoad) Kind() string       { return CmdRoad }
func (Forfeit) Kind() string         { return CmdForfeit }
func (MoveRobber) Kind() string      { return CmdRobber }
func (Rob) Kind() string             { return CmdRob }
func (DrawCard) Kind() string        { return CmdGetCard }
func (PlayCard) Kind() string        { return CmdPlayCard }
func (MarketTrade) Kind() string     { return CmdMarketTrade }
func (ProposeTrade) Kind() string    { return CmdUserTrade }
func (RespondTrade) Kind() string    { return CmdOtherUserTrade }
func (AcceptTrade) Kind() string     { return CmdAcceptTrade }

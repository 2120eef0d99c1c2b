package app

import (
	"testing"

	"catan/internal/domain"
	"catan/internal/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawCardLocksNewKindForTheTurn(t *testing.T) {
	svc, g := newTestGame(t, 3)
	p := g.Player(0)
	p.Resources = domain.Bundle{2, 0, 2, 2, 0}
	g.Deck = []domain.DevCard{domain.Monopoly, domain.Knight}

	events, err := svc.DrawCard(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventCardDrawn}, kinds(events))
	assert.Equal(t, 1, p.Cards[domain.Knight])
	assert.True(t, g.FreshCards[domain.Knight])
	assert.Equal(t, domain.Bundle{1, 0, 1, 1, 0}, p.Resources)

	_, err = svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Knight, RobberPosition: freeHex(g)})
	assert.ErrorIs(t, err, ErrCardLocked)

	g.AdvanceTurn()
	g.Turn, g.Rolled = 0, true
	_, err = svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Knight, RobberPosition: freeHex(g)})
	assert.NoError(t, err)
}

func TestDrawCardAlreadyHeldKindIsPlayable(t *testing.T) {
	svc, g := newTestGame(t, 3)
	p := g.Player(0)
	p.Cards[domain.YearOfPlenty] = 1
	p.Resources = domain.CardCost
	g.Deck = []domain.DevCard{domain.YearOfPlenty}

	_, err := svc.DrawCard(g, 0)
	require.NoError(t, err)
	assert.False(t, g.FreshCards[domain.YearOfPlenty])
	assert.Equal(t, 2, p.Cards[domain.YearOfPlenty])

	p.Resources = domain.CardCost
	_, err = svc.DrawCard(g, 0)
	assert.ErrorIs(t, err, ErrNoCards)
	assert.Equal(t, domain.CardCost, p.Resources)
}

func TestVictoryPointCardIsHidden(t *testing.T) {
	svc, g := newTestGame(t, 3)
	p := g.Player(0)
	p.Resources = domain.CardCost
	g.Deck = []domain.DevCard{domain.VictoryPoint}

	_, err := svc.DrawCard(g, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.VictoryPoints)
	assert.Equal(t, 0, p.PublicVictoryPoints)

	g.FreshCards = [domain.NumCardKinds]bool{}
	_, err = svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.VictoryPoint})
	assert.ErrorIs(t, err, ErrInvalidCard)
	assert.Equal(t, 1, p.Cards[domain.VictoryPoint])
}

func TestPlayCardGates(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(g *domain.Game)
		seat    domain.Seat
		card    domain.DevCard
		wantErr error
	}{
		{"SetupRound", func(g *domain.Game) { g.Round = domain.RoundSetupForward }, 0, domain.Monopoly, ErrWrongRound},
		{"OtherSeat", func(g *domain.Game) {}, 1, domain.Monopoly, ErrNotYourTurn},
		{"RobberPending", func(g *domain.Game) { g.RobberPending = true }, 0, domain.Monopoly, ErrRobberPending},
		{"AlreadyPlayed", func(g *domain.Game) { g.CardPlayed = true }, 0, domain.Monopoly, ErrAlreadyPlayedCard},
		{"UnknownCard", func(g *domain.Game) {}, 0, domain.DevCard(9), ErrInvalidCard},
		{"NotHeld", func(g *domain.Game) {}, 0, domain.RoadBuilding, ErrNotEnoughCards},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			svc, g := newTestGame(t, 3)
			g.Player(0).Cards[domain.Monopoly] = 1
			test.prepare(g)

			_, err := svc.PlayCard(g, test.seat, protocol.PlayCard{Card: test.card})
			assert.ErrorIs(t, err, test.wantErr)
			assert.Equal(t, 1, g.Player(0).Cards[domain.Monopoly])
		})
	}
}

func TestPlayCardBeforeRolling(t *testing.T) {
	svc, g := newTestGame(t, 3)
	g.Rolled = false
	g.Player(0).Cards[domain.YearOfPlenty] = 1

	_, err := svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.YearOfPlenty, Resources: [2]domain.Resource{domain.Ore, domain.Ore}})
	require.NoError(t, err)
	assert.Equal(t, domain.Bundle{0, 0, 0, 2, 0}, g.Player(0).Resources)
	assert.True(t, g.CardPlayed)
}

func TestMonopolyTakesEveryUnit(t *testing.T) {
	svc, g := newTestGame(t, 4)
	g.Player(0).Cards[domain.Monopoly] = 1
	g.Player(0).Resources = domain.Bundle{0, 0, 1, 0, 0}
	g.Player(1).Resources = domain.Bundle{0, 0, 3, 1, 0}
	g.Player(2).Resources = domain.Bundle{0, 0, 0, 0, 0}
	g.Player(3).Resources = domain.Bundle{1, 0, 2, 0, 0}
	total := totalOf(g, domain.Wool)

	events, err := svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Monopoly, Monopoly: domain.Wool})
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventCardPlayed}, kinds(events))
	assert.Equal(t, CardPlayedPayload{User: 0, Card: domain.Monopoly}, events[0].Payload)
	assert.Equal(t, 6, g.Player(0).Resources[domain.Wool])
	assert.Equal(t, domain.Bundle{0, 0, 0, 1, 0}, g.Player(1).Resources)
	assert.Equal(t, domain.Bundle{1, 0, 0, 0, 0}, g.Player(3).Resources)
	assert.Equal(t, total, totalOf(g, domain.Wool))
	assert.Equal(t, 0, g.Player(0).Cards[domain.Monopoly])

	g.Player(0).Cards[domain.Monopoly] = 1
	_, err = svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Monopoly, Monopoly: domain.Wool})
	assert.ErrorIs(t, err, ErrAlreadyPlayedCard)
}

func TestKnightMovesRobberAndAwardsLargestArmy(t *testing.T) {
	svc, g := newTestGame(t, 3)
	hex := freeHex(g)
	settle(t, g, 1, node(hex.Row, hex.Col, domain.North))
	g.Player(1).Resources = domain.Bundle{0, 0, 0, 1, 0}
	p := g.Player(0)
	p.Cards[domain.Knight] = 1
	p.Knights = 2

	_, err := svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Knight, RobberPosition: g.Board.Robber()})
	require.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, 2, p.Knights)
	assert.False(t, g.CardPlayed)

	events, err := svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Knight, RobberPosition: hex})
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventRobbery, EventCardPlayed}, kinds(events))
	assert.Equal(t, hex, g.Board.Robber())
	assert.Equal(t, domain.Bundle{0, 0, 0, 1, 0}, p.Resources)
	assert.Equal(t, 3, p.Knights)
	assert.Equal(t, domain.Seat(0), g.LargestArmy)
	assert.Equal(t, 2, p.VictoryPoints)
	assert.Equal(t, 2, p.PublicVictoryPoints)
	assert.Equal(t, 0, p.Cards[domain.Knight])
}

func TestLargestArmyNeedsStrictlyMoreKnights(t *testing.T) {
	svc, g := newTestGame(t, 3)
	g.LargestArmy = 1
	g.Player(1).Knights = 3
	g.Player(1).AddPoints(domain.BonusPoints)
	p := g.Player(0)
	p.Knights = 2
	p.Cards[domain.Knight] = 2

	_, err := svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Knight, RobberPosition: freeHex(g)})
	require.NoError(t, err)
	assert.Equal(t, domain.Seat(1), g.LargestArmy, "tie keeps the incumbent")
	assert.Equal(t, 0, p.VictoryPoints)

	g.CardPlayed = false
	g.RobberPending = false
	target := domain.HexPos{Row: 4, Col: 3}
	if target == g.Board.Robber() {
		target = domain.HexPos{Row: 4, Col: 4}
	}
	_, err = svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.Knight, RobberPosition: target})
	require.NoError(t, err)
	assert.Equal(t, domain.Seat(0), g.LargestArmy)
	assert.Equal(t, 2, p.VictoryPoints)
	assert.Equal(t, 0, g.Player(1).VictoryPoints)
	assert.Equal(t, 0, g.Player(1).PublicVictoryPoints)
}

func TestRoadBuildingCard(t *testing.T) {
	tests := []struct {
		name      string
		roads     []domain.Edge
		roadsLeft int
		wantErr   error
		wantRoads int
	}{
		{"TwoConnected", []domain.Edge{side(2, 2, domain.North), side(2, 2, domain.NorthWest)}, 15, nil, 2},
		{"SecondContinuesFirst", []domain.Edge{side(2, 2, domain.North), side(2, 2, domain.NorthEast)}, 15, nil, 2},
		{"SecondContinuesFirstReversed", []domain.Edge{side(2, 2, domain.NorthEast), side(2, 2, domain.North)}, 15, nil, 2},
		{"SecondDetached", []domain.Edge{side(2, 2, domain.North), side(2, 2, domain.SouthEast)}, 15, ErrInvalidPosition, 0},
		{"SameRoadTwice", []domain.Edge{side(2, 2, domain.North), side(2, 2, domain.North)}, 15, ErrInvalidPosition, 0},
		{"NeitherConnected", []domain.Edge{side(2, 2, domain.NorthEast), side(2, 2, domain.SouthEast)}, 15, ErrInvalidPosition, 0},
		{"OnePieceLeft", []domain.Edge{side(2, 2, domain.North), side(2, 2, domain.NorthEast)}, 1, nil, 1},
		{"OnePieceLeftInvalid", []domain.Edge{side(2, 2, domain.SouthEast)}, 1, ErrInvalidPosition, 0},
		{"NoPieces", []domain.Edge{side(2, 2, domain.North)}, 0, ErrNotEnoughPieces, 0},
		{"SingleRoad", []domain.Edge{side(2, 2, domain.North)}, 15, nil, 1},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			svc, g := newTestGame(t, 3)
			settle(t, g, 0, node(2, 2, domain.North))
			p := g.Player(0)
			p.Cards[domain.RoadBuilding] = 1
			p.Pieces.Roads = test.roadsLeft

			events, err := svc.PlayCard(g, 0, protocol.PlayCard{Card: domain.RoadBuilding, Roads: test.roads})
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				assert.Equal(t, 1, p.Cards[domain.RoadBuilding])
				assert.Equal(t, test.roadsLeft, p.Pieces.Roads)
				return
			}
			require.NoError(t, err)
			assert.Len(t, eventsOf(events, EventRoadBuilt), test.wantRoads*3)
			assert.Equal(t, test.roadsLeft-test.wantRoads, p.Pieces.Roads)
			assert.Equal(t, test.wantRoads, p.LongestRoad)
			assert.Equal(t, domain.Bundle{}, p.Resources)
		})
	}
}

package app

import (
	"testing"

	"catan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGates(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(g *domain.Game)
		seat    domain.Seat
		wantErr error
	}{
		{"NotRolled", func(g *domain.Game) { g.Rolled = false }, 0, ErrWrongRound},
		{"SetupRound", func(g *domain.Game) { g.Round = domain.RoundSetupReverse }, 0, ErrWrongRound},
		{"OtherSeat", func(g *domain.Game) {}, 1, ErrNotYourTurn},
		{"RobberPending", func(g *domain.Game) { g.RobberPending = true }, 0, ErrRobberPending},
		{"ForfeitOwed", func(g *domain.Game) { g.Player(2).Forfeit = 4 }, 0, ErrRobberPending},
		{"NoResources", func(g *domain.Game) { g.Player(0).Resources = domain.Bundle{} }, 0, ErrNotEnoughResources},
		{"NoPieces", func(g *domain.Game) { g.Player(0).Pieces.Roads = 0 }, 0, ErrNotEnoughPieces},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			svc, g := newTestGame(t, 3)
			settle(t, g, 0, node(2, 2, domain.North))
			g.Player(0).Resources = domain.Bundle{5, 5, 5, 5, 5}
			test.prepare(g)
			before := g.Player(0).Resources

			_, err := svc.BuildRoad(g, test.seat, side(2, 2, domain.North))
			assert.ErrorIs(t, err, test.wantErr)
			assert.Equal(t, before, g.Player(0).Resources)
			assert.True(t, g.Board.ValidRoad(g.Player(0).Nodes, side(2, 2, domain.North)))
		})
	}
}

func TestBuildRoadExtendsNetwork(t *testing.T) {
	svc, g := newTestGame(t, 3)
	settle(t, g, 0, node(2, 2, domain.North))
	g.Player(0).Resources = domain.Bundle{0, 2, 0, 0, 2}

	_, err := svc.BuildRoad(g, 0, side(2, 2, domain.South))
	require.ErrorIs(t, err, ErrInvalidPosition)

	events, err := svc.BuildRoad(g, 0, side(2, 2, domain.North))
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, RoadPayload{User: 0, Position: [2][3]int{{2, 2, 0}, {2, 2, 1}}}, events[0].Payload)
	assert.Equal(t, domain.Bundle{0, 1, 0, 0, 1}, g.Player(0).Resources)
	assert.Equal(t, 14, g.Player(0).Pieces.Roads)
	assert.Equal(t, 1, g.Player(0).LongestRoad)
	assert.True(t, g.Player(0).Nodes.Has(nodeID(t, g, node(2, 2, domain.NorthEast))))

	_, err = svc.BuildRoad(g, 0, side(2, 2, domain.North))
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestBuildSettlementOnNetwork(t *testing.T) {
	svc, g := newTestGame(t, 3)
	settle(t, g, 0, node(2, 2, domain.North))
	lay(t, g, 0, side(2, 2, domain.North))
	lay(t, g, 0, side(2, 2, domain.NorthEast))
	g.Player(0).Resources = domain.Bundle{2, 2, 2, 0, 2}
	g.Player(0).AddPoints(1)

	_, err := svc.BuildSettlement(g, 0, node(2, 2, domain.NorthEast))
	require.ErrorIs(t, err, ErrInvalidPosition, "distance rule")
	_, err = svc.BuildSettlement(g, 0, node(2, 2, domain.South))
	require.ErrorIs(t, err, ErrInvalidPosition, "off network")

	events, err := svc.BuildSettlement(g, 0, node(2, 2, domain.SouthEast))
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventSettlementBuilt}, kinds(events))
	assert.Equal(t, PlacementPayload{User: 0, Position: [3]int{2, 2, 2}}, events[0].Payload)
	p := g.Player(0)
	assert.Equal(t, domain.Bundle{1, 1, 1, 0, 1}, p.Resources)
	assert.Equal(t, 2, p.VictoryPoints)
	assert.Equal(t, 2, p.PublicVictoryPoints)
	assert.Equal(t, 4, p.Pieces.Settlements)
	n := g.Board.Node(nodeID(t, g, node(2, 2, domain.SouthEast)))
	assert.Equal(t, domain.Seat(0), n.Owner)
	assert.Equal(t, domain.Settlement, n.Building)
}

func TestBuildSettlementCutsOpponentRoad(t *testing.T) {
	svc, g := newTestGame(t, 3)
	// Seat 1 runs five roads round the centre hexagon and holds the bonus.
	settle(t, g, 1, node(2, 2, domain.North))
	ring(t, g, 1, 2, 2, 5)
	svc.updateLongestRoad(g, 1)
	require.Equal(t, domain.Seat(1), g.LongestRoad)
	require.Equal(t, 2, g.Player(1).VictoryPoints)

	// Seat 0 reaches the middle junction from outside the ring.
	junction := node(2, 2, domain.SouthEast)
	var outside domain.NodeID = -1
	for _, nb := range g.Board.Node(nodeID(t, g, junction)).Neighbors() {
		if nb != nodeID(t, g, node(2, 2, domain.NorthEast)) && nb != nodeID(t, g, node(2, 2, domain.South)) {
			outside = nb
		}
	}
	require.NotEqual(t, domain.NodeID(-1), outside)
	g.Player(0).Nodes.Add(outside)
	g.Player(0).Nodes.Add(nodeID(t, g, junction))
	g.Player(0).Resources = domain.SettlementCost

	_, err := svc.BuildSettlement(g, 0, junction)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Player(1).LongestRoad)
	assert.Equal(t, domain.NoSeat, g.LongestRoad)
	assert.Equal(t, 0, g.Player(1).VictoryPoints)
	assert.Equal(t, 0, g.Player(1).PublicVictoryPoints)
}

func TestBuildCityRequiresOwnSettlement(t *testing.T) {
	svc, g := newTestGame(t, 3)
	settle(t, g, 0, node(2, 2, domain.North))
	settle(t, g, 1, node(2, 2, domain.South))
	g.Player(0).AddPoints(1)
	g.Player(0).Pieces.Settlements--
	g.Player(0).Resources = domain.Bundle{2, 0, 0, 3, 0}

	_, err := svc.BuildCity(g, 0, node(2, 2, domain.South))
	require.ErrorIs(t, err, ErrInvalidPosition)
	_, err = svc.BuildCity(g, 0, node(2, 2, domain.SouthEast))
	require.ErrorIs(t, err, ErrInvalidPosition)

	events, err := svc.BuildCity(g, 0, node(2, 2, domain.North))
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventCityBuilt}, kinds(events))
	p := g.Player(0)
	assert.Equal(t, domain.Bundle{}, p.Resources)
	assert.Equal(t, 2, p.VictoryPoints)
	assert.Equal(t, domain.Pieces{Roads: 15, Settlements: 5, Cities: 3}, p.Pieces)
	assert.Equal(t, domain.City, g.Board.Node(nodeID(t, g, node(2, 2, domain.North))).Building)

	p.Resources = domain.CityCost
	_, err = svc.BuildCity(g, 0, node(2, 2, domain.North))
	assert.ErrorIs(t, err, ErrInvalidPosition, "already a city")
}

func TestBuildingToTargetEndsGame(t *testing.T) {
	svc, g := newTestGame(t, 3)
	settle(t, g, 0, node(2, 2, domain.North))
	g.Player(0).AddPoints(8)
	g.Player(0).VictoryPoints++ // hidden card
	g.Player(0).Resources = domain.CityCost

	events, err := svc.BuildCity(g, 0, node(2, 2, domain.North))
	require.NoError(t, err)
	end := eventsOf(events, EventGameEnded)
	require.Len(t, end, 1)
	assert.Empty(t, end[0].Recipients)
	assert.Equal(t, GameEndedPayload{Winner: 0, WinnerID: "u0", PlayerIDs: []string{"u0", "u1", "u2"}}, end[0].Payload)
	assert.Equal(t, EventGameEnded, events[len(events)-1].Kind)
}

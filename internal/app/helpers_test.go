package app

import (
	"math/rand"
	"testing"

	"catan/internal/domain"

	"github.com/stretchr/testify/require"
)

var testUsers = []string{"u0", "u1", "u2", "u3"}

// newTestGame seats n players in order and skips straight to the main round.
func newTestGame(t *testing.T, n int) (*Service, *domain.Game) {
	t.Helper()
	svc := NewService(rand.New(rand.NewSource(7)))
	players := make([]*domain.Player, n)
	for i := range players {
		players[i] = domain.NewPlayer(testUsers[i], "name-"+testUsers[i])
	}
	g := domain.NewGame(players, svc.rng)
	g.Round = domain.RoundMain
	g.Rolled = true
	return svc, g
}

func fixedRoll(svc *Service, a, b int) {
	svc.roll = func() (int, int) { return a, b }
}

func node(row, col int, c domain.Corner) domain.NodePos {
	return domain.NodePos{Row: row, Col: col, Corner: c}
}

// side is the edge between corner c and the next corner clockwise.
func side(row, col int, c domain.Corner) domain.Edge {
	return domain.Edge{From: node(row, col, c), To: node(row, col, (c+1)%domain.NumCorners)}
}

func nodeID(t *testing.T, g *domain.Game, pos domain.NodePos) domain.NodeID {
	t.Helper()
	id, ok := g.Board.NodeID(pos)
	require.True(t, ok, "node %v off board", pos)
	return id
}

// settle drops a settlement for seat without paying for it.
func settle(t *testing.T, g *domain.Game, seat domain.Seat, pos domain.NodePos) {
	t.Helper()
	g.Board.AddSettlement(pos, seat)
	g.Player(seat).Nodes.Add(nodeID(t, g, pos))
}

// lay drops a road for seat without paying for it.
func lay(t *testing.T, g *domain.Game, seat domain.Seat, e domain.Edge) {
	t.Helper()
	require.False(t, g.Board.CollisionRoad(e), "road %v collides", e)
	placeRoad(g, seat, e)
}

// ring lays n consecutive sides of a hexagon starting at its north corner.
func ring(t *testing.T, g *domain.Game, seat domain.Seat, row, col, n int) {
	t.Helper()
	for k := 0; k < n; k++ {
		lay(t, g, seat, side(row, col, domain.Corner(k)))
	}
}

// freeHex returns a hexagon position not holding the robber.
func freeHex(g *domain.Game) domain.HexPos {
	robber := g.Board.Robber()
	for _, pos := range []domain.HexPos{{Row: 2, Col: 2}, {Row: 0, Col: 0}} {
		if pos != robber {
			return pos
		}
	}
	return domain.HexPos{}
}

func kinds(events []Event) []EventKind {
	var out []EventKind
	for _, e := range events {
		if len(out) > 0 && out[len(out)-1] == e.Kind {
			continue
		}
		out = append(out, e.Kind)
	}
	return out
}

func eventsOf(events []Event, kind EventKind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func totalOf(g *domain.Game, r domain.Resource) int {
	n := 0
	for _, p := range g.Players {
		n += p.Resources[r]
	}
	return n
}

package app

import (
	"testing"

	"catan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRobberRejectsSameHexagon(t *testing.T) {
	svc, g := newTestGame(t, 3)
	g.RobberPending = true

	_, err := svc.MoveRobber(g, 1, freeHex(g))
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, err = svc.MoveRobber(g, 0, g.Board.Robber())
	assert.ErrorIs(t, err, ErrInvalidPosition)
	_, err = svc.MoveRobber(g, 0, domain.HexPos{Row: 0, Col: 4})
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.True(t, g.RobberPending)
}

func TestMoveRobberWithoutVictims(t *testing.T) {
	svc, g := newTestGame(t, 3)
	g.RobberPending = true
	hex := freeHex(g)
	settle(t, g, 0, node(hex.Row, hex.Col, domain.North))
	g.Player(0).Resources = domain.Bundle{1, 1, 1, 1, 1}
	settle(t, g, 1, node(hex.Row, hex.Col, domain.South))

	events, err := svc.MoveRobber(g, 0, hex)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, RobberyPayload{User: 0, Victim: domain.NoSeat, Robber: [2]int{hex.Row, hex.Col}}, events[0].Payload)
	assert.False(t, g.RobberPending)
	assert.Equal(t, hex, g.Board.Robber())
	assert.Empty(t, g.RobTargets)
}

func TestMoveRobberStealsFromSingleVictim(t *testing.T) {
	svc, g := newTestGame(t, 3)
	g.RobberPending = true
	hex := freeHex(g)
	settle(t, g, 1, node(hex.Row, hex.Col, domain.North))
	settle(t, g, 2, node(hex.Row, hex.Col, domain.South))
	g.Player(1).Resources = domain.Bundle{0, 2, 0, 0, 0}

	events, err := svc.MoveRobber(g, 0, hex)
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventRobbery}, kinds(events))
	assert.Equal(t, domain.Seat(1), events[0].Payload.(RobberyPayload).Victim)
	assert.Equal(t, domain.Bundle{0, 1, 0, 0, 0}, g.Player(0).Resources)
	assert.Equal(t, domain.Bundle{0, 1, 0, 0, 0}, g.Player(1).Resources)
	assert.Equal(t, 2, totalOf(g, domain.Lumber))
}

func TestMoveRobberAsksToChooseBetweenVictims(t *testing.T) {
	svc, g := newTestGame(t, 3)
	g.RobberPending = true
	hex := freeHex(g)
	settle(t, g, 1, node(hex.Row, hex.Col, domain.North))
	settle(t, g, 2, node(hex.Row, hex.Col, domain.South))
	g.Player(1).Resources = domain.Bundle{0, 0, 1, 0, 0}
	g.Player(2).Resources = domain.Bundle{0, 0, 0, 0, 3}

	events, err := svc.MoveRobber(g, 0, hex)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventChooseVictim, events[0].Kind)
	assert.Equal(t, []string{"u0"}, events[0].Recipients)
	assert.Equal(t, ChooseVictimPayload{Users: []domain.Seat{1, 2}}, events[0].Payload)
	assert.True(t, g.RobberyUnresolved())

	_, err = svc.EndTurn(g, 0)
	assert.ErrorIs(t, err, ErrRobberPending)
	_, err = svc.Rob(g, 1, 2)
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, err = svc.Rob(g, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidPlayer)

	events, err = svc.Rob(g, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventRobbery}, kinds(events))
	assert.Equal(t, domain.Bundle{0, 0, 0, 0, 1}, g.Player(0).Resources)
	assert.Equal(t, domain.Bundle{0, 0, 0, 0, 2}, g.Player(2).Resources)
	assert.False(t, g.RobberyUnresolved())

	_, err = svc.Rob(g, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

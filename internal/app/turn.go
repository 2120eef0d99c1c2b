package app

import "catan/internal/domain"

// PlaceStartingSettlement places a free settlement and road during the setup
// rounds, then passes the turn. Settlements placed in the reverse round pay
// one unit from every bordering producing hexagon.
func (s *Service) PlaceStartingSettlement(g *domain.Game, seat domain.Seat, settlement, road domain.NodePos) ([]Event, error) {
	if seat != g.Turn {
		return nil, ErrNotYourTurn
	}
	if !g.Round.Setup() {
		return nil, ErrNotEarlyGame
	}
	edge := domain.Edge{From: settlement, To: road}
	if !g.Board.ValidSettlement(settlement, true, nil) || g.Board.CollisionRoad(edge) {
		return nil, ErrInvalidPosition
	}

	p := g.Player(seat)
	from, to, _ := g.Board.EdgeNodes(edge)
	grantHarbor(p, g.Board.AddSettlement(settlement, seat))
	g.Board.AddRoad(edge, seat)
	p.Nodes.Add(from, to)
	p.Pieces.Settlements--
	p.Pieces.Roads--
	p.AddPoints(1)

	if g.Round == domain.RoundSetupReverse {
		for _, hid := range g.Board.Node(from).Hexagons() {
			if r, ok := g.Board.Hexagon(hid).Terrain.Resource(); ok {
				p.Resources[r]++
			}
		}
	}
	s.updateLongestRoad(g, seat)

	events := withState(g, EventSetupPlacement, SetupPlacementPayload{
		User:       seat,
		Settlement: nodeWire(settlement),
		Road:       nodeWire(road),
	})
	g.AdvanceTurn()
	return append(events, turnEnded(g)...), nil
}

// RollDice rolls for the current player and resolves the total.
func (s *Service) RollDice(g *domain.Game, seat domain.Seat) ([]Event, error) {
	if g.Round != domain.RoundMain {
		return nil, ErrDiceRound
	}
	if seat != g.Turn {
		return nil, ErrNotYourTurn
	}
	if g.Rolled {
		return nil, ErrAlreadyRolled
	}
	if g.RobberyUnresolved() {
		return nil, ErrRobberPending
	}

	a, b := s.roll()
	g.Rolled = true
	events := []Event{{
		Kind:    EventDiceRolled,
		Payload: DiceRolledPayload{User: seat, Dice: a + b, Values: [2]int{a, b}},
	}}
	return append(events, s.resolveRoll(g, a+b)...), nil
}

func (s *Service) resolveRoll(g *domain.Game, total int) []Event {
	if total != domain.RobberRoll {
		return produce(g, total)
	}

	var events []Event
	for i, p := range g.Players {
		p.Forfeit = domain.ForfeitAmount(p.Resources.Total())
		if p.Forfeit > 0 {
			events = append(events, unicast(g, domain.Seat(i), EventForfeitRequired, ForfeitRequiredPayload{NumberForfeit: p.Forfeit}))
		}
	}
	if len(events) == 0 {
		g.RobberPending = true
		events = append(events, unicast(g, g.Turn, EventMoveRobber, nil))
	}
	return events
}

// produce pays every building on unrobbed hexagons bearing token.
func produce(g *domain.Game, token int) []Event {
	for _, h := range g.Board.HexagonsByRoll(token) {
		if h.Robber {
			continue
		}
		r, ok := h.Terrain.Resource()
		if !ok {
			continue
		}
		for _, id := range h.Nodes {
			n := g.Board.Node(id)
			if n.Owner == domain.NoSeat {
				continue
			}
			g.Player(n.Owner).Resources[r] += int(n.Building)
		}
	}
	return withState(g, EventResourcesProduced, nil)
}

// Forfeit discards the resources seat owes after a 7. Once nobody owes
// anything the roller must move the robber.
func (s *Service) Forfeit(g *domain.Game, seat domain.Seat, resources domain.Bundle) ([]Event, error) {
	p := g.Player(seat)
	if p.Forfeit == 0 {
		return nil, ErrInvalidMove
	}
	if !resources.Within(p.Forfeit) || resources.Total() != p.Forfeit || !p.Resources.Covers(resources) {
		return nil, ErrInvalidAmount
	}

	p.Resources.Sub(resources)
	p.Forfeit = 0
	events := withState(g, EventForfeited, ForfeitedPayload{User: seat})
	if !g.ForfeitsPending() {
		g.RobberPending = true
		events = append(events, unicast(g, g.Turn, EventMoveRobber, nil))
	}
	return events, nil
}

// EndTurn passes play to the next seat.
func (s *Service) EndTurn(g *domain.Game, seat domain.Seat) ([]Event, error) {
	if seat != g.Turn {
		return nil, ErrNotYourTurn
	}
	if g.Round.Setup() {
		return nil, ErrWrongRound
	}
	if g.RobberyUnresolved() {
		return nil, ErrRobberPending
	}
	if !g.Rolled {
		return nil, ErrNotRolled
	}
	g.AdvanceTurn()
	return turnEnded(g), nil
}

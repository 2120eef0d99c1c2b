package app

import "catan/internal/domain"

// BuildSettlement buys a settlement on a node reached by seat's roads.
func (s *Service) BuildSettlement(g *domain.Game, seat domain.Seat, pos domain.NodePos) ([]Event, error) {
	if err := requireBuildTurn(g, seat); err != nil {
		return nil, err
	}
	p := g.Player(seat)
	if p.Pieces.Settlements == 0 {
		return nil, ErrNotEnoughPieces
	}
	if !p.Resources.Covers(domain.SettlementCost) {
		return nil, ErrNotEnoughResources
	}
	if !g.Board.ValidSettlement(pos, false, p.Nodes) {
		return nil, ErrInvalidPosition
	}

	p.Resources.Sub(domain.SettlementCost)
	cut := g.Board.BreaksRoad(seat, pos)
	grantHarbor(p, g.Board.AddSettlement(pos, seat))
	p.Pieces.Settlements--
	p.AddPoints(1)
	if cut != domain.NoSeat {
		s.updateLongestRoad(g, cut)
	}

	events := withState(g, EventSettlementBuilt, PlacementPayload{User: seat, Position: nodeWire(pos)})
	return s.finish(g, events), nil
}

// BuildCity upgrades one of seat's settlements.
func (s *Service) BuildCity(g *domain.Game, seat domain.Seat, pos domain.NodePos) ([]Event, error) {
	if err := requireBuildTurn(g, seat); err != nil {
		return nil, err
	}
	p := g.Player(seat)
	if p.Pieces.Cities == 0 {
		return nil, ErrNotEnoughPieces
	}
	if !p.Resources.Covers(domain.CityCost) {
		return nil, ErrNotEnoughResources
	}
	id, ok := g.Board.NodeID(pos)
	if !ok {
		return nil, ErrInvalidPosition
	}
	if n := g.Board.Node(id); n.Owner != seat || n.Building != domain.Settlement {
		return nil, ErrInvalidPosition
	}

	p.Resources.Sub(domain.CityCost)
	g.Board.Upgrade(id)
	p.Pieces.Cities--
	p.Pieces.Settlements++
	p.AddPoints(1)

	events := withState(g, EventCityBuilt, PlacementPayload{User: seat, Position: nodeWire(pos)})
	return s.finish(g, events), nil
}

// BuildRoad buys a road extending seat's network.
func (s *Service) BuildRoad(g *domain.Game, seat domain.Seat, e domain.Edge) ([]Event, error) {
	if err := requireBuildTurn(g, seat); err != nil {
		return nil, err
	}
	p := g.Player(seat)
	if p.Pieces.Roads == 0 {
		return nil, ErrNotEnoughPieces
	}
	if !p.Resources.Covers(domain.RoadCost) {
		return nil, ErrNotEnoughResources
	}
	if !g.Board.ValidRoad(p.Nodes, e) {
		return nil, ErrInvalidPosition
	}

	p.Resources.Sub(domain.RoadCost)
	placeRoad(g, seat, e)
	s.updateLongestRoad(g, seat)

	events := withState(g, EventRoadBuilt, RoadPayload{User: seat, Position: edgeWire(e)})
	return s.finish(g, events), nil
}

// placeRoad lays a validated road and extends seat's network.
func placeRoad(g *domain.Game, seat domain.Seat, e domain.Edge) {
	from, to, _ := g.Board.EdgeNodes(e)
	g.Board.AddRoad(e, seat)
	p := g.Player(seat)
	p.Nodes.Add(from, to)
	p.Pieces.Roads--
}

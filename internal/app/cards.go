package app

import (
	"catan/internal/domain"
	"catan/internal/protocol"
)

// DrawCard buys the top development card. A kind the player did not
// already hold is locked until the next turn.
func (s *Service) DrawCard(g *domain.Game, seat domain.Seat) ([]Event, error) {
	if err := requireBuildTurn(g, seat); err != nil {
		return nil, err
	}
	p := g.Player(seat)
	if !p.Resources.Covers(domain.CardCost) {
		return nil, ErrNotEnoughResources
	}
	if len(g.Deck) == 0 {
		return nil, ErrNoCards
	}

	p.Resources.Sub(domain.CardCost)
	card, _ := g.Draw()
	if p.Cards[card] == 0 {
		g.FreshCards[card] = true
	}
	p.Cards[card]++
	if card == domain.VictoryPoint {
		p.VictoryPoints++
	}

	events := withState(g, EventCardDrawn, CardDrawnPayload{User: seat})
	return s.finish(g, events), nil
}

// PlayCard plays one development card; at most one per turn.
func (s *Service) PlayCard(g *domain.Game, seat domain.Seat, cmd protocol.PlayCard) ([]Event, error) {
	if g.Round != domain.RoundMain {
		return nil, ErrWrongRound
	}
	if seat != g.Turn {
		return nil, ErrNotYourTurn
	}
	if g.RobberyUnresolved() {
		return nil, ErrRobberPending
	}
	if g.CardPlayed {
		return nil, ErrAlreadyPlayedCard
	}
	if !cmd.Card.Valid() {
		return nil, ErrInvalidCard
	}
	p := g.Player(seat)
	if p.Cards[cmd.Card] == 0 {
		return nil, ErrNotEnoughCards
	}
	if g.FreshCards[cmd.Card] {
		return nil, ErrCardLocked
	}

	var events []Event
	switch cmd.Card {
	case domain.Knight:
		robbery, err := s.relocateRobber(g, seat, cmd.RobberPosition)
		if err != nil {
			return nil, err
		}
		p.Knights++
		s.awardLargestArmy(g, seat)
		events = robbery
	case domain.Monopoly:
		taken := 0
		for i, o := range g.Players {
			if domain.Seat(i) == seat {
				continue
			}
			taken += o.Resources[cmd.Monopoly]
			o.Resources[cmd.Monopoly] = 0
		}
		p.Resources[cmd.Monopoly] += taken
	case domain.YearOfPlenty:
		for _, r := range cmd.Resources {
			p.Resources[r]++
		}
	case domain.RoadBuilding:
		roads, err := s.buildFreeRoads(g, seat, cmd.Roads)
		if err != nil {
			return nil, err
		}
		events = roads
	default:
		// Victory point cards score when drawn and are never played.
		return nil, ErrInvalidCard
	}

	p.Cards[cmd.Card]--
	g.CardPlayed = true
	events = append(events, withState(g, EventCardPlayed, CardPlayedPayload{User: seat, Card: cmd.Card})...)
	return s.finish(g, events), nil
}

// buildFreeRoads places the roads of a road building card. With two roads
// where only one touches the network, the second must continue from it.
func (s *Service) buildFreeRoads(g *domain.Game, seat domain.Seat, roads []domain.Edge) ([]Event, error) {
	p := g.Player(seat)
	if p.Pieces.Roads == 0 {
		return nil, ErrNotEnoughPieces
	}
	if len(roads) == 0 {
		return nil, protocol.ErrDataInvalid
	}
	if p.Pieces.Roads == 1 || len(roads) == 1 {
		roads = roads[:1]
		if !g.Board.ValidRoad(p.Nodes, roads[0]) {
			return nil, ErrInvalidPosition
		}
	} else if err := validRoadPair(g.Board, p.Nodes, roads[0], roads[1]); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(roads)*len(g.Players))
	for _, e := range roads {
		placeRoad(g, seat, e)
		events = append(events, withState(g, EventRoadBuilt, RoadPayload{User: seat, Position: edgeWire(e)})...)
	}
	s.updateLongestRoad(g, seat)
	return events, nil
}

func validRoadPair(b *domain.Board, owned domain.NodeSet, a, c domain.Edge) error {
	if b.CollisionRoad(a) || b.CollisionRoad(c) {
		return ErrInvalidPosition
	}
	a1, a2, _ := b.EdgeNodes(a)
	c1, c2, _ := b.EdgeNodes(c)
	if (a1 == c1 && a2 == c2) || (a1 == c2 && a2 == c1) {
		return ErrInvalidPosition
	}
	validA, validC := b.ValidRoad(owned, a), b.ValidRoad(owned, c)
	if validA && validC {
		return nil
	}
	if !validA && !validC {
		return ErrInvalidPosition
	}
	if a1 != c1 && a1 != c2 && a2 != c1 && a2 != c2 {
		return ErrInvalidPosition
	}
	return nil
}

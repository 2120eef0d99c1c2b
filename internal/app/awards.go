package app

import "catan/internal/domain"

// updateLongestRoad remeasures seat's network and reassigns the bonus.
func (s *Service) updateLongestRoad(g *domain.Game, seat domain.Seat) {
	p := g.Player(seat)
	p.LongestRoad = g.Board.NetworkLongestPath(p.Nodes, seat)
	g.LongestRoad = transferBonus(g, g.LongestRoad, domain.LongestRoadHolder(g.LongestRoads()))
}

// awardLargestArmy reassigns the army bonus after actor plays a knight.
func (s *Service) awardLargestArmy(g *domain.Game, actor domain.Seat) {
	g.LargestArmy = transferBonus(g, g.LargestArmy, domain.LargestArmyHolder(g.KnightCounts(), g.LargestArmy, actor))
}

// transferBonus moves the bonus points from from to to and returns to.
func transferBonus(g *domain.Game, from, to domain.Seat) domain.Seat {
	if from == to {
		return to
	}
	if from != domain.NoSeat {
		g.Player(from).AddPoints(-domain.BonusPoints)
	}
	if to != domain.NoSeat {
		g.Player(to).AddPoints(domain.BonusPoints)
	}
	return to
}

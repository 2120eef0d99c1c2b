package app

import "catan/internal/domain"

// MoveRobber settles the robber move owed after a 7.
func (s *Service) MoveRobber(g *domain.Game, seat domain.Seat, pos domain.HexPos) ([]Event, error) {
	if seat != g.Turn {
		return nil, ErrNotYourTurn
	}
	if !g.RobberPending {
		return nil, ErrInvalidMove
	}
	return s.relocateRobber(g, seat, pos)
}

// relocateRobber moves the robber for seat and robs a neighbour. With a
// single candidate the steal happens at once; with several, seat must
// name one through Rob.
func (s *Service) relocateRobber(g *domain.Game, seat domain.Seat, pos domain.HexPos) ([]Event, error) {
	if !g.Board.MoveRobber(pos) {
		return nil, ErrInvalidPosition
	}
	g.RobberPending = false

	var targets []domain.Seat
	for _, o := range g.Board.Occupants(pos) {
		if o != seat && g.Player(o).Resources.Total() > 0 {
			targets = append(targets, o)
		}
	}

	switch len(targets) {
	case 0:
		return withState(g, EventRobbery, RobberyPayload{User: seat, Victim: domain.NoSeat, Robber: hexWire(pos)}), nil
	case 1:
		s.steal(g, seat, targets[0])
		return withState(g, EventRobbery, RobberyPayload{User: seat, Victim: targets[0], Robber: hexWire(pos)}), nil
	default:
		g.RobTargets = targets
		return []Event{unicast(g, seat, EventChooseVictim, ChooseVictimPayload{Users: targets})}, nil
	}
}

// Rob steals from the chosen victim after a contested robber move.
func (s *Service) Rob(g *domain.Game, seat, victim domain.Seat) ([]Event, error) {
	if seat != g.Turn {
		return nil, ErrNotYourTurn
	}
	if len(g.RobTargets) == 0 {
		return nil, ErrInvalidMove
	}
	if !containsSeat(g.RobTargets, victim) {
		return nil, ErrInvalidPlayer
	}
	s.steal(g, seat, victim)
	g.RobTargets = nil
	return withState(g, EventRobbery, RobberyPayload{User: seat, Victim: victim, Robber: hexWire(g.Board.Robber())}), nil
}

// steal moves one unit of a kind the victim holds, chosen uniformly.
func (s *Service) steal(g *domain.Game, thief, victim domain.Seat) {
	held := g.Player(victim).Resources.Held()
	if len(held) == 0 {
		return
	}
	r := held[s.rng.Intn(len(held))]
	g.Player(victim).Resources[r]--
	g.Player(thief).Resources[r]++
}

func containsSeat(seats []domain.Seat, seat domain.Seat) bool {
	for _, v := range seats {
		if v == seat {
			return true
		}
	}
	return false
}

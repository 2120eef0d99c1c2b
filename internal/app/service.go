package app

import (
	"math/rand"
	"time"

	"catan/internal/domain"
)

// Rules are the match parameters a Service enforces.
type Rules struct {
	MinPlayers         int
	MaxPlayers         int
	VictoryPointsToWin int
}

// DefaultRules returns the standard three-to-four player game to ten points.
func DefaultRules() Rules {
	return Rules{
		MinPlayers:         MinPlayersToStartGame,
		MaxPlayers:         MaxPlayersPerGame,
		VictoryPointsToWin: VictoryPointsToWin,
	}
}

// Service contains game use-cases operating on domain state.
type Service struct {
	rng   *rand.Rand
	rules Rules
	roll  func() (int, int)
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	return NewServiceWithRules(rng, DefaultRules())
}

// NewServiceWithRules constructs a Service enforcing rules.
func NewServiceWithRules(rng *rand.Rand, rules Rules) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Service{rng: rng, rules: rules}
	s.roll = func() (int, int) { return s.rng.Intn(6) + 1, s.rng.Intn(6) + 1 }
	return s
}

// Rules returns the parameters this service enforces.
func (s *Service) Rules() Rules {
	return s.rules
}

// bundle snapshots the game from seat's point of view.
func bundle(g *domain.Game, seat domain.Seat) *StateBundle {
	p := g.Player(seat)
	return &StateBundle{
		Resources:           p.Resources,
		Cards:               p.Cards,
		VictoryPoints:       p.VictoryPoints,
		Harbors:             p.Harbors,
		Pieces:              [3]int{p.Pieces.Roads, p.Pieces.Settlements, p.Pieces.Cities},
		PublicVictoryPoints: g.PublicVictoryPoints(),
		ResourceCounts:      g.ResourceCounts(),
		CardCounts:          g.CardCounts(),
		LongestRoads:        g.LongestRoads(),
		Knights:             g.KnightCounts(),
		LongestRoad:         g.LongestRoad,
		LargestArmy:         g.LargestArmy,
	}
}

// withState fans kind out to every player with their own state bundle.
func withState(g *domain.Game, kind EventKind, payload any) []Event {
	events := make([]Event, 0, len(g.Players))
	for i, p := range g.Players {
		events = append(events, Event{
			Kind:       kind,
			Payload:    payload,
			Recipients: []string{p.UserID},
			State:      bundle(g, domain.Seat(i)),
		})
	}
	return events
}

// unicast addresses a stateless event to one seat.
func unicast(g *domain.Game, seat domain.Seat, kind EventKind, payload any) Event {
	return Event{Kind: kind, Payload: payload, Recipients: []string{g.Player(seat).UserID}}
}

func turnEnded(g *domain.Game) []Event {
	return withState(g, EventTurnEnded, TurnEndedPayload{Turn: g.Turn, Round: int(g.Round)})
}

// finish appends the end event when someone has reached the target.
func (s *Service) finish(g *domain.Game, events []Event) []Event {
	winner := g.Winner(s.rules.VictoryPointsToWin)
	if winner == domain.NoSeat {
		return events
	}
	ids := make([]string, len(g.Players))
	for i, p := range g.Players {
		ids[i] = p.UserID
	}
	return append(events, Event{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			Winner:    winner,
			WinnerID:  g.Player(winner).UserID,
			PlayerIDs: ids,
		},
	})
}

// requireBuildTurn gates building, buying and trading on the current
// player's main-round turn after the dice are rolled.
func requireBuildTurn(g *domain.Game, seat domain.Seat) error {
	if g.Round != domain.RoundMain || !g.Rolled {
		return ErrWrongRound
	}
	if seat != g.Turn {
		return ErrNotYourTurn
	}
	if g.RobberyUnresolved() {
		return ErrRobberPending
	}
	return nil
}

func grantHarbor(p *domain.Player, h domain.Harbor) {
	if h != domain.NoHarbor {
		p.Harbors[h] = true
	}
}

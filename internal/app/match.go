package app

import (
	"catan/internal/domain"
	"catan/internal/protocol"
)

// Member is a user seated in a match lobby.
type Member struct {
	UserID string
	Name   string
}

// Match is one lobby and, once started, its game.
type Match struct {
	Key     string
	OwnerID string
	Members []Member
	// Game is nil while the match is in the lobby.
	Game *domain.Game
}

// NewMatch returns an empty lobby owned by ownerID.
func NewMatch(key, ownerID string) *Match {
	return &Match{Key: key, OwnerID: ownerID}
}

// Phase reports whether a game is running.
func (m *Match) Phase() domain.Phase {
	if m.Game != nil {
		return domain.PhasePlaying
	}
	return domain.PhaseLobby
}

// IsMember reports whether userID has joined.
func (m *Match) IsMember(userID string) bool {
	return m.memberIndex(userID) >= 0
}

// MemberIDs returns member user IDs in join order.
func (m *Match) MemberIDs() []string {
	ids := make([]string, len(m.Members))
	for i, mem := range m.Members {
		ids[i] = mem.UserID
	}
	return ids
}

func (m *Match) memberIndex(userID string) int {
	for i, mem := range m.Members {
		if mem.UserID == userID {
			return i
		}
	}
	return -1
}

// LeaveOutcome is what a departure did to the match.
type LeaveOutcome int

const (
	// LeaveNone means the user was not a member.
	LeaveNone LeaveOutcome = iota
	// LeaveLobby means a non-owner left before the game started.
	LeaveLobby
	// LeaveAborted means a non-owner left a running game, which ended it.
	LeaveAborted
	// LeaveClosed means the owner left and the match must shut down.
	LeaveClosed
)

// CanJoin reports why userID may not join m, if anything.
func (s *Service) CanJoin(m *Match, userID string) error {
	switch {
	case m.IsMember(userID):
		return ErrAlreadyInGame
	case m.Game != nil:
		return ErrGameStarted
	case len(m.Members) >= s.rules.MaxPlayers:
		return ErrMatchFull
	}
	return nil
}

// Join seats userID in the lobby.
func (s *Service) Join(m *Match, userID, name string) ([]Event, error) {
	if err := s.CanJoin(m, userID); err != nil {
		return nil, err
	}
	others := m.Members
	m.Members = append(m.Members, Member{UserID: userID, Name: name})

	names := make([]string, 0, len(others))
	ids := make([]string, 0, len(others))
	for _, o := range others {
		names = append(names, o.Name)
		ids = append(ids, o.UserID)
	}
	events := []Event{{
		Kind:       EventJoinAccepted,
		Payload:    JoinAcceptedPayload{JoinedUsers: names},
		Recipients: []string{userID},
	}}
	if len(ids) > 0 {
		events = append(events, Event{
			Kind:       EventPlayerJoined,
			Payload:    PlayerJoinedPayload{UserID: userID, Name: name},
			Recipients: ids,
		})
	}
	return events, nil
}

// Leave removes userID. An owner leaving closes the match; anyone else
// leaving a running game ends it for everyone and returns to the lobby.
func (s *Service) Leave(m *Match, userID string) (LeaveOutcome, []Event) {
	i := m.memberIndex(userID)
	if i < 0 {
		return LeaveNone, nil
	}
	left := m.Members[i]
	m.Members = append(m.Members[:i:i], m.Members[i+1:]...)
	remaining := m.MemberIDs()

	var (
		outcome LeaveOutcome
		event   Event
	)
	switch {
	case userID == m.OwnerID:
		outcome = LeaveClosed
		m.Game = nil
		event = Event{Kind: EventMatchClosed, Payload: MatchClosedPayload{OwnerID: userID}}
	case m.Game != nil:
		outcome = LeaveAborted
		m.Game = nil
		event = Event{Kind: EventGameAborted, Payload: GameAbortedPayload{UserID: userID}}
	default:
		outcome = LeaveLobby
		event = Event{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{UserID: userID, Name: left.Name}}
	}
	if len(remaining) == 0 {
		return outcome, nil
	}
	event.Recipients = remaining
	return outcome, []Event{event}
}

// Start seats the lobby in random order and deals a fresh board.
func (s *Service) Start(m *Match, userID string) ([]Event, error) {
	if !m.IsMember(userID) {
		return nil, ErrNotMember
	}
	if userID != m.OwnerID {
		return nil, ErrNotOwner
	}
	if m.Game != nil {
		return nil, ErrGameStarted
	}
	if len(m.Members) < s.rules.MinPlayers {
		return nil, ErrTooFewPlayers
	}

	order := append([]Member(nil), m.Members...)
	s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	players := make([]*domain.Player, len(order))
	names := make([]string, len(order))
	for i, mem := range order {
		players[i] = domain.NewPlayer(mem.UserID, mem.Name)
		names[i] = mem.Name
	}
	g := domain.NewGame(players, s.rng)
	m.Game = g

	hexagons := g.Board.AllHexagons()
	harbors := g.Board.AllHarbors()
	events := make([]Event, 0, len(players))
	for i, p := range players {
		events = append(events, Event{
			Kind: EventGameStarted,
			Payload: StartedPayload{
				Hexagons:   hexagons,
				Harbors:    harbors,
				Turn:       domain.Seat(i),
				NumOfUsers: len(players),
				Users:      names,
			},
			Recipients: []string{p.UserID},
		})
	}
	return events, nil
}

// Apply runs one game command for userID. A finished game returns the
// match to the lobby.
func (s *Service) Apply(m *Match, userID string, cmd protocol.Command) ([]Event, error) {
	if !m.IsMember(userID) {
		return nil, ErrNotMember
	}
	g := m.Game
	if g == nil {
		return nil, ErrGameNotStarted
	}
	seat, ok := g.SeatOf(userID)
	if !ok {
		return nil, ErrNotMember
	}

	events, err := s.dispatch(g, seat, cmd)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if e.Kind == EventGameEnded {
			m.Game = nil
			break
		}
	}
	return events, nil
}

func (s *Service) dispatch(g *domain.Game, seat domain.Seat, cmd protocol.Command) ([]Event, error) {
	switch c := cmd.(type) {
	case protocol.StartSettlement:
		return s.PlaceStartingSettlement(g, seat, c.Settlement, c.Road)
	case protocol.RollDice:
		return s.RollDice(g, seat)
	case protocol.EndTurn:
		return s.EndTurn(g, seat)
	case protocol.BuildSettlement:
		return s.BuildSettlement(g, seat, c.Position)
	case protocol.BuildCity:
		return s.BuildCity(g, seat, c.Position)
	case protocol.BuildRoad:
		return s.BuildRoad(g, seat, c.Road)
	case protocol.Forfeit:
		return s.Forfeit(g, seat, c.Resources)
	case protocol.MoveRobber:
		return s.MoveRobber(g, seat, c.Position)
	case protocol.Rob:
		return s.Rob(g, seat, c.Player)
	case protocol.DrawCard:
		return s.DrawCard(g, seat)
	case protocol.PlayCard:
		return s.PlayCard(g, seat, c)
	case protocol.MarketTrade:
		return s.MarketTrade(g, seat, c.Give, c.Take)
	case protocol.ProposeTrade:
		return s.ProposeTrade(g, seat, c.Give, c.Take)
	case protocol.RespondTrade:
		return s.RespondTrade(g, seat, c.Accept)
	case protocol.AcceptTrade:
		return s.AcceptTrade(g, seat, c.Player)
	default:
		return nil, protocol.ErrUnknownCommand
	}
}

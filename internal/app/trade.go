package app

import "catan/internal/domain"

// MarketTrade exchanges with the bank at seat's best harbor ratios.
func (s *Service) MarketTrade(g *domain.Game, seat domain.Seat, give, take domain.Bundle) ([]Event, error) {
	if err := requireBuildTurn(g, seat); err != nil {
		return nil, err
	}
	if !give.NonNegative() || !take.NonNegative() {
		return nil, ErrInvalidTradeAmount
	}
	p := g.Player(seat)
	if !p.Resources.Covers(give) {
		return nil, ErrNotEnoughResources
	}
	yield, ok := domain.BankTradeYield(p.Harbors, give)
	if !ok || yield == 0 || !take.Within(yield) || yield != take.Total() {
		return nil, ErrInvalidTradeAmount
	}

	p.Resources.Sub(give)
	p.Resources.Add(take)
	return withState(g, EventMarketTrade, MarketTradePayload{User: seat}), nil
}

// ProposeTrade opens an offer from the current player to everyone else,
// replacing any offer still open.
func (s *Service) ProposeTrade(g *domain.Game, seat domain.Seat, give, take domain.Bundle) ([]Event, error) {
	if err := requireBuildTurn(g, seat); err != nil {
		return nil, err
	}
	if !give.NonNegative() || !take.NonNegative() || (give.Empty() && take.Empty()) {
		return nil, ErrInvalidTradeAmount
	}
	if !g.Player(seat).Resources.Covers(give) {
		return nil, ErrNotEnoughResources
	}

	responses := make([]domain.TradeResponse, len(g.Players))
	responses[seat] = domain.TradeInitiator
	g.Trade = &domain.Trade{Give: give, Take: take, Responses: responses}
	return withState(g, EventTradeRequested, TradeRequestedPayload{User: seat, Trade: [2]domain.Bundle{give, take}}), nil
}

// RespondTrade records seat's answer to the open offer. The offer is
// dropped once everyone has declined.
func (s *Service) RespondTrade(g *domain.Game, seat domain.Seat, accept bool) ([]Event, error) {
	if g.Round != domain.RoundMain || !g.Rolled {
		return nil, ErrWrongRound
	}
	if seat == g.Turn {
		return nil, ErrOwnTrade
	}
	t := g.Trade
	if t == nil {
		return nil, ErrNoTrade
	}
	if t.Responses[seat] != domain.TradePending {
		return nil, ErrAlreadyResponded
	}
	if accept && !g.Player(seat).Resources.Covers(t.Take) {
		return nil, ErrNotEnoughResources
	}

	t.Responses[seat] = domain.TradeDeclined
	if accept {
		t.Responses[seat] = domain.TradeAccepted
	}
	responded := true
	for _, r := range t.Responses {
		if r == domain.TradePending {
			responded = false
		}
	}
	failed := t.Settled()
	events := withState(g, EventTradeStatus, TradeStatusPayload{
		Users:     append([]domain.TradeResponse(nil), t.Responses...),
		Responded: responded,
		Failed:    failed,
	})
	if failed {
		g.Trade = nil
	}
	return events, nil
}

// AcceptTrade commits the open offer with one player who accepted it.
func (s *Service) AcceptTrade(g *domain.Game, seat, other domain.Seat) ([]Event, error) {
	if err := requireBuildTurn(g, seat); err != nil {
		return nil, err
	}
	t := g.Trade
	if t == nil || !t.AnyAccepted() {
		return nil, ErrNoAcceptedTrade
	}
	if !g.ValidSeat(other) || t.Responses[other] != domain.TradeAccepted {
		return nil, ErrInvalidUser
	}
	p, o := g.Player(seat), g.Player(other)
	if !p.Resources.Covers(t.Give) || !o.Resources.Covers(t.Take) {
		return nil, ErrNotEnoughResources
	}

	p.Resources.Sub(t.Give)
	p.Resources.Add(t.Take)
	o.Resources.Sub(t.Take)
	o.Resources.Add(t.Give)
	g.Trade = nil
	return withState(g, EventTradeCompleted, TradeCompletedPayload{User: seat, OtherUser: other}), nil
}

package domain

const (
	// ForfeitThreshold is the hand size at which a 7 costs half the hand.
	ForfeitThreshold = 8
	// MinLongestRoad is the shortest road that can earn the longest road bonus.
	MinLongestRoad = 5
	// MinLargestArmy is the number of knights needed for the largest army bonus.
	MinLargestArmy = 3
	// BonusPoints is the value of either bonus.
	BonusPoints = 2
	// RobberRoll is the dice total that triggers the robber.
	RobberRoll = 7
)

// NextTurn returns the round and seat following turn.
func NextTurn(round Round, turn Seat, players int) (Round, Seat) {
	switch round {
	case RoundSetupForward:
		if int(turn) == players-1 {
			return RoundSetupReverse, turn
		}
		return round, turn + 1
	case RoundSetupReverse:
		if turn == 0 {
			return RoundMain, turn
		}
		return round, turn - 1
	default:
		return RoundMain, Seat((int(turn) + 1) % players)
	}
}

// ForfeitAmount returns how many resources a hand of total must discard on a 7.
func ForfeitAmount(total int) int {
	if total < ForfeitThreshold {
		return 0
	}
	return total / 2
}

// TradeRatio returns how many units of r the bank wants per unit returned.
func TradeRatio(harbors [NumHarborKinds]bool, r Resource) int {
	switch {
	case harbors[ResourceHarbor(r)]:
		return 2
	case harbors[GenericHarbor]:
		return 3
	default:
		return 4
	}
}

// BankTradeYield returns how many units the bank pays for give. It reports
// false when any amount is negative or not a multiple of its ratio.
func BankTradeYield(harbors [NumHarborKinds]bool, give Bundle) (int, bool) {
	yield := 0
	for i, n := range give {
		if n < 0 {
			return 0, false
		}
		ratio := TradeRatio(harbors, Resource(i))
		if n%ratio != 0 {
			return 0, false
		}
		yield += n / ratio
	}
	return yield, true
}

// LongestRoadHolder returns who should hold the longest road bonus given
// every player's road length. Only a unique maximum of at least
// MinLongestRoad qualifies; a tie at the top clears the bonus.
func LongestRoadHolder(lengths []int) Seat {
	holder, best, tied := NoSeat, 0, false
	for i, n := range lengths {
		if n < MinLongestRoad {
			continue
		}
		switch {
		case n > best:
			holder, best, tied = Seat(i), n, false
		case n == best:
			tied = true
		}
	}
	if tied {
		return NoSeat
	}
	return holder
}

// LargestArmyHolder returns who holds the largest army after actor plays a
// knight. The incumbent keeps it unless actor has strictly more knights.
func LargestArmyHolder(knights []int, incumbent, actor Seat) Seat {
	if knights[actor] < MinLargestArmy {
		return incumbent
	}
	if incumbent == NoSeat || knights[actor] > knights[incumbent] {
		return actor
	}
	return incumbent
}

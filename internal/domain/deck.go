package domain

import "math/rand"

// DevCard is a development card kind.
type DevCard int

const (
	Knight DevCard = iota
	VictoryPoint
	Monopoly
	YearOfPlenty
	RoadBuilding
)

// NumCardKinds is the number of development card kinds.
const NumCardKinds = 5

// Valid reports whether c names a card kind.
func (c DevCard) Valid() bool {
	return c >= Knight && c <= RoadBuilding
}

func (c DevCard) String() string {
	switch c {
	case Knight:
		return "knight"
	case VictoryPoint:
		return "victoryPoint"
	case Monopoly:
		return "monopoly"
	case YearOfPlenty:
		return "yearOfPlenty"
	case RoadBuilding:
		return "roadBuilding"
	default:
		return "unknown"
	}
}

// Hand counts held development cards per kind.
type Hand [NumCardKinds]int

// Total returns the number of held cards.
func (h Hand) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

var deckComposition = [NumCardKinds]int{
	Knight:       14,
	VictoryPoint: 5,
	Monopoly:     2,
	YearOfPlenty: 2,
	RoadBuilding: 2,
}

// NewDeck returns the 25-card development deck in kind order.
func NewDeck() []DevCard {
	deck := make([]DevCard, 0, 25)
	for kind, n := range deckComposition {
		for i := 0; i < n; i++ {
			deck = append(deck, DevCard(kind))
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []DevCard, rng *rand.Rand) []DevCard {
	out := make([]DevCard, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Draw takes the top card. It reports false on an empty deck.
func (g *Game) Draw() (DevCard, bool) {
	if len(g.Deck) == 0 {
		return 0, false
	}
	card := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	return card, true
}

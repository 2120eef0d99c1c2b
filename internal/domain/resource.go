package domain

// Resource indexes the five goods a player can hold.
type Resource int

const (
	Grain Resource = iota
	Lumber
	Wool
	Ore
	Brick
)

// NumResources is the number of holdable resource kinds.
const NumResources = 5

// Valid reports whether r names one of the five resources.
func (r Resource) Valid() bool {
	return r >= Grain && r <= Brick
}

func (r Resource) String() string {
	switch r {
	case Grain:
		return "grain"
	case Lumber:
		return "lumber"
	case Wool:
		return "wool"
	case Ore:
		return "ore"
	case Brick:
		return "brick"
	default:
		return "unknown"
	}
}

// Terrain is the land printed on a hexagon. Every terrain except the
// desert produces exactly one resource.
type Terrain int

const (
	Desert Terrain = iota
	Fields
	Forest
	Pasture
	Mountains
	Hills
)

// NumTerrains is the number of terrain kinds, desert included.
const NumTerrains = 6

// Resource returns the good produced by t. The desert produces nothing.
func (t Terrain) Resource() (Resource, bool) {
	if t <= Desert || t >= NumTerrains {
		return 0, false
	}
	return Resource(t - 1), true
}

// Bundle is a count per resource, indexed by Resource.
type Bundle [NumResources]int

// Total returns the number of units across all kinds.
func (b Bundle) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// Covers reports whether b holds at least cost of every kind.
func (b Bundle) Covers(cost Bundle) bool {
	for i := range b {
		if b[i] < cost[i] {
			return false
		}
	}
	return true
}

// NonNegative reports whether no entry is below zero.
func (b Bundle) NonNegative() bool {
	for _, n := range b {
		if n < 0 {
			return false
		}
	}
	return true
}

// Within reports whether every count in b lies in [0, limit].
func (b Bundle) Within(limit int) bool {
	for _, n := range b {
		if n < 0 || n > limit {
			return false
		}
	}
	return true
}

// Empty reports whether b holds nothing.
func (b Bundle) Empty() bool {
	return b == Bundle{}
}

// Add adds other into b.
func (b *Bundle) Add(other Bundle) {
	for i := range b {
		b[i] += other[i]
	}
}

// Sub removes other from b. Callers check Covers first.
func (b *Bundle) Sub(other Bundle) {
	for i := range b {
		b[i] -= other[i]
	}
}

// Held returns the resources with at least one unit, in index order.
func (b Bundle) Held() []Resource {
	var held []Resource
	for i, n := range b {
		if n > 0 {
			held = append(held, Resource(i))
		}
	}
	return held
}

// Fixed build and purchase costs.
var (
	SettlementCost = Bundle{Grain: 1, Lumber: 1, Wool: 1, Brick: 1}
	CityCost       = Bundle{Grain: 2, Ore: 3}
	RoadCost       = Bundle{Lumber: 1, Brick: 1}
	CardCost       = Bundle{Grain: 1, Wool: 1, Ore: 1}
)

// Harbor is the trade bonus attached to a coastal node.
type Harbor int

const (
	// NoHarbor marks a node without harbor access.
	NoHarbor Harbor = -1
	// GenericHarbor trades any resource at 3:1.
	GenericHarbor Harbor = 0
)

// NumHarborKinds counts the generic harbor plus one per resource.
const NumHarborKinds = 6

// ResourceHarbor returns the 2:1 harbor for r.
func ResourceHarbor(r Resource) Harbor {
	return Harbor(r + 1)
}

package domain

import "math/rand"

const (
	// BoardRows is the number of hexagon rows.
	BoardRows = 5
	// BoardCols is the width of the addressing grid; not every cell holds a hexagon.
	BoardCols = 5
	// NumHexagons is the number of tiles on the board.
	NumHexagons = 19
)

// rowWidths lists the hexagon count of each row, top to bottom.
var rowWidths = [BoardRows]int{3, 4, 5, 4, 3}

// rowStart returns the first grid column used by row. Rows past the
// middle shift right so that columns stay aligned diagonally.
func rowStart(row int) int {
	if row < BoardRows/2+1 {
		return 0
	}
	return row - BoardRows/2
}

// Corner is a node slot on a hexagon, clockwise from north.
type Corner int

const (
	North Corner = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

// NumCorners is the number of node slots on a hexagon.
const NumCorners = 6

// Building is what stands on a node. The value doubles as the number of
// resources the node collects per producing roll.
type Building int

const (
	NoBuilding Building = -1
	Settlement Building = 1
	City       Building = 2
)

// Seat is a player's index in turn order.
type Seat int

// NoSeat marks an unowned node or road, or an unheld bonus.
const NoSeat Seat = -1

// HexPos addresses a hexagon by grid row and column.
type HexPos struct {
	Row, Col int
}

// NodePos addresses a node through one hexagon it borders.
type NodePos struct {
	Row, Col int
	Corner   Corner
}

// Hex returns the hexagon half of the position.
func (p NodePos) Hex() HexPos {
	return HexPos{Row: p.Row, Col: p.Col}
}

// Edge is a road site between two nodes.
type Edge struct {
	From, To NodePos
}

// NodeID indexes a node in the board arena.
type NodeID int

// HexID indexes a hexagon in the board arena.
type HexID int

const (
	noNode NodeID = -1
	noHex  HexID  = -1
)

type link struct {
	to   NodeID
	road Seat
}

// Node is a settlement site and road junction.
type Node struct {
	Owner    Seat
	Building Building
	Harbor   Harbor

	links []link
	hexes []HexID
}

// Neighbors returns the adjacent nodes in insertion order.
func (n Node) Neighbors() []NodeID {
	out := make([]NodeID, len(n.links))
	for i, l := range n.links {
		out[i] = l.to
	}
	return out
}

// Hexagons returns the tiles this node borders.
func (n Node) Hexagons() []HexID {
	return append([]HexID(nil), n.hexes...)
}

// Hexagon is a resource tile.
type Hexagon struct {
	Pos     HexPos
	Terrain Terrain
	Token   int
	Robber  bool
	Nodes   [NumCorners]NodeID
}

// Board is the hexagon graph. Nodes and hexagons live in flat arenas and
// refer to each other by index.
type Board struct {
	hexes  []Hexagon
	nodes  []Node
	grid   [BoardRows][BoardCols]HexID
	byRoll [13][]HexID
	robber HexID
}

var terrainCounts = [NumTerrains]int{
	Desert:    1,
	Fields:    4,
	Forest:    4,
	Pasture:   4,
	Mountains: 3,
	Hills:     3,
}

// tokenCounts is indexed by dice value.
var tokenCounts = [13]int{2: 1, 3: 2, 4: 2, 5: 2, 6: 2, 8: 2, 9: 2, 10: 2, 11: 2, 12: 1}

var harborCounts = [NumHarborKinds]int{4, 1, 1, 1, 1, 1}

type harborAnchor struct {
	hex  HexPos
	a, b Corner
}

// harborAnchors are the fixed coastal edges that carry a harbor, in
// broadcast order.
var harborAnchors = [...]harborAnchor{
	{HexPos{0, 0}, North, NorthWest},
	{HexPos{0, 1}, North, NorthEast},
	{HexPos{1, 0}, NorthWest, SouthWest},
	{HexPos{1, 3}, North, NorthEast},
	{HexPos{2, 4}, NorthEast, SouthEast},
	{HexPos{3, 1}, NorthWest, SouthWest},
	{HexPos{3, 4}, South, SouthEast},
	{HexPos{4, 2}, South, SouthWest},
	{HexPos{4, 3}, South, SouthEast},
}

// NumHarbors is the number of harbor placements.
const NumHarbors = len(harborAnchors)

// NewBoard generates a random board. Terrains, tokens and harbor kinds are
// each drawn without replacement from their fixed pools.
func NewBoard(rng *rand.Rand) *Board {
	b := &Board{
		hexes:  make([]Hexagon, 0, NumHexagons),
		robber: noHex,
	}
	for r := range b.grid {
		for c := range b.grid[r] {
			b.grid[r][c] = noHex
		}
	}

	terrains := shuffled(rng, expand(terrainCounts[:]), func(i int) Terrain { return Terrain(i) })
	tokens := shuffled(rng, expand(tokenCounts[:]), func(i int) int { return i })

	for row := 0; row < BoardRows; row++ {
		for j := 0; j < rowWidths[row]; j++ {
			col := rowStart(row) + j
			id := HexID(len(b.hexes))
			hex := Hexagon{Pos: HexPos{Row: row, Col: col}, Terrain: terrains[id]}
			if hex.Terrain == Desert {
				hex.Robber = true
				b.robber = id
			} else {
				hex.Token, tokens = tokens[0], tokens[1:]
				b.byRoll[hex.Token] = append(b.byRoll[hex.Token], id)
			}

			for k := range hex.Nodes {
				hex.Nodes[k] = noNode
			}
			b.shareNodes(&hex, row, j, col)
			for k := range hex.Nodes {
				if hex.Nodes[k] == noNode {
					hex.Nodes[k] = b.newNode()
				}
			}

			b.hexes = append(b.hexes, hex)
			b.grid[row][col] = id
			for k, n := range hex.Nodes {
				b.connect(n, hex.Nodes[(k+1)%NumCorners])
				b.nodes[n].hexes = append(b.nodes[n].hexes, id)
			}
		}
	}

	harbors := shuffled(rng, expand(harborCounts[:]), func(i int) Harbor { return Harbor(i) })
	for i, anchor := range harborAnchors {
		hex := b.hexes[b.grid[anchor.hex.Row][anchor.hex.Col]]
		b.nodes[hex.Nodes[anchor.a]].Harbor = harbors[i]
		b.nodes[hex.Nodes[anchor.b]].Harbor = harbors[i]
	}
	return b
}

// shareNodes copies the node slots this hexagon has in common with the
// already placed hexagons above it and to its left.
func (b *Board) shareNodes(h *Hexagon, row, j, col int) {
	if row > 0 && row <= BoardRows/2 {
		if j > 0 {
			upLeft := b.hexes[b.grid[row-1][col-1]]
			h.Nodes[North] = upLeft.Nodes[SouthEast]
			h.Nodes[NorthWest] = upLeft.Nodes[South]
		}
		if j < rowWidths[row]-1 {
			upRight := b.hexes[b.grid[row-1][col]]
			if h.Nodes[North] == noNode {
				h.Nodes[North] = upRight.Nodes[SouthWest]
			}
			h.Nodes[NorthEast] = upRight.Nodes[South]
		}
	} else if row > BoardRows/2 {
		upLeft := b.hexes[b.grid[row-1][col-1]]
		upRight := b.hexes[b.grid[row-1][col]]
		h.Nodes[NorthWest] = upLeft.Nodes[South]
		h.Nodes[North] = upLeft.Nodes[SouthEast]
		h.Nodes[NorthEast] = upRight.Nodes[South]
	}
	if j > 0 {
		left := b.hexes[b.grid[row][col-1]]
		if h.Nodes[NorthWest] == noNode {
			h.Nodes[NorthWest] = left.Nodes[NorthEast]
		}
		h.Nodes[SouthWest] = left.Nodes[SouthEast]
	}
}

func (b *Board) newNode() NodeID {
	b.nodes = append(b.nodes, Node{Owner: NoSeat, Building: NoBuilding, Harbor: NoHarbor})
	return NodeID(len(b.nodes) - 1)
}

// connect links a and b in both directions unless already linked.
func (b *Board) connect(a, c NodeID) {
	if b.linkIndex(a, c) >= 0 {
		return
	}
	b.nodes[a].links = append(b.nodes[a].links, link{to: c, road: NoSeat})
	b.nodes[c].links = append(b.nodes[c].links, link{to: a, road: NoSeat})
}

func (b *Board) linkIndex(from, to NodeID) int {
	for i, l := range b.nodes[from].links {
		if l.to == to {
			return i
		}
	}
	return -1
}

// expand turns a count-per-value table into a flat pool of values.
func expand(counts []int) []int {
	var pool []int
	for v, n := range counts {
		for i := 0; i < n; i++ {
			pool = append(pool, v)
		}
	}
	return pool
}

func shuffled[T any](rng *rand.Rand, pool []int, conv func(int) T) []T {
	out := make([]T, len(pool))
	for i, v := range pool {
		out[i] = conv(v)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

package domain

// HexID resolves a grid position. It reports false for positions off the
// board, including the unused corners of the addressing grid.
func (b *Board) HexID(pos HexPos) (HexID, bool) {
	if pos.Row < 0 || pos.Row >= BoardRows || pos.Col < 0 || pos.Col >= BoardCols {
		return noHex, false
	}
	id := b.grid[pos.Row][pos.Col]
	return id, id != noHex
}

// NodeID resolves a node position.
func (b *Board) NodeID(pos NodePos) (NodeID, bool) {
	if pos.Corner < North || pos.Corner > NorthWest {
		return noNode, false
	}
	hex, ok := b.HexID(pos.Hex())
	if !ok {
		return noNode, false
	}
	return b.hexes[hex].Nodes[pos.Corner], true
}

// Hexagon returns a copy of the tile with the given id.
func (b *Board) Hexagon(id HexID) Hexagon {
	return b.hexes[id]
}

// Node returns a copy of the node with the given id.
func (b *Board) Node(id NodeID) Node {
	return b.nodes[id]
}

// NumNodes returns the size of the node arena.
func (b *Board) NumNodes() int {
	return len(b.nodes)
}

// Robber returns the position of the robbed hexagon.
func (b *Board) Robber() HexPos {
	return b.hexes[b.robber].Pos
}

// AllHexagons returns (terrain, token) for every grid cell, with (-1, -1)
// for cells that hold no hexagon.
func (b *Board) AllHexagons() [BoardRows][BoardCols][2]int {
	var out [BoardRows][BoardCols][2]int
	for r := range b.grid {
		for c, id := range b.grid[r] {
			if id == noHex {
				out[r][c] = [2]int{-1, -1}
				continue
			}
			out[r][c] = [2]int{int(b.hexes[id].Terrain), b.hexes[id].Token}
		}
	}
	return out
}

// AllHarbors returns the harbor kind at each fixed harbor placement.
func (b *Board) AllHarbors() []Harbor {
	out := make([]Harbor, 0, NumHarbors)
	for _, anchor := range harborAnchors {
		hex := b.hexes[b.grid[anchor.hex.Row][anchor.hex.Col]]
		out = append(out, b.nodes[hex.Nodes[anchor.a]].Harbor)
	}
	return out
}

// HexagonsByRoll returns the tiles carrying token n.
func (b *Board) HexagonsByRoll(n int) []Hexagon {
	if n < 0 || n >= len(b.byRoll) {
		return nil
	}
	out := make([]Hexagon, 0, len(b.byRoll[n]))
	for _, id := range b.byRoll[n] {
		out = append(out, b.hexes[id])
	}
	return out
}

// MoveRobber moves the robber to pos. It fails without mutation when pos
// is off the board or already robbed.
func (b *Board) MoveRobber(pos HexPos) bool {
	id, ok := b.HexID(pos)
	if !ok || id == b.robber {
		return false
	}
	b.hexes[b.robber].Robber = false
	b.hexes[id].Robber = true
	b.robber = id
	return true
}

// Occupants returns the distinct owners of buildings around pos.
func (b *Board) Occupants(pos HexPos) []Seat {
	id, ok := b.HexID(pos)
	if !ok {
		return nil
	}
	var seats []Seat
	for _, n := range b.hexes[id].Nodes {
		owner := b.nodes[n].Owner
		if owner == NoSeat || containsSeat(seats, owner) {
			continue
		}
		seats = append(seats, owner)
	}
	return seats
}

// EdgeNodes resolves both ends of e.
func (b *Board) EdgeNodes(e Edge) (NodeID, NodeID, bool) {
	from, ok := b.NodeID(e.From)
	if !ok {
		return noNode, noNode, false
	}
	to, ok := b.NodeID(e.To)
	if !ok {
		return noNode, noNode, false
	}
	return from, to, true
}

// CollisionRoad reports whether a road cannot go on e: an endpoint is off
// the board, both ends are the same node, the nodes are not adjacent, or a
// road is already there.
func (b *Board) CollisionRoad(e Edge) bool {
	from, to, ok := b.EdgeNodes(e)
	if !ok || from == to {
		return true
	}
	i := b.linkIndex(from, to)
	return i < 0 || b.nodes[from].links[i].road != NoSeat
}

// ValidRoad reports whether e is free and touches the owner's network.
func (b *Board) ValidRoad(owned NodeSet, e Edge) bool {
	if b.CollisionRoad(e) {
		return false
	}
	from, to, _ := b.EdgeNodes(e)
	return owned.Has(from) || owned.Has(to)
}

// AddRoad stamps seat on both directions of e. Callers validate first.
func (b *Board) AddRoad(e Edge, seat Seat) {
	from, to, ok := b.EdgeNodes(e)
	if !ok {
		return
	}
	if i := b.linkIndex(from, to); i >= 0 {
		b.nodes[from].links[i].road = seat
	}
	if i := b.linkIndex(to, from); i >= 0 {
		b.nodes[to].links[i].road = seat
	}
}

// ValidSettlement applies the distance rule at pos and, outside the early
// game, requires pos to be on the owner's network.
func (b *Board) ValidSettlement(pos NodePos, early bool, owned NodeSet) bool {
	id, ok := b.NodeID(pos)
	if !ok {
		return false
	}
	n := b.nodes[id]
	if n.Owner != NoSeat {
		return false
	}
	for _, l := range n.links {
		if b.nodes[l.to].Owner != NoSeat {
			return false
		}
	}
	return early || owned.Has(id)
}

// AddSettlement claims pos for seat and returns the node's harbor.
func (b *Board) AddSettlement(pos NodePos, seat Seat) Harbor {
	id, ok := b.NodeID(pos)
	if !ok {
		return NoHarbor
	}
	b.nodes[id].Owner = seat
	b.nodes[id].Building = Settlement
	return b.nodes[id].Harbor
}

// Upgrade turns the settlement at id into a city.
func (b *Board) Upgrade(id NodeID) {
	b.nodes[id].Building = City
}

// BreaksRoad reports whose road network a settlement by seat at pos cuts.
// It returns that player only when at least two roads meet at pos and every
// road not owned by seat belongs to the same other player.
func (b *Board) BreaksRoad(seat Seat, pos NodePos) Seat {
	id, ok := b.NodeID(pos)
	if !ok {
		return NoSeat
	}
	other, count := NoSeat, 0
	for _, l := range b.nodes[id].links {
		if l.road == NoSeat || l.road == seat {
			continue
		}
		if other != NoSeat && l.road != other {
			return NoSeat
		}
		other = l.road
		count++
	}
	if count < 2 {
		return NoSeat
	}
	return other
}

func containsSeat(seats []Seat, s Seat) bool {
	for _, v := range seats {
		if v == s {
			return true
		}
	}
	return false
}

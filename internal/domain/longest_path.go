package domain

// NodeSet is the set of nodes a player's network touches.
type NodeSet map[NodeID]struct{}

// Add inserts ids into the set.
func (s NodeSet) Add(ids ...NodeID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports membership.
func (s NodeSet) Has(id NodeID) bool {
	_, ok := s[id]
	return ok
}

type edgeKey struct {
	a, b NodeID
}

func newEdgeKey(a, b NodeID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// LongestPath returns the length of the longest trail of seat's roads
// starting at start. A trail never reuses a road but may revisit a node. A
// building owned by someone else stops the trail, except at start.
func (b *Board) LongestPath(start NodeID, seat Seat) int {
	if start < 0 || int(start) >= len(b.nodes) {
		return 0
	}
	return b.longestFrom(start, seat, make(map[edgeKey]bool), true)
}

func (b *Board) longestFrom(id NodeID, seat Seat, used map[edgeKey]bool, first bool) int {
	n := &b.nodes[id]
	if !first && n.Owner != NoSeat && n.Owner != seat {
		return 0
	}
	best := 0
	for _, l := range n.links {
		if l.road != seat {
			continue
		}
		key := newEdgeKey(id, l.to)
		if used[key] {
			continue
		}
		used[key] = true
		if length := 1 + b.longestFrom(l.to, seat, used, false); length > best {
			best = length
		}
		delete(used, key)
	}
	return best
}

// NetworkLongestPath maximises LongestPath over every node in owned.
func (b *Board) NetworkLongestPath(owned NodeSet, seat Seat) int {
	best := 0
	for id := range owned {
		if length := b.LongestPath(id, seat); length > best {
			best = length
		}
	}
	return best
}

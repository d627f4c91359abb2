package search

// Grouper clusters tune IDs into near-duplicate groups, identified by
// the lowest member ID in the group. Ported from the original
// implementation's linear-array union-find: dense array indexed by
// tune ID, no unassigned sentinel beyond a boolean, optimised for a
// corpus that fits comfortably in memory rather than for asymptotic
// union-find performance.
type Grouper struct {
	groups   []uint32
	assigned []bool
}

// growthOverhead is the spare capacity added whenever the dense arrays
// grow. Membership is tracked by assigned rather than by a sentinel
// value in groups, since uint32 has no natural "missing" value
// reserved the way usize::MAX does in the original.
const growthOverhead = 1024

// NewGrouper creates an empty grouper.
func NewGrouper() *Grouper {
	return &Grouper{
		groups:   make([]uint32, growthOverhead),
		assigned: make([]bool, growthOverhead),
	}
}

func (g *Grouper) ensure(id uint32) {
	if int(id) < len(g.groups) {
		return
	}
	newLen := int(id) + 1 + growthOverhead
	grown := make([]uint32, newLen)
	copy(grown, g.groups)
	g.groups = grown

	grownAssigned := make([]bool, newLen)
	copy(grownAssigned, g.assigned)
	g.assigned = grownAssigned
}

// Add puts a and b into the same group, creating, joining, or merging
// groups as needed. a == b is a no-op.
func (g *Grouper) Add(a, b uint32) {
	if a == b {
		return
	}
	g.ensure(a)
	g.ensure(b)

	aAssigned, bAssigned := g.assigned[a], g.assigned[b]

	switch {
	case !aAssigned && !bAssigned:
		lo := a
		if b < lo {
			lo = b
		}
		g.groups[a] = lo
		g.groups[b] = lo
		g.assigned[a] = true
		g.assigned[b] = true
	case !aAssigned && bAssigned:
		// Join as a group of one and merge, so the lowest member
		// stays the group's ID.
		g.groups[a] = a
		g.assigned[a] = true
		g.Add(a, b)
	case aAssigned && !bAssigned:
		g.groups[b] = b
		g.assigned[b] = true
		g.Add(a, b)
	default:
		oldA, oldB := g.groups[a], g.groups[b]
		if oldA == oldB {
			return
		}
		newID := uint32(0)
		found := false
		for i := range g.groups {
			if !g.assigned[i] {
				continue
			}
			if g.groups[i] == oldA || g.groups[i] == oldB {
				if !found {
					newID = uint32(i)
					found = true
				} else {
					g.groups[i] = newID
				}
			}
		}
		if found {
			g.groups[newID] = newID
		}
	}
}

// Get returns the group ID a belongs to, and whether it belongs to
// any group at all.
func (g *Grouper) Get(a uint32) (uint32, bool) {
	if int(a) >= len(g.groups) || !g.assigned[a] {
		return 0, false
	}
	return g.groups[a], true
}

// GroupIDs returns the canonical ID of every group (the lowest member
// of each), in ascending order.
func (g *Grouper) GroupIDs() []uint32 {
	var ids []uint32
	for i, assigned := range g.assigned {
		if assigned && g.groups[i] == uint32(i) {
			ids = append(ids, uint32(i))
		}
	}
	return ids
}

// Members returns every tune ID belonging to group groupID, in
// ascending order.
func (g *Grouper) Members(groupID uint32) []uint32 {
	var members []uint32
	for i, assigned := range g.assigned {
		if assigned && g.groups[i] == groupID {
			members = append(members, uint32(i))
		}
	}
	return members
}

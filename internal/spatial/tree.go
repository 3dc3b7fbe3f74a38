// Package spatial provides an unbalanced four-way partition tree over
// stationary entities.
//
// Each node holds one entity and up to four children, one per quadrant
// relative to the node's (x, z). The tree is never rebalanced, so its shape
// depends on insertion order and degenerates to a list for sorted input.
package spatial

import "github.com/talgya/ilha/internal/agents"

// Quadrant indices for a child relative to its parent key.
const (
	QuadBothGreater = iota // key.X < x, key.Z < z
	QuadXGreater           // key.X < x, key.Z >= z
	QuadZGreater           // key.X >= x, key.Z < z
	QuadNeither            // key.X >= x, key.Z >= z
)

type node struct {
	key      agents.Entity
	children [4]*node
}

// Tree is a root-owned hierarchy of nodes. The zero value is an empty tree.
type Tree struct {
	root *node
	size int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Quadrant returns which child slot of a node keyed at key receives e.
// Ties fall to the not-greater branches.
func Quadrant(key, e agents.Entity) int {
	xGreater := key.Position.X < e.Position.X
	zGreater := key.Position.Z < e.Position.Z
	switch {
	case xGreater && zGreater:
		return QuadBothGreater
	case xGreater:
		return QuadXGreater
	case zGreater:
		return QuadZGreater
	default:
		return QuadNeither
	}
}

// Insert adds e as a new leaf below the first empty quadrant slot on its
// descent path.
func (t *Tree) Insert(e agents.Entity) {
	t.size++
	if t.root == nil {
		t.root = &node{key: e}
		return
	}

	n := t.root
	for {
		q := Quadrant(n.key, e)
		if n.children[q] == nil {
			n.children[q] = &node{key: e}
			return
		}
		n = n.children[q]
	}
}

// CollidesAt reports whether any entity in the tree stands at (x, z).
// Every node is checked; quadrant pruning is not used because exact
// matches on boundary values do not follow the quadrant order.
func (t *Tree) CollidesAt(x, z float64) bool {
	if t == nil || t.root == nil {
		return false
	}
	return t.root.collides(x, z)
}

func (n *node) collides(x, z float64) bool {
	if n.key.SameCell(x, z) {
		return true
	}
	for _, c := range n.children {
		if c != nil && c.collides(x, z) {
			return true
		}
	}
	return false
}

// ForEach visits every entity once in pre-order: a node, then its
// children in quadrant order.
func (t *Tree) ForEach(fn func(agents.Entity)) {
	if t == nil || t.root == nil {
		return
	}
	t.root.walk(fn)
}

func (n *node) walk(fn func(agents.Entity)) {
	fn(n.key)
	for _, c := range n.children {
		if c != nil {
			c.walk(fn)
		}
	}
}

// Len returns the number of entities inserted.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	return t.root.depth()
}

func (n *node) depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.children {
		deepest = max(deepest, c.depth())
	}
	return deepest + 1
}

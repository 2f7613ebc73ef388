package repository

import (
	"hash/fnv"
	"math"
)

// Treap ordering: risk DESC, then employee id ASC. "less" means ranks
// earlier, so in-order traversal walks from riskiest to safest.

// riskScale converts risk to fixed point so equal risks compare exactly.
const riskScale = 1_000_000_000_000

type riskFP int64

func toFixedPoint(x float64) riskFP {
	if math.IsNaN(x) {
		return 0
	}
	return riskFP(math.Round(math.Max(-1, math.Min(1, x)) * riskScale))
}

func toFloat(x riskFP) float64 {
	return float64(x) / riskScale
}

type node struct {
	id    string
	risk  riskFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aRisk, aID) ranks before (bRisk, bID).
func less(aRisk riskFP, aID string, bRisk riskFP, bID string) bool {
	if aRisk != bRisk {
		return aRisk > bRisk
	}
	return aID < bID
}

// priority hashes the id so the heap order is independent of the key order.
func priority(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, risk riskFP) *node {
	if n == nil {
		return &node{id: id, risk: risk, prio: priority(id), size: 1}
	}
	if less(risk, id, n.risk, n.id) {
		n.left = insert(n.left, id, risk)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, risk)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, risk riskFP) *node {
	if n == nil {
		return nil
	}
	switch {
	case risk == n.risk && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, risk)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, risk)
		}
	case less(risk, id, n.risk, n.id):
		n.left = deleteNode(n.left, id, risk)
	default:
		n.right = deleteNode(n.right, id, risk)
	}
	fix(n)
	return n
}

// rankOf returns the 1-based position of (risk, id), or 0 if absent.
func rankOf(n *node, id string, risk riskFP) int {
	before := 0
	for n != nil {
		switch {
		case risk == n.risk && id == n.id:
			return before + nsize(n.left) + 1
		case less(risk, id, n.risk, n.id):
			n = n.left
		default:
			before += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// walk visits nodes in rank order until visit returns false.
func walk(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, visit) && visit(n) && walk(n.right, visit)
}

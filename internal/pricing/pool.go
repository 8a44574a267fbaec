package pricing

import "github.com/google/uuid"

// Solution is an ordered H1->H2 node sequence plus its scalar reduced cost
// (§3). Two solutions compare equal iff their node sequences match
// exactly, independent of which label or stage produced them.
type Solution struct {
	Nodes       []NodeID
	ReducedCost float64
}

// NewSolution builds a Solution from a traced node sequence and cost.
func NewSolution(nodes []NodeID, cost float64) Solution {
	return Solution{Nodes: nodes, ReducedCost: cost}
}

// Equal reports whether two solutions share the same ordered node
// sequence.
func (s Solution) Equal(other Solution) bool {
	if len(s.Nodes) != len(other.Nodes) {
		return false
	}
	for i, n := range s.Nodes {
		if n != other.Nodes[i] {
			return false
		}
	}
	return true
}

// SatisfiesCapacityConstraints walks the solution's node sequence against
// g's vessel-class capacities, re-deriving the same QPickupable/
// QDeliverable resource recursion the labelling engine used, and reports
// whether it stays within capacity (>= 0, QDeliverable <= QPickupable) at
// every step.
func (s Solution) SatisfiesCapacityConstraints(g *Graph) bool {
	qp := g.InitialQPickupable
	qd := g.InitialQDeliverable

	for _, nid := range s.Nodes[1:] { // first node is H1, carries no demand
		n := g.NodeAt(nid)
		port := g.PortOf(n.Port)

		qp -= port.PuDemand
		qd = minInt(qd-port.DeDemand, qp)

		if qp < 0 || qd < 0 || qd > qp {
			return false
		}
	}
	return true
}

// Column is a (problem reference, Solution) pair stored in the pool.
type Column struct {
	ProblemReference uuid.UUID
	Sol              Solution
}

// NewColumn builds a Column.
func NewColumn(ref uuid.UUID, sol Solution) Column {
	return Column{ProblemReference: ref, Sol: sol}
}

// Equal reports whether two columns carry equal solutions.
func (c Column) Equal(other Column) bool { return c.Sol.Equal(other.Sol) }

// ColumnPool is the insertion-ordered, linear-scan-membership pool of §3.
// It is safe for single-writer mutation only, matching §5's single-caller
// contract.
type ColumnPool struct {
	columns []Column
}

// NewColumnPool builds an empty pool.
func NewColumnPool() *ColumnPool {
	return &ColumnPool{}
}

// Contains reports whether the pool already holds a column equal to sol.
func (p *ColumnPool) Contains(sol Solution) bool {
	for _, c := range p.columns {
		if c.Sol.Equal(sol) {
			return true
		}
	}
	return false
}

// Add appends c to the pool.
func (p *ColumnPool) Add(c Column) { p.columns = append(p.columns, c) }

// Len returns the number of columns in the pool.
func (p *ColumnPool) Len() int { return len(p.columns) }

// Columns returns the pool's columns in insertion order. The returned
// slice must not be mutated by callers.
func (p *ColumnPool) Columns() []Column { return p.columns }

func containsSolution(sols []Solution, candidate Solution) bool {
	for _, s := range sols {
		if s.Equal(candidate) {
			return true
		}
	}
	return false
}

package pricing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"pricer/pkg/pricingerr"
)

// EdgeID indexes an Edge within a Graph.
type EdgeID int

// Edge is a directed arc of the time-expanded graph.
type Edge struct {
	ID     EdgeID
	From   NodeID
	To     NodeID
	Cost   float64
	Length float64
}

// gonumNode and gonumEdge adapt Node/Edge to gonum's BGL-style vertex/edge
// descriptor interfaces (graph.Node, graph.Edge), so the time-expanded
// network can be handed to any gonum/graph algorithm (reachability checks in
// tests, export, etc.) without the pricing core depending on a second
// representation of truth — the dense slices below remain the ones walked
// on the hot label-setting path.
type gonumNode struct{ Node }

func (n gonumNode) ID() int64 { return int64(n.Node.ID) }

type gonumEdge struct {
	Edge
	from, to gonumNode
}

func (e gonumEdge) From() graph.Node         { return e.from }
func (e gonumEdge) To() graph.Node           { return e.to }
func (e gonumEdge) ReversedEdge() graph.Edge { return gonumEdge{Edge: e.Edge, from: e.to, to: e.from} }
func (e gonumEdge) Weight() float64          { return e.Cost }

// Graph is the BGraph of §3: a directed graph whose vertex descriptor maps
// to a Node and whose edge descriptor maps to an Edge, plus a per-node dual
// value read by LabelExtender. Node ids are dense and assigned in
// topological (time-increasing) order by the builder.
type Graph struct {
	VesselClass string

	nodes []Node
	ports map[PortID]*Port
	edges []Edge

	outEdges [][]EdgeID
	inEdges  [][]EdgeID
	duals    []float64

	source NodeID
	sink   NodeID

	// InitialQPickupable and InitialQDeliverable are the vessel class's
	// load capacities carried by the seed label at H1.
	InitialQPickupable  int
	InitialQDeliverable int

	portKeyIndex map[PortKey]int
	portKeys     []PortKey

	dg *simple.DirectedGraph
}

// NewGraph creates an empty graph for the given vessel class. Nodes, ports
// and edges must be added before the graph is handed to a solver.
func NewGraph(vesselClass string) *Graph {
	return &Graph{
		VesselClass:  vesselClass,
		ports:        make(map[PortID]*Port),
		portKeyIndex: make(map[PortKey]int),
		dg:           simple.NewDirectedGraph(),
	}
}

// AddPort registers a port's static attributes.
func (g *Graph) AddPort(p Port) {
	cp := p
	g.ports[p.ID] = &cp
}

// AddNode appends a node, returning its assigned id. Callers must add nodes
// in topological (time-increasing) order.
func (g *Graph) AddNode(n Node) NodeID {
	id := NodeID(len(g.nodes))
	n.ID = id
	g.nodes = append(g.nodes, n)
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	g.duals = append(g.duals, 0)
	g.dg.AddNode(gonumNode{n})

	key := n.Key()
	if _, ok := g.portKeyIndex[key]; !ok {
		g.portKeyIndex[key] = len(g.portKeys)
		g.portKeys = append(g.portKeys, key)
	}

	switch n.Type {
	case NodeDepotStart:
		g.source = id
	case NodeDepotEnd:
		g.sink = id
	}
	return id
}

// AddEdge appends a directed edge u->v, returning its assigned id.
func (g *Graph) AddEdge(from, to NodeID, cost, length float64) EdgeID {
	id := EdgeID(len(g.edges))
	e := Edge{ID: id, From: from, To: to, Cost: cost, Length: length}
	g.edges = append(g.edges, e)
	g.outEdges[from] = append(g.outEdges[from], id)
	g.inEdges[to] = append(g.inEdges[to], id)
	g.dg.SetEdge(gonumEdge{Edge: e, from: gonumNode{g.nodes[from]}, to: gonumNode{g.nodes[to]}})
	return id
}

// DualOf returns the current dual price of visiting node n.
func (g *Graph) DualOf(n NodeID) float64 { return g.duals[n] }

// SetDual rewrites the dual price of node n; the master calls this between
// pricing calls to refresh duals (§6).
func (g *Graph) SetDual(n NodeID, value float64) { g.duals[n] = value }

// NodeAt returns the node with the given id.
func (g *Graph) NodeAt(id NodeID) Node { return g.nodes[id] }

// EdgeAt returns the edge with the given id.
func (g *Graph) EdgeAt(id EdgeID) Edge { return g.edges[id] }

// PortOf returns the port attached to the given node.
func (g *Graph) PortOf(portID PortID) *Port { return g.ports[portID] }

// OutEdges returns the ids of edges leaving n, in insertion order.
func (g *Graph) OutEdges(n NodeID) []EdgeID { return g.outEdges[n] }

// InEdges returns the ids of edges entering n, in insertion order.
func (g *Graph) InEdges(n NodeID) []EdgeID { return g.inEdges[n] }

// Source returns H1, the unique start depot.
func (g *Graph) Source() NodeID { return g.source }

// Sink returns H2, the unique end depot.
func (g *Graph) Sink() NodeID { return g.sink }

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int { return len(g.edges) }

// PortKeyIndex returns the dense index assigned to a (port, pickup type)
// key, used to address ElementaryLabel.Visited.
func (g *Graph) PortKeyIndex(key PortKey) int { return g.portKeyIndex[key] }

// NumPortKeys returns the number of distinct (port, pickup type) keys
// present in the graph — the length every ElementaryLabel.Visited slice
// created from this graph must have.
func (g *Graph) NumPortKeys() int { return len(g.portKeys) }

// Underlying exposes the gonum-backed representation for traversal
// utilities and tests (e.g. graph/traverse reachability checks).
func (g *Graph) Underlying() *simple.DirectedGraph { return g.dg }

// Sparsify returns a new Graph retaining only the nodes and the fraction
// lambda of edges with the most negative reduced cost
// (cost - DualOf(to)), ties broken by edge id for determinism. Node ids,
// ports and dual values are preserved unchanged so that solutions found on
// the sparsified graph compare equal, node-for-node, to solutions on the
// full graph.
func (g *Graph) Sparsify(lambda float64) *Graph {
	if lambda >= 1 {
		return g
	}
	if lambda < 0 {
		lambda = 0
	}

	scoredEdges := make([]scoredEdge, len(g.edges))
	for i, e := range g.edges {
		scoredEdges[i] = scoredEdge{eid: e.ID, score: e.Cost - g.DualOf(e.To)}
	}
	// Deterministic ordering: most negative score first, ties by edge id
	// ascending.
	sort.Slice(scoredEdges, func(i, j int) bool {
		a, b := scoredEdges[i], scoredEdges[j]
		if a.score != b.score {
			return a.score < b.score
		}
		return a.eid < b.eid
	})

	keep := int(lambda * float64(len(scoredEdges)))
	if keep < 0 {
		keep = 0
	}
	if keep > len(scoredEdges) {
		keep = len(scoredEdges)
	}

	kept := make(map[EdgeID]bool, keep)
	for _, se := range scoredEdges[:keep] {
		kept[se.eid] = true
	}

	out := &Graph{
		VesselClass:         g.VesselClass,
		nodes:               g.nodes,
		ports:               g.ports,
		duals:               g.duals,
		source:              g.source,
		sink:                g.sink,
		InitialQPickupable:  g.InitialQPickupable,
		InitialQDeliverable: g.InitialQDeliverable,
		portKeyIndex:        g.portKeyIndex,
		portKeys:            g.portKeys,
		edges:               g.edges,
		outEdges:            make([][]EdgeID, len(g.nodes)),
		inEdges:             make([][]EdgeID, len(g.nodes)),
		dg:                  g.dg,
	}
	for n := range g.nodes {
		for _, eid := range g.outEdges[n] {
			if kept[eid] {
				out.outEdges[n] = append(out.outEdges[n], eid)
			}
		}
		for _, eid := range g.inEdges[n] {
			if kept[eid] {
				out.inEdges[n] = append(out.inEdges[n], eid)
			}
		}
	}
	return out
}

type scoredEdge struct {
	eid   EdgeID
	score float64
}

// Validate checks the row-disjointness invariant (§3) across every edge,
// surfacing a precondition violation rather than letting extension panic
// lazily mid-search. Preprocessing-built graphs are expected to pass this
// unconditionally; it exists for defensive use by callers loading graphs
// from an untrusted source.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		from, to := g.nodes[e.From], g.nodes[e.To]
		if from.SameRow(to) {
			return pricingerr.Wrap(fmt.Errorf("edge %d connects nodes %d and %d", e.ID, e.From, e.To),
				pricingerr.PreconditionViolation, "row collision")
		}
	}
	return nil
}

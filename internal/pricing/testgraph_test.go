package pricing

// portSpec/graphBuilder are small test-only helpers for constructing the
// tiny fixtures used throughout the scenario tests (§8 S1-S8), mirroring
// the construction style of the reference algorithms package's tests
// which build residual graphs node-by-node and edge-by-edge.

type graphBuilder struct {
	g *Graph
}

func newGraphBuilder(vesselClass string, qp, qd int) *graphBuilder {
	g := NewGraph(vesselClass)
	g.InitialQPickupable = qp
	g.InitialQDeliverable = qd
	return &graphBuilder{g: g}
}

func (b *graphBuilder) port(id PortID, puDemand, deDemand int, puPenalty, dePenalty float64) {
	b.g.AddPort(Port{ID: id, PuDemand: puDemand, DeDemand: deDemand, PuPenalty: puPenalty, DePenalty: dePenalty})
}

func (b *graphBuilder) node(port PortID, puType PickupType, time int, typ NodeType) NodeID {
	return b.g.AddNode(Node{Port: port, PuType: puType, Time: time, Type: typ})
}

func (b *graphBuilder) edge(from, to NodeID, cost, length float64) EdgeID {
	return b.g.AddEdge(from, to, cost, length)
}

func (b *graphBuilder) dual(n NodeID, value float64) {
	b.g.SetDual(n, value)
}

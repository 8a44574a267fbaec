package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_PortKeyIndex_IsDenseAndStable(t *testing.T) {
	b := newGraphBuilder("vc", 10, 10)
	b.port(0, 0, 0, 0, 0)
	b.port(1, 0, 0, 0, 0)
	h1 := b.node(0, Pickup, 0, NodeDepotStart)
	p := b.node(1, Pickup, 1, NodePortVisit)
	_ = b.node(1, Delivery, 2, NodePortVisit) // distinct row: same port, different pickup type
	b.edge(h1, p, 1, 1)

	assert.Equal(t, 3, b.g.NumPortKeys())
	assert.NotEqual(t, b.g.PortKeyIndex(PortKey{Port: 1, PuType: Pickup}), b.g.PortKeyIndex(PortKey{Port: 1, PuType: Delivery}))
}

func TestGraph_Validate_RejectsRowCollision(t *testing.T) {
	b := newGraphBuilder("vc", 10, 10)
	b.port(0, 0, 0, 0, 0)
	n1 := b.node(0, Pickup, 0, NodeDepotStart)
	n2 := b.node(0, Pickup, 1, NodePortVisit)
	b.edge(n1, n2, 1, 1)

	err := b.g.Validate()
	require.Error(t, err)
}

func TestGraph_Validate_AcceptsWellFormedGraph(t *testing.T) {
	g := buildNegativeColumnGraph()
	assert.NoError(t, g.Validate())
}

func TestGraph_Sparsify_KeepsMostNegativeScoreEdgesDeterministically(t *testing.T) {
	g := build10EdgeLambdaGraph("vc")

	reduced := g.Sparsify(0.2)

	var kept []EdgeID
	for n := 0; n < reduced.NumNodes(); n++ {
		kept = append(kept, reduced.OutEdges(NodeID(n))...)
	}
	require.Len(t, kept, 2)
	assert.ElementsMatch(t, []EdgeID{0, 1}, kept) // the two real-path edges, added first
}

func TestGraph_Sparsify_LambdaAtOrAboveOneReturnsFullGraph(t *testing.T) {
	g := build10EdgeLambdaGraph("vc")
	reduced := g.Sparsify(1.0)
	assert.Same(t, g, reduced)
}

func TestGraph_Sparsify_PreservesDualsAndCapacities(t *testing.T) {
	g := buildNegativeColumnGraph()
	reduced := g.Sparsify(0.5)

	assert.Equal(t, g.InitialQPickupable, reduced.InitialQPickupable)
	assert.Equal(t, g.InitialQDeliverable, reduced.InitialQDeliverable)
	for n := 0; n < g.NumNodes(); n++ {
		assert.Equal(t, g.DualOf(NodeID(n)), reduced.DualOf(NodeID(n)))
	}
}

func TestGraph_SourceAndSink(t *testing.T) {
	g := buildNegativeColumnGraph()
	assert.Equal(t, NodeDepotStart, g.NodeAt(g.Source()).Type)
	assert.Equal(t, NodeDepotEnd, g.NodeAt(g.Sink()).Type)
}

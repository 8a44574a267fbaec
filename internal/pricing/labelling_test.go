package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertNonDominated_CheaperEvictsWithinTolerance(t *testing.T) {
	a := &Label{QPickupable: 5, QDeliverable: 3, Cost: 10.0}
	b := &Label{QPickupable: 5, QDeliverable: 3, Cost: 10.000001}

	// Dominates compares cost exactly, so the cheaper label evicts the
	// marginally costlier one regardless of insertion order (S3).
	frontier := insertNonDominated([]*Label{}, a, DefaultCostEqualityTolerance)
	frontier = insertNonDominated(frontier, b, DefaultCostEqualityTolerance)
	require.Len(t, frontier, 1)
	assert.Same(t, a, frontier[0])

	frontier = insertNonDominated([]*Label{}, b, DefaultCostEqualityTolerance)
	frontier = insertNonDominated(frontier, a, DefaultCostEqualityTolerance)
	require.Len(t, frontier, 1)
	assert.Same(t, a, frontier[0])
}

func TestInsertNonDominated_KeepsIncomparableLabels(t *testing.T) {
	a := &Label{QPickupable: 5, QDeliverable: 3, Cost: 9.0}
	c := &Label{QPickupable: 3, QDeliverable: 5, Cost: 9.0}

	frontier := insertNonDominated([]*Label{}, a, DefaultCostEqualityTolerance)
	frontier = insertNonDominated(frontier, c, DefaultCostEqualityTolerance)

	assert.Len(t, frontier, 2)
}

func TestInsertNonDominated_NewLabelEvictsDominated(t *testing.T) {
	weak := &Label{QPickupable: 3, QDeliverable: 3, Cost: 10}
	strong := &Label{QPickupable: 5, QDeliverable: 5, Cost: 5}

	frontier := insertNonDominated([]*Label{}, weak, DefaultCostEqualityTolerance)
	frontier = insertNonDominated(frontier, strong, DefaultCostEqualityTolerance)

	require.Len(t, frontier, 1)
	assert.Same(t, strong, frontier[0])
}

func TestLabellingEngine_Run_FindsSolutionOnSimplePath(t *testing.T) {
	g := buildNegativeColumnGraph()
	seed := &Label{Graph: g, Node: g.Source(), QPickupable: g.InitialQPickupable, QDeliverable: g.InitialQDeliverable}
	engine := NewLabellingEngine[*Label](g, ExtendLabel, DefaultProgramParams().ContextCheckInterval, DefaultProgramParams().CostEqualityTolerance)

	sols, err := engine.Run(context.Background(), seed)
	require.NoError(t, err)
	require.Len(t, sols, 1)
	assert.InDelta(t, -8, sols[0].ReducedCost, 1e-9)
}

func TestLabellingEngine_Run_StopsOnCanceledContext(t *testing.T) {
	g := buildNegativeColumnGraph()
	seed := &Label{Graph: g, Node: g.Source(), QPickupable: g.InitialQPickupable, QDeliverable: g.InitialQDeliverable}
	engine := NewLabellingEngine[*Label](g, ExtendLabel, 1, DefaultProgramParams().CostEqualityTolerance)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, seed)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestElementaryLabelling_PrunesRevisit is S4: elementary labelling must
// reject a path that revisits a port's row, while the plain (non-elementary)
// engine happily keeps both the revisit route and the bypass route. P's
// pickup demand and the dual on the revisit make the two routes
// incomparable (bypass keeps more capacity, revisit is cheaper), so
// neither dominates the other at H2.
func TestElementaryLabelling_PrunesRevisit(t *testing.T) {
	b := newGraphBuilder("vc", 10, 10)
	b.port(0, 0, 0, 0, 0) // H1
	b.port(1, 1, 0, 0, 0) // P
	b.port(2, 0, 0, 0, 0) // Q
	b.port(3, 0, 0, 0, 0) // H2

	h1 := b.node(0, Pickup, 0, NodeDepotStart)
	p1 := b.node(1, Pickup, 1, NodePortVisit)
	q := b.node(2, Pickup, 2, NodePortVisit)
	p2 := b.node(1, Pickup, 3, NodePortVisit) // revisits P's row at a later time
	h2 := b.node(3, Pickup, 4, NodeDepotEnd)

	b.edge(h1, p1, 1, 1)
	b.edge(p1, q, 1, 1)
	b.edge(q, p2, 1, 1)
	b.edge(p2, h2, 1, 1)
	b.edge(q, h2, 1, 1) // bypass route that never revisits P
	b.dual(p2, 5)

	ctx := context.Background()

	exact := NewExactSolver(b.g)
	exactSols, err := exact.Solve(ctx, DefaultProgramParams())
	require.NoError(t, err)
	require.NotEmpty(t, exactSols)
	for _, sol := range exactSols {
		seen := map[PortID]int{}
		for _, nid := range sol.Nodes {
			seen[b.g.NodeAt(nid).Port]++
		}
		assert.LessOrEqual(t, seen[1], 1, "no elementary solution may visit port 1 twice")
	}

	engine := NewLabellingEngine[*Label](b.g, ExtendLabel, DefaultProgramParams().ContextCheckInterval, DefaultProgramParams().CostEqualityTolerance)
	seed := &Label{Graph: b.g, Node: b.g.Source(), QPickupable: b.g.InitialQPickupable, QDeliverable: b.g.InitialQDeliverable}
	nonElemSols, err := engine.Run(ctx, seed)
	require.NoError(t, err)
	assert.Len(t, nonElemSols, 2, "the non-elementary engine keeps both the revisit route and the bypass route")
}

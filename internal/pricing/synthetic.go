package pricing

import (
	"math/rand"
	"strconv"
)

// The generators below build synthetic time-expanded graphs of a given
// shape and size, for benchmarking the pricing cascade without needing a
// real preprocessing pipeline or an on-disk instance. Each graph is a valid
// input to SPSolver: exactly one H1 and one H2 node, ports visited in
// strictly increasing time, and no edge crossing two same-row nodes
// (§3's row-disjointness invariant) — depots get their own reserved port so
// they never share a row with a port visit.
const (
	depotStartPort PortID = -1
	depotEndPort   PortID = -2
)

// GenerateLineGraph builds a single chain H1 -> p1 -> p2 -> ... -> pN -> H2,
// alternating pickup/delivery per hop. This is the easiest shape for the
// cascade: a unique path, so the fast-forward stage (§4.6's stage 1) is
// expected to accept it outright.
func GenerateLineGraph(vesselClassID string, numPorts int) *Graph {
	g := NewGraph(vesselClassID)
	g.InitialQPickupable = numPorts
	g.InitialQDeliverable = numPorts

	g.AddPort(Port{ID: depotStartPort, Name: "H1"})
	g.AddPort(Port{ID: depotEndPort, Name: "H2"})
	for i := 0; i < numPorts; i++ {
		g.AddPort(Port{ID: PortID(i), Name: portName(i), PuDemand: 1, DeDemand: 1, PuPenalty: 5, DePenalty: 5})
	}

	start := g.AddNode(Node{Port: depotStartPort, PuType: Pickup, Time: 0, Type: NodeDepotStart})
	prev := start
	for i := 0; i < numPorts; i++ {
		puType := Pickup
		if i%2 == 1 {
			puType = Delivery
		}
		id := g.AddNode(Node{Port: PortID(i), PuType: puType, Time: i + 1, Type: NodePortVisit})
		g.AddEdge(prev, id, 2, 10)
		prev = id
	}
	end := g.AddNode(Node{Port: depotEndPort, PuType: Delivery, Time: numPorts + 1, Type: NodeDepotEnd})
	g.AddEdge(prev, end, 1, 5)
	return g
}

// GenerateLayeredGraph builds layers of width perLayer, fully connected to
// the next layer, between a single H1 and H2. Each node in a layer is a
// distinct port, so no row collision is possible across or within a layer.
// The label frontier widens with every layer. Each port's penalty (3+3)
// exceeds its incoming edge cost (2), so every port visit lowers the
// reduced cost and the fast-forward stage already accepts a column.
func GenerateLayeredGraph(vesselClassID string, layers, perLayer int) *Graph {
	g := NewGraph(vesselClassID)
	g.InitialQPickupable = layers * perLayer
	g.InitialQDeliverable = layers * perLayer

	g.AddPort(Port{ID: depotStartPort, Name: "H1"})
	g.AddPort(Port{ID: depotEndPort, Name: "H2"})

	nextPort := 0
	newPort := func() PortID {
		id := PortID(nextPort)
		g.AddPort(Port{ID: id, Name: portName(nextPort), PuDemand: 1, DeDemand: 1, PuPenalty: 3, DePenalty: 3})
		nextPort++
		return id
	}

	start := g.AddNode(Node{Port: depotStartPort, PuType: Pickup, Time: 0, Type: NodeDepotStart})

	prevLayer := []NodeID{start}
	for l := 0; l < layers; l++ {
		curLayer := make([]NodeID, 0, perLayer)
		puType := Pickup
		if l%2 == 1 {
			puType = Delivery
		}
		for w := 0; w < perLayer; w++ {
			id := g.AddNode(Node{Port: newPort(), PuType: puType, Time: l + 1, Type: NodePortVisit})
			curLayer = append(curLayer, id)
		}
		for _, from := range prevLayer {
			for _, to := range curLayer {
				g.AddEdge(from, to, 2, 10)
			}
		}
		prevLayer = curLayer
	}

	end := g.AddNode(Node{Port: depotEndPort, PuType: Delivery, Time: layers + 1, Type: NodeDepotEnd})
	for _, from := range prevLayer {
		g.AddEdge(from, end, 1, 5)
	}
	return g
}

// GenerateDenseGraph builds a graph of numPorts distinct port visits, each
// strictly time-ordered, with a random subset of the forward edges present
// (edgeProb of all possible forward hops, deterministic under seed). Each
// port's penalty (4+4) exceeds every edge cost (1 to 5), so every port
// visit lowers the reduced cost and the fast-forward stage already accepts
// a column; the label frontier of the later stages grows fast here.
func GenerateDenseGraph(vesselClassID string, numPorts int, edgeProb float64, seed int64) *Graph {
	g := NewGraph(vesselClassID)
	g.InitialQPickupable = numPorts
	g.InitialQDeliverable = numPorts
	rng := rand.New(rand.NewSource(seed))

	g.AddPort(Port{ID: depotStartPort, Name: "H1"})
	g.AddPort(Port{ID: depotEndPort, Name: "H2"})
	for i := 0; i < numPorts; i++ {
		g.AddPort(Port{ID: PortID(i), Name: portName(i), PuDemand: 1, DeDemand: 1, PuPenalty: 4, DePenalty: 4})
	}

	start := g.AddNode(Node{Port: depotStartPort, PuType: Pickup, Time: 0, Type: NodeDepotStart})
	ids := make([]NodeID, 0, numPorts+2)
	ids = append(ids, start)
	for i := 0; i < numPorts; i++ {
		puType := Pickup
		if i%2 == 1 {
			puType = Delivery
		}
		id := g.AddNode(Node{Port: PortID(i), PuType: puType, Time: i + 1, Type: NodePortVisit})
		ids = append(ids, id)
	}
	end := g.AddNode(Node{Port: depotEndPort, PuType: Delivery, Time: numPorts + 1, Type: NodeDepotEnd})
	ids = append(ids, end)

	for i, from := range ids {
		connected := false
		for j := i + 1; j < len(ids); j++ {
			to := ids[j]
			if j == i+1 || rng.Float64() < edgeProb {
				g.AddEdge(from, to, float64(1+rng.Intn(5)), float64(10+rng.Intn(50)))
				connected = true
			}
		}
		if !connected && i < len(ids)-1 {
			g.AddEdge(from, ids[i+1], 1, 10)
		}
	}
	return g
}

func portName(i int) string {
	return "port-" + strconv.Itoa(i)
}

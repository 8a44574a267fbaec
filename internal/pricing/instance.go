package pricing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"pricer/pkg/pricingerr"
)

// instanceFile is the on-disk JSON shape of a pricing call: one Graph per
// vessel class, each carrying the current master dual solution, plus the
// problem reference the resulting columns are tagged with (§6). It is
// intentionally flat rather than proto-shaped, mirroring the core's stance
// that its only real external boundary is the PricingService interface, not
// a wire format (see PricingService's doc comment).
type instanceFile struct {
	ProblemReference uuid.UUID            `json:"problem_reference"`
	VesselClasses    []vesselClassInstance `json:"vessel_classes"`
}

type vesselClassInstance struct {
	ID                  string         `json:"id"`
	InitialQPickupable  int            `json:"initial_q_pickupable"`
	InitialQDeliverable int            `json:"initial_q_deliverable"`
	Ports               []portInstance `json:"ports"`
	Nodes               []nodeInstance `json:"nodes"`
	Edges               []edgeInstance `json:"edges"`
}

type portInstance struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	PuDemand  int     `json:"pu_demand"`
	DeDemand  int     `json:"de_demand"`
	PuPenalty float64 `json:"pu_penalty"`
	DePenalty float64 `json:"de_penalty"`
}

type nodeInstance struct {
	Port   int     `json:"port"`
	PuType string  `json:"pu_type"` // "pickup" or "delivery"
	Time   int     `json:"time"`
	Type   string  `json:"type"` // "H1", "port-visit", "H2"
	Dual   float64 `json:"dual"`
}

type edgeInstance struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Cost   float64 `json:"cost"`
	Length float64 `json:"length"`
}

func parsePickupType(s string) (PickupType, error) {
	switch s {
	case "pickup":
		return Pickup, nil
	case "delivery":
		return Delivery, nil
	default:
		return 0, fmt.Errorf("unknown pickup type %q", s)
	}
}

func parseNodeType(s string) (NodeType, error) {
	switch s {
	case "H1":
		return NodeDepotStart, nil
	case "port-visit":
		return NodePortVisit, nil
	case "H2":
		return NodeDepotEnd, nil
	default:
		return 0, fmt.Errorf("unknown node type %q", s)
	}
}

// buildGraph translates one vesselClassInstance into a validated Graph. Nodes
// must appear in the file in the topological order AddNode requires
// (§3's dense-id convention); the loader does not reorder them.
func buildGraph(vc vesselClassInstance) (*Graph, error) {
	g := NewGraph(vc.ID)
	g.InitialQPickupable = vc.InitialQPickupable
	g.InitialQDeliverable = vc.InitialQDeliverable

	for _, p := range vc.Ports {
		g.AddPort(Port{
			ID:        PortID(p.ID),
			Name:      p.Name,
			PuDemand:  p.PuDemand,
			DeDemand:  p.DeDemand,
			PuPenalty: p.PuPenalty,
			DePenalty: p.DePenalty,
		})
	}

	for i, n := range vc.Nodes {
		puType, err := parsePickupType(n.PuType)
		if err != nil {
			return nil, fmt.Errorf("vessel class %s, node %d: %w", vc.ID, i, err)
		}
		nodeType, err := parseNodeType(n.Type)
		if err != nil {
			return nil, fmt.Errorf("vessel class %s, node %d: %w", vc.ID, i, err)
		}
		id := g.AddNode(Node{
			Port:   PortID(n.Port),
			PuType: puType,
			Time:   n.Time,
			Type:   nodeType,
		})
		g.SetDual(id, n.Dual)
	}

	for i, e := range vc.Edges {
		if e.From < 0 || e.From >= len(g.nodes) || e.To < 0 || e.To >= len(g.nodes) {
			return nil, fmt.Errorf("vessel class %s, edge %d: node index out of range", vc.ID, i)
		}
		g.AddEdge(NodeID(e.From), NodeID(e.To), e.Cost, e.Length)
	}

	if err := g.Validate(); err != nil {
		return nil, pricingerr.Wrap(err, pricingerr.PreconditionViolation,
			fmt.Sprintf("vessel class %s failed validation", vc.ID))
	}
	return g, nil
}

// LoadInstance reads a problem instance from r, building one VesselClassGraph
// per vessel class (§6's "graphs carrying the current dual solution").
func LoadInstance(r io.Reader) (uuid.UUID, []VesselClassGraph, error) {
	var file instanceFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return uuid.Nil, nil, fmt.Errorf("decode instance: %w", err)
	}

	graphs := make([]VesselClassGraph, 0, len(file.VesselClasses))
	for _, vc := range file.VesselClasses {
		g, err := buildGraph(vc)
		if err != nil {
			return uuid.Nil, nil, err
		}
		graphs = append(graphs, VesselClassGraph{ID: vc.ID, Graph: g})
	}

	ref := file.ProblemReference
	if ref == uuid.Nil {
		ref = uuid.New()
	}
	return ref, graphs, nil
}

// LoadInstanceFile opens path and delegates to LoadInstance.
func LoadInstanceFile(path string) (uuid.UUID, []VesselClassGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("open instance file: %w", err)
	}
	defer f.Close()
	return LoadInstance(f)
}

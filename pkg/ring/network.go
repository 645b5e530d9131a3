package ring

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Node is a residue in the interaction network.
//
// Optional energies are nil when the service did not compute them
// (for example Entropy and MIComulative are only set for MSA jobs).
type Node struct {
	ID            string   `json:"NodeId"`                 // Unique node id, e.g. "A:42:_:LYS"
	Residue       string   `json:"Residue"`                // Three-letter residue name
	Position      int      `json:"Position"`               // Sequence position; may be 0 or negative
	Chain         string   `json:"Chain"`                  // Chain identifier
	BfactorCA     float64  `json:"Bfactor_CA"`             // B-factor of the alpha carbon
	Degree        int      `json:"Degree"`                 // Number of incident edges
	Accessibility float64  `json:"Accessibility"`          // Relative solvent accessibility
	X             float64  `json:"x"`                      // Coordinates in Ångström
	Y             float64  `json:"y"`
	Z             float64  `json:"z"`
	Dssp          string   `json:"Dssp"`                   // Secondary structure assigned by DSSP
	PDBFileName   string   `json:"pdbFileName,omitempty"`  // Identifier used by structure viewers
	Tap           *float64 `json:"Tap,omitempty"`          // TAP energy
	Rapdf         *float64 `json:"Rapdf,omitempty"`        // RAPDF energy
	Entropy       *float64 `json:"Entropy,omitempty"`      // Shannon entropy from the MSA
	MIComulative  *float64 `json:"MIcomulative,omitempty"` // Cumulative mutual information
}

// InteractionType is the family of an interaction, the part of
// [Edge.Interaction] before the colon.
type InteractionType string

const (
	HBond     InteractionType = "HBOND"
	VdW       InteractionType = "VDW"
	Ionic     InteractionType = "IONIC"
	PiPiStack InteractionType = "PIPISTACK"
	PiCation  InteractionType = "PICATION"
	SSBond    InteractionType = "SSBOND"
	IAC       InteractionType = "IAC" // generic interatomic contact
)

// Edge is an interaction between two residues.
type Edge struct {
	Source      string   `json:"NodeId1"`               // First residue
	Target      string   `json:"NodeId2"`               // Second residue
	Interaction string   `json:"Interaction"`           // "TYPE:SUBTYPE", e.g. "HBOND:SC_MC"
	Distance    float64  `json:"Distance"`              // Ångström, never negative
	Angle       *float64 `json:"Angle,omitempty"`       // Degrees, where applicable
	Energy      *float64 `json:"Energy,omitempty"`      // kJ/mol, where computed
	Atom1       string   `json:"Atom1,omitempty"`       // Atom on the first residue
	Atom2       string   `json:"Atom2,omitempty"`       // Atom on the second residue
	Donor       string   `json:"Donor,omitempty"`       // Hydrogen bond donor
	Positive    string   `json:"Positive,omitempty"`    // Positive partner of an ionic bond
	Cation      string   `json:"Cation,omitempty"`      // Cation of a π-cation interaction
	Orientation string   `json:"Orientation,omitempty"` // π-stacking orientation
}

// Type returns the interaction family. Families the package does not name
// are returned verbatim.
func (e Edge) Type() InteractionType {
	t, _, _ := strings.Cut(e.Interaction, ":")
	return InteractionType(strings.ToUpper(t))
}

// Subtype returns the part after the colon, e.g. "SC_MC", or "".
func (e Edge) Subtype() string {
	_, s, _ := strings.Cut(e.Interaction, ":")
	return s
}

// Network is the residue interaction network of a completed job.
//
// Networks produced by [ParseNetwork] are edge-closed: every edge endpoint
// names a node of the same network.
type Network struct {
	Job
	Nodes []Node
	Edges []Edge

	index map[string]int
}

// ParseNetwork decodes a result body.
//
// It fails with a MALFORMED_RESPONSE error whose location is a JSON path
// (e.g. "edges[3].NodeId2") when:
//   - the body is not a JSON object
//   - "nodes" or "edges" is missing or not an array
//   - a node has no NodeId, or two nodes share one
//   - an edge endpoint is missing or names an unknown node
//   - an edge has no Interaction or a negative Distance
//
// Unknown fields are ignored. The job id and status are optional in result
// bodies; when present they are validated like in status bodies.
func ParseNetwork(raw []byte) (*Network, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	job, err := decodeJob(obj, raw, false)
	if err != nil {
		return nil, err
	}

	rawNodes, err := requireArray(obj, raw, "nodes")
	if err != nil {
		return nil, err
	}
	rawEdges, err := requireArray(obj, raw, "edges")
	if err != nil {
		return nil, err
	}

	net := &Network{
		Job:   job,
		Nodes: make([]Node, 0, len(rawNodes)),
		Edges: make([]Edge, 0, len(rawEdges)),
		index: make(map[string]int, len(rawNodes)),
	}
	for i, rn := range rawNodes {
		loc := fmt.Sprintf("nodes[%d]", i)
		if err := requireKeys(raw, loc, rn, "NodeId"); err != nil {
			return nil, err
		}
		var n Node
		if err := json.Unmarshal(rn, &n); err != nil {
			return nil, malformed(raw, loc, "%v", err)
		}
		if n.ID == "" {
			return nil, malformed(raw, loc+".NodeId", "missing required field")
		}
		if j, dup := net.index[n.ID]; dup {
			return nil, malformed(raw, loc+".NodeId", "duplicate node %q (also nodes[%d])", n.ID, j)
		}
		net.index[n.ID] = i
		net.Nodes = append(net.Nodes, n)
	}
	for i, re := range rawEdges {
		e, err := decodeEdge(raw, fmt.Sprintf("edges[%d]", i), re, net.index)
		if err != nil {
			return nil, err
		}
		net.Edges = append(net.Edges, e)
	}
	return net, nil
}

type edgeWire struct {
	Edge
	Distance *float64 `json:"Distance"`
}

func decodeEdge(raw []byte, loc string, re json.RawMessage, index map[string]int) (Edge, error) {
	if err := requireKeys(raw, loc, re, "NodeId1", "NodeId2", "Interaction", "Distance"); err != nil {
		return Edge{}, err
	}
	var w edgeWire
	if err := json.Unmarshal(re, &w); err != nil {
		return Edge{}, malformed(raw, loc, "%v", err)
	}
	e := w.Edge
	for _, end := range []struct{ key, id string }{{"NodeId1", e.Source}, {"NodeId2", e.Target}} {
		if end.id == "" {
			return Edge{}, malformed(raw, loc+"."+end.key, "missing required field")
		}
		if _, ok := index[end.id]; !ok {
			return Edge{}, malformed(raw, loc+"."+end.key, "unknown node %q", end.id)
		}
	}
	if e.Interaction == "" {
		return Edge{}, malformed(raw, loc+".Interaction", "missing required field")
	}
	if w.Distance == nil {
		return Edge{}, malformed(raw, loc+".Distance", "missing required field")
	}
	if *w.Distance < 0 {
		return Edge{}, malformed(raw, loc+".Distance", "must not be negative, got %g", *w.Distance)
	}
	e.Distance = *w.Distance
	return e, nil
}

// requireKeys checks that elem is an object holding every key with its exact
// spelling. encoding/json alone would also accept "nodeid" for "NodeId".
func requireKeys(raw []byte, loc string, elem json.RawMessage, keys ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
		return malformed(raw, loc, "expected an object")
	}
	for _, k := range keys {
		if v, ok := obj[k]; !ok || isNull(v) {
			return malformed(raw, loc+"."+k, "missing required field")
		}
	}
	return nil
}

func requireArray(obj map[string]json.RawMessage, raw []byte, key string) ([]json.RawMessage, error) {
	v, ok := obj[key]
	if !ok || isNull(v) {
		return nil, malformed(raw, key, "missing required field")
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(v, &arr); err != nil {
		return nil, malformed(raw, key, "expected an array")
	}
	return arr, nil
}

// Node returns the node with the given id.
func (n *Network) Node(id string) (Node, bool) {
	i, ok := n.lookup()[id]
	if !ok {
		return Node{}, false
	}
	return n.Nodes[i], true
}

// Neighbors returns the sorted ids of all nodes sharing an edge with id.
func (n *Network) Neighbors(id string) []string {
	seen := make(map[string]bool)
	for _, e := range n.Edges {
		switch id {
		case e.Source:
			seen[e.Target] = true
		case e.Target:
			seen[e.Source] = true
		}
	}
	out := make([]string, 0, len(seen))
	for nb := range seen {
		out = append(out, nb)
	}
	sort.Strings(out)
	return out
}

// Chains returns the sorted distinct chain identifiers of all nodes.
func (n *Network) Chains() []string {
	seen := make(map[string]bool)
	var out []string
	for _, nd := range n.Nodes {
		if !seen[nd.Chain] {
			seen[nd.Chain] = true
			out = append(out, nd.Chain)
		}
	}
	sort.Strings(out)
	return out
}

// EdgesByType groups edges by interaction family, preserving edge order
// within each group.
func (n *Network) EdgesByType() map[InteractionType][]Edge {
	out := make(map[InteractionType][]Edge)
	for _, e := range n.Edges {
		out[e.Type()] = append(out[e.Type()], e)
	}
	return out
}

// lookup returns the id index, building it for networks assembled by hand.
func (n *Network) lookup() map[string]int {
	if n.index != nil {
		return n.index
	}
	idx := make(map[string]int, len(n.Nodes))
	for i, nd := range n.Nodes {
		idx[nd.ID] = i
	}
	return idx
}

// MarshalJSON encodes the network in the layout [ParseNetwork] reads, so
// that parsing the output yields an equal network.
func (n *Network) MarshalJSON() ([]byte, error) {
	type networkWire struct {
		JobID    JobID      `json:"_id,omitempty"`
		Status   *JobStatus `json:"status,omitempty"`
		PDBName  string     `json:"pdbName,omitempty"`
		FileName string     `json:"fileName,omitempty"`
		settingsWire
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}
	w := networkWire{
		JobID:        n.JobID,
		PDBName:      n.PDBID,
		FileName:     n.FileName,
		settingsWire: n.Settings.wire(),
		Nodes:        n.Nodes,
		Edges:        n.Edges,
	}
	if n.Status != StatusUnknown {
		st := n.Status
		w.Status = &st
	}
	if w.Nodes == nil {
		w.Nodes = []Node{}
	}
	if w.Edges == nil {
		w.Edges = []Edge{}
	}
	return json.Marshal(w)
}

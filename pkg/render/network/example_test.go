package network_test

import (
	"fmt"

	"github.com/matzehuels/ringapi/pkg/render/network"
	"github.com/matzehuels/ringapi/pkg/ring"
)

func ExampleToDOT() {
	net := &ring.Network{
		Nodes: []ring.Node{
			{ID: "A:1:_:MET", Residue: "MET", Position: 1},
			{ID: "A:5:_:LEU", Residue: "LEU", Position: 5},
		},
		Edges: []ring.Edge{
			{Source: "A:1:_:MET", Target: "A:5:_:LEU", Interaction: "HBOND:MC_MC", Distance: 2.9},
		},
	}

	fmt.Print(network.ToDOT(net, network.Options{ColorByType: true}))
	// Output:
	// graph G {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   node [shape=ellipse, style=filled, fillcolor=white, fontsize=12];
	//   edge [fontsize=9];
	//
	//   "A:1:_:MET" [label="MET1"];
	//   "A:5:_:LEU" [label="LEU5"];
	//
	//   "A:1:_:MET" -- "A:5:_:LEU" [label="HBOND", color="#1f77b4"];
	// }
}

func ExampleRenderSVG() {
	net := &ring.Network{
		Nodes: []ring.Node{{ID: "a"}, {ID: "b"}},
		Edges: []ring.Edge{{Source: "a", Target: "b", Interaction: "VDW:SC_SC", Distance: 3.5}},
	}

	svg, err := network.RenderSVG(network.ToDOT(net, network.Options{}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(len(svg) > 0)
	// Output: true
}

// Package render provides visualization of residue interaction networks.
//
// The [network] subpackage converts a network into Graphviz DOT source and
// renders it to SVG in-process.
//
//	dot := network.ToDOT(net, network.Options{Detailed: true})
//	svg, err := network.RenderSVG(dot)
//
// [network]: github.com/matzehuels/ringapi/pkg/render/network
package render

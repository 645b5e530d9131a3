// Package network renders residue interaction networks as node-link diagrams.
//
// # Overview
//
// Each residue becomes a node and each interaction an undirected edge
// labelled with its family (HBOND, VDW, ...). Several interactions between the
// same residue pair are drawn as parallel edges.
//
// # Usage
//
// Convert a network to DOT, then render to SVG:
//
//	dot := network.ToDOT(net, network.Options{ColorByType: true})
//	svg, err := network.RenderSVG(dot)
//
// # Options
//
//   - Detailed: node labels include position, chain, secondary structure
//     and degree; edge labels include the subtype and distance
//   - ColorByType: edges are colored by interaction family
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package network

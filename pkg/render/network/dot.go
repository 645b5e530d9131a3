package network

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ringapi/pkg/ring"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds residue and interaction attributes to labels.
	// When false, nodes show the residue and position only.
	Detailed bool

	// ColorByType colors edges by interaction family.
	ColorByType bool
}

// typeColors follows the palette of the RING web viewer.
var typeColors = map[ring.InteractionType]string{
	ring.HBond:     "#1f77b4",
	ring.VdW:       "#7f7f7f",
	ring.Ionic:     "#d62728",
	ring.PiPiStack: "#9467bd",
	ring.PiCation:  "#ff7f0e",
	ring.SSBond:    "#bcbd22",
	ring.IAC:       "#c7c7c7",
}

const defaultEdgeColor = "black"

// ToDOT converts a network to Graphviz DOT source.
// Nodes and edges are emitted in network order, so equal networks yield
// identical output.
func ToDOT(net *ring.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=9];\n")
	buf.WriteString("\n")

	for _, n := range net.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, nodeLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range net.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e, opts), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n ring.Node, detailed bool) string {
	label := n.Residue + strconv.Itoa(n.Position)
	if n.Residue == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}
	parts := []string{
		"chain: " + n.Chain,
		"dssp: " + n.Dssp,
		"degree: " + strconv.Itoa(n.Degree),
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func edgeAttrs(e ring.Edge, opts Options) []string {
	label := string(e.Type())
	if opts.Detailed {
		if sub := e.Subtype(); sub != "" {
			label += " " + sub
		}
		label += fmt.Sprintf("\n%.2f Å", e.Distance)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if opts.ColorByType {
		color, ok := typeColors[e.Type()]
		if !ok {
			color = defaultEdgeColor
		}
		attrs = append(attrs, fmt.Sprintf("color=%q", color))
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return fitSVG(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([-0-9.]+)\s+([-0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitSVG replaces Graphviz's fixed point size on the root element with a
// fluid width. Residue networks are wide and flat, so the drawing keeps its
// aspect ratio and is capped at its natural width instead of being stretched.
func fitSVG(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" `+
		`viewBox="%s %s %s %s" width="100%%" style="max-width:%.0fpx" preserveAspectRatio="xMidYMid meet">`,
		match[1], match[2], match[3], match[4], w)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vfxtool/pkg/render"
	"github.com/matzehuels/vfxtool/pkg/vfx"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists every property value in the node labels.
	// When false, only the node index and type are shown.
	Detailed bool

	// Variations draws each variation pair as a dashed edge from the
	// replaced node to its replacement.
	Variations bool

	// Describe formats property values in detailed labels. Defaults to
	// [vfx.Value.String]; pass a codec's Describe to show dictionary text.
	Describe func(vfx.Value) string
}

// ToDOT converts an effect graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Nodes are named by their index so that documents holding several nodes
// of one type render as distinct boxes.
func ToDOT(doc *vfx.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, n := range doc.Nodes {
		label := fmtLabel(i, n, opts)
		fmt.Fprintf(&buf, "  %s [label=%q];\n", nodeID(i), label)
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(int(e.Source)), nodeID(int(e.Target)))
	}

	if opts.Variations {
		for _, v := range doc.Variations {
			for _, p := range v.Pairs {
				fmt.Fprintf(&buf, "  %s -> %s [style=dashed, color=grey, label=%q];\n",
					nodeID(int(p.Target)), nodeID(int(p.New)), strconv.FormatUint(uint64(v.Name), 10))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string {
	return "n" + strconv.Itoa(i)
}

func fmtLabel(i int, n *vfx.Node, opts Options) string {
	head := fmt.Sprintf("#%d %s", i, n.Def.Name())
	if !opts.Detailed {
		return head
	}

	describe := opts.Describe
	if describe == nil {
		describe = vfx.Value.String
	}
	lines := []string{head}
	for j, vals := range n.Values {
		parts := make([]string, len(vals))
		for k, v := range vals {
			parts[k] = describe(v)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", n.Def.Property(j).Name, strings.Join(parts, ", ")))
	}
	return strings.Join(lines, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

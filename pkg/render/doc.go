// Package render converts rendered effect graph diagrams between formats.
//
// The [nodelink] subpackage draws a document as a Graphviz diagram and
// returns SVG. [ToPDF] and [ToPNG] convert that SVG with the external
// rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(doc, nodelink.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/vfxtool/pkg/render/nodelink
package render

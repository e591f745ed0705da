package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vfxtool/pkg/convert"
	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/render/nodelink"
	"github.com/matzehuels/vfxtool/pkg/vfx"
)

// Graph output formats.
const (
	graphDOT = "dot"
	graphSVG = "svg"
	graphPDF = "pdf"
	graphPNG = "png"
)

type graphOpts struct {
	output     string
	format     string
	detailed   bool
	variations bool
	scale      float64
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Draw the node graph of a .vfx or XML file",
		Long: `Draw an effect graph as a node-link diagram.

Each node becomes a box labelled with its index and type; each edge an
arrow from source to target. The format is taken from --format, or from
the output extension, and defaults to SVG.`,
		Example: `  vfxtool graph effect.vfx -o effect.svg
  vfxtool graph effect.vfx.xml --detailed --variations -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, pdf, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list property values in node labels")
	cmd.Flags().BoolVar(&opts.variations, "variations", false, "draw variation pairs as dashed edges")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, path string, opts graphOpts) error {
	format, err := graphFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	out := opts.output
	if out == "" {
		out = graphOutput(path, format)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	codec, err := c.loadCodec(ctx, cfg)
	if err != nil {
		return err
	}
	doc, err := convert.ReadFile(codec, path)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(doc, nodelink.Options{
		Detailed:   opts.detailed,
		Variations: opts.variations,
		Describe: func(v vfx.Value) string {
			return codec.Describe(doc.Version, v)
		},
	})

	data, err := renderGraph(ctx, dot, format, opts.scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Drew %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	printFile(out)
	return nil
}

func renderGraph(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case graphDOT:
		return []byte(dot), nil
	case graphSVG:
		return nodelink.RenderSVG(ctx, dot)
	case graphPDF:
		return nodelink.RenderPDF(ctx, dot)
	case graphPNG:
		return nodelink.RenderPNG(ctx, dot, scale)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown graph format %q", format)
}

// graphFormat picks the format from the flag, then the output extension,
// then SVG.
func graphFormat(flag, output string) (string, error) {
	f := strings.ToLower(flag)
	if f == "" && output != "" {
		f = strings.ToLower(strings.TrimPrefix(filepath.Ext(output), "."))
	}
	switch f {
	case "":
		return graphSVG, nil
	case graphDOT, graphSVG, graphPDF, graphPNG:
		return f, nil
	case "gv":
		return graphDOT, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown graph format %q (want dot, svg, pdf or png)", f)
}

// graphOutput derives the output path next to the input.
func graphOutput(input, format string) string {
	base := input
	if strings.EqualFold(filepath.Ext(base), ".xml") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + "." + format
}

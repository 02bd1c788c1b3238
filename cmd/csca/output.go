package main

import (
	"fmt"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"csca/internal/config"
	"csca/internal/core"
	"csca/internal/render"
	"csca/internal/sims/recurrence"
)

func newRenderCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render one image to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf := renderOnce(c.cfg)
			if err := writePNG(out, buf); err != nil {
				return err
			}
			c.log.Info("image written", "path", out, "width", buf.W, "height", buf.H)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "csca.png", "PNG file to write")
	return cmd
}

func newStatsCmd(c *cli) *cobra.Command {
	var height int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "plot the mean gray level of every generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeStats(cmd.OutOrStdout(), renderOnce(c.cfg), height)
		},
	}
	cmd.Flags().IntVar(&height, "plot-height", 12, "graph height in rows")
	return cmd
}

func renderOnce(cfg *config.Config) *core.PixelBuffer {
	return recurrence.Render(cfg.Initial(), cfg.Canvas.Width, cfg.Canvas.Height, core.NewSeeder(cfg.Seed).Next())
}

func writePNG(path string, buf *core.PixelBuffer) error {
	if err := imgio.Save(path, buf.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeStats plots the per-row mean gray level, one point per generation.
func writeStats(w io.Writer, buf *core.PixelBuffer, height int) error {
	means := render.RowMeans(buf)
	if len(means) == 0 {
		_, err := fmt.Fprintln(w, "empty canvas")
		return err
	}
	if height < 1 {
		height = 1
	}
	graph := asciigraph.Plot(means,
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("mean gray level per generation (%dx%d)", buf.W, buf.H)),
	)
	_, err := fmt.Fprintln(w, graph)
	return err
}

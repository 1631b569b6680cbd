package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/spritekit/raster"
	"github.com/milk9111/spritekit/report"
	"github.com/spf13/cobra"
)

func readImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", raster.ErrDecode, err)
	}
	defer f.Close()
	img, err := raster.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func writeImage(path string, img image.Image) error {
	b, err := raster.EncodePNG(img)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

func defaultOutput(src, suffix string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + suffix + ".png"
}

func newSliceCommand(ctx *commandContext) *cobra.Command {
	var frames int
	var outDir string

	cmd := &cobra.Command{
		Use:   "slice <strip.png>",
		Short: "Cut a horizontal strip into frame files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			strip, err := readImage(args[0])
			if err != nil {
				return err
			}
			out, err := raster.Slice(strip, frames)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "_frames"
			}

			fw := raster.FrameWidth(strip.Bounds().Dx(), frames)
			if fw == 0 {
				return fmt.Errorf("slice: %d frames of a %d px strip are zero pixels wide", frames, strip.Bounds().Dx())
			}
			if rem := strip.Bounds().Dx() - fw*frames; rem > 0 {
				logger.Warn("strip width not divisible by frame count; trailing columns dropped", "columns", rem)
			}

			rep := report.New(filepath.Base(args[0]), report.Right("Frame"), report.Right("X"), report.Right("Size"), report.Left("File"))
			for i, f := range out {
				name := filepath.Join(outDir, fmt.Sprintf("frame_%03d.png", i))
				if err := writeImage(name, f); err != nil {
					return err
				}
				r := raster.FrameRect(i, fw, strip.Bounds().Dy())
				rep.Add(i, r.Min.X, fmt.Sprintf("%dx%d", r.Dx(), r.Dy()), name)
			}
			logger.Info("strip sliced", "source", args[0], "frames", len(out), "frame_width", fw)
			rep.Summary("%d frames of %d px, %d trailing columns dropped", len(out), fw, strip.Bounds().Dx()-fw*frames)
			return rep.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 1, "Number of frames in the strip")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory")
	return cmd
}

func newStitchCommand(ctx *commandContext) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "stitch <frame.png>...",
		Short: "Join frame files left to right into one strip",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("stitch: --out is required")
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			frames := make([]*image.RGBA, 0, len(args))
			for _, p := range args {
				img, err := readImage(p)
				if err != nil {
					return err
				}
				if len(frames) > 0 && img.Bounds().Size() != frames[0].Bounds().Size() {
					logger.Warn("frame size differs from the first frame; clipping", "file", p, "size", img.Bounds().Size().String())
				}
				frames = append(frames, img)
			}
			strip, err := raster.Stitch(frames)
			if err != nil {
				return err
			}
			if err := writeImage(out, strip); err != nil {
				return err
			}
			logger.Info("strip stitched", "frames", len(frames), "out", out, "width", strip.Bounds().Dx())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output strip path")
	return cmd
}

func newPaletteCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "palette <image.png>",
		Short: "List the distinct opaque colors of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureLogger(); err != nil {
				return err
			}
			img, err := readImage(args[0])
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = raster.MaxPaletteColors
			}
			colors := raster.ExtractPalette(img, limit)
			rep := report.New(filepath.Base(args[0]), report.Right("#"), report.Left("Hex"), report.Left("RGB"))
			for i, c := range colors {
				rep.Add(i, fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B))
			}
			rep.Summary("%d of at most %d colors", len(colors), limit)
			return rep.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&limit, "limit", raster.MaxPaletteColors, "Maximum number of colors")
	return cmd
}

func newUpscaleCommand(ctx *commandContext) *cobra.Command {
	var factor int
	var out string

	cmd := &cobra.Command{
		Use:   "upscale <image.png>",
		Short: "Enlarge an image with nearest-neighbor sampling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			img, err := readImage(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = defaultOutput(args[0], fmt.Sprintf("_x%d", factor))
			}
			if err := writeImage(out, raster.Upscale(img, factor)); err != nil {
				return err
			}
			logger.Info("image upscaled", "factor", factor, "out", out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&factor, "factor", "f", 4, "Integer scale factor")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path")
	return cmd
}

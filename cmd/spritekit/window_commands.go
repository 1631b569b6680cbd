package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/milk9111/spritekit/catalog"
	"github.com/milk9111/spritekit/config"
	"github.com/milk9111/spritekit/editor"
	"github.com/milk9111/spritekit/loop"
	"github.com/milk9111/spritekit/session"
	"github.com/spf13/cobra"
)

// assetFlags pick the bitmap an editor window opens: a file argument or a
// catalog entry.
type assetFlags struct {
	catalogPath string
	assetID     string
	out         string
}

func (f *assetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.catalogPath, "catalog", "", "Catalog manifest (defaults to the configured catalog)")
	cmd.Flags().StringVar(&f.assetID, "asset", "", "Catalog entry id to open instead of a file")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Where to write the saved bitmap (defaults to the source file)")
}

// open resolves the record and the path a save is written to.
func (f *assetFlags) open(cfg *config.Config, args []string, frames int) (session.Record, string, error) {
	if f.assetID != "" {
		path := f.catalogPath
		if path == "" {
			path = cfg.Catalog
		}
		if path == "" {
			return session.Record{}, "", errors.New("--asset needs a catalog (--catalog or the catalog setting)")
		}
		cat, err := catalog.Load(path)
		if err != nil {
			return session.Record{}, "", err
		}
		e, err := cat.Entry(f.assetID)
		if err != nil {
			return session.Record{}, "", err
		}
		if frames < 1 {
			frames = e.Frames
		}
		src := cat.FilePath(e)
		rec, err := loadRecordFile(e.ID, src, frames)
		return rec, f.target(src), err
	}

	if len(args) != 1 {
		return session.Record{}, "", errors.New("expected one image path or --asset")
	}
	if frames < 1 {
		frames = 1
	}
	rec, err := loadRecordFile(args[0], args[0], frames)
	return rec, f.target(args[0]), err
}

func (f *assetFlags) target(src string) string {
	if f.out != "" {
		return f.out
	}
	return src
}

func loadRecordFile(id, path string, frames int) (session.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return session.Record{}, fmt.Errorf("session: load %s: %w", id, err)
	}
	defer file.Close()
	return session.LoadRecord(id, file, frames)
}

// fileSaver writes saved bitmaps to one path.
func fileSaver(path string, logger *slog.Logger) session.SaveFunc {
	return func(assetID string, encoded []byte, frameCount *int) {
		if err := writeFile(path, encoded); err != nil {
			logger.Error("write saved bitmap failed", "asset", assetID, "path", path, "error", err)
			return
		}
		attrs := []any{"asset", assetID, "path", path}
		if frameCount != nil {
			attrs = append(attrs, "frames", *frameCount)
		}
		logger.Info("bitmap saved", attrs...)
	}
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var flags assetFlags

	cmd := &cobra.Command{
		Use:   "edit [image.png]",
		Short: "Open the pixel editor on an image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			rec, target, err := flags.open(cfg, args, 1)
			if err != nil {
				logger.Error("pixel editor cannot open", "error", err)
				return err
			}

			manager := session.NewManager(loop.NewDriver(), fileSaver(target, logger), logger)
			s, err := manager.OpenPixel(rec, editor.Options{Zoom: cfg.Editor.Zoom})
			if err != nil {
				return err
			}
			v, err := newPixelView(manager, s.Editor, cfg.Window.Width, cfg.Window.Height, logger)
			if err != nil {
				return err
			}
			return runWindow(cfg, "pixel editor", newHostGame(cfg, manager, v, logger))
		},
	}
	flags.register(cmd)
	return cmd
}

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var flags assetFlags
	var frames int

	cmd := &cobra.Command{
		Use:   "timeline [strip.png]",
		Short: "Open the frame timeline on a sprite strip",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			rec, target, err := flags.open(cfg, args, frames)
			if err != nil {
				logger.Error("timeline cannot open", "error", err)
				return err
			}

			manager := session.NewManager(loop.NewDriver(), fileSaver(target, logger), logger)
			s, err := manager.OpenTimeline(rec, cfg.Editor.FPS)
			if err != nil {
				return err
			}
			v, err := newTimelineView(manager, s, cfg.Window.Width, cfg.Window.Height, logger)
			if err != nil {
				return err
			}
			return runWindow(cfg, "timeline", newHostGame(cfg, manager, v, logger))
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&frames, "frames", "n", 0, "Frame count of the strip (defaults to the catalog entry or 1)")
	return cmd
}

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var catalogPath string
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run the platformer preview over the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if catalogPath == "" {
				catalogPath = cfg.Catalog
			}
			if catalogPath == "" {
				return errors.New("preview needs a catalog (--catalog or the catalog setting)")
			}
			if scriptPath == "" {
				scriptPath = cfg.Preview.MatchFile
			}

			manager := session.NewManager(loop.NewDriver(), nil, logger)
			v, err := newPreviewView(manager, cfg, catalogPath, scriptPath, logger)
			if err != nil {
				return err
			}
			defer v.close()
			return runWindow(cfg, "preview", newHostGame(cfg, manager, v, logger))
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog manifest (defaults to the configured catalog)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Tengo match script for slot binding")
	return cmd
}

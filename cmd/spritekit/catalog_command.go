package main

import (
	"errors"
	"fmt"

	"github.com/milk9111/spritekit/binding"
	"github.com/milk9111/spritekit/catalog"
	"github.com/milk9111/spritekit/report"
	"github.com/spf13/cobra"
)

func newBindCommand(ctx *commandContext) *cobra.Command {
	var catalogPath string
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Show which catalog entries fill each preview slot",
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
				return errors.New("bind needs a catalog (--catalog or the catalog setting)")
			}
			if scriptPath == "" {
				scriptPath = cfg.Preview.MatchFile
			}

			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			b, err := resolveBindings(cat, scriptPath, logger)
			if err != nil {
				return err
			}

			rep := report.New(catalogPath, report.Left("Slot"), report.Left("Category"), report.Left("Source"), report.Right("Frames"), report.Right("Size"))
			bound := 0
			for _, slot := range binding.Slots {
				res, ok := b.Get(slot)
				if !ok {
					rep.Add(string(slot), binding.Category(slot), "-", "-", "-")
					continue
				}
				bound++
				size := res.Image.Bounds().Size()
				rep.Add(string(slot), binding.Category(slot), res.Source, res.FrameCount(), fmt.Sprintf("%dx%d", size.X, size.Y))
			}
			rep.Summary("%d of %d slots bound", bound, len(binding.Slots))
			return rep.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog manifest (defaults to the configured catalog)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Tengo match script for slot binding")
	return cmd
}

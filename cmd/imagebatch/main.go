// Command imagebatch runs a batch over an input directory and writes the
// selected artifacts to an output directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/labimaging/imagebatch/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	opts := batchOptions{}
	var cfgPath string

	root := &cobra.Command{
		Use:          "imagebatch",
		Short:        "Batch-normalize image sizes, build contact sheets, and export artifacts",
		Long:         `imagebatch resizes a directory of images to uniform dimensions, optionally composes a grid contact sheet, and exports a ZIP archive, CSV metadata table, sheet PNG, and PPTX deck.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			return runBatch(cmd.Context(), cfg, opts)
		},
	}

	root.Flags().StringVarP(&cfgPath, "config", "c", "", "TOML config file")
	root.Flags().StringVarP(&opts.inputDir, "input", "i", ".", "directory of input images")
	root.Flags().StringVarP(&opts.outputDir, "output", "o", "out", "directory for output artifacts")
	root.Flags().StringVar(&opts.canvasSize, "canvas", "", `fixed canvas "WxH" (switches sizing to canvas mode)`)
	root.Flags().IntVar(&opts.targetPixels, "target", 0, "edge-mode target pixels (overrides config)")
	root.Flags().IntVar(&opts.columns, "columns", 0, "contact-sheet columns (overrides config)")
	root.Flags().BoolVar(&opts.slides, "slides", false, "also export a PPTX deck")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return root.ExecuteContext(ctx)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"varbin-core/binning"
	"varbin/internal/cli"
	"varbin/internal/output"
	"varbin/internal/pipeline"
	"varbin/internal/pretty"
	"varbin/internal/variants"
	"varbin/internal/version"
	"varbin/internal/writers"
)

func runBin(cmd *cobra.Command, args []string, g *cli.Global, o *cli.Options, noHeader *bool) error {
	if o.Version {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "varbin version %s\n", version.Version)
		return err
	}

	logger, _, err := setup(cmd, g, o)
	if err != nil {
		return err
	}
	if err := cli.AfterParse(o, noHeader, args); err != nil {
		return usageError(err)
	}
	format, _ := variants.ParseFormat(o.Format)

	threads := o.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	ctx := cmd.Context()
	tab, err := variants.LoadAll(ctx, o.Files, variants.Options{Format: format, Threads: threads, Logger: logger})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return exitWith(ExitCanceled)
		}
		return usageError(err)
	}

	selected := o.Chromosome
	if selected == "" {
		if labels := tab.Labels(); len(labels) > 0 {
			selected = labels[0]
			logger.Info("no --chromosome given, using first label", "chromosome", selected)
		}
	}

	start := time.Now()
	counts, err := pipeline.Bin(ctx, pipeline.Config{Threads: threads, MaxBins: o.MaxBins, Logger: logger},
		tab.Chromosomes, tab.Positions, selected, o.BinSize)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		return exitWith(ExitCanceled)
	case errors.Is(err, binning.ErrInvalidBinSize), errors.Is(err, binning.ErrBinCountOverflow):
		return usageError(err)
	default:
		return runtimeError(err)
	}

	h := output.NewHistogram(selected, o.BinSize, counts)
	logger.Info("histogram computed", "chromosome", selected, "bin_size", o.BinSize, "bins", len(counts), "variants", h.Total, "elapsed", time.Since(start))

	popt := pretty.DefaultOptions
	popt.MaxBars = o.MaxBars
	if popt.MaxBars == 0 && tab.Len() > pretty.LargeDatasetThreshold {
		popt.MaxBars = pretty.DefaultMaxBars
	}
	wopt := writers.Options{Header: o.Header, NonZero: o.NonZero, Pretty: o.Pretty, PrettyOptions: popt}
	if err := writers.IgnoreBrokenPipe(writers.Write(o.Output, cmd.OutOrStdout(), h, wopt)); err != nil {
		return runtimeError(err)
	}

	if h.Empty() {
		logger.Warn("no variants matched", "chromosome", selected, "records", tab.Len())
		if o.NoMatchExitCode != ExitOK {
			return exitWith(o.NoMatchExitCode)
		}
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"varbin/internal/cli"
	"varbin/internal/cliutil"
	"varbin/internal/output"
	"varbin/internal/variants"
	"varbin/pkg/api"
)

func newChromosomesCmd(g *cli.Global) *cobra.Command {
	var (
		formatFlag string
		outFormat  string
		threads    int
	)
	cmd := &cobra.Command{
		Use:   "chromosomes [flags] FILE...",
		Short: "List chromosome labels with variant counts, in first-seen order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _, err := setup(cmd, g, nil)
			if err != nil {
				return err
			}
			format, err := variants.ParseFormat(formatFlag)
			if err != nil {
				return usageError(err)
			}
			if outFormat != output.FormatText && outFormat != output.FormatJSON {
				return usageError(fmt.Errorf("invalid --output %q (want text|json)", outFormat))
			}
			files, err := cliutil.ExpandPositionals(args)
			if err != nil {
				return usageError(err)
			}
			if threads <= 0 {
				threads = runtime.NumCPU()
			}

			tab, err := variants.LoadAll(cmd.Context(), files, variants.Options{Format: format, Threads: threads, Logger: logger})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return exitWith(ExitCanceled)
				}
				return usageError(err)
			}

			counts := tab.Counts()
			w := cmd.OutOrStdout()
			if outFormat == output.FormatJSON {
				rows := make([]api.ChromosomeCountV1, len(counts))
				for i, c := range counts {
					rows[i] = api.ChromosomeCountV1{Chromosome: c.Chromosome, Variants: c.Count}
				}
				return jsonOut(w, rows)
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "CHROMOSOME\tVARIANTS")
			for _, c := range counts {
				_, _ = fmt.Fprintf(tw, "%s\t%d\n", c.Chromosome, c.Count)
			}
			return tw.Flush()
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&formatFlag, "format", "auto", "input format: auto | csv | tsv | vcf | bim | xlsx")
	fs.StringVarP(&outFormat, "output", "o", output.FormatText, "output: text | json")
	fs.IntVarP(&threads, "threads", "t", 0, "files loaded concurrently (0 = all CPUs)")
	return cmd
}

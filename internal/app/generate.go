package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"varbin/internal/generate"
)

func newGenerateCmd() *cobra.Command {
	o := generate.DefaultOptions
	var outPath string
	cmd := &cobra.Command{
		Use:   "generate [flags]",
		Short: "Write a seeded synthetic variant CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := o.Validate(); err != nil {
				return usageError(fmt.Errorf("generate: %w", err))
			}
			var w io.Writer = cmd.OutOrStdout()
			if outPath != "-" {
				fh, err := os.Create(outPath)
				if err != nil {
					return runtimeError(err)
				}
				defer func() {
					if cerr := fh.Close(); cerr != nil && err == nil {
						err = runtimeError(cerr)
					}
				}()
				w = fh
			}
			if err := generate.Generate(w, o); err != nil {
				return runtimeError(fmt.Errorf("generate: %w", err))
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "random seed")
	fs.IntVar(&o.Rows, "rows", o.Rows, "number of variants")
	fs.IntVar(&o.Chromosomes, "chromosomes", o.Chromosomes, "number of labels (chr1..chrN)")
	fs.Uint32Var(&o.MaxPosition, "max-position", o.MaxPosition, "largest position drawn")
	fs.StringVar(&outPath, "out", "-", "output file ('-' = stdout)")
	return cmd
}

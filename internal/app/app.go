// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"varbin/internal/cli"
	"varbin/internal/config"
	"varbin/internal/logging"
	"varbin/internal/writers"
)

// RunContext executes the varbin command line and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	root := newRootCmd()
	root.SetOut(outw)
	root.SetErr(stderr)
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	root.SetArgs(argv)

	err := root.ExecuteContext(parent)
	code := ExitOK
	if err != nil {
		var ee *exitError
		switch {
		case errors.As(err, &ee):
			code = ee.code
			if ee.err != nil {
				_, _ = fmt.Fprintln(stderr, "error:", ee.err)
			}
		case errors.Is(err, context.Canceled):
			code = ExitCanceled
		default:
			_, _ = fmt.Fprintln(stderr, "error:", err)
			code = ExitUsage
		}
	}

	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		_, _ = fmt.Fprintln(stderr, e)
		if code == ExitOK {
			code = ExitRuntime
		}
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newRootCmd() *cobra.Command {
	var (
		g    cli.Global
		opts cli.Options
	)
	root := &cobra.Command{
		Use:   "varbin [flags] FILE...",
		Short: "Fixed-width positional histogram of variants on one chromosome",
		Long: `varbin counts the variants of one chromosome into fixed-width
coordinate bins. Bin k covers [k*bin-size, (k+1)*bin-size); the histogram
ends at the bin holding the largest matching position.

Inputs are CSV/TSV (chromosome,position), VCF, PLINK BIM or XLSX tables,
optionally gzip/zstd/xz compressed. '-' reads stdin; globs such as
'data/**/*.vcf.gz' are expanded.`,
		Example: `  varbin -c chr1 -b 100000 variants.csv
  varbin -c chr2 -o json calls/*.vcf.gz
  varbin -c chrX --pretty --max-bars 60 cohort.bim`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	cli.RegisterGlobal(root.PersistentFlags(), &g)
	noHeader := cli.Register(root.Flags(), &opts)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runBin(cmd, args, &g, &opts, noHeader)
	}

	root.AddCommand(
		newChromosomesCmd(&g),
		newGenerateCmd(),
		newConfigCmd(&g),
	)
	return root
}

// setup loads the config file, applies it under explicit flags, and builds
// the command's logger. o may be nil for subcommands without binning flags.
func setup(cmd *cobra.Command, g *cli.Global, o *cli.Options) (*slog.Logger, config.Config, error) {
	cfg, path, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, cfg, usageError(err)
	}
	fs := cmd.Flags()
	if o == nil {
		o = &cli.Options{}
	}
	cli.ApplyConfig(fs, o, g, cfg)
	if err := cli.ValidateGlobal(g); err != nil {
		return nil, cfg, usageError(err)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), g)
	if err != nil {
		return nil, cfg, usageError(err)
	}
	if path != "" {
		logger.Debug("config loaded", "path", path)
	}
	return logger, cfg, nil
}

func newLogger(w io.Writer, g *cli.Global) (*slog.Logger, error) {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}
	if g.Quiet {
		level = slog.LevelError
	}
	return logging.New(w, level, g.LogFormat)
}

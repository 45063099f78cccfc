// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"varbin/internal/cliutil"
	"varbin/internal/config"
	"varbin/internal/logging"
	"varbin/internal/output"
	"varbin/internal/variants"
)

// Global holds flags shared by every subcommand.
type Global struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Quiet      bool
}

// Options holds the flags and arguments of the binning command.
type Options struct {
	// Input
	Files  []string
	Format string

	// Binning
	Chromosome string
	BinSize    uint32
	MaxBins    int
	Threads    int

	// Output
	Output          string
	Pretty          bool
	MaxBars         int
	NonZero         bool
	Header          bool // true unless --no-header
	NoMatchExitCode int

	Version bool
}

// RegisterGlobal wires the persistent flags onto fs.
func RegisterGlobal(fs *pflag.FlagSet, g *Global) {
	fs.StringVar(&g.ConfigPath, "config", "", "YAML defaults file (default $"+config.EnvPath+" or user config dir)")
	fs.StringVar(&g.LogLevel, "log-level", config.Defaults.LogLevel, "log level: debug | info | warn | error")
	fs.StringVar(&g.LogFormat, "log-format", "text", "log format: text | json")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "only log errors")
}

// Register wires the binning flags onto fs and returns a pointer to the
// "no-header" bool; AfterParse turns it into Options.Header.
func Register(fs *pflag.FlagSet, o *Options) *bool {
	d := config.Defaults

	fs.StringVar(&o.Format, "format", "auto", "input format: auto | csv | tsv | vcf | bim | xlsx")

	fs.StringVarP(&o.Chromosome, "chromosome", "c", "", "chromosome label to bin, exact match (default: first label seen)")
	fs.Uint32VarP(&o.BinSize, "bin-size", "b", d.BinSize, "bin width in coordinate units")
	fs.IntVar(&o.MaxBins, "max-bins", d.MaxBins, "refuse histograms wider than this (0 = built-in limit)")
	fs.IntVarP(&o.Threads, "threads", "t", d.Threads, "worker threads (0 = all CPUs)")

	fs.StringVarP(&o.Output, "output", "o", d.Output, "output: text | json | jsonl | msgpack")
	fs.BoolVar(&o.Pretty, "pretty", false, "append ASCII bar chart (text)")
	fs.IntVar(&o.MaxBars, "max-bars", d.MaxBars, "aggregate the bar chart to at most N bars (0 = auto)")
	fs.BoolVar(&o.NonZero, "nonzero", false, "omit empty bins from text/jsonl rows")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", d.NoMatchExitCode, "exit code when no variant matches")

	fs.BoolVarP(&o.Version, "version", "v", false, "print version and exit")
	return &noHeader
}

// ApplyConfig copies config values into o and g for every flag the user did
// not set explicitly.
func ApplyConfig(fs *pflag.FlagSet, o *Options, g *Global, c config.Config) {
	set := func(name string, apply func()) {
		if f := fs.Lookup(name); f != nil && !f.Changed {
			apply()
		}
	}
	set("bin-size", func() { o.BinSize = c.BinSize })
	set("output", func() { o.Output = c.Output })
	set("max-bins", func() { o.MaxBins = c.MaxBins })
	set("threads", func() { o.Threads = c.Threads })
	set("max-bars", func() { o.MaxBars = c.MaxBars })
	set("no-match-exit-code", func() { o.NoMatchExitCode = c.NoMatchExitCode })
	set("log-level", func() { g.LogLevel = c.LogLevel })
}

// AfterParse finalizes header, expands positional globs, then validates.
func AfterParse(o *Options, noHeader *bool, posArgs []string) error {
	o.Header = !*noHeader
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		o.Files = append(o.Files, exp...)
	}
	return Validate(o)
}

// Validate applies the binning command's invariants.
func Validate(o *Options) error {
	if len(o.Files) == 0 {
		return errors.New("at least one input file is required ('-' for stdin)")
	}
	if _, err := variants.ParseFormat(o.Format); err != nil {
		return err
	}
	if o.BinSize == 0 {
		return errors.New("--bin-size must be > 0")
	}
	if o.MaxBins < 0 {
		return errors.New("--max-bins must be ≥ 0")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.MaxBars < 0 {
		return errors.New("--max-bars must be ≥ 0")
	}
	switch o.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL, output.FormatMsgpack:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}

// ValidateGlobal checks the logging flags.
func ValidateGlobal(g *Global) error {
	if _, err := logging.ParseLevel(g.LogLevel); err != nil {
		return err
	}
	switch g.LogFormat {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("invalid --log-format %q", g.LogFormat)
}

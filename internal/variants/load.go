// internal/variants/load.go
package variants

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"varbin/internal/logging"
)

// Options controls how input files are read.
type Options struct {
	Format  Format // "" = detect per file
	Threads int    // files loaded concurrently (<=0 = 1)
	Logger  *slog.Logger
}

// Load reads one variant table. path "-" reads stdin.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	format := opts.Format
	if format == "" {
		format = DetectFormat(path)
	}

	t := &Table{}
	if format == FormatXLSX {
		if err := readXLSX(path, t); err != nil {
			return nil, err
		}
		return t, nil
	}

	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	r := ctxReader{ctx: ctx, r: rc}

	switch format {
	case FormatCSV:
		err = readDelimited(path, r, ',', t)
	case FormatTSV:
		err = readDelimited(path, r, '\t', t)
	case FormatVCF:
		err = readVCF(path, r, t)
	case FormatBIM:
		err = readBIM(path, r, t)
	default:
		err = fmt.Errorf("%s: unsupported format %q", path, format)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// LoadAll loads paths concurrently and concatenates them in argument order.
// The first error cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string, opts Options) (*Table, error) {
	logger := logging.Default(opts.Logger).With("component", "variants")
	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	parts := make([]*Table, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, p := range paths {
		g.Go(func() error {
			t, err := Load(gctx, p, opts)
			if err != nil {
				return err
			}
			logger.Debug("loaded variants", "path", p, "records", t.Len())
			parts[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	out := &Table{}
	for _, t := range parts {
		out.Extend(t)
	}
	logger.Info("inputs loaded", "files", len(paths), "records", out.Len())
	return out, nil
}

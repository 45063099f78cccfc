// internal/variants/open.go
package variants

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// multiReadCloser closes every underlying closer, innermost first.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader opens path ("-" = stdin) and transparently decompresses gzip
// (including BGZF), zstd and xz, detected by magic bytes.
func openReader(path string) (io.ReadCloser, error) {
	var src io.ReadCloser
	if path == "-" {
		src = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}

	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(len(xzMagic))

	switch {
	case bytes.HasPrefix(sig, gzipMagic):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("%s: gzip: %w", path, err)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, src}}, nil

	case bytes.HasPrefix(sig, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("%s: zstd: %w", path, err)
		}
		zr := dec.IOReadCloser()
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zr, src}}, nil

	case bytes.HasPrefix(sig, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("%s: xz: %w", path, err)
		}
		return &multiReadCloser{Reader: xr, closers: []io.Closer{src}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{src}}, nil
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

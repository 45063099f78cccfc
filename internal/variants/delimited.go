// internal/variants/delimited.go
package variants

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	chromosomeHeaders = []string{"chromosome", "chrom", "chr", "#chrom", "contig"}
	positionHeaders   = []string{"position", "pos", "coordinate", "start"}
)

type columns struct{ chr, pos int }

var defaultColumns = columns{chr: 0, pos: 1}

// rowFunc yields one record and its 1-based line; io.EOF ends the stream.
type rowFunc func() (rec []string, line int, err error)

func parsePosition(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("position %q out of range (max %d)", s, uint32(1<<32-1))
		}
		return 0, fmt.Errorf("bad position %q", s)
	}
	return uint32(v), nil
}

func indexOf(rec []string, names []string) int {
	for i, f := range rec {
		f = strings.ToLower(strings.TrimSpace(f))
		for _, n := range names {
			if f == n {
				return i
			}
		}
	}
	return -1
}

// headerColumns reports whether rec looks like a header row and, if so,
// which columns hold the chromosome and position. Unnamed columns count as a
// header only when the position field holds no digits.
func headerColumns(rec []string) (columns, bool) {
	c, p := indexOf(rec, chromosomeHeaders), indexOf(rec, positionHeaders)
	if c >= 0 && p >= 0 {
		return columns{chr: c, pos: p}, true
	}
	if len(rec) > defaultColumns.pos && !hasDigit(rec[defaultColumns.pos]) {
		return defaultColumns, true
	}
	return defaultColumns, false
}

// hasDigit reports whether s contains an ASCII digit. A first-row position
// field with digits is data, so "5x" is a bad position rather than a header.
func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// readRows appends every data row to t. The first row is treated as a header
// when it names the columns or its position field is not a number.
func readRows(path string, next rowFunc, t *Table) error {
	cols := defaultColumns
	first := true
	for {
		rec, line, err := next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if blank(rec) {
			continue
		}
		if first {
			first = false
			if c, ok := headerColumns(rec); ok {
				cols = c
				continue
			}
		}
		need := max(cols.chr, cols.pos) + 1
		if len(rec) < need {
			return fmt.Errorf("%s:%d: expected at least %d fields, got %d", path, line, need, len(rec))
		}
		pos, err := parsePosition(rec[cols.pos])
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
		t.Append(strings.TrimSpace(rec[cols.chr]), pos)
	}
}

// readDelimited parses comma- or tab-separated variant tables.
func readDelimited(path string, r io.Reader, comma rune, t *Table) error {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = comma == '\t'
	return readRows(path, func() ([]string, int, error) {
		rec, err := cr.Read()
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, 0, fmt.Errorf("line %d: %w", pe.Line, pe.Err)
			}
			return nil, 0, err
		}
		line, _ := cr.FieldPos(0)
		return rec, line, nil
	}, t)
}

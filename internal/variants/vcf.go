package variants

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readVCF takes CHROM and POS from each data line of a VCF body. POS stays
// 1-based as written.
func readVCF(path string, r io.Reader, t *Table) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 64<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.SplitN(line, "\t", 3)
		if len(f) < 2 {
			return fmt.Errorf("%s:%d: expected tab-separated CHROM and POS", path, ln)
		}
		pos, err := parsePosition(f[1])
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, ln, err)
		}
		t.Append(f[0], pos)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// BIM columns (PLINK): chromosome, variant id, morgans, coordinate, allele1, allele2.
const (
	bimChromosome = 0
	bimCoordinate = 3
)

func readBIM(path string, r io.Reader, t *Table) error {
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) <= bimCoordinate {
			return fmt.Errorf("%s:%d: bad field count %d", path, ln, len(f))
		}
		pos, err := parsePosition(f[bimCoordinate])
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, ln, err)
		}
		t.Append(f[bimChromosome], pos)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// internal/variants/table.go
package variants

// Table is a loaded variant dataset kept in the parallel-slice shape the
// binning core consumes: Chromosomes[i] and Positions[i] describe variant i.
type Table struct {
	Chromosomes []string
	Positions   []uint32

	intern map[string]string
}

// LabelCount is the number of variants carrying one chromosome label.
type LabelCount struct {
	Chromosome string
	Count      int
}

func (t *Table) Len() int { return len(t.Positions) }

// Append adds one variant. Repeated labels share one backing string.
func (t *Table) Append(chr string, pos uint32) {
	if t.intern == nil {
		t.intern = make(map[string]string, 32)
	}
	if s, ok := t.intern[chr]; ok {
		chr = s
	} else {
		t.intern[chr] = chr
	}
	t.Chromosomes = append(t.Chromosomes, chr)
	t.Positions = append(t.Positions, pos)
}

// Extend appends all of o's variants in order.
func (t *Table) Extend(o *Table) {
	if o == nil {
		return
	}
	for i, chr := range o.Chromosomes {
		t.Append(chr, o.Positions[i])
	}
}

// Labels returns the distinct chromosome labels in first-seen order.
func (t *Table) Labels() []string {
	counts := t.Counts()
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Chromosome
	}
	return out
}

// Counts returns per-label variant counts in first-seen label order.
func (t *Table) Counts() []LabelCount {
	idx := make(map[string]int)
	var out []LabelCount
	for _, chr := range t.Chromosomes {
		i, ok := idx[chr]
		if !ok {
			i = len(out)
			idx[chr] = i
			out = append(out, LabelCount{Chromosome: chr})
		}
		out[i].Count++
	}
	return out
}

package dedup

// duplicateIndex records the signature of every emitted read. A
// (umi, chrom, pos, strand) tuple is present iff a read with that
// signature has been emitted. Entries are never removed.
type duplicateIndex struct {
	seen map[positionKey]strandSet
}

func newDuplicateIndex() *duplicateIndex {
	return &duplicateIndex{seen: make(map[positionKey]strandSet)}
}

// contains reports whether k has already been inserted.
func (d *duplicateIndex) contains(k duplicateKey) bool {
	return d.seen[k.positionKey].has(k.strand)
}

// insert adds k to the index and returns true if k was not already
// present. Adding a strand to an existing position keeps the strands
// already recorded there.
func (d *duplicateIndex) insert(k duplicateKey) bool {
	strands := d.seen[k.positionKey]
	if strands.has(k.strand) {
		return false
	}
	d.seen[k.positionKey] = strands | strandBit(k.strand)
	return true
}

// len returns the number of distinct signatures in the index.
func (d *duplicateIndex) len() int {
	n := 0
	for _, strands := range d.seen {
		if strands.has(Plus) {
			n++
		}
		if strands.has(Minus) {
			n++
		}
	}
	return n
}

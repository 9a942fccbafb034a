package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newKey(umi, chrom string, pos int, strand Strand) duplicateKey {
	return duplicateKey{positionKey{umi: umi, chrom: chrom, pos: pos}, strand}
}

func TestDuplicateIndex(t *testing.T) {
	d := newDuplicateIndex()

	assert.True(t, d.insert(newKey("AACG", "chr1", 95, Plus)))
	assert.False(t, d.insert(newKey("AACG", "chr1", 95, Plus)))
	assert.True(t, d.contains(newKey("AACG", "chr1", 95, Plus)))
	assert.False(t, d.contains(newKey("AACG", "chr1", 95, Minus)))

	// A second strand at the same position is added, not replaced.
	assert.True(t, d.insert(newKey("AACG", "chr1", 95, Minus)))
	assert.True(t, d.contains(newKey("AACG", "chr1", 95, Plus)))
	assert.True(t, d.contains(newKey("AACG", "chr1", 95, Minus)))
	assert.False(t, d.insert(newKey("AACG", "chr1", 95, Minus)))

	// Any differing component makes a new signature.
	assert.True(t, d.insert(newKey("TTGA", "chr1", 95, Plus)))
	assert.True(t, d.insert(newKey("AACG", "chr2", 95, Plus)))
	assert.True(t, d.insert(newKey("AACG", "chr1", 96, Plus)))
	assert.Equal(t, 5, d.len())
}

func TestDuplicateKeyString(t *testing.T) {
	k := newKey("AACG", "chr1", 95, Minus)
	assert.Equal(t, "(AACG,chr1,95,-)", k.String())
}

package dedup

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
)

func TestResolveStrand(t *testing.T) {
	tests := []struct {
		flag     sam.Flags
		expected Strand
	}{
		{0, Plus},
		{4, Plus},
		{16, Minus},
		{20, Minus},
		{sam.Reverse | sam.Duplicate, Minus},
		{sam.Paired | sam.MateReverse | sam.Read1, Plus},
		{0xffff &^ sam.Reverse, Plus},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, ResolveStrand(test.flag), "flag %d", test.flag)
	}
}

func TestLexCigar(t *testing.T) {
	tests := []struct {
		cigar    string
		expected []cigarToken
	}{
		{"", nil},
		{"*", nil},
		{"5S95M", []cigarToken{
			{sam.NewCigarOp(sam.CigarSoftClipped, 5), 0, 2},
			{sam.NewCigarOp(sam.CigarMatch, 95), 2, 5},
		}},
		{"10M2I3D1N4=5X6H", []cigarToken{
			{sam.NewCigarOp(sam.CigarMatch, 10), 0, 3},
			{sam.NewCigarOp(sam.CigarInsertion, 2), 3, 5},
			{sam.NewCigarOp(sam.CigarDeletion, 3), 5, 7},
			{sam.NewCigarOp(sam.CigarSkipped, 1), 7, 9},
			{sam.NewCigarOp(sam.CigarEqual, 4), 9, 11},
			{sam.NewCigarOp(sam.CigarMismatch, 5), 11, 13},
			{sam.NewCigarOp(sam.CigarHardClipped, 6), 13, 15},
		}},
		// Junk between runs is skipped.
		{"5S*95M", []cigarToken{
			{sam.NewCigarOp(sam.CigarSoftClipped, 5), 0, 2},
			{sam.NewCigarOp(sam.CigarMatch, 95), 3, 6},
		}},
		{"7Q3M12", []cigarToken{
			{sam.NewCigarOp(sam.CigarMatch, 3), 2, 4},
		}},
		// Counts too large for a CIGAR op are skipped.
		{"300000000S10M", []cigarToken{
			{sam.NewCigarOp(sam.CigarMatch, 10), 10, 13},
		}},
		{"99999999999999999999M", nil},
		{"268435455M", []cigarToken{
			{sam.NewCigarOp(sam.CigarMatch, maxCigarOpLen), 0, 10},
		}},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, lexCigar(test.cigar), "cigar %q", test.cigar)
	}
}

func TestAdjustedStart(t *testing.T) {
	tests := []struct {
		pos      int
		cigar    string
		strand   Strand
		expected int
	}{
		{100, "5S95M", Plus, 95},
		{100, "100M", Plus, 100},
		{100, "10S80M10S", Plus, 90},
		{100, "95M5S", Plus, 100},
		{100, "3H5S92M", Plus, 100},
		{100, "*", Plus, 100},
		{100, "", Plus, 100},

		{100, "90M10S", Minus, 199},
		{100, "90M", Minus, 189},
		{100, "10S80M10S", Minus, 189},
		{100, "5S95M", Minus, 194},
		{100, "50M100N40M", Minus, 289},
		{100, "40M2D50M", Minus, 191},
		{100, "40M2I48M", Minus, 187},
		{100, "10=2X5M", Minus, 116},
		{100, "95M5S3H", Minus, 194},
		{100, "5I", Minus, 99},
		{100, "*", Minus, 99},
		{100, "", Minus, 99},

		// Malformed strings contribute only their well formed runs.
		{100, "5S*95M", Plus, 95},
		{100, "5S*95M", Minus, 194},
		{100, "abc", Minus, 99},
		{100, "*5S95M", Plus, 100},
		{100, "300000000S10M", Plus, 100},
		{100, "300000000S10M", Minus, 109},
		{100, "10M300000000S", Minus, 109},
		{100, "99999999999999999999M", Plus, 100},
		{100, "99999999999999999999M", Minus, 99},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, AdjustedStart(test.pos, test.cigar, test.strand),
			"AdjustedStart(%d, %q, %s)", test.pos, test.cigar, test.strand)
	}
}

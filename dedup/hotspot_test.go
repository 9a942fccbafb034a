package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHotspotIntervals(t *testing.T) {
	counts := map[string][]int{
		"chr1": {3, 4, 5, 6, 6, 9, 9, 9},
		"chr2": {1, 2, 2, 3, 3, 3},
		"chr3": {7},
	}
	c := newDupCounter()
	for _, chrom := range []string{"chr2", "chr1", "chr3"} {
		for _, pos := range counts[chrom] {
			c.add(chrom, pos)
		}
	}

	testCases := []struct {
		name     string
		minDups  int
		expected []hotspotInterval
	}{
		{
			name:    "all",
			minDups: 0,
			expected: []hotspotInterval{
				{chrom: "chr2", start: 1, end: 4, meanDups: 2},
				{chrom: "chr1", start: 3, end: 7, meanDups: 1.25},
				{chrom: "chr1", start: 9, end: 10, meanDups: 3},
				{chrom: "chr3", start: 7, end: 8, meanDups: 1},
			},
		},
		{
			name:    "above-one",
			minDups: 1,
			expected: []hotspotInterval{
				{chrom: "chr2", start: 2, end: 4, meanDups: 2.5},
				{chrom: "chr1", start: 6, end: 7, meanDups: 2},
				{chrom: "chr1", start: 9, end: 10, meanDups: 3},
			},
		},
		{
			name:     "none",
			minDups:  3,
			expected: []hotspotInterval{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, getHotspotIntervals(c, testCase.minDups))
		})
	}
}

package dedup

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
)

type hotspotInterval struct {
	chrom    string
	start    int
	end      int
	meanDups float64
}

// dupCounter counts the duplicates removed at each adjusted start.
// chroms keeps references in order of first appearance, which for
// sorted input is the header order.
type dupCounter struct {
	chroms []string
	counts map[string]map[int]int
}

func newDupCounter() *dupCounter {
	return &dupCounter{counts: make(map[string]map[int]int)}
}

func (c *dupCounter) add(chrom string, pos int) {
	refCounts, ok := c.counts[chrom]
	if !ok {
		refCounts = make(map[int]int)
		c.counts[chrom] = refCounts
		c.chroms = append(c.chroms, chrom)
	}
	refCounts[pos]++
}

// getHotspotIntervals returns the runs of consecutive positions where
// more than minDups duplicates were removed. The output is sorted by
// reference (in order of appearance) and then position.
func getHotspotIntervals(c *dupCounter, minDups int) []hotspotInterval {
	intervals := make([]hotspotInterval, 0)
	for _, chrom := range c.chroms {
		refCounts := c.counts[chrom]
		positions := make([]int, 0, len(refCounts))
		for pos, n := range refCounts {
			if n > minDups {
				positions = append(positions, pos)
			}
		}
		sort.Ints(positions)

		var start, total int
		for i, pos := range positions {
			if i == 0 || pos != positions[i-1]+1 {
				start = pos
				total = 0
			}
			total += refCounts[pos]
			if i == len(positions)-1 || positions[i+1] != pos+1 {
				end := pos + 1
				intervals = append(intervals, hotspotInterval{
					chrom:    chrom,
					start:    start,
					end:      end,
					meanDups: float64(total) / float64(end-start),
				})
				log.Debug.Printf("duplicate hotspot: %s %d-%d mean duplicates %f", chrom, start, end,
					float64(total)/float64(end-start))
			}
		}
	}
	return intervals
}

// writeHotspotIntervals writes intervals with 1-based starts and
// exclusive ends.
func writeHotspotIntervals(ctx context.Context, opts *Opts, intervals []hotspotInterval) (err error) {
	var f file.File
	f, err = file.Create(ctx, opts.HotspotFile)
	if err != nil {
		return errors.E(err, "Couldn't create hotspot file:", opts.HotspotFile)
	}
	defer file.CloseAndReport(ctx, f, &err)

	w := tsv.NewWriter(f.Writer(ctx))
	w.WriteString("chrom\tstart\tend\tmean_duplicates")
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to hotspot file:", opts.HotspotFile)
	}
	for _, interval := range intervals {
		w.WriteString(interval.chrom)
		w.WriteString(strconv.Itoa(interval.start))
		w.WriteString(strconv.Itoa(interval.end))
		w.WriteString(fmt.Sprintf("%0.3f", interval.meanDups))
		if err = w.EndLine(); err != nil {
			return errors.E(err, "error writing to hotspot file:", opts.HotspotFile)
		}
	}
	if err = w.Flush(); err != nil {
		return errors.E(err, "error writing to hotspot file:", opts.HotspotFile)
	}
	return nil
}

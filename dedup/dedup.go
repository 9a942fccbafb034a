// Copyright 2019 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dedup

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bio/umi"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
)

// maxLineLength bounds a single SAM line. Long-read records with
// large SEQ and QUAL fields fit comfortably.
const maxLineLength = 64 << 20

// Opts for umi deduplication.
type Opts struct {
	// Commandline options.
	InputPath      string
	OutputPath     string
	UmiFile        string
	Paired         bool
	CorrectUmis    bool
	MetricsFile    string
	HotspotFile    string
	HotspotMinDups int
}

// record holds the fields of a SAM data line that take part in
// duplicate detection.
type record struct {
	name  string
	flag  sam.Flags
	chrom string
	pos   int
	cigar string
}

// parseRecord splits a tab-separated SAM data line. It needs at least
// the first six columns, and the flag and position must be integers.
func parseRecord(line string) (record, error) {
	fields := strings.SplitN(line, "\t", 7)
	if len(fields) < 6 {
		return record{}, errors.E(errors.Invalid, "expected at least 6 fields, got", strconv.Itoa(len(fields)))
	}
	flag, err := strconv.Atoi(fields[1])
	if err != nil {
		return record{}, errors.E(errors.Invalid, err, "bad flag")
	}
	pos, err := strconv.Atoi(fields[3])
	if err != nil {
		return record{}, errors.E(errors.Invalid, err, "bad position")
	}
	return record{
		name:  fields[0],
		flag:  sam.Flags(flag),
		chrom: fields[2],
		pos:   pos,
		cigar: fields[5],
	}, nil
}

// Deduper removes PCR duplicates from a position-sorted, single-end
// SAM stream. A read is kept iff it is the first read seen with its
// (UMI, reference, adjusted 5' start, strand) signature. A Deduper
// owns all of its state and is not safe for concurrent use.
type Deduper struct {
	known     UmiSet
	corrector *umi.SnapCorrector
	index     *duplicateIndex
	hotspots  *dupCounter
	metrics   *Metrics
}

// NewDeduper creates a Deduper for the given known UMIs. If
// opts.CorrectUmis is set, reads with an unknown UMI are snapped to
// the closest known UMI when exactly one is closest.
func NewDeduper(known UmiSet, opts *Opts) (*Deduper, error) {
	d := &Deduper{
		known:    known,
		index:    newDuplicateIndex(),
		hotspots: newDupCounter(),
		metrics:  &Metrics{},
	}
	if opts != nil && opts.CorrectUmis {
		var err error
		if d.corrector, err = newSnapCorrector(known); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// newSnapCorrector checks that known meets the requirements of
// umi.NewSnapCorrector, which panics otherwise.
func newSnapCorrector(known UmiSet) (*umi.SnapCorrector, error) {
	umis := known.sorted()
	if len(umis) == 0 {
		return nil, errors.E(errors.Invalid, "umi correction needs at least one known umi")
	}
	for _, u := range umis {
		if len(u) != len(umis[0]) {
			return nil, errors.E(errors.Invalid, "umi correction needs equal length umis, got", umis[0], "and", u)
		}
		if strings.ContainsRune(u, 'N') {
			return nil, errors.E(errors.Invalid, "umi correction does not allow N in known umi", u)
		}
	}
	return umi.NewSnapCorrector([]byte(strings.Join(umis, "\n"))), nil
}

// Metrics returns the counts accumulated so far.
func (d *Deduper) Metrics() *Metrics {
	return d.metrics
}

// resolveUmi returns the known UMI a read should be grouped under, and
// false if the read has no usable UMI.
func (d *Deduper) resolveUmi(u string) (string, bool) {
	if d.known.Contains(u) {
		return u, true
	}
	if d.corrector == nil || u == "" {
		return "", false
	}
	corrected, edits, ok := d.corrector.CorrectUMI(u)
	if !ok || !d.known.Contains(corrected) {
		return "", false
	}
	log.Debug.Printf("corrected umi %s to %s with %d edits", u, corrected, edits)
	d.metrics.CorrectedUmis++
	return corrected, true
}

// keep decides whether the data line should be emitted, and records
// its signature if so.
func (d *Deduper) keep(line string) bool {
	r, err := parseRecord(line)
	if err != nil {
		d.metrics.MalformedRecords++
		log.Debug.Printf("dropping malformed record %q: %v", line, err)
		return false
	}
	d.metrics.ReadsExamined++

	u, ok := d.resolveUmi(extractUmi(r.name))
	if !ok {
		d.metrics.UnknownUmis++
		return false
	}
	strand := ResolveStrand(r.flag)
	key := duplicateKey{
		positionKey: positionKey{umi: u, chrom: r.chrom, pos: AdjustedStart(r.pos, r.cigar, strand)},
		strand:      strand,
	}
	if !d.index.insert(key) {
		d.metrics.Duplicates++
		d.hotspots.add(key.chrom, key.pos)
		return false
	}
	d.metrics.ReadsEmitted++
	return true
}

// Process reads SAM lines from in and writes the header lines and the
// non-duplicate data lines to out, in input order. Surrounding
// whitespace is trimmed from each line and blank lines are skipped.
func (d *Deduper) Process(ctx context.Context, in io.Reader, out io.Writer) (*Metrics, error) {
	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return d.metrics, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '@' {
			d.metrics.HeaderLines++
		} else if !d.keep(line) {
			continue
		}
		if _, err := w.WriteString(line); err != nil {
			return d.metrics, err
		}
		if err := w.WriteByte('\n'); err != nil {
			return d.metrics, err
		}
	}
	if err := scanner.Err(); err != nil {
		return d.metrics, err
	}
	return d.metrics, w.Flush()
}

// openInput returns a reader for the SAM text in f, decompressing it
// if path ends in .gz. The returned closer must be called once the
// reader is exhausted.
func openInput(ctx context.Context, f file.File, path string) (io.Reader, func() error, error) {
	if !strings.HasSuffix(path, ".gz") {
		return f.Reader(ctx), func() error { return nil }, nil
	}
	gz, err := gzip.NewReader(f.Reader(ctx))
	if err != nil {
		return nil, nil, errors.E(err, "could not read gzip input", path)
	}
	return gz, gz.Close, nil
}

// SetupAndDedup validates opts, loads the known UMIs and writes the
// deduplicated copy of opts.InputPath to opts.OutputPath. Metrics and
// hotspot reports are written if requested. If deduplication fails
// partway, the incomplete output is removed.
func SetupAndDedup(ctx context.Context, opts *Opts) (_ *Metrics, err error) {
	if err = validate(opts); err != nil {
		return nil, err
	}
	known, err := LoadUmiSet(ctx, opts.UmiFile)
	if err != nil {
		return nil, err
	}
	d, err := NewDeduper(known, opts)
	if err != nil {
		return nil, err
	}

	in, err := file.Open(ctx, opts.InputPath)
	if err != nil {
		return nil, errors.E(err, "could not open input", opts.InputPath)
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader, closeReader, err := openInput(ctx, in, opts.InputPath)
	if err != nil {
		return nil, err
	}
	out, err := file.Create(ctx, opts.OutputPath)
	if err != nil {
		closeReader() // nolint: errcheck
		return nil, errors.E(err, "could not create output", opts.OutputPath)
	}
	complete := false
	defer func() {
		if complete {
			return
		}
		if e := file.Remove(ctx, opts.OutputPath); e != nil {
			log.Error.Printf("could not remove incomplete output %s: %v", opts.OutputPath, e)
		}
	}()
	defer file.CloseAndReport(ctx, out, &err)

	metrics, err := d.Process(ctx, reader, out.Writer(ctx))
	if e := closeReader(); err == nil && e != nil {
		err = e
	}
	if err != nil {
		return nil, errors.E(err, "deduplicating", opts.InputPath)
	}
	complete = true
	log.Printf("%s: examined %d reads, kept %d, removed %d duplicates and %d reads with unknown umis",
		opts.InputPath, metrics.ReadsExamined, metrics.ReadsEmitted, metrics.Duplicates, metrics.UnknownUmis)

	if opts.MetricsFile != "" {
		if err = writeMetrics(ctx, opts, metrics); err != nil {
			return nil, err
		}
	}
	if opts.HotspotFile != "" {
		intervals := getHotspotIntervals(d.hotspots, opts.HotspotMinDups)
		if err = writeHotspotIntervals(ctx, opts, intervals); err != nil {
			return nil, err
		}
	}
	return metrics, nil
}

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
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
)

// Metrics contains counts from one deduplication pass.
type Metrics struct {
	// HeaderLines is the number of header lines passed through.
	HeaderLines int

	// ReadsExamined is the number of well-formed data records seen.
	ReadsExamined int

	// MalformedRecords is the number of data lines that could not be
	// parsed. They are not counted in ReadsExamined.
	MalformedRecords int

	// UnknownUmis is the number of reads dropped because their UMI is
	// not a known UMI (after correction, if enabled).
	UnknownUmis int

	// CorrectedUmis is the number of reads whose UMI was snapped to a
	// known UMI.
	CorrectedUmis int

	// Duplicates is the number of reads dropped as duplicates.
	Duplicates int

	// ReadsEmitted is the number of data records written.
	ReadsEmitted int
}

// PercentDuplication is the percentage of reads with a known UMI that
// were dropped as duplicates.
func (m *Metrics) PercentDuplication() float64 {
	valid := m.Duplicates + m.ReadsEmitted
	if valid == 0 {
		return 0
	}
	return 100 * float64(m.Duplicates) / float64(valid)
}

// String returns a string representation of the metrics contained in
// m. The string can be used as metrics file output.
func (m *Metrics) String() string {
	librarySizeStr := "0"
	librarySize, err := estimateLibrarySize(uint64(m.Duplicates+m.ReadsEmitted), uint64(m.ReadsEmitted))
	if err == nil {
		librarySizeStr = fmt.Sprintf("%v", librarySize)
	} else {
		log.Debug.Printf("estimateLibrarySize(%v, %v): %v", m.Duplicates+m.ReadsEmitted, m.ReadsEmitted, err)
	}

	return fmt.Sprintf("%d\t%d\t%d\t%d\t%d\t%d\t%d\t%0.6f\t%v", m.HeaderLines, m.ReadsExamined,
		m.MalformedRecords, m.UnknownUmis, m.CorrectedUmis, m.Duplicates, m.ReadsEmitted,
		m.PercentDuplication(), librarySizeStr)
}

const metricsHeader = "INPUT\tHEADER_LINES\tREADS_EXAMINED\tMALFORMED_RECORDS\tUNKNOWN_UMI_READS\t" +
	"CORRECTED_UMI_READS\tDUPLICATE_READS\tREADS_KEPT\tPERCENT_DUPLICATION\tESTIMATED_LIBRARY_SIZE"

func writeMetrics(ctx context.Context, opts *Opts, metrics *Metrics) (err error) {
	var f file.File
	f, err = file.Create(ctx, opts.MetricsFile)
	if err != nil {
		return errors.E(err, "Couldn't create metrics file:", opts.MetricsFile)
	}
	defer file.CloseAndReport(ctx, f, &err)

	w := tsv.NewWriter(f.Writer(ctx))
	w.WriteString("# umi-dedup")
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	w.WriteString(metricsHeader)
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	w.WriteString(opts.InputPath)
	w.WriteString(metrics.String())
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	if err = w.Flush(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	return nil
}

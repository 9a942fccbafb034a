package main

/*
  umi-dedup removes PCR duplicates from sorted, uniquely mapped,
  single-end SAM files using known UMIs embedded in read names. For
  more information, see github.com/grailbio/umidedup/dedup/doc.go
*/

import (
	"flag"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/umidedup/dedup"
)

var (
	inputPath      string
	paired         bool
	umiFile        string
	outputPath     = flag.String("output", "", "Output filename. By default, set to input filename + _deduped")
	metricsFile    = flag.String("metrics", "", "Output metrics file")
	correctUmis    = flag.Bool("correct-umis", false, "snap unknown UMIs to the closest known UMI when exactly one is closest")
	hotspotFile    = flag.String("hotspots", "", "path to duplicate hotspot intervals output file")
	hotspotMinDups = flag.Int("hotspot-min-dups", 10, "report positions where more than this many duplicates were removed")
)

func init() {
	const (
		fileUsage   = "Sorted SAM file of uniquely mapped single-end reads (required)"
		pairedUsage = "Input is paired-end. Paired-end data is not supported; setting this is an error"
		umiUsage    = "File of known UMI sequences, one per line. Randomer libraries are not supported; omitting this is an error"
	)
	flag.StringVar(&inputPath, "file", "", fileUsage)
	flag.StringVar(&inputPath, "f", "", fileUsage+" (shorthand)")
	flag.BoolVar(&paired, "paired", false, pairedUsage)
	flag.BoolVar(&paired, "p", false, pairedUsage+" (shorthand)")
	flag.StringVar(&umiFile, "umi", "", umiUsage)
	flag.StringVar(&umiFile, "u", "", umiUsage+" (shorthand)")
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	// Validate parameters.
	if flag.NArg() > 0 {
		a := flag.Args()
		log.Fatalf("unparsed flags, please check flag syntax: '%s'", strings.Join(a[len(a)-flag.NArg():], " "))
	}

	opts := dedup.Opts{
		InputPath:      inputPath,
		OutputPath:     *outputPath,
		UmiFile:        umiFile,
		Paired:         paired,
		CorrectUmis:    *correctUmis,
		MetricsFile:    *metricsFile,
		HotspotFile:    *hotspotFile,
		HotspotMinDups: *hotspotMinDups,
	}

	ctx := vcontext.Background()
	if _, err := dedup.SetupAndDedup(ctx, &opts); err != nil {
		log.Fatalf(err.Error())
	}
	log.Debug.Printf("exiting")
}

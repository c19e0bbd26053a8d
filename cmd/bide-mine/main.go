/*
bide-mine mines a sequence database for closed sequential patterns using the
BIDE+ algorithm.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/bide/mine"
	"github.com/grailbio/bide/output"
	"github.com/grailbio/bide/seqfile"
	"github.com/grailbio/bide/stats"
)

var (
	minSupport  = flag.Int("minsup", 1, "Minimum absolute support, a positive integer")
	outPath     = flag.String("out", "", "Output path; supports .gz and s3:// destinations. Empty selects stdout")
	statsPath   = flag.String("stats", "", "If set, write a Snappy-compressed JSON stats sidecar to this path")
	maxNative   = flag.Int("max-native-depth", 0, "Recursion depth above which the driver switches to an explicit work stack; 0 selects the default")
	sampleEvery = flag.Int("sample-every", 1000, "Sample peak memory usage once every N recursive calls; 0 disables sampling")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] inputpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("exactly one positional argument (inputpath) required")
	}
	inputPath := flag.Arg(0)

	in, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("opening %s: %v", inputPath, err)
	}
	db, err := seqfile.Load(in)
	in.Close()
	if err != nil {
		log.Fatalf("loading %s: %v", inputPath, err)
	}

	dest := *outPath
	var sink mine.Sink
	var fileSink *output.FileSink
	if dest == "" {
		fileSink, err = output.NewFileSink("/dev/stdout")
	} else {
		fileSink, err = output.NewFileSink(dest)
	}
	if err != nil {
		log.Fatalf("opening output: %v", err)
	}
	sink = fileSink

	probe := stats.NewProbe()
	ctx := vcontext.Background()
	snap, err := mine.Run(ctx, db, *minSupport, mine.Opts{
		Sink:           sink,
		Probe:          probe,
		MaxNativeDepth: *maxNative,
		SampleEvery:    *sampleEvery,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("mined %d patterns in %dms, peak %dKB", snap.PatternCount, snap.ElapsedMillis, snap.PeakAllocKB)

	if *statsPath != "" {
		f, err := os.Create(*statsPath)
		if err != nil {
			log.Fatalf("creating stats sidecar: %v", err)
		}
		defer f.Close()
		if err := stats.WriteSidecar(f, snap); err != nil {
			log.Fatalf("writing stats sidecar: %v", err)
		}
	}
}

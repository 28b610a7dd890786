package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/dgraph-io/badger/v4"

	"github.com/pathpilot/pathpilot/pkg/kv"
	"github.com/pathpilot/pathpilot/pkg/osmparser"
)

var (
	mapFile    = flag.String("f", "solo_jogja.osm.pbf", "openstreetmap pbf file for the road network graph")
	kvDir      = flag.String("kvdir", "./pathpilot-kv", "directory for the street index key-value store")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		// https://go.dev/blog/pprof
		// ./bin/pathpilot-preprocessing -cpuprofile=pathpilotcpu.prof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Printf("reading osm file %s", *mapFile)
	osmParser := osmparser.NewOsmParser()
	graph, err := osmParser.ParseOSM(ctx, *mapFile)
	if err != nil {
		log.Fatal(err)
	}

	db, err := badger.Open(badger.DefaultOptions(*kvDir))
	if err != nil {
		log.Fatal(err)
	}
	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	if err := kvDB.BuildH3IndexedEdges(ctx, graph); err != nil {
		log.Fatal(err)
	}

	log.Printf("preprocessing done, street index saved to %s", *kvDir)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chess-ai/board"
	"chess-ai/engine"
)

func main() {
	depthFlag := flag.Int("depth", 5, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	moveTime := flag.Duration("movetime", 0, "time budget per search (0 = depth only)")
	workers := flag.Int("workers", 0, "root worker goroutines (0 = default)")
	stats := flag.Bool("stats", true, "print search counters")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	b := board.NewBoard()
	if *fenFlag != "" {
		var err error
		if b, err = board.FromFEN(*fenFlag); err != nil {
			log.Fatalf("fen: %v", err)
		}
	}

	opts := engine.DefaultOptions()
	opts.Difficulty = engine.Hard
	opts.MaxDepth = *depthFlag
	opts.UseBook = false
	opts.Workers = *workers
	opts.PrintStats = *stats
	opts.Logger = log.New(os.Stdout, "", 0)
	eng := engine.New(opts)

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", b.ToFEN(), *depthFlag, *repeatFlag)

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		eng.TransTable().Clear()
		res, err := eng.Search(context.Background(), b, *moveTime)
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		nps := float64(res.Stats.Nodes+res.Stats.QNodes) / res.Elapsed.Seconds()
		fmt.Printf("iteration %d: bestmove %v score %d depth %d time=%v nps=%.0f\n",
			i+1, res.Move, res.Score, res.Depth, res.Elapsed, nps)
	}
	fmt.Printf("total time: %v\n", time.Since(startAll))

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"golang.org/x/exp/maps"

	"chess-ai/board"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func main() {
	fen := flag.String("fen", startFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check counts against dragontoothmg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b, err := board.FromFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FromFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		os.Exit(printDivide(b, *depth, *verify))
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += board.Perft(b, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		want := board.ReferencePerft(b, *depth) * uint64(*repeat)
		if want != totalNodes {
			fmt.Fprintf(os.Stderr, "mismatch: got %d, dragontoothmg %d\n", totalNodes, want)
			os.Exit(1)
		}
		fmt.Println("verified against dragontoothmg")
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// printDivide prints per-move counts sorted by move, flagging any move whose
// count differs from the reference generator. It returns the exit code.
func printDivide(b *board.Board, depth int, verify bool) int {
	counts := make(map[string]uint64)
	for m, n := range board.PerftDivide(b, depth) {
		counts[m.String()] = n
	}
	var ref map[string]uint64
	if verify {
		ref = board.ReferenceDivide(b, depth)
		for k := range ref {
			if _, ok := counts[k]; !ok {
				counts[k] = 0
			}
		}
	}

	keys := maps.Keys(counts)
	sort.Strings(keys)
	var sum uint64
	bad := 0
	for _, k := range keys {
		sum += counts[k]
		if verify && counts[k] != ref[k] {
			fmt.Printf("%s: %d (dragontoothmg %d)\n", k, counts[k], ref[k])
			bad++
			continue
		}
		fmt.Printf("%s: %d\n", k, counts[k])
	}
	fmt.Printf("Total: %d\n", sum)
	if bad > 0 {
		fmt.Fprintf(os.Stderr, "%d moves differ\n", bad)
		return 1
	}
	return 0
}

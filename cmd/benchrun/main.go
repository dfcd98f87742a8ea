package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

var suite = []struct {
	label string
	fen   string
	depth int // maximum depth worth running for this position
}{
	{"Initial", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 6},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4},
	{"Endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6},
	{"Promotion", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4},
}

func main() {
	maxDepth := flag.Int("depth", 4, "deepest perft depth to run per position")
	bin := flag.String("bin", "", "prebuilt perft binary (default: go run ./cmd/perft)")
	verify := flag.Bool("verify", false, "cross-check each count against dragontoothmg")
	flag.Parse()

	perft := func(args ...string) int {
		if *verify {
			args = append(args, "-verify")
		}
		if *bin != "" {
			return run(*bin, args...)
		}
		return run("go", append([]string{"run", "./cmd/perft"}, args...)...)
	}

	fmt.Println("Perft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := 0
	for _, p := range suite {
		for d := 1; d <= *maxDepth && d <= p.depth; d++ {
			if perft("-fen", p.fen, "-depth", strconv.Itoa(d), "-label", p.label) != 0 {
				failed++
			}
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d runs failed\n", failed)
		os.Exit(1)
	}
}

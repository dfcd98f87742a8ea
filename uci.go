package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"chess-ai/board"
	"chess-ai/engine"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	configPath := flag.String("config", getenv("CHESS_CONFIG", ""), "JSON engine options")
	bookPath := flag.String("book", getenv("CHESS_BOOK", ""), "opening book file")
	weightsPath := flag.String("weights", getenv("CHESS_WEIGHTS", ""), "learning weights file")
	flag.Parse()

	opts := engine.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = engine.LoadOptions(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *bookPath != "" {
		opts.BookPath = *bookPath
	}
	if *weightsPath != "" {
		opts.WeightsPath = *weightsPath
	}

	u := newUCI(opts, os.Stdout)
	u.loop(os.Stdin)
}

type uci struct {
	opts  engine.Options
	eng   *engine.Engine
	out   *log.Logger
	board *board.Board

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func newUCI(opts engine.Options, w io.Writer) *uci {
	out := log.New(w, "", 0)
	opts.Logger = out
	return &uci{opts: opts, eng: engine.New(opts), out: out, board: board.NewBoard()}
}

// loop reads commands until quit or end of input. A search still running at
// end of input is allowed to finish.
func (u *uci) loop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	defer u.wait()
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.out.Println("id name chess-ai")
			u.out.Println("id author chess-ai developers")
			u.out.Printf("option name Difficulty type combo default %s var easy var medium var hard", u.opts.Difficulty)
			u.out.Println("uciok")
		case "isready":
			u.out.Println("readyok")
		case "ucinewgame":
			u.wait()
			u.board = board.NewBoard()
			u.eng.TransTable().Clear()
		case "setoption":
			u.wait()
			u.setOption(tokens[1:])
		case "position":
			u.wait()
			u.position(tokens[1:])
		case "go":
			u.wait()
			u.goSearch(tokens[1:])
		case "stop":
			u.stop()
		case "d":
			u.out.Println(u.board.ToFEN())
		case "quit":
			u.stop()
			return
		default:
			u.out.Println("info string Unknown command:", line)
		}
	}
}

func (u *uci) stop() {
	if u.cancel != nil {
		u.cancel()
	}
}

func (u *uci) wait() {
	u.wg.Wait()
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
}

// setOption handles "name <Name> value <v>".
func (u *uci) setOption(tokens []string) {
	if len(tokens) < 4 || !strings.EqualFold(tokens[0], "name") || !strings.EqualFold(tokens[2], "value") {
		u.out.Println("info string Malformed setoption command")
		return
	}
	switch strings.ToLower(tokens[1]) {
	case "difficulty":
		d, err := engine.ParseDifficulty(tokens[3])
		if err != nil {
			u.out.Println("info string", err)
			return
		}
		u.opts.Difficulty = d
		u.opts.MaxDepth = 0
		u.eng = engine.New(u.opts)
	default:
		u.out.Println("info string Unknown option", tokens[1])
	}
}

func (u *uci) position(tokens []string) {
	if len(tokens) == 0 {
		u.out.Println("info string Malformed position command")
		return
	}
	var b *board.Board
	rest := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		b = board.NewBoard()
	case "fen":
		end := len(rest)
		for i, t := range rest {
			if strings.EqualFold(t, "moves") {
				end = i
				break
			}
		}
		var err error
		if b, err = board.FromFEN(strings.Join(rest[:end], " ")); err != nil {
			u.out.Println("info string Invalid fen position:", err)
			return
		}
		rest = rest[end:]
	default:
		u.out.Println("info string Invalid position subcommand")
		return
	}
	if len(rest) > 0 && strings.EqualFold(rest[0], "moves") {
		for _, s := range rest[1:] {
			m, err := board.ParseMove(strings.ToLower(s))
			if err == nil && !b.IsLegalMove(m) {
				err = fmt.Errorf("not legal in %s", b.ToFEN())
			}
			if err == nil {
				err = b.Play(m)
			}
			if err != nil {
				u.out.Println("info string Move", s, "rejected:", err)
				return
			}
		}
	}
	u.board = b
}

// goSearch starts a search in the background; "stop" cancels it and the
// best move found so far is reported.
func (u *uci) goSearch(tokens []string) {
	var (
		budget      time.Duration
		depth       int
		remaining   = map[board.Color]int{}
		incs        = map[board.Color]int{}
		hasMoveTime bool
	)
	for i := 0; i < len(tokens); i++ {
		tok := strings.ToLower(tokens[i])
		if tok == "infinite" {
			continue
		}
		if i+1 >= len(tokens) {
			u.out.Println("info string Malformed go command option", tok)
			break
		}
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			u.out.Println("info string Malformed go command option; could not convert", tok)
			i++
			continue
		}
		switch tok {
		case "movetime":
			budget, hasMoveTime = time.Duration(v)*time.Millisecond, true
		case "depth":
			depth = v
		case "wtime":
			remaining[board.White] = v
		case "btime":
			remaining[board.Black] = v
		case "winc":
			incs[board.White] = v
		case "binc":
			incs[board.Black] = v
		default:
			u.out.Println("info string Unknown go subcommand", tok)
		}
		i++
	}

	turn := u.board.Turn()
	if !hasMoveTime && remaining[turn] > 0 {
		budget = time.Duration(remaining[turn]/30+incs[turn]/2) * time.Millisecond
	}

	eng := u.eng
	if depth > 0 {
		opts := u.opts
		opts.MaxDepth = depth
		eng = engine.New(opts)
	}

	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	b := u.board.Copy()
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		res, err := eng.Search(ctx, b, budget)
		if err != nil {
			u.out.Println("info string", err)
			u.out.Println("bestmove (none)")
			return
		}
		u.out.Println("bestmove", res.Move)
	}()
}

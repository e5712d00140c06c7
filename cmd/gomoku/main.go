// Console gomoku, the engine against a human or itself.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"parmcts/game/gomoku"
	"parmcts/pkg/mcts"
)

const labels = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	size       = flag.Int("size", gomoku.DefaultSize, "board size")
	threads    = flag.Int("threads", 8, "search trees grown in parallel")
	iterations = flag.Int("iterations", 100000, "playouts per tree, -1 for unbounded")
	movetime   = flag.Duration("movetime", 0, "time budget per engine move, e.g. 2s")
	seed       = flag.Uint64("seed", 0, "fixed search seed, 0 draws one per move")
	verbose    = flag.Bool("verbose", false, "log per-move candidate statistics")
	selfplay   = flag.Bool("selfplay", false, "engine plays both sides")
	humanFirst = flag.Bool("first", false, "human takes X and moves first")
)

type colors struct {
	x termenv.Style
	o termenv.Style
}

func newColors() colors {
	p := termenv.ColorProfile()
	return colors{
		x: termenv.String("X").Foreground(p.Color("1")).Bold(),
		o: termenv.String("O").Foreground(p.Color("4")).Bold(),
	}
}

func (c colors) mark(piece mcts.Player, last bool) string {
	var s termenv.Style
	switch piece {
	case mcts.Player1:
		s = c.x
	case mcts.Player2:
		s = c.o
	default:
		return "."
	}
	if last {
		s = s.Reverse()
	}
	return s.String()
}

func printBoard(state *gomoku.State, c colors) {
	lastMove, hasLast := state.LastMove()

	fmt.Print("  ")
	for col := 0; col < state.Size(); col++ {
		fmt.Printf("%c ", labels[col])
	}
	fmt.Println()

	for row := 0; row < state.Size(); row++ {
		fmt.Printf("%c|", labels[row])
		for col := 0; col < state.Size(); col++ {
			last := hasLast && lastMove.Row == row && lastMove.Col == col
			fmt.Print(c.mark(state.At(row, col), last))
			if col < state.Size()-1 {
				fmt.Print(" ")
			}
		}
		fmt.Println("|")
	}
}

func humanMove(state *gomoku.State, in *bufio.Scanner) (gomoku.Move, bool) {
	for {
		fmt.Print("your move> ")
		if !in.Scan() {
			return gomoku.Move{}, false
		}
		text := strings.TrimSpace(in.Text())
		if text == "quit" || text == "q" {
			return gomoku.Move{}, false
		}

		move, err := state.ParseMove(text)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if state.At(move.Row, move.Col) != mcts.NoPlayer {
			fmt.Printf("%s is taken\n", move)
			continue
		}
		return move, true
	}
}

func engineMove(engine *mcts.Search[gomoku.Move, *gomoku.State], state *gomoku.State) gomoku.Move {
	start := time.Now()
	move, err := engine.ComputeMove(state)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}

	if report := engine.Report(); report != nil {
		fmt.Printf("engine plays %s  (score %.3f, %d playouts, %.0f/s, %.1fs)\n",
			move, report.BestScore, report.Playouts, report.Rate, time.Since(start).Seconds())
	} else {
		fmt.Printf("engine plays %s  (forced)\n", move)
	}
	return move
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	opts := mcts.DefaultOptions().
		SetThreads(*threads).
		SetMaxIterations(*iterations).
		SetMaxTime(*movetime).
		SetSeed(*seed).
		SetVerbose(*verbose)

	state := gomoku.New(*size)
	engine := mcts.NewSearch[gomoku.Move, *gomoku.State](opts)
	c := newColors()
	in := bufio.NewScanner(os.Stdin)

	engineSide := mcts.Player1
	if *humanFirst {
		engineSide = mcts.Player2
	}

	printBoard(state, c)
	for state.HasMoves() {
		var move gomoku.Move
		if *selfplay || state.PlayerToMove() == engineSide {
			move = engineMove(engine, state)
		} else {
			var ok bool
			if move, ok = humanMove(state, in); !ok {
				fmt.Println("bye")
				return
			}
		}

		state.DoMove(move)
		printBoard(state, c)
	}

	switch state.Winner() {
	case mcts.Player1:
		fmt.Println(c.x.String() + " wins")
	case mcts.Player2:
		fmt.Println(c.o.String() + " wins")
	default:
		fmt.Println("draw")
	}
}

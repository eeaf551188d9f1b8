package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/xoto10/laser-chess-engine/board"
	"github.com/xoto10/laser-chess-engine/engine"
)

const (
	engineName    = "LaserGo"
	engineVersion = "0.1"
)

const defaultMoveOverheadMS = 30

// moveOverheadMS is reserved from every clock budget for I/O and GUI
// latency, settable with "setoption name Move Overhead".
var moveOverheadMS = defaultMoveOverheadMS

func main() {
	uciLoop()
}

// uciLoop reads UCI commands from stdin. Searches run on their own
// goroutine so stop and quit stay responsive; the stop flag inside the
// engine is the only channel between the two.
func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	b := board.MustParseFEN(board.StartPos)

	var searchers errgroup.Group
	var searching atomic.Bool

	startSearch := func(pos board.Board, mode, value int) {
		if !searching.CompareAndSwap(false, true) {
			fmt.Println("info string search already running")
			return
		}
		searchers.Go(func() error {
			defer searching.Store(false)
			best := engine.GetBestMove(&pos, mode, value)
			fmt.Println("bestmove " + best.String())
			return nil
		})
	}

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Printf("id name %s %s\n", engineName, engineVersion)
			fmt.Println("id author the LaserGo authors")
			fmt.Printf("option name Hash type spin default %d min 1 max 1024\n", engine.DefaultHashMB)
			fmt.Printf("option name Move Overhead type spin default %d min 0 max 5000\n", defaultMoveOverheadMS)
			fmt.Println("uciok")

		case "isready":
			fmt.Println("readyok")

		case "ucinewgame":
			b = board.MustParseFEN(board.StartPos)
			engine.ClearTables()

		case "position":
			if next, ok := parsePosition(tokens[1:]); ok {
				b = next
			} else {
				fmt.Println("info string malformed position command")
			}

		case "go":
			mode, value, ok := parseGo(tokens[1:], b.SideToMove())
			if !ok {
				fmt.Println("info string malformed go command")
				continue
			}
			startSearch(b.StaticCopy(), mode, value)

		case "setoption":
			applyOption(tokens[1:])

		case "stop":
			engine.Stop()

		case "quit":
			engine.Stop()
			searchers.Wait()
			return

		default:
			fmt.Println("info string unknown command:", line)
		}
	}
	engine.Stop()
	searchers.Wait()
}

// parsePosition handles "position [startpos | fen <fen>] [moves m1 m2 ...]".
func parsePosition(tokens []string) (*board.Board, bool) {
	if len(tokens) == 0 {
		return nil, false
	}

	var b *board.Board
	rest := tokens
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		b = board.MustParseFEN(board.StartPos)
		rest = tokens[1:]
	case "fen":
		end := 1
		for end < len(tokens) && strings.ToLower(tokens[end]) != "moves" {
			end++
		}
		parsed, err := board.ParseFEN(strings.Join(tokens[1:end], " "))
		if err != nil {
			return nil, false
		}
		b = parsed
		rest = tokens[end:]
	default:
		return nil, false
	}

	if len(rest) == 0 {
		return b, true
	}
	if strings.ToLower(rest[0]) != "moves" {
		return nil, false
	}
	for _, moveStr := range rest[1:] {
		parsed, err := board.ParseMove(moveStr)
		if err != nil {
			return nil, false
		}
		found := board.NullMove
		for _, legal := range b.LegalMoves() {
			if legal.MatchesUCI(parsed) {
				found = legal
				break
			}
		}
		if found == board.NullMove {
			return nil, false
		}
		b.DoMove(found)
	}
	return b, true
}

// parseGo extracts the search mode: infinite wins, then an explicit depth,
// then movetime, then a clock. The clock budget is a fortieth of the
// remaining time plus the increment; movetime and clock budgets both lose
// the Move Overhead reserve.
func parseGo(tokens []string, stm board.Color) (mode, value int, ok bool) {
	var depth, movetime int
	var wtime, btime, winc, binc int
	infinite := false

	for i := 0; i < len(tokens); i++ {
		takeInt := func() (int, bool) {
			if i+1 >= len(tokens) {
				return 0, false
			}
			i++
			n, err := strconv.Atoi(tokens[i])
			return n, err == nil
		}
		var got bool
		switch strings.ToLower(tokens[i]) {
		case "infinite":
			infinite, got = true, true
		case "depth":
			depth, got = takeInt()
		case "movetime":
			movetime, got = takeInt()
		case "wtime":
			wtime, got = takeInt()
		case "btime":
			btime, got = takeInt()
		case "winc":
			winc, got = takeInt()
		case "binc":
			binc, got = takeInt()
		default:
			// Unsupported subcommands (nodes, mate, ponder) are skipped.
			got = true
		}
		if !got {
			return 0, 0, false
		}
	}

	switch {
	case infinite:
		return engine.ModeDepth, engine.MaxDepth, true
	case depth > 0:
		return engine.ModeDepth, depth, true
	case movetime > 0:
		return engine.ModeTime, clampBudget(movetime - moveOverheadMS), true
	}

	remaining, increment := wtime, winc
	if stm == board.Black {
		remaining, increment = btime, binc
	}
	if remaining <= 0 {
		remaining = 300000
	}
	budget := remaining/40 + increment - moveOverheadMS
	return engine.ModeTime, clampBudget(budget), true
}

// clampBudget keeps a time budget usable after the overhead reserve.
func clampBudget(ms int) int {
	if ms < 10 {
		return 10
	}
	return ms
}

func applyOption(tokens []string) {
	// Option names may span several tokens ("Move Overhead"), so collect
	// everything between "name" and "value".
	var nameParts []string
	value := ""
	i := 0
	if i < len(tokens) && strings.ToLower(tokens[i]) == "name" {
		i++
	}
	for ; i < len(tokens) && strings.ToLower(tokens[i]) != "value"; i++ {
		nameParts = append(nameParts, strings.ToLower(tokens[i]))
	}
	if i < len(tokens) && strings.ToLower(tokens[i]) == "value" && i+1 < len(tokens) {
		value = tokens[i+1]
	}
	name := strings.Join(nameParts, " ")

	switch name {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil && mb >= 1 && mb <= 1024 {
			engine.SetHashSize(mb)
		} else {
			fmt.Println("info string bad Hash value")
		}
	case "move overhead":
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 && ms <= 5000 {
			moveOverheadMS = ms
		} else {
			fmt.Println("info string bad Move Overhead value")
		}
	default:
		fmt.Println("info string unknown option", name)
	}
}

// Command perft counts move generation leaf nodes for a position, fanning
// the root moves out across goroutines. Usage:
//
//	perft [-fen <fen>] [-depth N]
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xoto10/laser-chess-engine/board"
)

func main() {
	fen := flag.String("fen", board.StartPos, "position to count from")
	depth := flag.Int("depth", 5, "perft depth")
	flag.Parse()

	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "perft:", err)
		os.Exit(1)
	}

	start := time.Now()
	var total atomic.Uint64
	var g errgroup.Group

	type divide struct {
		move  board.Move
		nodes uint64
	}
	moves := b.LegalMoves()
	results := make([]divide, len(moves))

	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			child := b.StaticCopy()
			child.DoMove(m)
			nodes := board.Perft(&child, *depth-1)
			results[i] = divide{m, nodes}
			total.Add(nodes)
			return nil
		})
	}
	g.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].move.String() < results[j].move.String()
	})
	for _, r := range results {
		fmt.Printf("%s: %d\n", r.move, r.nodes)
	}
	elapsed := time.Since(start)
	fmt.Printf("\nperft(%d) = %d in %v (%.0f nps)\n",
		*depth, total.Load(), elapsed, float64(total.Load())/elapsed.Seconds())
}

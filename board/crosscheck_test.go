package board

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// Independent-oracle check: the same positions walked with dragontoothmg
// must produce the same tree sizes as our generator.

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestMovegenAgreesWithDragontooth(t *testing.T) {
	fens := []string{
		StartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
		"4k3/8/8/8/8/8/6p1/4K3 b - - 0 1",
	}
	for _, fen := range fens {
		ours := MustParseFEN(fen)
		theirs := dragontoothmg.ParseFen(fen)
		for depth := 1; depth <= 3; depth++ {
			got := Perft(ours, depth)
			want := dragonPerft(&theirs, depth)
			if got != want {
				t.Errorf("%q perft(%d): got %d, dragontoothmg says %d", fen, depth, got, want)
			}
		}
	}
}

func TestLegalMoveCountAgreesWithDragontooth(t *testing.T) {
	ours := MustParseFEN(StartPos)
	theirs := dragontoothmg.ParseFen(StartPos)
	if got, want := len(ours.LegalMoves()), len(theirs.GenerateLegalMoves()); got != want {
		t.Fatalf("legal move count: got %d want %d", got, want)
	}
}

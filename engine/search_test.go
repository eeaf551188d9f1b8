package engine

import (
	"testing"
	"time"

	"github.com/xoto10/laser-chess-engine/board"
)

// resetSearchState gives each test a clean engine: empty tables, fresh
// clock, lowered stop flag.
func resetSearchState() {
	searchParams = SearchParameters{}
	searchParams.reset()
	searchParams.startTime = time.Now()
	searchParams.timeLimit = time.Hour
	searchStats.reset()
	isStop.Store(false)
	transTable.Clear()
}

func TestMateInOneFound(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	legalMoves := b.LegalMoves()

	var pv pvLine
	bestIndex, bestScore := getBestMoveAtDepth(b, legalMoves, 2, &pv)
	if bestIndex == -1 {
		t.Fatal("search aborted")
	}
	if got := legalMoves[bestIndex].String(); got != "f7g7" {
		t.Errorf("best move: got %s want f7g7", got)
	}
	if bestScore != MateScore-1 {
		t.Errorf("best score: got %d want %d", bestScore, MateScore-1)
	}
	if got := formatScore(bestScore); got != "mate 1" {
		t.Errorf("formatted: got %q want \"mate 1\"", got)
	}
}

func TestGetBestMoveMateInOne(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	best := GetBestMove(b, ModeDepth, 2)
	if best.String() != "f7g7" {
		t.Errorf("bestmove: got %s want f7g7", best)
	}
}

func TestMatedPositionScore(t *testing.T) {
	resetSearchState()
	// Black to move, already checkmated.
	b := board.MustParseFEN("7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	var pv pvLine
	if got := pvs(b, 3, -MateScore, MateScore, &pv); got != -MateScore {
		t.Errorf("mated node: got %d want %d", got, -MateScore)
	}
}

func TestStalemateScoresZero(t *testing.T) {
	resetSearchState()
	// Black to move, no legal moves, not in check.
	b := board.MustParseFEN("7k/5Q2/8/8/8/8/8/K7 b - - 0 1")
	var pv pvLine
	if got := pvs(b, 3, -500, 500, &pv); got != 0 {
		t.Errorf("stalemate: got %d want 0", got)
	}
	// Clamped when zero lies outside the window.
	resetSearchState()
	if got := pvs(b, 3, 10, 500, &pv); got != 10 {
		t.Errorf("stalemate above alpha=10: got %d want 10", got)
	}
	resetSearchState()
	if got := pvs(b, 3, -500, -10, &pv); got != -10 {
		t.Errorf("stalemate below beta=-10: got %d want -10", got)
	}
}

func TestDrawnPositionClamps(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	var pv pvLine
	if got := pvs(b, 6, -300, 300, &pv); got != 0 {
		t.Errorf("KK draw: got %d want 0", got)
	}
	resetSearchState()
	if got := pvs(b, 6, 25, 300, &pv); got != 25 {
		t.Errorf("KK draw with alpha=25: got %d want 25", got)
	}
}

func TestFailHardWindow(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 b - - 0 10",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	windows := [][2]int{{-50, 50}, {-1000, -900}, {200, 600}, {-Infinity + 1, Infinity - 1}}
	for _, fen := range fens {
		for _, w := range windows {
			resetSearchState()
			b := board.MustParseFEN(fen)
			var pv pvLine
			got := pvs(b, 3, w[0], w[1], &pv)
			if got < w[0] || got > w[1] {
				t.Errorf("%q window [%d, %d]: score %d escaped", fen, w[0], w[1], got)
			}
		}
	}
}

func TestNullWindowReturnsBound(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10")
	for _, alpha := range []int{-200, -1, 0, 35, 400} {
		resetSearchState()
		var pv pvLine
		got := pvs(b, 3, alpha, alpha+1, &pv)
		if got != alpha && got != alpha+1 {
			t.Errorf("null window at %d: got %d", alpha, got)
		}
	}
}

func TestQuiescenceFailHard(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for _, w := range [][2]int{{-100, 100}, {-Infinity + 1, Infinity - 1}, {50, 51}} {
		got := quiescence(b, 0, w[0], w[1])
		if got < w[0] || got > w[1] {
			t.Errorf("quiescence window [%d, %d]: score %d escaped", w[0], w[1], got)
		}
	}
}

func TestRookUpScoresHigh(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	legalMoves := b.LegalMoves()
	var pv pvLine
	bestIndex, bestScore := getBestMoveAtDepth(b, legalMoves, 5, &pv)
	if bestIndex == -1 {
		t.Fatal("search aborted")
	}
	// A full rook up: comfortably winning in centipawn terms.
	if cp := bestScore * 100 / PawnValueEG; cp < 400 {
		t.Errorf("rook-up score: got %d cp, want >= 400", cp)
	}
}

func TestPawnEndgameProducesLegalMove(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	best := GetBestMove(b, ModeDepth, 4)
	if best == board.NullMove {
		t.Fatal("no best move returned")
	}
	found := false
	for _, m := range b.LegalMoves() {
		if m == best {
			found = true
		}
	}
	if !found {
		t.Errorf("best move %v is not legal here", best)
	}
}

func TestNoLegalMovesAtRoot(t *testing.T) {
	resetSearchState()
	// Checkmate at the root: the driver reports NullMove, the UCI layer
	// deals with it.
	b := board.MustParseFEN("7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	if got := GetBestMove(b, ModeDepth, 3); got != board.NullMove {
		t.Errorf("mated root: got %v want null move", got)
	}
}

func TestStopReturnsCommittedMove(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN(board.StartPos)
	// Stop raised 50 ms into a long timed search: the best move committed
	// so far (at worst the first legal move) is still returned.
	done := make(chan board.Move, 1)
	go func() {
		done <- GetBestMove(b, ModeTime, 60_000)
	}()
	time.Sleep(50 * time.Millisecond)
	Stop()
	select {
	case best := <-done:
		if best == board.NullMove {
			t.Error("stopped search returned no move")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("search did not stop")
	}
}

func TestMovetimeTerminates(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN(board.StartPos)
	start := time.Now()
	best := GetBestMove(b, ModeTime, 150)
	if best == board.NullMove {
		t.Fatal("no move from a timed search")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("movetime 150 took %v", elapsed)
	}
}

func TestTypeOneCollisionSurvived(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	// Poison the table: a plausible-looking move from a different position
	// stored under this position's key.
	foreign := board.NewMove(board.SquareAt(0, 4), board.SquareAt(0, 0), board.Queen, board.None, board.None, board.FlagNone)
	transTable.add(b.Key(), 2, foreign, 50, CutNode, 0, 0)

	var pv pvLine
	got := pvs(b, 3, -200, 200, &pv)
	if got < -200 || got > 200 {
		t.Errorf("score %d escaped the window after a poisoned hash move", got)
	}
}

func TestDeepeningFindsMateInQvK(t *testing.T) {
	resetSearchState()
	// Queen versus cornered king; deepening must land on a mate score.
	b := board.MustParseFEN("6k1/Q7/6K1/8/8/8/8/8 w - - 0 1")
	legalMoves := b.LegalMoves()
	foundMate := false
	for depth := 1; depth <= 4 && !foundMate; depth++ {
		searchParams.reset()
		var pv pvLine
		bestIndex, bestScore := getBestMoveAtDepth(b, legalMoves, depth, &pv)
		if bestIndex == -1 {
			t.Fatal("search aborted")
		}
		legalMoves[0], legalMoves[bestIndex] = legalMoves[bestIndex], legalMoves[0]
		if bestScore >= MateScore-MaxDepth {
			foundMate = true
		}
	}
	if !foundMate {
		t.Error("no mate score found for queen versus king by depth 4")
	}
}

func TestPVStartsWithBestMove(t *testing.T) {
	resetSearchState()
	b := board.MustParseFEN("r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10")
	legalMoves := b.LegalMoves()
	var pv pvLine
	bestIndex, _ := getBestMoveAtDepth(b, legalMoves, 4, &pv)
	if bestIndex == -1 {
		t.Fatal("search aborted")
	}
	if pv.length == 0 {
		t.Fatal("empty principal variation")
	}
	if pv.moves[0] != legalMoves[bestIndex] {
		t.Errorf("pv head %v does not match best move %v", pv.moves[0], legalMoves[bestIndex])
	}
	// Replay the PV: every move must be legal in sequence.
	pos := b.StaticCopy()
	for i := 0; i < pv.length; i++ {
		legal := false
		for _, m := range pos.LegalMoves() {
			if m == pv.moves[i] {
				legal = true
				break
			}
		}
		if !legal {
			t.Fatalf("pv move %d (%v) illegal after %q", i, pv.moves[i], pos.FEN())
		}
		pos.DoMove(pv.moves[i])
	}
}

func TestFormatScore(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{MateScore - 1, "mate 1"},
		{MateScore - 3, "mate 2"},
		{-MateScore + 2, "mate -1"},
		{-MateScore + 4, "mate -2"},
		{PawnValueEG, "cp 100"},
		{0, "cp 0"},
	}
	for _, tc := range cases {
		if got := formatScore(tc.score); got != tc.want {
			t.Errorf("formatScore(%d): got %q want %q", tc.score, got, tc.want)
		}
	}
}

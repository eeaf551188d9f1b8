package engine

import (
	"time"

	"github.com/xoto10/laser-chess-engine/board"
)

// SearchParameters is the per-search mutable state threaded through the
// whole tree: the current ply, the killer and history tables, the null-move
// chain counter, and the clock.
type SearchParameters struct {
	ply            int
	rootMoveNumber uint8
	nullMoveCount  int

	killers [MaxDepth + 1][2]board.Move

	// historyTable[side][piece type][to square], fed depth*depth on quiet
	// cutoffs and drained by reduceBadHistories; never below zero.
	historyTable [2][7][64]int

	startTime time.Time
	timeLimit time.Duration
}

// reset clears the transient per-iteration state. The history table and the
// root move number survive across iterations and searches.
func (sp *SearchParameters) reset() {
	sp.ply = 0
	sp.nullMoveCount = 0
	for ply := range sp.killers {
		sp.killers[ply][0] = board.NullMove
		sp.killers[ply][1] = board.NullMove
	}
}

// ageHistoryTable halves every history counter, so stale search experience
// fades instead of drowning out fresh results.
func (sp *SearchParameters) ageHistoryTable() {
	for side := 0; side < 2; side++ {
		for piece := 0; piece < 7; piece++ {
			for sq := 0; sq < 64; sq++ {
				sp.historyTable[side][piece][sq] /= 2
			}
		}
	}
}

func (sp *SearchParameters) resetHistoryTable() {
	for side := 0; side < 2; side++ {
		for piece := 0; piece < 7; piece++ {
			for sq := 0; sq < 64; sq++ {
				sp.historyTable[side][piece][sq] = 0
			}
		}
	}
}

func (sp *SearchParameters) historyScore(c board.Color, m board.Move) int {
	return sp.historyTable[c][m.MovedPiece()][m.To()]
}

func (sp *SearchParameters) rewardHistory(c board.Color, m board.Move, depth int) {
	sp.historyTable[c][m.MovedPiece()][m.To()] += depth * depth
}

func (sp *SearchParameters) punishHistory(c board.Color, m board.Move, depth int) {
	entry := &sp.historyTable[c][m.MovedPiece()][m.To()]
	*entry -= depth * depth
	if *entry < 0 {
		*entry = 0
	}
}

// recordKiller shifts a fresh quiet cutoff move into the first killer slot,
// keeping the two slots distinct.
func (sp *SearchParameters) recordKiller(m board.Move) {
	if sp.ply > MaxDepth {
		return
	}
	if sp.killers[sp.ply][0] != m {
		sp.killers[sp.ply][1] = sp.killers[sp.ply][0]
		sp.killers[sp.ply][0] = m
	}
}

func (sp *SearchParameters) isKiller(m board.Move) bool {
	if sp.ply > MaxDepth {
		return false
	}
	return m == sp.killers[sp.ply][0] || m == sp.killers[sp.ply][1]
}

func (sp *SearchParameters) elapsed() time.Duration {
	return time.Since(sp.startTime)
}

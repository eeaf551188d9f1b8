package engine

import (
	"fmt"
	"os"
)

// SearchStatistics collects the diagnostic counters printed to stderr when
// a search finishes.
type SearchStatistics struct {
	nodes uint64

	hashProbes, hashHits, hashScoreCuts uint64
	hashMoveAttempts, hashMoveCuts      uint64

	failHighs, firstFailHighs uint64

	qsNodes                       uint64
	qsFailHighs, qsFirstFailHighs uint64
}

func (st *SearchStatistics) reset() {
	*st = SearchStatistics{}
}

func percentage(numerator, denominator uint64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator*10000/denominator) / 100
}

// printStatistics dumps the counters gathered during the last search.
// Diagnostics only, so stderr: GUIs must not see this on the UCI channel.
func (st *SearchStatistics) printStatistics() {
	w := os.Stderr
	fmt.Fprintf(w, "%22s %.2f%% of %d probes\n", "Hash hitrate:",
		percentage(st.hashHits, st.hashProbes), st.hashProbes)
	fmt.Fprintf(w, "%22s %.2f%% of %d hash hits\n", "Hash score cut rate:",
		percentage(st.hashScoreCuts, st.hashHits), st.hashHits)
	fmt.Fprintf(w, "%22s %.2f%% of %d hash moves\n", "Hash move cut rate:",
		percentage(st.hashMoveCuts, st.hashMoveAttempts), st.hashMoveAttempts)
	fmt.Fprintf(w, "%22s %.2f%% of %d fail highs\n", "First fail high rate:",
		percentage(st.firstFailHighs, st.failHighs), st.failHighs)
	fmt.Fprintf(w, "%22s %d (%.2f%%)\n", "QS Nodes:",
		st.qsNodes, percentage(st.qsNodes, st.nodes))
	fmt.Fprintf(w, "%22s %.2f%% of %d qs fail highs\n", "QS FFH rate:",
		percentage(st.qsFirstFailHighs, st.qsFailHighs), st.qsFailHighs)
}

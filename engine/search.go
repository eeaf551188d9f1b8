package engine

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/xoto10/laser-chess-engine/board"
)

// Search modes for GetBestMove.
const (
	ModeTime  = iota // value is the move budget in milliseconds
	ModeDepth        // value is the target depth
)

// maxSearchTime caps depth-limited searches that carry no clock.
const maxSearchTime = 24 * time.Hour

var (
	transTable   = NewTransTable(DefaultHashMB)
	searchParams SearchParameters
	searchStats  SearchStatistics

	// The one cancellation channel between the UCI thread and the search:
	// raised by Stop or by the hard time limit, observed once per move loop.
	isStop atomic.Bool
)

// Stop asks the running search to unwind. The best move committed so far is
// still returned.
func Stop() { isStop.Store(true) }

// ClearTables forgets everything learned in previous games.
func ClearTables() {
	transTable.Clear()
	searchParams.resetHistoryTable()
}

// SetHashSize reallocates the transposition table, in megabytes.
func SetHashSize(megabytes int) {
	transTable.resize(megabytes)
}

// pvLine is a principal variation built bottom-up: every PV node prepends
// its best move to the child's line.
type pvLine struct {
	moves  [MaxDepth + 1]board.Move
	length int
}

func (pv *pvLine) clear() { pv.length = 0 }

func changePV(best board.Move, parent, child *pvLine) {
	parent.moves[0] = best
	copy(parent.moves[1:], child.moves[:child.length])
	parent.length = child.length + 1
}

func (pv *pvLine) String() string {
	var sb strings.Builder
	for i := 0; i < pv.length; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(pv.moves[i].String())
	}
	return sb.String()
}

// formatScore renders a score for UCI output: a mate distance in moves when
// the score is in mate range, centipawns otherwise.
func formatScore(score int) string {
	if score >= MateScore-MaxDepth {
		// Our own move delivers the mate, hence the +1.
		return fmt.Sprintf("mate %d", (MateScore-score)/2+1)
	}
	if score <= -MateScore+MaxDepth {
		return fmt.Sprintf("mate %d", -(MateScore+score)/2)
	}
	return fmt.Sprintf("cp %d", score*100/PawnValueEG)
}

// GetBestMove runs the iterative deepening loop on a position and returns
// the move to play, NullMove when there is none (mate or stalemate at the
// root). The board itself is never modified.
func GetBestMove(b *board.Board, mode, value int) board.Move {
	searchParams.reset()
	searchStats.reset()
	isStop.Store(false)
	searchParams.rootMoveNumber = uint8(b.FullmoveNumber())

	legalMoves := b.LegalMoves()
	if len(legalMoves) == 0 {
		return board.NullMove
	}
	bestMove := legalMoves[0]

	if mode == ModeTime {
		searchParams.timeLimit = time.Duration(MaxTimeFactor*float64(value)) * time.Millisecond
	} else {
		searchParams.timeLimit = maxSearchTime
	}
	searchParams.startTime = time.Now()

	for rootDepth := 1; rootDepth <= MaxDepth; rootDepth++ {
		// Killers and plies restart each iteration; history persists.
		searchParams.reset()

		var pv pvLine
		bestIndex, bestScore := getBestMoveAtDepth(b, legalMoves, rootDepth, &pv)
		if bestIndex == -1 {
			break
		}

		// The winner is searched first next iteration.
		legalMoves[0], legalMoves[bestIndex] = legalMoves[bestIndex], legalMoves[0]
		bestMove = legalMoves[0]

		elapsed := searchParams.elapsed()
		ms := elapsed.Milliseconds()
		nps := uint64(float64(searchStats.nodes) / (float64(elapsed)/float64(time.Second) + 1e-9))
		fmt.Printf("info depth %d score %s time %d nodes %d nps %d hashfull %d pv %s\n",
			rootDepth, formatScore(bestScore), ms, searchStats.nodes, nps,
			transTable.hashfull(), pv.String())

		if mode == ModeDepth && rootDepth >= value {
			break
		}
		if mode == ModeTime && float64(ms) >= TimeFactor*float64(value) {
			break
		}
	}

	searchStats.printStatistics()
	searchParams.ageHistoryTable()
	isStop.Store(true)
	return bestMove
}

// getBestMoveAtDepth searches the root move list at a fixed depth and
// returns the index of the best move, or -1 when the search was stopped
// before any move completed. The first move always gets the full window so
// there is a trusted best move even on a fail low.
func getBestMoveAtDepth(b *board.Board, legalMoves []board.Move, depth int, pv *pvLine) (int, int) {
	var line pvLine
	bestIndex := -1
	alpha, beta := -MateScore, MateScore

	for i, m := range legalMoves {
		if isStop.Load() {
			return bestIndex, alpha
		}

		child := b.StaticCopy()
		child.DoMove(m)
		searchStats.nodes++

		var score int
		if i == 0 {
			searchParams.ply++
			score = -pvs(&child, depth-1, -beta, -alpha, &line)
			searchParams.ply--
		} else {
			searchParams.ply++
			score = -pvs(&child, depth-1, -alpha-1, -alpha, &line)
			searchParams.ply--
			if alpha < score && score < beta {
				searchParams.ply++
				score = -pvs(&child, depth-1, -beta, -alpha, &line)
				searchParams.ply--
			}
		}
		if isStop.Load() {
			return bestIndex, alpha
		}

		if score > alpha {
			alpha = score
			bestIndex = i
			changePV(m, pv, &line)
		}
	}

	return bestIndex, alpha
}

/*
pvs is the principal variation search: the first move of a node gets the
full window, the rest prove themselves against a null window and are only
re-searched when they land inside (alpha, beta). Fail-hard, so the result
is always within [alpha, beta].
*/
func pvs(b *board.Board, depth, alpha, beta int, pv *pvLine) int {
	// The frontier: resolve tactics before trusting the evaluation.
	if depth <= 0 {
		pv.clear()
		return quiescence(b, 0, alpha, beta)
	}

	if b.IsDraw() {
		return clampScore(0, alpha, beta)
	}
	if searchParams.ply >= MaxDepth {
		return clampScore(evalForSide(b), alpha, beta)
	}

	prevAlpha := alpha
	color := b.SideToMove()
	var line pvLine

	// ------------------------------------------------------------------
	// Transposition table probe. All-node entries can bound us below
	// alpha outright; others contribute a hash move, which is validated
	// against a copy (Type-1 collisions hand us moves from foreign
	// positions) and searched first at full window. An exact-score
	// cutoff for PV entries is deliberately not taken: it truncates
	// principal variations for a speedup this engine does not want.
	// ------------------------------------------------------------------
	hashed := board.NullMove
	searchStats.hashProbes++
	if entry := transTable.get(b.Key()); entry != nil {
		searchStats.hashHits++
		hashScore := scoreFromTT(int(entry.score), searchParams.ply)
		if entry.nodeType == AllNode {
			if int(entry.depth) >= depth && hashScore <= alpha {
				searchStats.hashScoreCuts++
				return alpha
			}
		} else {
			hashed = entry.move
			if int(entry.depth) >= depth && entry.nodeType == CutNode && hashScore >= beta {
				searchStats.hashScoreCuts++
				searchStats.failHighs++
				searchStats.firstFailHighs++
				return beta
			}
			child := b.StaticCopy()
			if child.DoHashMove(hashed) {
				searchStats.hashMoveAttempts++
				searchStats.nodes++
				searchParams.ply++
				score := -pvs(&child, depth-1, -beta, -alpha, &line)
				searchParams.ply--
				if isStop.Load() {
					return -Infinity
				}
				if score >= beta {
					searchStats.hashMoveCuts++
					return beta
				}
				if score > alpha {
					alpha = score
					changePV(hashed, pv, &line)
				}
			} else {
				fmt.Fprintf(os.Stderr, "Type-1 hash collision on %v\n", hashed)
				hashed = board.NullMove
			}
		}
	}

	isPVNode := beta-alpha != 1
	isInCheck := b.InCheck(color)
	staticEval := evalForSide(b)

	// ------------------------------------------------------------------
	// Null move pruning: hand the opponent a free tempo; if the position
	// still busts beta, the real move surely would. Off in check, off on
	// PV nodes, off without pieces (zugzwang), and never more than two
	// nulls on one path.
	// ------------------------------------------------------------------
	if depth >= 3 && !isPVNode && !isInCheck && searchParams.nullMoveCount < 2 &&
		staticEval >= beta && b.NonPawnMaterial(color) > 0 {
		reduction := 2
		if depth >= 11 {
			reduction = 4
		} else if depth >= 6 {
			reduction = 3
		}
		// Further ahead, reduce more, but never drop straight into the
		// quiescence search.
		reduction = min(depth-2, reduction+(staticEval-beta)/PawnValue)

		child := b.StaticCopy()
		child.DoNullMove()
		searchParams.nullMoveCount++
		searchParams.ply++
		nullScore := -pvs(&child, depth-1-reduction, -beta, -beta+1, &line)
		searchParams.ply--
		searchParams.nullMoveCount--
		if isStop.Load() {
			return -Infinity
		}
		if nullScore >= beta {
			return beta
		}
	}

	// Reverse futility: at the last plies, a static eval far above beta
	// fails high without searching. The opponent would not have walked in
	// here voluntarily.
	if !isPVNode && !isInCheck && depth <= 2 &&
		staticEval-reverseFutilityMargin[depth] >= beta && b.NonPawnMaterial(color) > 0 {
		return beta
	}

	ss := newSearchSpace(b, depth, isPVNode, isInCheck, &searchParams)
	ss.generateMoves(hashed)

	toHash := board.NullMove
	movesSearched := 0
	if hashed != board.NullMove {
		movesSearched = 1
	}
	score := -Infinity

	for m := ss.nextMove(); m != board.NullMove; m = ss.nextMove() {
		if searchParams.elapsed() > searchParams.timeLimit {
			isStop.Store(true)
		}
		if isStop.Load() {
			return -Infinity
		}

		// Futility: well below alpha, a quiet move will not save the
		// node, so skip the quiescence confirmation. Checks, captures,
		// promotions, and near-mate windows are exempt.
		if depth <= 3 && staticEval <= alpha-futilityMargin[depth] &&
			ss.nodeIsReducible() && !m.IsCapture() && abs(alpha) < QueenValue &&
			!m.IsPromotion() && !b.IsCheckMove(m) {
			score = alpha
			continue
		}

		reduction := 0
		child := b.StaticCopy()
		if !child.DoPseudoLegalMove(m) {
			continue
		}
		searchStats.nodes++

		// Late move reduction: alpha untouched after the first few moves
		// marks a likely all-node, so the stragglers get a shallower look.
		if ss.nodeIsReducible() && !m.IsCapture() && depth >= 3 && movesSearched > 2 &&
			alpha <= prevAlpha && !searchParams.isKiller(m) && !m.IsPromotion() &&
			!child.InCheck(child.SideToMove()) {
			reduction = min(depth-2,
				int((float64(depth)-3.0)/4.0+float64(movesSearched)/9.5))
		}

		if movesSearched != 0 {
			searchParams.ply++
			score = -pvs(&child, depth-1-reduction, -alpha-1, -alpha, &line)
			searchParams.ply--
			// Re-searches always run at full depth.
			if alpha < score && score < beta {
				searchParams.ply++
				score = -pvs(&child, depth-1, -beta, -alpha, &line)
				searchParams.ply--
			}
		} else {
			searchParams.ply++
			score = -pvs(&child, depth-1, -beta, -alpha, &line)
			searchParams.ply--
		}
		if isStop.Load() {
			return -Infinity
		}

		if score >= beta {
			searchStats.failHighs++
			if movesSearched == 0 {
				searchStats.firstFailHighs++
			}
			transTable.add(b.Key(), depth, m, beta, CutNode,
				searchParams.rootMoveNumber, searchParams.ply)
			if !m.IsCapture() {
				searchParams.recordKiller(m)
				searchParams.rewardHistory(color, m, depth)
				ss.reduceBadHistories(m)
			}
			return beta
		}
		if score > alpha {
			alpha = score
			toHash = m
			changePV(m, pv, &line)
		}

		movesSearched++
	}

	// Nothing legal at this node. When a valid hash move was searched the
	// position cannot be mate, so only a truly empty node is scored here.
	if score == -Infinity && movesSearched == 0 {
		return scoreMate(isInCheck, alpha, beta)
	}

	if toHash != board.NullMove && prevAlpha < alpha && alpha < beta {
		// A new principal variation; exact scores are always worth hashing.
		transTable.add(b.Key(), depth, toHash, alpha, PVNode,
			searchParams.rootMoveNumber, searchParams.ply)
		if !toHash.IsCapture() {
			searchParams.rewardHistory(color, toHash, depth)
			ss.reduceBadHistories(toHash)
		}
	} else if alpha <= prevAlpha {
		// All-node: no best move exists in a fail-hard framework, but the
		// upper bound alone saves plenty of future work.
		transTable.add(b.Key(), depth, board.NullMove, alpha, AllNode,
			searchParams.rootMoveNumber, searchParams.ply)
	}

	return alpha
}

// scoreMate scores a node without legal moves: checkmate adjusted so nearer
// mates win, stalemate as a dead draw. Clamped into the fail-hard window.
func scoreMate(isInCheck bool, alpha, beta int) int {
	score := 0
	if isInCheck {
		score = -MateScore + searchParams.ply
	}
	return clampScore(score, alpha, beta)
}

func evalForSide(b *board.Board) int {
	eval := b.Evaluate()
	if b.SideToMove() == board.Black {
		return -eval
	}
	return eval
}

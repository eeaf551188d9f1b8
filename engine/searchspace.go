package engine

import (
	"golang.org/x/exp/slices"

	"github.com/xoto10/laser-chess-engine/board"
)

// Move ordering phases. The hash move is not a phase here: it has already
// been searched during the table probe and is excluded from iteration.
const (
	phaseCaptures = iota // winning and equal captures plus promotions, MVV/LVA
	phaseKiller1
	phaseKiller2
	phaseQuiets         // history-ordered
	phaseLosingCaptures // SEE < 0, deferred to the very end
	phaseDone
)

type scoredMove struct {
	move  board.Move
	score int
}

// SearchSpace is a stateful iterator over the ordered pseudo-legal moves of
// one node. Generation is delegated to the board; this type only ranks,
// phases, and filters.
type SearchSpace struct {
	b         *board.Board
	color     board.Color
	depth     int
	pvNode    bool
	isInCheck bool
	params    *SearchParameters

	hashed board.Move
	phase  int
	index  int

	captures       []scoredMove
	losingCaptures []board.Move
	quiets         []board.Move

	// Quiet moves handed out so far, for the bad-history decay on cutoff.
	quietsTried []board.Move
}

func newSearchSpace(b *board.Board, depth int, pvNode, isInCheck bool, params *SearchParameters) *SearchSpace {
	return &SearchSpace{
		b:         b,
		color:     b.SideToMove(),
		depth:     depth,
		pvNode:    pvNode,
		isInCheck: isInCheck,
		params:    params,
	}
}

// generateMoves prepares all phases. The hash move, already searched by the
// caller, is dropped everywhere.
func (ss *SearchSpace) generateMoves(hashed board.Move) {
	ss.hashed = hashed
	ss.phase = phaseCaptures

	tacticals := ss.b.PseudoLegalCaptures()
	tacticals = append(tacticals, ss.b.PseudoLegalPromotions()...)
	ss.captures = make([]scoredMove, 0, len(tacticals))
	for _, m := range tacticals {
		if m == hashed {
			continue
		}
		if m.IsCapture() && ss.b.ExchangeScore(m) < 0 && ss.b.SEE(ss.color, m.To()) < 0 {
			ss.losingCaptures = append(ss.losingCaptures, m)
			continue
		}
		ss.captures = append(ss.captures, scoredMove{m, ss.b.MVVLVAScore(m)})
	}

	ss.quiets = ss.b.PseudoLegalQuiets()
	if hashed != board.NullMove {
		for i, m := range ss.quiets {
			if m == hashed {
				ss.quiets = append(ss.quiets[:i], ss.quiets[i+1:]...)
				break
			}
		}
	}
	params := ss.params
	slices.SortStableFunc(ss.quiets, func(a, b board.Move) int {
		return params.historyScore(ss.color, b) - params.historyScore(ss.color, a)
	})
}

// nextMove hands out the next move in order, NullMove when exhausted.
func (ss *SearchSpace) nextMove() board.Move {
	for {
		switch ss.phase {
		case phaseCaptures:
			if ss.index < len(ss.captures) {
				orderNextMove(ss.captures, ss.index)
				m := ss.captures[ss.index].move
				ss.index++
				return m
			}
			ss.phase = phaseKiller1

		case phaseKiller1, phaseKiller2:
			slot := ss.phase - phaseKiller1
			ss.phase++
			if ss.phase == phaseQuiets {
				ss.index = 0
			}
			if ss.params.ply > MaxDepth {
				continue
			}
			killer := ss.params.killers[ss.params.ply][slot]
			if killer == board.NullMove || killer == ss.hashed {
				continue
			}
			if slot == 1 && killer == ss.params.killers[ss.params.ply][0] {
				continue
			}
			// A killer from a sibling node may not exist here at all;
			// only hand it out if it is a pseudo-legal quiet move.
			if i := slices.Index(ss.quiets, killer); i >= 0 {
				ss.quiets = append(ss.quiets[:i], ss.quiets[i+1:]...)
				ss.quietsTried = append(ss.quietsTried, killer)
				return killer
			}

		case phaseQuiets:
			if ss.index < len(ss.quiets) {
				m := ss.quiets[ss.index]
				ss.index++
				ss.quietsTried = append(ss.quietsTried, m)
				return m
			}
			ss.phase, ss.index = phaseLosingCaptures, 0

		case phaseLosingCaptures:
			if ss.index < len(ss.losingCaptures) {
				m := ss.losingCaptures[ss.index]
				ss.index++
				return m
			}
			ss.phase = phaseDone

		default:
			return board.NullMove
		}
	}
}

// nodeIsReducible authorizes late-move reductions and futility pruning:
// never on PV nodes, never in check.
func (ss *SearchSpace) nodeIsReducible() bool {
	return !ss.pvNode && !ss.isInCheck
}

// reduceBadHistories walks the quiet moves this node tried before finding a
// cutoff and drains their history entries, so moves that keep getting
// refuted sink down the ordering.
func (ss *SearchSpace) reduceBadHistories(bestMove board.Move) {
	for _, m := range ss.quietsTried {
		if m != bestMove {
			ss.params.punishHistory(ss.color, m, ss.depth)
		}
	}
}

// orderNextMove brings the highest-scored remaining move to position index:
// one step of a selection sort, so an early cutoff never pays for sorting
// the tail.
func orderNextMove(moves []scoredMove, index int) {
	best := index
	for i := index + 1; i < len(moves); i++ {
		if moves[i].score > moves[best].score {
			best = i
		}
	}
	moves[index], moves[best] = moves[best], moves[index]
}

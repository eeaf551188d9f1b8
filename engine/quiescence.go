package engine

import "github.com/xoto10/laser-chess-engine/board"

/*
Quiescence search resolves captures, promotions, and first-ply checks so the
static evaluation is never taken on a tactically hanging position. Delta
pruning and SEE keep the tree small. Fail-hard: the result stays inside
[alpha, beta].
*/
func quiescence(b *board.Board, plies, alpha, beta int) int {
	color := b.SideToMove()
	if b.InCheck(color) {
		return checkQuiescence(b, plies, alpha, beta)
	}

	// Stand pat, cheapest approximation first: material alone decides the
	// far-out cutoffs, the positional term is only added when it can matter.
	standPat := b.EvaluateMaterial()
	if color == board.Black {
		standPat = -standPat
	}
	if standPat >= beta+MaxPosScore {
		return beta
	}
	if standPat < alpha-2*MaxPosScore-QueenValue {
		return alpha
	}

	positional := b.EvaluatePositional()
	if color == board.Black {
		positional = -positional
	}
	standPat += positional

	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if standPat < alpha-MaxPosScore-QueenValue {
		return alpha
	}

	captures := b.PseudoLegalCaptures()
	scored := make([]scoredMove, len(captures))
	for i, m := range captures {
		scored[i] = scoredMove{m, b.MVVLVAScore(m)}
	}

	searched := 0
	for i := 0; i < len(scored); i++ {
		if isStop.Load() {
			return -Infinity
		}
		orderNextMove(scored, i)
		m := scored[i].move

		// Delta prune: even winning the victim outright cannot reach alpha.
		if standPat+board.ValueOfPieceType(m.CapturedPiece()) < alpha-MaxPosScore {
			continue
		}
		// SEE prune: the exchange loses serious material.
		if b.ExchangeScore(m) < 0 && b.SEE(color, m.To()) < -MaxPosScore {
			continue
		}

		child := b.StaticCopy()
		if !child.DoPseudoLegalMove(m) {
			continue
		}
		searchStats.nodes++
		searchStats.qsNodes++
		score := -quiescence(&child, plies+1, -beta, -alpha)

		if score >= beta {
			searchStats.qsFailHighs++
			if searched == 0 {
				searchStats.qsFirstFailHighs++
			}
			return beta
		}
		if score > alpha {
			alpha = score
		}
		searched++
	}

	for _, m := range b.PseudoLegalPromotions() {
		if isStop.Load() {
			return -Infinity
		}
		if b.SEE(color, m.To()) < 0 {
			continue
		}

		child := b.StaticCopy()
		if !child.DoPseudoLegalMove(m) {
			continue
		}
		searchStats.nodes++
		searchStats.qsNodes++
		score := -quiescence(&child, plies+1, -beta, -alpha)

		if score >= beta {
			searchStats.qsFailHighs++
			if searched == 0 {
				searchStats.qsFirstFailHighs++
			}
			return beta
		}
		if score > alpha {
			alpha = score
		}
		searched++
	}

	// Checking moves, only on the first quiescence ply: one free tempo to
	// spot a forced sequence, not an unbounded check chase.
	if plies <= 0 {
		for _, m := range b.PseudoLegalChecks() {
			if isStop.Load() {
				return -Infinity
			}
			child := b.StaticCopy()
			if !child.DoPseudoLegalMove(m) {
				continue
			}
			searchStats.nodes++
			searchStats.qsNodes++
			score := -checkQuiescence(&child, plies+1, -beta, -alpha)

			if score >= beta {
				searchStats.qsFailHighs++
				if searched == 0 {
					searchStats.qsFirstFailHighs++
				}
				return beta
			}
			if score > alpha {
				alpha = score
			}
			searched++
		}
	}

	return alpha
}

// checkQuiescence searches evasions when the side to move is in check.
// There is no stand pat: passing is not an option while checked. Running
// out of evasions is checkmate.
func checkQuiescence(b *board.Board, plies, alpha, beta int) int {
	score := -Infinity

	for _, m := range b.CheckEscapes() {
		if isStop.Load() {
			return -Infinity
		}
		child := b.StaticCopy()
		if !child.DoPseudoLegalMove(m) {
			continue
		}
		searchStats.nodes++
		searchStats.qsNodes++
		score = -quiescence(&child, plies+1, -beta, -alpha)

		if score >= beta {
			searchStats.qsFailHighs++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	if score == -Infinity {
		// Deeper mates score worse than shallow ones.
		return clampScore(-MateScore+searchParams.ply+plies, alpha, beta)
	}
	return alpha
}

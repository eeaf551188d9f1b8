package board

import "math/bits"

// Exchange values used by SEE and the pruning margins. The king value only
// needs to dominate every possible swap sequence.
var seePieceValues = [7]int{0, 100, 400, 400, 600, 1150, 10000}

// ValueOfPiece returns the exchange value of a piece.
func ValueOfPiece(p Piece) int { return seePieceValues[p.Type()] }

// ValueOfPieceType returns the exchange value of a colorless piece type.
func ValueOfPieceType(t PieceType) int { return seePieceValues[t] }

// Most Valuable Victim / Least Valuable Attacker capture ordering table,
// indexed [victim][attacker].
var mvvLVA = [7][7]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 9}, // victim pawn
	{0, 24, 23, 22, 21, 20, 19}, // victim knight
	{0, 34, 33, 32, 31, 30, 29}, // victim bishop
	{0, 44, 43, 42, 41, 40, 39}, // victim rook
	{0, 54, 53, 52, 51, 50, 49}, // victim queen
	{0, 0, 0, 0, 0, 0, 0},
}

// MVVLVAScore ranks a capture for ordering purposes. Queen promotions are
// lifted above every plain capture.
func (b *Board) MVVLVAScore(m Move) int {
	score := mvvLVA[m.CapturedPiece()][m.MovedPiece()]
	if promo := m.Promotion(); promo != None {
		score += 50 + seePieceValues[promo]/10
	}
	return score
}

// ExchangeScore is the cheap first-pass exchange estimate for a capture:
// victim value minus attacker value. Negative means the capture grabs a
// cheaper piece with a more expensive one and deserves a real SEE look.
func (b *Board) ExchangeScore(m Move) int {
	return seePieceValues[m.CapturedPiece()] - seePieceValues[m.MovedPiece()]
}

func (b *Board) leastAttacker(attackers uint64) (Square, PieceType) {
	for t := Pawn; t <= King; t++ {
		if bb := attackers & b.typeBB(t); bb != 0 {
			return Square(bits.TrailingZeros64(bb)), t
		}
	}
	return NoSquare, None
}

// SEE runs a static exchange evaluation of the capture sequence on sq,
// initiated by c's least valuable attacker. Attacker sets are recomputed
// from the shrinking occupancy each round, which reveals x-ray attackers
// behind the pieces already swapped off.
func (b *Board) SEE(c Color, sq Square) int {
	occ := b.occupied()
	first := b.attackersTo(sq, occ) & b.byColor[c]
	if first == 0 || b.squares[sq] == NoPiece {
		return 0
	}

	var gain [33]int
	d := 0
	gain[0] = seePieceValues[b.squares[sq].Type()]

	attSq, occupant := b.leastAttacker(first)
	occ &^= uint64(1) << attSq
	side := c.Other()

	for d < 31 {
		attackers := b.attackersTo(sq, occ) & b.byColor[side]
		if attackers == 0 {
			break
		}
		attSq, attType := b.leastAttacker(attackers)
		d++
		gain[d] = seePieceValues[occupant] - gain[d-1]
		occupant = attType
		occ &^= uint64(1) << attSq
		side = side.Other()
	}

	// Fold the speculative gains back down: each side may stand pat
	// instead of continuing a losing sequence. The first capture stays
	// forced, so gain[0] is the answer.
	for d > 0 {
		if -gain[d] < gain[d-1] {
			gain[d-1] = -gain[d]
		}
		d--
	}
	return gain[0]
}

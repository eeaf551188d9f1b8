package board

import "math/bits"

// Precomputed attack masks, filled once at package init.
var (
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
	pawnCaptures  [2][64]uint64 // squares a pawn of that color attacks from sq

	// Directional rays excluding the origin. Rook: N, S, E, W.
	// Bishop: NE, NW, SE, SW. N/E/NE/NW grow toward higher indices,
	// the rest toward lower ones.
	rookRays   [64][4]uint64
	bishopRays [64][4]uint64

	// betweenBB[a][b] holds the squares strictly between a and b when they
	// share a rank, file, or diagonal; zero otherwise.
	betweenBB [64][64]uint64
)

func init() {
	initLeaperAttacks()
	initRays()
	initBetween()
}

func initLeaperAttacks() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file, rank := sq&7, sq>>3
		for _, off := range knightOffsets {
			if r, f := rank+off[0], file+off[1]; r >= 0 && r < 8 && f >= 0 && f < 8 {
				knightAttacks[sq] |= uint64(1) << (r*8 + f)
			}
		}
		for _, off := range kingOffsets {
			if r, f := rank+off[0], file+off[1]; r >= 0 && r < 8 && f >= 0 && f < 8 {
				kingAttacks[sq] |= uint64(1) << (r*8 + f)
			}
		}
		if rank < 7 {
			if file > 0 {
				pawnCaptures[White][sq] |= uint64(1) << (sq + 7)
			}
			if file < 7 {
				pawnCaptures[White][sq] |= uint64(1) << (sq + 9)
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnCaptures[Black][sq] |= uint64(1) << (sq - 9)
			}
			if file < 7 {
				pawnCaptures[Black][sq] |= uint64(1) << (sq - 7)
			}
		}
	}
}

func initRays() {
	type dir struct{ dr, df int }
	rookDirs := [4]dir{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs := [4]dir{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for sq := 0; sq < 64; sq++ {
		file, rank := sq&7, sq>>3
		for d, dd := range rookDirs {
			for r, f := rank+dd.dr, file+dd.df; r >= 0 && r < 8 && f >= 0 && f < 8; r, f = r+dd.dr, f+dd.df {
				rookRays[sq][d] |= uint64(1) << (r*8 + f)
			}
		}
		for d, dd := range bishopDirs {
			for r, f := rank+dd.dr, file+dd.df; r >= 0 && r < 8 && f >= 0 && f < 8; r, f = r+dd.dr, f+dd.df {
				bishopRays[sq][d] |= uint64(1) << (r*8 + f)
			}
		}
	}
}

func initBetween() {
	for a := 0; a < 64; a++ {
		for d := 0; d < 4; d++ {
			for ray := rookRays[a][d]; ray != 0; {
				b := bits.TrailingZeros64(ray)
				ray &= ray - 1
				betweenBB[a][b] = rookRays[a][d] &^ rookRays[b][d] &^ (uint64(1) << b)
			}
			for ray := bishopRays[a][d]; ray != 0; {
				b := bits.TrailingZeros64(ray)
				ray &= ray - 1
				betweenBB[a][b] = bishopRays[a][d] &^ bishopRays[b][d] &^ (uint64(1) << b)
			}
		}
	}
}

// rookAttacksFrom computes rook attacks by clipping each ray at its first
// blocker. The directions that grow toward higher indices use the lowest
// blocker bit, the others the highest.
func rookAttacksFrom(sq int, occ uint64) uint64 {
	var attacks uint64
	for d := 0; d < 4; d++ {
		ray := rookRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var first int
			if d == 0 || d == 2 { // N, E
				first = bits.TrailingZeros64(blockers)
			} else { // S, W
				first = 63 - bits.LeadingZeros64(blockers)
			}
			ray &^= rookRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

func bishopAttacksFrom(sq int, occ uint64) uint64 {
	var attacks uint64
	for d := 0; d < 4; d++ {
		ray := bishopRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var first int
			if d == 0 || d == 1 { // NE, NW
				first = bits.TrailingZeros64(blockers)
			} else { // SE, SW
				first = 63 - bits.LeadingZeros64(blockers)
			}
			ray &^= bishopRays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// attackersTo returns the pieces of both colors attacking sq under the given
// occupancy. Pawn attackers are found with the reversed capture masks.
func (b *Board) attackersTo(sq Square, occ uint64) uint64 {
	s := int(sq)
	attackers := pawnCaptures[Black][s]&b.pawns&b.byColor[White] |
		pawnCaptures[White][s]&b.pawns&b.byColor[Black] |
		knightAttacks[s]&b.knights |
		kingAttacks[s]&b.kings
	rq := (b.rooks | b.queens) & occ
	bq := (b.bishops | b.queens) & occ
	if rq != 0 {
		attackers |= rookAttacksFrom(s, occ) & rq
	}
	if bq != 0 {
		attackers |= bishopAttacksFrom(s, occ) & bq
	}
	return attackers & occ
}

// IsSquareAttacked reports whether sq is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isAttackedWithOcc(sq, by, b.byColor[White]|b.byColor[Black])
}

func (b *Board) isAttackedWithOcc(sq Square, by Color, occ uint64) bool {
	s := int(sq)
	them := b.byColor[by]
	// A pawn of `by` attacks sq iff sq attacks it as a pawn of the other color.
	if pawnCaptures[by.Other()][s]&b.pawns&them != 0 {
		return true
	}
	if knightAttacks[s]&b.knights&them != 0 {
		return true
	}
	if kingAttacks[s]&b.kings&them != 0 {
		return true
	}
	if rq := (b.rooks | b.queens) & them; rq != 0 && rookAttacksFrom(s, occ)&rq != 0 {
		return true
	}
	if bq := (b.bishops | b.queens) & them; bq != 0 && bishopAttacksFrom(s, occ)&bq != 0 {
		return true
	}
	return false
}

// InCheck reports whether the given color's king is attacked.
func (b *Board) InCheck(c Color) bool {
	kingBB := b.kings & b.byColor[c]
	if kingBB == 0 {
		return false
	}
	return b.IsSquareAttacked(Square(bits.TrailingZeros64(kingBB)), c.Other())
}

func (b *Board) kingSquare(c Color) Square {
	return Square(bits.TrailingZeros64(b.kings & b.byColor[c]))
}

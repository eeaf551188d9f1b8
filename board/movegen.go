package board

import "math/bits"

// Generation filters for the shared generator core.
const (
	genAll = iota
	genCaptures   // captures, en passant, capture-promotions
	genQuiets     // non-captures without promotions
	genPromotions // quiet promotions
)

var promoOrder = [4]PieceType{Queen, Knight, Rook, Bishop}

// PseudoLegalMoves generates every pseudo-legal move for the side to move.
// Moves may leave the own king in check; DoPseudoLegalMove filters those.
func (b *Board) PseudoLegalMoves() []Move {
	return b.generateInto(make([]Move, 0, 64), genAll)
}

// PseudoLegalCaptures generates capturing moves, en passant and
// capture-promotions included.
func (b *Board) PseudoLegalCaptures() []Move {
	return b.generateInto(make([]Move, 0, 32), genCaptures)
}

// PseudoLegalPromotions generates quiet (non-capturing) promotions.
func (b *Board) PseudoLegalPromotions() []Move {
	return b.generateInto(make([]Move, 0, 8), genPromotions)
}

// PseudoLegalQuiets generates non-capturing, non-promoting moves.
func (b *Board) PseudoLegalQuiets() []Move {
	return b.generateInto(make([]Move, 0, 48), genQuiets)
}

func (b *Board) generateInto(dst []Move, filter int) []Move {
	us := b.side
	own := b.byColor[us]
	enemy := b.byColor[us.Other()]
	occ := own | enemy

	dst = b.generatePawnMoves(dst, filter, enemy, occ)
	if filter == genPromotions {
		return dst
	}

	targets := ^own
	switch filter {
	case genCaptures:
		targets = enemy
	case genQuiets:
		targets = ^occ
	}

	appendTargets := func(from Square, moved PieceType, attacks uint64) []Move {
		for bb := attacks & targets; bb != 0; {
			to := Square(bits.TrailingZeros64(bb))
			bb &= bb - 1
			dst = append(dst, NewMove(from, to, moved, b.squares[to].Type(), None, FlagNone))
		}
		return dst
	}

	for bb := b.knights & own; bb != 0; {
		from := Square(bits.TrailingZeros64(bb))
		bb &= bb - 1
		dst = appendTargets(from, Knight, knightAttacks[from])
	}
	for bb := b.bishops & own; bb != 0; {
		from := Square(bits.TrailingZeros64(bb))
		bb &= bb - 1
		dst = appendTargets(from, Bishop, bishopAttacksFrom(int(from), occ))
	}
	for bb := b.rooks & own; bb != 0; {
		from := Square(bits.TrailingZeros64(bb))
		bb &= bb - 1
		dst = appendTargets(from, Rook, rookAttacksFrom(int(from), occ))
	}
	for bb := b.queens & own; bb != 0; {
		from := Square(bits.TrailingZeros64(bb))
		bb &= bb - 1
		dst = appendTargets(from, Queen, rookAttacksFrom(int(from), occ)|bishopAttacksFrom(int(from), occ))
	}

	kingFrom := b.kingSquare(us)
	dst = appendTargets(kingFrom, King, kingAttacks[kingFrom])

	if filter == genAll || filter == genQuiets {
		dst = b.generateCastles(dst, occ)
	}
	return dst
}

func (b *Board) generatePawnMoves(dst []Move, filter int, enemy, occ uint64) []Move {
	us := b.side
	push := 8
	promoRank, doubleRank := 7, 1
	if us == Black {
		push = -8
		promoRank, doubleRank = 0, 6
	}

	for bb := b.pawns & b.byColor[us]; bb != 0; {
		from := Square(bits.TrailingZeros64(bb))
		bb &= bb - 1

		if filter != genQuiets && filter != genPromotions {
			for caps := pawnCaptures[us][from] & enemy; caps != 0; {
				to := Square(bits.TrailingZeros64(caps))
				caps &= caps - 1
				victim := b.squares[to].Type()
				if to.Rank() == promoRank {
					for _, promo := range promoOrder {
						dst = append(dst, NewMove(from, to, Pawn, victim, promo, FlagNone))
					}
				} else {
					dst = append(dst, NewMove(from, to, Pawn, victim, None, FlagNone))
				}
			}
			if b.epSquare != NoSquare && pawnCaptures[us][from]&(uint64(1)<<b.epSquare) != 0 {
				dst = append(dst, NewMove(from, b.epSquare, Pawn, Pawn, None, FlagEnPassant))
			}
		}

		if filter == genCaptures {
			continue
		}

		one := Square(int(from) + push)
		if occ&(uint64(1)<<one) != 0 {
			continue
		}
		if one.Rank() == promoRank {
			if filter != genQuiets {
				for _, promo := range promoOrder {
					dst = append(dst, NewMove(from, one, Pawn, None, promo, FlagNone))
				}
			}
			continue
		}
		if filter == genPromotions {
			continue
		}
		dst = append(dst, NewMove(from, one, Pawn, None, None, FlagNone))
		if from.Rank() == doubleRank {
			two := Square(int(one) + push)
			if occ&(uint64(1)<<two) == 0 {
				dst = append(dst, NewMove(from, two, Pawn, None, None, FlagNone))
			}
		}
	}
	return dst
}

// generateCastles emits only fully legal castle moves: rights intact, path
// empty, and neither the king's square nor the squares it crosses attacked.
func (b *Board) generateCastles(dst []Move, occ uint64) []Move {
	us := b.side
	them := us.Other()
	rank := 0
	kingRight, queenRight := castleWhiteKing, castleWhiteQueen
	if us == Black {
		rank = 7
		kingRight, queenRight = castleBlackKing, castleBlackQueen
	}
	e := SquareAt(4, rank)

	if b.castling&kingRight != 0 {
		f, g := SquareAt(5, rank), SquareAt(6, rank)
		if occ&(uint64(1)<<f|uint64(1)<<g) == 0 &&
			!b.IsSquareAttacked(e, them) && !b.IsSquareAttacked(f, them) && !b.IsSquareAttacked(g, them) {
			dst = append(dst, NewMove(e, g, King, None, None, FlagCastle))
		}
	}
	if b.castling&queenRight != 0 {
		bSq, c, d := SquareAt(1, rank), SquareAt(2, rank), SquareAt(3, rank)
		if occ&(uint64(1)<<bSq|uint64(1)<<c|uint64(1)<<d) == 0 &&
			!b.IsSquareAttacked(e, them) && !b.IsSquareAttacked(d, them) && !b.IsSquareAttacked(c, them) {
			dst = append(dst, NewMove(e, c, King, None, None, FlagCastle))
		}
	}
	return dst
}

// LegalMoves plays each pseudo-legal move on a copy and keeps the ones that
// do not leave the own king in check.
func (b *Board) LegalMoves() []Move {
	pseudo := b.PseudoLegalMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		child := b.StaticCopy()
		if child.DoPseudoLegalMove(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move has any legal reply.
func (b *Board) HasLegalMoves() bool {
	for _, m := range b.PseudoLegalMoves() {
		child := b.StaticCopy()
		if child.DoPseudoLegalMove(m) {
			return true
		}
	}
	return false
}

// IsCheckMove reports whether a pseudo-legal move, once played, checks the
// opponent. Illegal moves report false.
func (b *Board) IsCheckMove(m Move) bool {
	child := b.StaticCopy()
	if !child.DoPseudoLegalMove(m) {
		return false
	}
	return child.InCheck(child.side)
}

// PseudoLegalChecks generates quiet moves that give check. Promotions and
// captures are covered by the other quiescence phases.
func (b *Board) PseudoLegalChecks() []Move {
	quiets := b.PseudoLegalQuiets()
	checks := quiets[:0]
	for _, m := range quiets {
		if b.IsCheckMove(m) {
			checks = append(checks, m)
		}
	}
	return checks
}

// CheckEscapes generates the pseudo-legal responses to a check: king moves
// always, plus captures of a single checker and interpositions on its line.
// With two checkers only the king can move.
func (b *Board) CheckEscapes() []Move {
	us := b.side
	kingSq := b.kingSquare(us)
	occ := b.occupied()
	checkers := b.attackersTo(kingSq, occ) & b.byColor[us.Other()]

	all := b.PseudoLegalMoves()
	if checkers == 0 {
		return all
	}
	escapes := all[:0]

	if bits.OnesCount64(checkers) > 1 {
		for _, m := range all {
			if m.MovedPiece() == King && m.Flags() != FlagCastle {
				escapes = append(escapes, m)
			}
		}
		return escapes
	}

	checkerSq := Square(bits.TrailingZeros64(checkers))
	targets := checkers | betweenBB[kingSq][checkerSq]
	for _, m := range all {
		switch {
		case m.MovedPiece() == King:
			if m.Flags() != FlagCastle {
				escapes = append(escapes, m)
			}
		case targets&(uint64(1)<<m.To()) != 0:
			escapes = append(escapes, m)
		case m.Flags() == FlagEnPassant:
			// En passant removes a pawn from a square other than m.To().
			captureSq := m.To() - 8
			if us == Black {
				captureSq = m.To() + 8
			}
			if captureSq == checkerSq {
				escapes = append(escapes, m)
			}
		}
	}
	return escapes
}

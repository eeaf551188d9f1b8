package board

// castleRightsMask[sq] is ANDed into the castling rights whenever a move
// touches sq, clearing the rights a king or rook departure (or rook capture)
// invalidates.
var castleRightsMask = func() [64]uint8 {
	var masks [64]uint8
	for sq := range masks {
		masks[sq] = 0xF
	}
	masks[SquareAt(4, 0)] &^= castleWhiteKing | castleWhiteQueen // e1
	masks[SquareAt(0, 0)] &^= castleWhiteQueen                   // a1
	masks[SquareAt(7, 0)] &^= castleWhiteKing                    // h1
	masks[SquareAt(4, 7)] &^= castleBlackKing | castleBlackQueen // e8
	masks[SquareAt(0, 7)] &^= castleBlackQueen                   // a8
	masks[SquareAt(7, 7)] &^= castleBlackKing                    // h8
	return masks
}()

// DoMove plays a move that is assumed legal, updating bitboards, castling
// rights, the en passant square, clocks, the Zobrist key, and the
// repetition history in place.
func (b *Board) DoMove(m Move) {
	us := b.side
	from, to := m.From(), m.To()

	b.key ^= zobristCastle[b.castling]
	if b.epSquare != NoSquare {
		b.key ^= zobristEPFile[b.epSquare.File()]
		b.epSquare = NoSquare
	}

	irreversible := m.MovedPiece() == Pawn || m.IsCapture()

	switch {
	case m.Flags() == FlagEnPassant:
		// The captured pawn sits behind the target square.
		if us == White {
			b.removePiece(to - 8)
		} else {
			b.removePiece(to + 8)
		}
	case m.IsCapture():
		b.removePiece(to)
	}

	b.removePiece(from)
	if promo := m.Promotion(); promo != None {
		b.putPiece(to, MakePiece(us, promo))
	} else {
		b.putPiece(to, MakePiece(us, m.MovedPiece()))
	}

	if m.Flags() == FlagCastle {
		// The king has already moved; bring the rook across.
		switch to {
		case SquareAt(6, 0): // g1
			b.removePiece(SquareAt(7, 0))
			b.putPiece(SquareAt(5, 0), MakePiece(White, Rook))
		case SquareAt(2, 0): // c1
			b.removePiece(SquareAt(0, 0))
			b.putPiece(SquareAt(3, 0), MakePiece(White, Rook))
		case SquareAt(6, 7): // g8
			b.removePiece(SquareAt(7, 7))
			b.putPiece(SquareAt(5, 7), MakePiece(Black, Rook))
		case SquareAt(2, 7): // c8
			b.removePiece(SquareAt(0, 7))
			b.putPiece(SquareAt(3, 7), MakePiece(Black, Rook))
		}
	}

	b.castling &= castleRightsMask[from] & castleRightsMask[to]
	b.key ^= zobristCastle[b.castling]

	if m.MovedPiece() == Pawn {
		if diff := int(to) - int(from); diff == 16 {
			b.epSquare = from + 8
			b.key ^= zobristEPFile[b.epSquare.File()]
		} else if diff == -16 {
			b.epSquare = from - 8
			b.key ^= zobristEPFile[b.epSquare.File()]
		}
	}

	if irreversible {
		b.rule50 = 0
	} else {
		b.rule50++
	}
	if us == Black {
		b.fullmove++
	}
	b.side = us.Other()
	b.key ^= zobristSideMove

	if irreversible {
		// A fresh slice, not a truncation: sibling copies from the same
		// parent share the old backing array and must keep seeing it.
		b.history = make([]uint64, 0, 8)
	}
	b.history = append(b.history, b.key)
}

// DoPseudoLegalMove plays a pseudo-legal move and reports whether it was
// legal. On false the board is left mid-move and must be discarded; the
// copy-make idiom makes that free.
func (b *Board) DoPseudoLegalMove(m Move) bool {
	mover := b.side
	b.DoMove(m)
	return !b.InCheck(mover)
}

// DoHashMove validates a move coming out of the transposition table against
// the generated pseudo-legal list before playing it. A Type-1 collision
// hands us a move from some other position; it fails the membership test
// (or the legality test) and the board is then only valid for discard.
func (b *Board) DoHashMove(m Move) bool {
	if m == NullMove {
		return false
	}
	found := false
	for _, gen := range b.PseudoLegalMoves() {
		if gen == m {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	return b.DoPseudoLegalMove(m)
}

// DoNullMove passes the turn: the en passant square is cleared, the side to
// move flips. The repetition history is left alone; positions across a null
// move never repeat anyway.
func (b *Board) DoNullMove() {
	if b.epSquare != NoSquare {
		b.key ^= zobristEPFile[b.epSquare.File()]
		b.epSquare = NoSquare
	}
	b.rule50++
	b.side = b.side.Other()
	b.key ^= zobristSideMove
}

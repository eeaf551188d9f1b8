package board

import "testing"

func TestSEEUndefendedPawn(t *testing.T) {
	// exd5 with nothing guarding d5 wins a clean pawn.
	b := MustParseFEN("1k6/8/8/3p4/4P3/8/8/6K1 w - - 0 1")
	if got := b.SEE(White, SquareAt(3, 4)); got != 100 {
		t.Errorf("SEE(d5): got %d want 100", got)
	}
}

func TestSEEDefendedPawnIsEven(t *testing.T) {
	// exd5 cxd5: pawn for pawn.
	b := MustParseFEN("1k6/8/2p5/3p4/4P3/8/8/6K1 w - - 0 1")
	if got := b.SEE(White, SquareAt(3, 4)); got != 0 {
		t.Errorf("SEE(d5): got %d want 0", got)
	}
}

func TestSEEQueenGrabsDefendedPawn(t *testing.T) {
	// Qxd5 cxd5 trades the queen for a pawn.
	b := MustParseFEN("1k6/8/2p5/3p4/8/8/3Q4/6K1 w - - 0 1")
	if got := b.SEE(White, SquareAt(3, 4)); got != 100-1150 {
		t.Errorf("SEE(d5): got %d want %d", got, 100-1150)
	}
}

func TestSEERevealedAttacker(t *testing.T) {
	// Rook behind rook on the d-file: Rxd5 is met by recapture, but the
	// second rook behind the first keeps the sequence winning.
	b := MustParseFEN("1k1r4/8/8/3p4/8/8/8/1K1R3R w - - 0 1")
	// White Rd1xd5, black Rd8xd5: white has no second attacker on d5.
	if got := b.SEE(White, SquareAt(3, 4)); got != 100-600 {
		t.Errorf("SEE(d5) single rook: got %d want %d", got, 100-600)
	}

	// Now stack the rooks: Rd1xd5 Rd8xd5 Rd2(from h1? no) - use a doubled setup.
	b = MustParseFEN("1k1r4/8/8/3p4/8/8/3R4/1K1R4 w - - 0 1")
	// Rd2xd5 Rd8xd5 Rd1xd5: pawn and rook for a rook.
	if got := b.SEE(White, SquareAt(3, 4)); got != 100 {
		t.Errorf("SEE(d5) doubled rooks: got %d want 100", got)
	}
}

func TestExchangeScore(t *testing.T) {
	b := MustParseFEN("1k6/8/2p5/3p4/8/8/3Q4/6K1 w - - 0 1")
	var qxp Move
	for _, m := range b.PseudoLegalCaptures() {
		if m.MovedPiece() == Queen && m.CapturedPiece() == Pawn {
			qxp = m
		}
	}
	if qxp == NullMove {
		t.Fatal("Qxd5 not generated")
	}
	if got := b.ExchangeScore(qxp); got != 100-1150 {
		t.Errorf("ExchangeScore(Qxd5): got %d want %d", got, 100-1150)
	}
}

func TestMVVLVAOrdersVictimsFirst(t *testing.T) {
	// Pawn can take a queen, queen can take a pawn.
	b := MustParseFEN("1k6/8/8/3q4/4P3/8/3Q4/6K1 w - - 0 1")
	var pxq, qxp Move
	for _, m := range b.PseudoLegalCaptures() {
		switch {
		case m.MovedPiece() == Pawn && m.CapturedPiece() == Queen:
			pxq = m
		case m.MovedPiece() == Queen && m.CapturedPiece() == Pawn:
			qxp = m
		}
	}
	if pxq == NullMove {
		t.Fatal("exd5 not generated")
	}
	if qxp != NullMove {
		t.Fatal("queen cannot reach a pawn in this position")
	}
	// Compare table ranks directly instead.
	lowVictim := mvvLVA[Pawn][Queen]
	highVictim := mvvLVA[Queen][Pawn]
	if highVictim <= lowVictim {
		t.Errorf("MVV/LVA: QxP rank %d should trail PxQ rank %d", lowVictim, highVictim)
	}
	if b.MVVLVAScore(pxq) != highVictim {
		t.Errorf("MVVLVAScore(PxQ): got %d want %d", b.MVVLVAScore(pxq), highVictim)
	}
}

func TestQueenPromotionOutranksCaptures(t *testing.T) {
	b := MustParseFEN("1k6/4P3/8/8/8/8/8/6K1 w - - 0 1")
	var promo Move
	for _, m := range b.PseudoLegalPromotions() {
		if m.Promotion() == Queen {
			promo = m
		}
	}
	if promo == NullMove {
		t.Fatal("queen promotion not generated")
	}
	if b.MVVLVAScore(promo) <= mvvLVA[Queen][Pawn] {
		t.Errorf("queen promotion rank %d should beat PxQ rank %d",
			b.MVVLVAScore(promo), mvvLVA[Queen][Pawn])
	}
}

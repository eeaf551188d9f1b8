package board

import "math/rand"

// Zobrist key tables. Indexed by the colored Piece value so a lookup needs
// no color branch.
var (
	zobristPiece    [16][64]uint64
	zobristCastle   [16]uint64
	zobristEPFile   [8]uint64
	zobristSideMove uint64
)

func init() {
	// Fixed seed keeps hashes reproducible across runs and in tests.
	rnd := rand.New(rand.NewSource(0x1a5e2))
	for p := 1; p < 16; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEPFile[f] = rnd.Uint64()
	}
	zobristSideMove = rnd.Uint64()
}

// computeKey rebuilds the hash from scratch. Only used when setting up a
// position; make-move maintains the key incrementally.
func (b *Board) computeKey() uint64 {
	var key uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	if b.side == Black {
		key ^= zobristSideMove
	}
	key ^= zobristCastle[b.castling]
	if b.epSquare != NoSquare {
		key ^= zobristEPFile[b.epSquare.File()]
	}
	return key
}

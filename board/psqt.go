package board

// Piece-square tables, 32 entries per piece: four files (a-d, e-h mirrored)
// by eight ranks, listed from the eighth rank down as seen by White.
var pieceSquareTable = [2][6][32]int{
	// Midgame
	{
		{ // Pawns
			0, 0, 0, 0,
			29, 38, 54, 64,
			19, 34, 52, 58,
			8, 12, 16, 28,
			-3, -2, 8, 10,
			-1, 5, 6, 8,
			-1, 8, 3, 0,
			0, 0, 0, 0,
		},
		{ // Knights
			-110, -36, -28, -19,
			-29, -9, 10, 14,
			-12, 4, 18, 25,
			9, 9, 21, 25,
			0, 9, 16, 21,
			-15, 3, 5, 14,
			-22, -9, -4, 6,
			-68, -24, -14, -9,
		},
		{ // Bishops
			-20, -15, -10, -10,
			-15, -8, -6, 2,
			3, 4, 3, 2,
			2, 11, 5, 5,
			3, 9, 4, 10,
			0, 12, 8, 5,
			-2, 14, 8, 5,
			-15, -5, -5, -2,
		},
		{ // Rooks
			-5, 0, 0, 0,
			5, 10, 10, 10,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
		},
		{ // Queens
			-34, -26, -17, -11,
			-11, -23, -7, -4,
			-3, 0, 0, 2,
			-3, -3, -3, -6,
			-3, -3, -3, -6,
			-5, 4, -4, -3,
			-11, 0, 5, 4,
			-16, -11, -7, 5,
		},
		{ // Kings
			-42, -37, -39, -41,
			-36, -30, -35, -36,
			-29, -24, -30, -30,
			-28, -24, -30, -31,
			-25, -10, -25, -25,
			-4, 21, -12, -15,
			37, 42, 10, 0,
			29, 53, 20, 0,
		},
	},
	// Endgame
	{
		{ // Pawns
			0, 0, 0, 0,
			31, 42, 52, 61,
			27, 29, 30, 30,
			10, 8, 8, 8,
			-12, -10, -5, -5,
			-18, -12, -5, -5,
			-18, -12, -5, -5,
			0, 0, 0, 0,
		},
		{ // Knights
			-59, -16, -14, -9,
			-4, 3, 6, 10,
			0, 8, 13, 18,
			4, 11, 18, 25,
			4, 11, 17, 21,
			-6, 3, 7, 19,
			-20, -4, -2, 5,
			-40, -22, -16, -10,
		},
		{ // Bishops
			-12, -7, -5, -5,
			-4, 0, 2, 3,
			-2, 2, 5, 4,
			1, 3, 3, 4,
			-3, 2, 2, 2,
			-5, -1, 5, 5,
			-8, -4, -2, -1,
			-13, -10, -7, -4,
		},
		{ // Rooks
			-5, 0, 0, 0,
			5, 10, 10, 10,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
			-5, 0, 0, 0,
		},
		{ // Queens
			-14, -8, -4, -2,
			-4, 6, 8, 11,
			0, 10, 10, 16,
			2, 12, 11, 18,
			1, 10, 11, 16,
			-1, 2, 4, 6,
			-14, -11, -8, -8,
			-23, -20, -19, -11,
		},
		{ // Kings
			-97, -20, -14, -10,
			-10, 20, 24, 24,
			12, 32, 34, 36,
			0, 19, 24, 26,
			-12, 10, 16, 18,
			-20, 0, 8, 11,
			-24, -6, 0, 3,
			-55, -26, -20, -16,
		},
	},
}

// psqt[color][type][square] expanded to full-board Score entries, built once
// at init so evaluation is a plain lookup.
var psqt [2][7][64]Score

func init() {
	for t := Pawn; t <= King; t++ {
		for sq := 0; sq < 64; sq++ {
			file, rank := sq&7, sq>>3
			if file > 3 {
				file = 7 - file
			}
			whiteIdx := (7-rank)*4 + file
			blackIdx := rank*4 + file
			psqt[White][t][sq] = MakeScore(
				pieceSquareTable[0][t-1][whiteIdx],
				pieceSquareTable[1][t-1][whiteIdx])
			psqt[Black][t][sq] = MakeScore(
				pieceSquareTable[0][t-1][blackIdx],
				pieceSquareTable[1][t-1][blackIdx])
		}
	}
}

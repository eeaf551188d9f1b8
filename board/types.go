package board

// Color identifies a side. White moves first.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Square indexes the board a1=0 .. h8=63 (a1, b1, ..., h1, a2, ...).
type Square uint8

const NoSquare Square = 64

// File returns the square's file, 0 for the a-file.
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the square's rank, 0 for rank 1.
func (sq Square) Rank() int { return int(sq) >> 3 }

func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// SquareAt builds a square from file and rank, both 0-based.
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// ParseSquare converts coordinates like "e4" into a Square.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, false
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'1')), true
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	None PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece carries both type and color: type in the low three bits, the color
// flag in bit three. NoPiece is the zero value.
type Piece uint8

const NoPiece Piece = 0

// MakePiece combines a color and a type.
func MakePiece(c Color, t PieceType) Piece {
	if t == None {
		return NoPiece
	}
	return Piece(t) | Piece(c)<<3
}

// Type returns the colorless kind of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the owning side. Meaningless for NoPiece.
func (p Piece) Color() Color { return Color(p >> 3) }

var pieceTypeChars = [7]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}

func (p Piece) char() byte {
	ch := pieceTypeChars[p.Type()]
	if p != NoPiece && p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func pieceFromChar(ch byte) Piece {
	c := White
	if ch >= 'a' {
		c = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return MakePiece(c, Pawn)
	case 'N':
		return MakePiece(c, Knight)
	case 'B':
		return MakePiece(c, Bishop)
	case 'R':
		return MakePiece(c, Rook)
	case 'Q':
		return MakePiece(c, Queen)
	case 'K':
		return MakePiece(c, King)
	}
	return NoPiece
}

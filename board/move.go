package board

import (
	"errors"
	"strings"
)

// Move packs a full move description into 32 bits:
//
//	bits  0-5   from square
//	bits  6-11  to square
//	bits 12-15  moved piece type
//	bits 16-19  captured piece type (None when quiet)
//	bits 20-23  promotion piece type (None when not a promotion)
//	bits 24-25  special flags (castle, en passant)
//
// The zero value is NullMove, the absence of a move.
type Move uint32

const NullMove Move = 0

const (
	moveToShift      = 6
	moveMovedShift   = 12
	moveCaptureShift = 16
	movePromoShift   = 20
	moveFlagShift    = 24
)

// Move flags. Promotions are indicated by a non-None promotion type instead.
const (
	FlagNone      uint8 = 0
	FlagCastle    uint8 = 1
	FlagEnPassant uint8 = 2
)

// NewMove assembles a move from its parts.
func NewMove(from, to Square, moved, captured, promo PieceType, flag uint8) Move {
	return Move(uint32(from&0x3F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(moved&0xF)<<moveMovedShift |
		uint32(captured&0xF)<<moveCaptureShift |
		uint32(promo&0xF)<<movePromoShift |
		uint32(flag&0x3)<<moveFlagShift)
}

// From returns the origin square.
func (m Move) From() Square { return Square(uint32(m) & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// MovedPiece returns the type of the piece being moved.
func (m Move) MovedPiece() PieceType { return PieceType(uint32(m) >> moveMovedShift & 0xF) }

// CapturedPiece returns the type of the captured piece, None for quiet moves.
// En passant captures report Pawn.
func (m Move) CapturedPiece() PieceType { return PieceType(uint32(m) >> moveCaptureShift & 0xF) }

// Promotion returns the piece type promoted to, None otherwise.
func (m Move) Promotion() PieceType { return PieceType(uint32(m) >> movePromoShift & 0xF) }

// Flags returns the special-move flags.
func (m Move) Flags() uint8 { return uint8(uint32(m) >> moveFlagShift & 0x3) }

// IsCapture reports whether the move takes a piece (en passant included).
func (m Move) IsCapture() bool { return m.CapturedPiece() != None }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promotion() != None }

// String renders the move in UCI coordinate notation ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.Promotion(); promo != None {
		s += string(pieceTypeChars[promo])
	}
	return s
}

var errBadMove = errors.New("malformed move string")

// ParseMove converts UCI coordinate notation into from/to/promotion parts.
// The caller is expected to match the result against a generated move list;
// the returned Move carries no piece or flag information.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) < 4 || len(s) > 5 {
		return NullMove, errBadMove
	}
	from, ok := ParseSquare(s[:2])
	if !ok {
		return NullMove, errBadMove
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return NullMove, errBadMove
	}
	promo := None
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NullMove, errBadMove
		}
	}
	return NewMove(from, to, None, None, promo, FlagNone), nil
}

// MatchesUCI reports whether the generated move m corresponds to the
// from/to/promotion triple of a parsed UCI move.
func (m Move) MatchesUCI(parsed Move) bool {
	return m.From() == parsed.From() && m.To() == parsed.To() && m.Promotion() == parsed.Promotion()
}

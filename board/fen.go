package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN builds a board from a FEN string. The repetition history starts
// with only the resulting position.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: expected at least 4 fields, got %d", len(fields))
	}

	b := &Board{epSquare: NoSquare, fullmove: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for r, rankStr := range ranks {
		rank := 7 - r
		file := 0
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece || file > 7 {
				return nil, fmt.Errorf("fen: bad placement %q", rankStr)
			}
			b.putPiece(SquareAt(file, rank), p)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("fen: rank %q does not span 8 files", rankStr)
		}
	}

	switch fields[1] {
	case "w":
		b.side = White
	case "b":
		b.side = Black
	default:
		return nil, fmt.Errorf("fen: bad side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castling |= castleWhiteKing
			case 'Q':
				b.castling |= castleWhiteQueen
			case 'k':
				b.castling |= castleBlackKing
			case 'q':
				b.castling |= castleBlackQueen
			default:
				return nil, fmt.Errorf("fen: bad castling field %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return nil, fmt.Errorf("fen: bad en passant square %q", fields[3])
		}
		b.epSquare = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("fen: bad halfmove clock %q", fields[4])
		}
		b.rule50 = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("fen: bad fullmove number %q", fields[5])
		}
		b.fullmove = n
	}

	b.key = b.computeKey()
	b.history = []uint64{b.key}
	return b, nil
}

// MustParseFEN is ParseFEN for known-good positions; it panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// FEN renders the position back into FEN notation.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[SquareAt(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.castling == 0 {
		sb.WriteByte('-')
	} else {
		if b.castling&castleWhiteKing != 0 {
			sb.WriteByte('K')
		}
		if b.castling&castleWhiteQueen != 0 {
			sb.WriteByte('Q')
		}
		if b.castling&castleBlackKing != 0 {
			sb.WriteByte('k')
		}
		if b.castling&castleBlackQueen != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.epSquare.String())
	fmt.Fprintf(&sb, " %d %d", b.rule50, b.fullmove)
	return sb.String()
}

package bitboards

import (
	"strings"

	. "github.com/cricklet/chesscore/internal/helpers"
)

// CastlingRights is a 4-bit set. Rights are only ever cleared by Update.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastlingRights  CastlingRights = 0
	AllCastlingRights                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

var A1 = MustBoardIndex("a1")
var B1 = MustBoardIndex("b1")
var C1 = MustBoardIndex("c1")
var D1 = MustBoardIndex("d1")
var E1 = MustBoardIndex("e1")
var F1 = MustBoardIndex("f1")
var G1 = MustBoardIndex("g1")
var H1 = MustBoardIndex("h1")
var A8 = MustBoardIndex("a8")
var B8 = MustBoardIndex("b8")
var C8 = MustBoardIndex("c8")
var D8 = MustBoardIndex("d8")
var E8 = MustBoardIndex("e8")
var F8 = MustBoardIndex("f8")
var G8 = MustBoardIndex("g8")
var H8 = MustBoardIndex("h8")

func CastlingRightFor(player Player, side CastlingSide) CastlingRights {
	return CastlingRights(1) << (2*uint(player) + uint(side))
}

func (c CastlingRights) Allowed(player Player, side CastlingSide) bool {
	return c&CastlingRightFor(player, side) != 0
}

// _castlingRightsKept[i] is the set of rights that survive a move touching i.
var _castlingRightsKept = func() [64]CastlingRights {
	result := [64]CastlingRights{}
	for i := range result {
		result[i] = AllCastlingRights
	}
	result[A1] &^= WhiteQueenside
	result[H1] &^= WhiteKingside
	result[E1] &^= WhiteKingside | WhiteQueenside
	result[A8] &^= BlackQueenside
	result[H8] &^= BlackKingside
	result[E8] &^= BlackKingside | BlackQueenside
	return result
}()

// Update clears the rights invalidated by a move from one square to another:
// a king or rook leaving home, or a rook being captured on its home square.
func (c *CastlingRights) Update(from int, to int) {
	*c &= _castlingRightsKept[from] & _castlingRightsKept[to]
}

var _castlingRightsChars = [4]byte{'K', 'Q', 'k', 'q'}

func (c CastlingRights) String() string {
	s := strings.Builder{}
	for i, char := range _castlingRightsChars {
		if c&(CastlingRights(1)<<i) != 0 {
			s.WriteByte(char)
		}
	}
	if s.Len() == 0 {
		return "-"
	}
	return s.String()
}

func CastlingRightsFromString(s string) (CastlingRights, Error) {
	if s == "-" {
		return NoCastlingRights, NilError
	}
	result := NoCastlingRights
	for _, c := range s {
		switch c {
		case 'K':
			result |= WhiteKingside
		case 'Q':
			result |= WhiteQueenside
		case 'k':
			result |= BlackKingside
		case 'q':
			result |= BlackQueenside
		default:
			return NoCastlingRights, Errorf("invalid castling rights '%v'", s)
		}
	}
	return result, NilError
}

type CastlingRequirements struct {
	Empty    Bitboard
	Safe     []int
	Move     Move
	RookFrom int
	RookTo   int
	Pieces   Bitboard
}

var AllCastlingRequirements = func() [2][2]CastlingRequirements {
	result := [2][2]CastlingRequirements{}
	result[White][Kingside] = CastlingRequirements{
		Safe:     []int{E1, F1, G1},
		Empty:    BitboardWithAllLocationsSet([]string{"f1", "g1"}),
		Move:     NewMove(E1, G1, KingCastleFlag),
		RookFrom: H1,
		RookTo:   F1,
		Pieces:   BitboardWithAllLocationsSet([]string{"e1", "h1"}),
	}
	result[White][Queenside] = CastlingRequirements{
		Safe:     []int{E1, D1, C1},
		Empty:    BitboardWithAllLocationsSet([]string{"b1", "c1", "d1"}),
		Move:     NewMove(E1, C1, QueenCastleFlag),
		RookFrom: A1,
		RookTo:   D1,
		Pieces:   BitboardWithAllLocationsSet([]string{"e1", "a1"}),
	}
	result[Black][Kingside] = CastlingRequirements{
		Safe:     []int{E8, F8, G8},
		Empty:    BitboardWithAllLocationsSet([]string{"f8", "g8"}),
		Move:     NewMove(E8, G8, KingCastleFlag),
		RookFrom: H8,
		RookTo:   F8,
		Pieces:   BitboardWithAllLocationsSet([]string{"e8", "h8"}),
	}
	result[Black][Queenside] = CastlingRequirements{
		Safe:     []int{E8, D8, C8},
		Empty:    BitboardWithAllLocationsSet([]string{"b8", "c8", "d8"}),
		Move:     NewMove(E8, C8, QueenCastleFlag),
		RookFrom: A8,
		RookTo:   D8,
		Pieces:   BitboardWithAllLocationsSet([]string{"e8", "a8"}),
	}
	return result
}()

func RookMoveForCastle(player Player, side CastlingSide) (int, int) {
	requirements := &AllCastlingRequirements[player][side]
	return requirements.RookFrom, requirements.RookTo
}

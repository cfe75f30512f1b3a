package bitboards

import (
	"fmt"
	"math/bits"
	"strings"

	. "github.com/cricklet/chesscore/internal/helpers"
)

type Bitboard uint64

type PlayerBitboards struct {
	Occupied Bitboard
	Pieces   [6]Bitboard // indexed via PieceType
}

type Bitboards struct {
	Occupied Bitboard
	Players  [2]PlayerBitboards
}

const (
	Rank1 Bitboard = 0x00000000000000ff
	Rank2 Bitboard = 0x000000000000ff00
	Rank7 Bitboard = 0x00ff000000000000
	Rank8 Bitboard = 0xff00000000000000
)

var PawnPromotionBitboard = Rank1 | Rank8

var StartingPawnsForPlayer = [2]Bitboard{
	Rank2,
	Rank7,
}

var SingleBitboards = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = Bitboard(1) << i
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		MapSlice(locations, MustBoardIndex),
		0,
		func(result Bitboard, index int) Bitboard {
			return result | SingleBitboard(index)
		},
	)
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

func (b Bitboard) LastIndexOfOne() int {
	return 63 - bits.LeadingZeros64(uint64(b))
}

// NextIndexOfOne pops the lowest set bit, returning its index and the rest.
func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	index := bits.TrailingZeros64(uint64(b))
	return index, b & (b - 1)
}

func (b Bitboard) IsSet(index int) bool {
	return b&SingleBitboard(index) != 0
}

func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		row := strings.Builder{}
		for file := 0; file < 8; file++ {
			if b.IsSet(rank*8 + file) {
				row.WriteByte('1')
			} else {
				row.WriteByte('0')
			}
		}
		ranks[7-rank] = row.String()
	}

	return strings.Join(ranks[0:], "\n")
}

// BitboardFromStrings reads eight rows of '0'/'1', rank 8 first.
func BitboardFromStrings(strings [8]string) Bitboard {
	b := Bitboard(0)
	for inverseRank, line := range strings {
		for file, c := range line {
			if c == '1' {
				index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)})
				b |= SingleBitboard(index)
			}
		}
	}
	return b
}

func (b *Bitboards) ClearSquare(index int, piece Piece) {
	player := piece.Player()
	pieceType := piece.PieceType()
	zeroBitboard := ^SingleBitboard(index)

	b.Occupied &= zeroBitboard
	b.Players[player].Occupied &= zeroBitboard
	b.Players[player].Pieces[pieceType] &= zeroBitboard
}

func (b *Bitboards) SetSquare(index int, piece Piece) {
	player := piece.Player()
	pieceType := piece.PieceType()
	oneBitboard := SingleBitboard(index)

	b.Occupied |= oneBitboard
	b.Players[player].Occupied |= oneBitboard
	b.Players[player].Pieces[pieceType] |= oneBitboard
}

// PieceAt scans the per-type bitboards. It reports XX when no bitboard
// holds the square, and an error when more than one does.
func (b *Bitboards) PieceAt(index int) (Piece, Error) {
	found := XX
	for player := White; player <= Black; player++ {
		for pieceType := Rook; pieceType <= Pawn; pieceType++ {
			if !b.Players[player].Pieces[pieceType].IsSet(index) {
				continue
			}
			if found != XX {
				return XX, Errorf("square %v is in bitboards for both %v and %v",
					StringFromBoardIndex(index), found, PieceForPlayer[player][pieceType])
			}
			found = PieceForPlayer[player][pieceType]
		}
	}
	return found, NilError
}

func BitboardsFromBoardArray(board *BoardArray) Bitboards {
	result := Bitboards{}
	for i, piece := range board {
		if piece == XX {
			continue
		}
		result.SetSquare(i, piece)
	}
	return result
}

func (b Bitboards) String() string {
	return fmt.Sprintf("occupied:\n%v", b.Occupied)
}

package zobrist

import (
	"math/rand"

	. "github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/helpers"
)

// The empty piece row stays zero so that XOR-ing XX is a no-op.
var ZobristPieceAtSquare [NumPieces][64]uint64
var ZobristSideToMove uint64
var ZobristCastlingRights [16]uint64
var ZobristEnPassant [8]uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	ZobristSideToMove = r.Uint64()
	// no rights at all hashes to zero, like an empty square
	for i := 1; i < 16; i++ {
		ZobristCastlingRights[i] = r.Uint64()
	}
	for i := 0; i < 8; i++ {
		ZobristEnPassant[i] = r.Uint64()
	}
	for piece := 1; /* skip empty */ piece < NumPieces; piece++ {
		for boardIndex := 0; boardIndex < 64; boardIndex++ {
			ZobristPieceAtSquare[piece][boardIndex] = r.Uint64()
		}
	}
}

func PieceKey(piece Piece, index int) uint64 {
	return ZobristPieceAtSquare[piece][index]
}

func CastlingKey(rights CastlingRights) uint64 {
	return ZobristCastlingRights[rights]
}

// EnPassantKey hashes the file of the target square, or nothing when there
// is no target.
func EnPassantKey(enPassant Bitboard) uint64 {
	if enPassant == 0 {
		return 0
	}
	return ZobristEnPassant[enPassant.FirstIndexOfOne()&0b111]
}

func SideKey(player Player) uint64 {
	if player == Black {
		return ZobristSideToMove
	}
	return 0
}

func HashForBoardPosition(
	board *BoardArray,
	player Player,
	castlingRights CastlingRights,
	enPassant Bitboard,
) uint64 {
	hash := uint64(0)
	for boardIndex := 0; boardIndex < 64; boardIndex++ {
		hash ^= PieceKey(board[boardIndex], boardIndex)
	}
	hash ^= SideKey(player)
	hash ^= CastlingKey(castlingRights)
	hash ^= EnPassantKey(enPassant)
	return hash
}

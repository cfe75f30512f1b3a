package bitboards

import (
	"testing"

	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

func walkBetween(a int, b int) Bitboard {
	fa, fb := FileRankFromIndex(a), FileRankFromIndex(b)
	dx := int(fb.File) - int(fa.File)
	dy := int(fb.Rank) - int(fa.Rank)
	if a == b || !(dx == 0 || dy == 0 || AbsDiff(dx, 0) == AbsDiff(dy, 0)) {
		return 0
	}

	result := Bitboard(0)
	file, rank := int(fa.File)+sign(dx), int(fa.Rank)+sign(dy)
	for file != int(fb.File) || rank != int(fb.Rank) {
		result |= SingleBitboard(rank*8 + file)
		file += sign(dx)
		rank += sign(dy)
	}
	return result
}

func sumOnes(boards []Bitboard) int {
	return ReduceSlice(boards, 0, func(total int, b Bitboard) int { return total + OnesCount(b) })
}

func TestKnightMoves(t *testing.T) {
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"b3", "c2"}), KnightMoves[A1])
	assert.Equal(t, BitboardFromStrings([8]string{
		"00000000",
		"00000000",
		"00101000",
		"01000100",
		"00000000",
		"01000100",
		"00101000",
		"00000000",
	}), KnightMoves[MustBoardIndex("d4")])
	assert.Equal(t, 336, sumOnes(KnightMoves[:]))
}

func TestKingMoves(t *testing.T) {
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"a2", "b1", "b2"}), KingMoves[A1])
	assert.Equal(t, 8, OnesCount(KingMoves[MustBoardIndex("e4")]))
	assert.Equal(t, 420, sumOnes(KingMoves[:]))
}

func TestSliderMoves(t *testing.T) {
	for i := 0; i < 64; i++ {
		assert.Equal(t, 14, OnesCount(RookMoves[i]), StringFromBoardIndex(i))
		assert.Equal(t, RookMoves[i], RookRays[i][N]|RookRays[i][E]|RookRays[i][S]|RookRays[i][W])
		assert.Zero(t, RookMoves[i]&BishopMoves[i])
		assert.Zero(t, RookMovesNoBorder[i]&^RookMoves[i])
		assert.Zero(t, BishopMovesNoBorder[i]&^BishopMoves[i])
	}
	assert.Equal(t, 560, sumOnes(BishopMoves[:]))

	assert.Equal(t, BitboardWithAllLocationsSet([]string{"b2", "c3", "d4", "e5", "f6", "g7", "h8"}), BishopRays[A1][NE])
	assert.Equal(t, Bitboard(0), BishopRays[A1][SW])
}

func TestSliderMovesNoBorder(t *testing.T) {
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"a2", "a3", "a4", "a5", "a6", "a7", "b1", "c1", "d1", "e1", "f1", "g1"}),
		RookMovesNoBorder[A1])
	assert.Equal(t, 10, OnesCount(RookMovesNoBorder[MustBoardIndex("d4")]))
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"c3", "b2", "e5", "f6", "g7", "c5", "b6", "e3", "f2"}),
		BishopMovesNoBorder[MustBoardIndex("d4")])
	assert.Equal(t, Bitboard(0), BishopMovesNoBorder[MustBoardIndex("h7")]&SingleBitboard(G8))
}

func TestPawnAttacks(t *testing.T) {
	e4 := MustBoardIndex("e4")
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"d5", "f5"}), PawnAttacks[White][e4])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"d3", "f3"}), PawnAttacks[Black][e4])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"b3"}), PawnAttacks[White][MustBoardIndex("a2")])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"g6"}), PawnAttacks[Black][MustBoardIndex("h7")])
}

func TestBetweenExhaustive(t *testing.T) {
	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			expected := walkBetween(a, b)
			if Between[a][b] != expected {
				t.Fatalf("between %v %v:\n%v\nexpected\n%v",
					StringFromBoardIndex(a), StringFromBoardIndex(b), Between[a][b], expected)
			}
			assert.Equal(t, Between[a][b], Between[b][a])
		}
	}
}

func TestBetween(t *testing.T) {
	assert.Equal(t, 6, OnesCount(Between[A1][H8]))
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"f1", "g1"}), Between[E1][H1])
	assert.Equal(t, Bitboard(0), Between[A1][MustBoardIndex("b3")])
	assert.Equal(t, Bitboard(0), Between[A1][MustBoardIndex("a2")])
	assert.Equal(t, Bitboard(0), Between[E1][E1])
}

func TestBitboardString(t *testing.T) {
	b := BitboardWithAllLocationsSet([]string{"a1", "h8", "e4"})
	assert.Equal(t, ""+
		"00000001\n"+
		"00000000\n"+
		"00000000\n"+
		"00000000\n"+
		"00001000\n"+
		"00000000\n"+
		"00000000\n"+
		"10000000", b.String())
	assert.Equal(t, b, BitboardFromStrings([8]string{
		"00000001",
		"00000000",
		"00000000",
		"00000000",
		"00001000",
		"00000000",
		"00000000",
		"10000000",
	}))

	index, rest := b.NextIndexOfOne()
	assert.Equal(t, A1, index)
	assert.Equal(t, 2, OnesCount(rest))
	assert.Equal(t, H8, b.LastIndexOfOne())
}

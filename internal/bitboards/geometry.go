package bitboards

import (
	. "github.com/cricklet/chesscore/internal/helpers"
)

// The tables in this file are filled once at package initialisation and
// are read-only afterwards, so any number of boards may share them.

type Offset struct {
	DFile int
	DRank int
}

var KnightOffsets = [8]Offset{
	{-1, 2}, {1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1},
}

var KingOffsets = [8]Offset{
	{-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0},
}

type Dir int

// Rook directions index RookRays, bishop directions index BishopRays. The
// first two of each walk towards higher square indices.
const (
	N Dir = iota
	E
	S
	W
)

const (
	NW Dir = iota
	NE
	SE
	SW
)

var RookDirs = [4]Offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
var BishopDirs = [4]Offset{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}

// PawnCaptureOffsets is indexed by the capturing player.
var PawnCaptureOffsets = [2][2]Offset{
	{{-1, 1}, {1, 1}},
	{{-1, -1}, {1, -1}},
}

func isOutOfBounds(file int, rank int) bool {
	return file < 0 || file > 7 || rank < 0 || rank > 7
}

func offsetSquare(index int, offset Offset) (int, bool) {
	location := FileRankFromIndex(index)
	file := int(location.File) + offset.DFile
	rank := int(location.Rank) + offset.DRank
	if isOutOfBounds(file, rank) {
		return 0, false
	}
	return rank*8 + file, true
}

func leaperMoves(offsets []Offset) [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		for _, offset := range offsets {
			if to, ok := offsetSquare(i, offset); ok {
				result[i] |= SingleBitboard(to)
			}
		}
	}
	return result
}

// sliderRays walks each direction until it leaves the board. With
// endBeforeBorder the walk stops one square early, dropping the edge square.
func sliderRays(dirs [4]Offset, endBeforeBorder bool) [64][4]Bitboard {
	result := [64][4]Bitboard{}
	for i := 0; i < 64; i++ {
		for dir, offset := range dirs {
			current := i
			for {
				next, ok := offsetSquare(current, offset)
				if !ok {
					break
				}
				if _, stillOnBoard := offsetSquare(next, offset); !stillOnBoard && endBeforeBorder {
					break
				}
				result[i][dir] |= SingleBitboard(next)
				current = next
			}
		}
	}
	return result
}

func mergeRays(rays [64][4]Bitboard) [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		for dir := 0; dir < 4; dir++ {
			result[i] |= rays[i][dir]
		}
	}
	return result
}

var KnightMoves = leaperMoves(KnightOffsets[:])
var KingMoves = leaperMoves(KingOffsets[:])

var RookRays = sliderRays(RookDirs, false)
var BishopRays = sliderRays(BishopDirs, false)

var RookMoves = mergeRays(RookRays)
var BishopMoves = mergeRays(BishopRays)

var RookMovesNoBorder = mergeRays(sliderRays(RookDirs, true))
var BishopMovesNoBorder = mergeRays(sliderRays(BishopDirs, true))

var PawnAttacks = func() [2][64]Bitboard {
	result := [2][64]Bitboard{}
	for _, player := range []Player{White, Black} {
		result[player] = leaperMoves(PawnCaptureOffsets[player][:])
	}
	return result
}()

// Between holds the squares strictly between two squares sharing a rank,
// file or diagonal, and is empty for every other pair.
var Between = func() [64][64]Bitboard {
	result := [64][64]Bitboard{}
	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			fa, fb := FileRankFromIndex(a), FileRankFromIndex(b)
			dx := int(fb.File) - int(fa.File)
			dy := int(fb.Rank) - int(fa.Rank)

			switch {
			case dx == 0 && dy > 0:
				result[a][b] = RookRays[a][N] & RookRays[b][S]
			case dx > 0 && dy == 0:
				result[a][b] = RookRays[a][E] & RookRays[b][W]
			case dx == 0 && dy < 0:
				result[a][b] = RookRays[a][S] & RookRays[b][N]
			case dx < 0 && dy == 0:
				result[a][b] = RookRays[a][W] & RookRays[b][E]
			case dx < 0 && dy > 0 && -dx == dy:
				result[a][b] = BishopRays[a][NW] & BishopRays[b][SE]
			case dx > 0 && dy > 0 && dx == dy:
				result[a][b] = BishopRays[a][NE] & BishopRays[b][SW]
			case dx > 0 && dy < 0 && dx == -dy:
				result[a][b] = BishopRays[a][SE] & BishopRays[b][NW]
			case dx < 0 && dy < 0 && dx == dy:
				result[a][b] = BishopRays[a][SW] & BishopRays[b][NE]
			}
		}
	}
	return result
}()

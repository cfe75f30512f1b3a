package bitboards

import (
	"testing"

	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestCastlingRightsUpdate(t *testing.T) {
	rights := AllCastlingRights
	rights.Update(MustBoardIndex("g1"), MustBoardIndex("f3"))
	assert.Equal(t, AllCastlingRights, rights)

	rights.Update(H1, MustBoardIndex("h5"))
	assert.False(t, rights.Allowed(White, Kingside))
	assert.True(t, rights.Allowed(White, Queenside))
	assert.Equal(t, "Qkq", rights.String())

	// capturing the rook on a8 clears black's queenside right
	rights.Update(MustBoardIndex("h5"), A8)
	assert.Equal(t, "Qk", rights.String())

	rights.Update(E8, MustBoardIndex("e7"))
	assert.Equal(t, WhiteQueenside, rights)

	rights.Update(E1, MustBoardIndex("d1"))
	assert.Equal(t, NoCastlingRights, rights)
	assert.Equal(t, "-", rights.String())
}

func TestCastlingRightsNeverRegranted(t *testing.T) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			rights := WhiteKingside | BlackQueenside
			rights.Update(from, to)
			assert.Zero(t, rights&^(WhiteKingside|BlackQueenside))
		}
	}
}

func TestCastlingRightsFromString(t *testing.T) {
	for _, s := range []string{"KQkq", "Kq", "k", "-"} {
		rights, err := CastlingRightsFromString(s)
		assert.True(t, IsNil(err))
		assert.Equal(t, s, rights.String())
	}

	_, err := CastlingRightsFromString("KX")
	assert.False(t, IsNil(err))
}

func TestCastlingRequirements(t *testing.T) {
	for _, player := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			requirements := AllCastlingRequirements[player][side]
			assert.Equal(t, Some(side), requirements.Move.CastlingSide())
			assert.Equal(t, requirements.Safe[0], requirements.Move.From())
			assert.Equal(t, requirements.Safe[2], requirements.Move.To())
			assert.True(t, requirements.Pieces.IsSet(requirements.RookFrom))
			assert.True(t, requirements.Empty.IsSet(requirements.RookTo))

			rookFrom, rookTo := RookMoveForCastle(player, side)
			assert.Equal(t, requirements.RookFrom, rookFrom)
			assert.Equal(t, requirements.RookTo, rookTo)
		}
	}
	assert.Equal(t, Between[E1][A1], AllCastlingRequirements[White][Queenside].Empty)
	assert.Equal(t, Between[E8][H8], AllCastlingRequirements[Black][Kingside].Empty)
}

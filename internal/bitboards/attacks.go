package bitboards

import (
	. "github.com/cricklet/chesscore/internal/helpers"
)

// rayAttacks cuts every ray at its first blocker. The blocker itself stays
// in the result; callers mask out their own pieces.
func rayAttacks(rays *[64][4]Bitboard, index int, occupied Bitboard) Bitboard {
	result := Bitboard(0)
	for dir := 0; dir < 4; dir++ {
		ray := rays[index][dir]
		blockers := ray & occupied
		if blockers != 0 {
			var blocker int
			if dir < 2 {
				blocker = blockers.FirstIndexOfOne()
			} else {
				blocker = blockers.LastIndexOfOne()
			}
			ray ^= rays[blocker][dir]
		}
		result |= ray
	}
	return result
}

func RookAttacks(index int, occupied Bitboard) Bitboard {
	if occupied&RookMovesNoBorder[index] == 0 {
		return RookMoves[index]
	}
	return rayAttacks(&RookRays, index, occupied)
}

func BishopAttacks(index int, occupied Bitboard) Bitboard {
	if occupied&BishopMovesNoBorder[index] == 0 {
		return BishopMoves[index]
	}
	return rayAttacks(&BishopRays, index, occupied)
}

func QueenAttacks(index int, occupied Bitboard) Bitboard {
	return RookAttacks(index, occupied) | BishopAttacks(index, occupied)
}

// Attackers returns every piece of enemyPlayer attacking index, given an
// occupancy that may differ from the boards (eg with a king lifted off).
func Attackers(index int, occupied Bitboard, enemy *PlayerBitboards, enemyPlayer Player) Bitboard {
	attackers := PawnAttacks[enemyPlayer.Other()][index] & enemy.Pieces[Pawn]
	attackers |= KnightMoves[index] & enemy.Pieces[Knight]
	attackers |= KingMoves[index] & enemy.Pieces[King]

	rooks := enemy.Pieces[Rook] | enemy.Pieces[Queen]
	if RookMoves[index]&rooks != 0 {
		attackers |= RookAttacks(index, occupied) & rooks
	}
	bishops := enemy.Pieces[Bishop] | enemy.Pieces[Queen]
	if BishopMoves[index]&bishops != 0 {
		attackers |= BishopAttacks(index, occupied) & bishops
	}

	return attackers
}

func IsAttacked(index int, occupied Bitboard, enemy *PlayerBitboards, enemyPlayer Player) bool {
	return Attackers(index, occupied, enemy, enemyPlayer) != 0
}

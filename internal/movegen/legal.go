package movegen

import (
	. "github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/game"
	. "github.com/cricklet/chesscore/internal/helpers"
)

type GameStatus int

const (
	Ongoing GameStatus = iota
	Checkmate
	Stalemate
)

func (s GameStatus) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

func KingIsInCheck(b *Board) bool {
	return b.KingIsInCheck()
}

// PinnedPieces returns the pieces of the side to move that are the only
// blocker between their king and an enemy slider.
func PinnedPieces(b *Board) Bitboard {
	king := b.State.KingIndex
	enemyBoards := &b.Bitboards.Players[b.State.Enemy]
	selfOccupied := b.Bitboards.Players[b.State.Player].Occupied

	snipers := RookMoves[king] & (enemyBoards.Pieces[Rook] | enemyBoards.Pieces[Queen])
	snipers |= BishopMoves[king] & (enemyBoards.Pieces[Bishop] | enemyBoards.Pieces[Queen])

	pinned := Bitboard(0)
	sniper, tempSnipers := 0, snipers
	for tempSnipers != 0 {
		sniper, tempSnipers = tempSnipers.NextIndexOfOne()
		blockers := Between[king][sniper] & b.Bitboards.Occupied
		if OnesCount(blockers) == 1 && blockers&selfOccupied != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

func leavesKingSafe(b *Board, move Move) bool {
	player := b.State.Player
	b.PerformMove(move)
	safe := !b.PlayerIsInCheck(player)
	b.UndoMove()
	return safe
}

// GenerateLegalMoves fills moves with every legal move of the side to move.
// The board is used as scratch space and is left unchanged.
func GenerateLegalMoves(b *Board, moves *MoveList) {
	moves.Reset()

	checkers := b.Checkers()
	inCheck := checkers != 0
	doubleCheck := OnesCount(checkers) > 1
	pinned := PinnedPieces(b)
	king := b.State.KingIndex

	GeneratePseudoMoves(func(move Move) {
		if doubleCheck && move.From() != king {
			return
		}
		// en passant clears two squares at once, so it is always verified
		if !inCheck && move.From() != king && !move.IsEnPassant() && !pinned.IsSet(move.From()) {
			moves.Add(move)
		} else if leavesKingSafe(b, move) {
			moves.Add(move)
		}
	}, b)
}

func LegalMoves(b *Board) MoveList {
	moves := MoveList{}
	GenerateLegalMoves(b, &moves)
	return moves
}

func Status(b *Board) GameStatus {
	moves := MoveList{}
	GenerateLegalMoves(b, &moves)
	if moves.Len() > 0 {
		return Ongoing
	}
	if b.KingIsInCheck() {
		return Checkmate
	}
	return Stalemate
}

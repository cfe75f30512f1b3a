package game

import (
	. "github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/helpers"
	. "github.com/cricklet/chesscore/internal/zobrist"
)

// PerformMove applies a move produced by the move generator for this
// position. Moves from anywhere else are not re-validated.
func (b *Board) PerformMove(move Move) {
	from, to := move.From(), move.To()
	state := &b.State

	movingPiece := b.Pieces[from]
	if movingPiece == XX {
		panic(Errorf("no piece on %v for %v\n%v", StringFromBoardIndex(from), move.DebugString(), b.Pieces))
	}
	capturedPiece := b.Pieces[to]

	placedPiece := movingPiece
	if move.IsPromotion() {
		placedPiece = PieceForPlayer[state.Player][move.PromotionPiece()]
	}

	b.History = append(b.History, HistoryEntry{
		State:    *state,
		Captured: capturedPiece,
		Move:     move,
	})

	state.Hash ^= EnPassantKey(state.EnPassant)
	state.EnPassant = 0 // reinstated below for double pushes

	state.Hash ^= CastlingKey(state.CastlingRights)
	state.CastlingRights.Update(from, to)
	state.Hash ^= CastlingKey(state.CastlingRights)

	if capturedPiece != XX {
		b.removePiece(capturedPiece, to)
	} else {
		switch movingPiece.PieceType() {
		case Pawn:
			if move.IsEnPassant() {
				b.removePiece(PieceForPlayer[state.Enemy][Pawn], to^8)
			} else if move.IsDoublePawnPush() {
				state.EnPassant = SingleBitboard(to ^ 8)
				state.Hash ^= EnPassantKey(state.EnPassant)
			}
		case King:
			if side := move.CastlingSide(); side.HasValue() {
				rook := PieceForPlayer[state.Player][Rook]
				rookFrom, rookTo := RookMoveForCastle(state.Player, side.Value())
				b.removePiece(rook, rookFrom)
				b.placePiece(rook, rookTo)
			}
		}
	}

	b.removePiece(movingPiece, from)
	b.placePiece(placedPiece, to)

	if capturedPiece != XX || movingPiece.PieceType() == Pawn {
		state.HalfMoveClock = 0
	} else {
		state.HalfMoveClock++
	}
	if state.Player == Black {
		state.FullMoveClock++
	}

	state.Player, state.Enemy = state.Enemy, state.Player
	state.Hash ^= ZobristSideToMove
	state.KingIndex = b.kingIndex(state.Player)
	if state.KingIndex == 64 {
		panic(Errorf("no %v king after %v\n%v", state.Player, move.DebugString(), b.Pieces))
	}
}

// UndoMove reverts the most recent PerformMove. The saved state, hash
// included, is restored as-is rather than recomputed.
func (b *Board) UndoMove() {
	if len(b.History) == 0 {
		panic(Errorf("undo with empty history\n%v", b.Pieces))
	}
	entry := b.History[len(b.History)-1]
	b.History = b.History[:len(b.History)-1]

	previous := &entry.State
	move := entry.Move
	from, to := move.From(), move.To()

	placedPiece := b.Pieces[to]
	movingPiece := placedPiece
	if move.IsPromotion() {
		movingPiece = PieceForPlayer[previous.Player][Pawn]
	}

	b.removePiece(placedPiece, to)
	b.placePiece(movingPiece, from)

	if entry.Captured != XX {
		b.placePiece(entry.Captured, to)
	} else if move.IsEnPassant() {
		b.placePiece(PieceForPlayer[previous.Enemy][Pawn], to^8)
	} else if side := move.CastlingSide(); side.HasValue() {
		rook := PieceForPlayer[previous.Player][Rook]
		rookFrom, rookTo := RookMoveForCastle(previous.Player, side.Value())
		b.removePiece(rook, rookTo)
		b.placePiece(rook, rookFrom)
	}

	b.State = *previous
}

func (b *Board) LastMove() Optional[Move] {
	if len(b.History) == 0 {
		return Empty[Move]()
	}
	return Some(b.History[len(b.History)-1].Move)
}

// MoveFromString decodes coordinate notation ("e2e4", "e7e8q") against the
// current position, filling in the flags the generator would have set.
func (b *Board) MoveFromString(s string) (Move, Error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, Errorf("invalid move '%v'", s)
	}
	from, err := BoardIndexFromString(s[0:2])
	if !IsNil(err) {
		return NullMove, Join(Errorf("invalid move '%v'", s), err)
	}
	to, err := BoardIndexFromString(s[2:4])
	if !IsNil(err) {
		return NullMove, Join(Errorf("invalid move '%v'", s), err)
	}

	piece := b.Pieces[from]
	if piece == XX || piece.Player() != b.State.Player {
		return NullMove, Errorf("no %v piece on %v for '%v'", b.State.Player, s[0:2], s)
	}

	flags := QuietFlags
	if b.Pieces[to] != XX {
		flags |= CaptureFlag
	}
	switch piece.PieceType() {
	case Pawn:
		if AbsDiff(from, to) == 16 {
			flags |= DoublePawnPushFlag
		} else if b.State.EnPassant.IsSet(to) && from&0b111 != to&0b111 {
			flags |= EnPassantFlag
		}
	case King:
		if to == from+2 {
			flags |= KingCastleFlag
		} else if to == from-2 {
			flags |= QueenCastleFlag
		}
	}

	move := NewMove(from, to, flags)
	if len(s) == 5 {
		promotion := PieceTypeFromString(s[4:5])
		if piece.PieceType() != Pawn || !Contains(PromotionPieceTypes[:], promotion) {
			return NullMove, Errorf("invalid promotion in '%v'", s)
		}
		move = move.WithPromotion(promotion)
	} else if piece.PieceType() == Pawn && PawnPromotionBitboard.IsSet(to) {
		return NullMove, Errorf("missing promotion piece in '%v'", s)
	}
	return move, NilError
}

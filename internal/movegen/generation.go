package movegen

import (
	. "github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/game"
	. "github.com/cricklet/chesscore/internal/helpers"
)

var _pawnPushOffsets = [2]int{8, -8}

// Pawns that land here after a single push may push again.
var _doublePushRanks = [2]Bitboard{
	shiftTowards(StartingPawnsForPlayer[White], _pawnPushOffsets[White]),
	shiftTowards(StartingPawnsForPlayer[Black], _pawnPushOffsets[Black]),
}

func shiftTowards(b Bitboard, offset int) Bitboard {
	if offset > 0 {
		return b << offset
	}
	return b >> -offset
}

func generateTargets(
	f func(move Move),
	startIndex int,
	targets Bitboard,
	allOccupied Bitboard,
) {
	quiet := targets & ^allOccupied
	capture := targets & allOccupied

	endIndex, tempQuiet := 0, quiet
	for tempQuiet != 0 {
		endIndex, tempQuiet = tempQuiet.NextIndexOfOne()
		f(NewMove(startIndex, endIndex, QuietFlags))
	}

	captureIndex, tempCapture := 0, capture
	for tempCapture != 0 {
		captureIndex, tempCapture = tempCapture.NextIndexOfOne()
		f(NewMove(startIndex, captureIndex, CaptureFlag))
	}
}

func generateSliderMoves(
	f func(move Move),
	pieces Bitboard,
	allOccupied Bitboard,
	selfOccupied Bitboard,
	attacks func(index int, occupied Bitboard) Bitboard,
) {
	startIndex, tempPieces := 0, pieces
	for tempPieces != 0 {
		startIndex, tempPieces = tempPieces.NextIndexOfOne()
		generateTargets(f, startIndex, attacks(startIndex, allOccupied) & ^selfOccupied, allOccupied)
	}
}

func generateJumpMovesByLookup(
	f func(move Move),
	pieces Bitboard,
	allOccupied Bitboard,
	selfOccupied Bitboard,
	attackMasks *[64]Bitboard,
) {
	startIndex, tempPieces := 0, pieces
	for tempPieces != 0 {
		startIndex, tempPieces = tempPieces.NextIndexOfOne()
		generateTargets(f, startIndex, attackMasks[startIndex] & ^selfOccupied, allOccupied)
	}
}

func appendPawnMoveAndPossiblePromotions(f func(move Move), startIndex int, endIndex int, flags MoveFlags) {
	move := NewMove(startIndex, endIndex, flags)
	if !PawnPromotionBitboard.IsSet(endIndex) {
		f(move)
		return
	}
	for _, pieceType := range PromotionPieceTypes {
		f(move.WithPromotion(pieceType))
	}
}

func generatePawnMoves(f func(move Move), b *Board) {
	player := b.State.Player
	playerBoards := &b.Bitboards.Players[player]
	enemyBoards := &b.Bitboards.Players[b.State.Enemy]
	occupied := b.Bitboards.Occupied
	pawns := playerBoards.Pieces[Pawn]
	pushOffset := _pawnPushOffsets[player]

	// one step
	singles := shiftTowards(pawns, pushOffset) & ^occupied
	index, temp := 0, singles
	for temp != 0 {
		index, temp = temp.NextIndexOfOne()
		appendPawnMoveAndPossiblePromotions(f, index-pushOffset, index, QuietFlags)
	}

	// skip step
	doubles := shiftTowards(singles&_doublePushRanks[player], pushOffset) & ^occupied
	index, temp = 0, doubles
	for temp != 0 {
		index, temp = temp.NextIndexOfOne()
		f(NewMove(index-2*pushOffset, index, DoublePawnPushFlag))
	}

	// captures
	startIndex, tempPawns := 0, pawns
	for tempPawns != 0 {
		startIndex, tempPawns = tempPawns.NextIndexOfOne()
		captures := PawnAttacks[player][startIndex] & enemyBoards.Occupied
		for captures != 0 {
			index, captures = captures.NextIndexOfOne()
			appendPawnMoveAndPossiblePromotions(f, startIndex, index, CaptureFlag)
		}
	}

	// en passant: the capturing pawns are those a pawn on the target square
	// would attack if it belonged to the enemy
	if b.State.EnPassant != 0 {
		target := b.State.EnPassant.FirstIndexOfOne()
		attackers := PawnAttacks[b.State.Enemy][target] & pawns
		for attackers != 0 {
			startIndex, attackers = attackers.NextIndexOfOne()
			f(NewMove(startIndex, target, EnPassantFlag))
		}
	}
}

func generateCastlingMoves(f func(move Move), b *Board) {
	player, enemy := b.State.Player, b.State.Enemy
	enemyBoards := &b.Bitboards.Players[enemy]

	for _, castlingSide := range AllCastlingSides {
		if !b.State.CastlingRights.Allowed(player, castlingSide) {
			continue
		}
		requirements := &AllCastlingRequirements[player][castlingSide]
		if b.Bitboards.Occupied&requirements.Empty != 0 {
			continue
		}
		canCastle := true
		for _, index := range requirements.Safe {
			if IsAttacked(index, b.Bitboards.Occupied, enemyBoards, enemy) {
				canCastle = false
				break
			}
		}
		if canCastle {
			f(requirements.Move)
		}
	}
}

// GeneratePseudoMoves calls f with every move that obeys piece movement,
// including moves that leave the mover's own king attacked. Castling is
// only emitted when the king's start, transit and destination squares are
// safe.
func GeneratePseudoMoves(f func(move Move), b *Board) {
	playerBoards := &b.Bitboards.Players[b.State.Player]
	occupied := b.Bitboards.Occupied

	generateCastlingMoves(f, b)
	generatePawnMoves(f, b)

	generateSliderMoves(f, playerBoards.Pieces[Rook], occupied, playerBoards.Occupied, RookAttacks)
	generateSliderMoves(f, playerBoards.Pieces[Bishop], occupied, playerBoards.Occupied, BishopAttacks)
	generateSliderMoves(f, playerBoards.Pieces[Queen], occupied, playerBoards.Occupied, QueenAttacks)

	generateJumpMovesByLookup(f, playerBoards.Pieces[Knight], occupied, playerBoards.Occupied, &KnightMoves)
	generateJumpMovesByLookup(f, playerBoards.Pieces[King], occupied, playerBoards.Occupied, &KingMoves)
}

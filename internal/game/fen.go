package game

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/helpers"
)

const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func FenStringForPlayer(p Player) string {
	if p == White {
		return "w"
	}
	return "b"
}

func fenStringForEnPassant(enPassant Optional[FileRank]) string {
	if enPassant.IsEmpty() {
		return "-"
	}
	return enPassant.Value().String()
}

func fenStringForPieces(b *BoardArray) string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			piece := b[IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += piece.String()
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if rank != 0 {
			s += "/"
		}
	}
	return s
}

func FenStringForBoard(b *Board) string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		fenStringForPieces(&b.Pieces),
		FenStringForPlayer(b.State.Player),
		b.State.CastlingRights,
		fenStringForEnPassant(b.EnPassantTarget()),
		b.State.HalfMoveClock,
		b.State.FullMoveClock)
}

func piecesFromFenString(boardStr string) (BoardArray, Error) {
	var board BoardArray

	ranks := strings.Split(boardStr, "/")
	if len(ranks) != 8 {
		return board, Errorf("expected 8 ranks, found %v in '%v'", len(ranks), boardStr)
	}

	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else if p, err := PieceFromRune(c); IsNil(err) {
				if file >= 8 {
					return board, Errorf("too many squares in rank %v, '%v'", rank, rankStr)
				}
				// a1 is index 0, so rank 8 (the first in the string) fills the top of the array
				board[IndexFromFileRank(FileRank{File: File(file), Rank: rank})] = p
				file++
			} else {
				return board, Errorf("unknown character '%c' in '%v'", c, boardStr)
			}
		}
		if file != 8 {
			return board, Errorf("rank %v has %v squares, '%v'", rank, file, rankStr)
		}
	}

	return board, NilError
}

// BoardFromFenString parses a FEN description. The castling, en passant and
// clock fields are optional, as many perft suites omit them.
func BoardFromFenString(s string) (*Board, Error) {
	ss := strings.Fields(s)
	if len(ss) != 6 && len(ss) != 4 && len(ss) != 2 {
		return nil, Errorf("wrong num %v of fields in str '%v'", len(ss), s)
	}

	pieces, err := piecesFromFenString(ss[0])
	if !IsNil(err) {
		return nil, err
	}

	player, err := PlayerFromString(ss[1])
	if !IsNil(err) {
		return nil, Join(Errorf("invalid player '%v' in '%v'", ss[1], s), err)
	}

	castlingRightsString, enPassantTargetString := "-", "-"
	if len(ss) >= 4 {
		castlingRightsString, enPassantTargetString = ss[2], ss[3]
	}

	halfMoveClockString, fullMoveClockString := "0", "1"
	if len(ss) == 6 {
		halfMoveClockString, fullMoveClockString = ss[4], ss[5]
	}

	castlingRights, err := CastlingRightsFromString(castlingRightsString)
	if !IsNil(err) {
		return nil, Join(Errorf("invalid castling rights in '%v'", s), err)
	}

	enPassant := Bitboard(0)
	if enPassantTargetString != "-" {
		index, err := BoardIndexFromString(enPassantTargetString)
		if !IsNil(err) {
			return nil, Join(Errorf("invalid en-passant target '%v' in '%v'", enPassantTargetString, s), err)
		}
		enPassant = SingleBitboard(index)
	}

	halfMoveClock, parseErr := strconv.Atoi(halfMoveClockString)
	if parseErr != nil || halfMoveClock < 0 {
		return nil, Join(Errorf("invalid half move clock '%v' in '%v'", halfMoveClockString, s), Wrap(parseErr))
	}

	fullMoveClock, parseErr := strconv.Atoi(fullMoveClockString)
	if parseErr != nil || fullMoveClock < 1 {
		return nil, Join(Errorf("invalid full move clock '%v' in '%v'", fullMoveClockString, s), Wrap(parseErr))
	}

	err = validatePosition(&pieces, player, castlingRights, enPassant)
	if !IsNil(err) {
		return nil, Join(Errorf("illegal position '%v'", s), err)
	}

	board := NewBoard(
		pieces,
		player,
		castlingRights,
		enPassant,
		halfMoveClock,
		fullMoveClock,
	)

	err = board.Validate()
	if !IsNil(err) {
		return nil, err
	}

	return board, NilError
}

func NewStartingBoard() *Board {
	board, err := BoardFromFenString(StartingFen)
	if !IsNil(err) {
		panic(err)
	}
	return board
}

func validatePosition(pieces *BoardArray, player Player, castlingRights CastlingRights, enPassant Bitboard) Error {
	bitboards := BitboardsFromBoardArray(pieces)
	var errs []Error

	for _, p := range []Player{White, Black} {
		if n := OnesCount(bitboards.Players[p].Pieces[King]); n != 1 {
			errs = append(errs, Errorf("%v has %v kings", p, n))
		}
		if bitboards.Players[p].Pieces[Pawn]&PawnPromotionBitboard != 0 {
			errs = append(errs, Errorf("%v has pawns on the back rank", p))
		}
	}
	if len(errs) > 0 {
		return Join(errs...)
	}

	for _, p := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			if !castlingRights.Allowed(p, side) {
				continue
			}
			requirements := AllCastlingRequirements[p][side]
			home := bitboards.Players[p].Pieces[King] | bitboards.Players[p].Pieces[Rook]
			if home&requirements.Pieces != requirements.Pieces {
				errs = append(errs, Errorf("%v cannot castle %v without king and rook at home", p, side))
			}
		}
	}

	if enPassant != 0 {
		index := enPassant.FirstIndexOfOne()
		// the target sits behind an enemy pawn that just double pushed
		expectedRank := Rank(5)
		if player == Black {
			expectedRank = Rank(2)
		}
		if FileRankFromIndex(index).Rank != expectedRank {
			errs = append(errs, Errorf("en passant target %v on wrong rank", StringFromBoardIndex(index)))
		} else if pieces[index] != XX || pieces[index^8] != PieceForPlayer[player.Other()][Pawn] {
			errs = append(errs, Errorf("en passant target %v without a double pushed pawn", StringFromBoardIndex(index)))
		}
	}

	enemy := player.Other()
	enemyKing := bitboards.Players[enemy].Pieces[King].FirstIndexOfOne()
	if IsAttacked(enemyKing, bitboards.Occupied, &bitboards.Players[player], player) {
		errs = append(errs, Errorf("%v to move but %v is in check", player, enemy))
	}

	return Join(errs...)
}

package game

import (
	"fmt"

	. "github.com/cricklet/chesscore/internal/bitboards"
	. "github.com/cricklet/chesscore/internal/helpers"
	. "github.com/cricklet/chesscore/internal/zobrist"
)

// GameState is the irreversible part of a position. It is snapshotted
// before every move and restored verbatim on undo.
type GameState struct {
	Player         Player
	Enemy          Player
	CastlingRights CastlingRights
	EnPassant      Bitboard // at most one bit
	KingIndex      int      // king of Player
	Hash           uint64
	HalfMoveClock  int
	FullMoveClock  int
}

type HistoryEntry struct {
	State    GameState
	Captured Piece
	Move     Move
}

// Board is a mutable position owned by a single caller. It changes only
// through PerformMove and UndoMove.
type Board struct {
	Pieces    BoardArray
	Bitboards Bitboards
	State     GameState
	History   []HistoryEntry
}

const _initialHistoryCapacity = 64

func NewBoard(
	pieces BoardArray,
	player Player,
	castlingRights CastlingRights,
	enPassant Bitboard,
	halfMoveClock int,
	fullMoveClock int,
) *Board {
	b := &Board{
		Pieces:    pieces,
		Bitboards: BitboardsFromBoardArray(&pieces),
		State: GameState{
			Player:         player,
			Enemy:          player.Other(),
			CastlingRights: castlingRights,
			EnPassant:      enPassant,
			HalfMoveClock:  halfMoveClock,
			FullMoveClock:  fullMoveClock,
		},
		History: make([]HistoryEntry, 0, _initialHistoryCapacity),
	}
	b.State.KingIndex = b.kingIndex(player)
	b.State.Hash = b.ComputeHash()
	return b
}

// Copy returns a board sharing nothing with b, for use on another goroutine.
func (b *Board) Copy() *Board {
	result := *b
	result.History = make([]HistoryEntry, len(b.History), MaxInt(cap(b.History), _initialHistoryCapacity))
	copy(result.History, b.History)
	return &result
}

func (b *Board) Player() Player {
	return b.State.Player
}

func (b *Board) Enemy() Player {
	return b.State.Enemy
}

func (b *Board) Hash() uint64 {
	return b.State.Hash
}

func (b *Board) Ply() int {
	return len(b.History)
}

func (b *Board) PieceAt(index int) Piece {
	return b.Pieces[index]
}

func (b *Board) EnPassantTarget() Optional[FileRank] {
	if b.State.EnPassant == 0 {
		return Empty[FileRank]()
	}
	return Some(FileRankFromIndex(b.State.EnPassant.FirstIndexOfOne()))
}

func (b *Board) ComputeHash() uint64 {
	return HashForBoardPosition(&b.Pieces, b.State.Player, b.State.CastlingRights, b.State.EnPassant)
}

func (b *Board) kingIndex(player Player) int {
	kingBoard := b.Bitboards.Players[player].Pieces[King]
	if kingBoard == 0 {
		return 64
	}
	return kingBoard.FirstIndexOfOne()
}

// KingIsInCheck reports whether the side to move is attacked.
func (b *Board) KingIsInCheck() bool {
	return b.PlayerIsInCheck(b.State.Player)
}

func (b *Board) PlayerIsInCheck(player Player) bool {
	kingIndex := b.kingIndex(player)
	if kingIndex == 64 {
		panic(Errorf("no %v king on board\n%v", player, b.Pieces))
	}
	enemy := player.Other()
	return IsAttacked(kingIndex, b.Bitboards.Occupied, &b.Bitboards.Players[enemy], enemy)
}

// Checkers returns the enemy pieces attacking the king of the side to move.
func (b *Board) Checkers() Bitboard {
	return Attackers(b.State.KingIndex, b.Bitboards.Occupied, &b.Bitboards.Players[b.State.Enemy], b.State.Enemy)
}

func (b *Board) removePiece(piece Piece, index int) {
	if b.Pieces[index] != piece {
		panic(Errorf("removing %v from %v but found '%v'\n%v",
			piece, StringFromBoardIndex(index), b.Pieces[index], b.Pieces))
	}
	b.Pieces[index] = XX
	b.Bitboards.ClearSquare(index, piece)
	b.State.Hash ^= PieceKey(piece, index)
}

func (b *Board) placePiece(piece Piece, index int) {
	if b.Pieces[index] != XX {
		panic(Errorf("placing %v on %v but found '%v'\n%v",
			piece, StringFromBoardIndex(index), b.Pieces[index], b.Pieces))
	}
	b.Pieces[index] = piece
	b.Bitboards.SetSquare(index, piece)
	b.State.Hash ^= PieceKey(piece, index)
}

// Validate checks that the piece list, bitboards, king square and hash all
// describe the same position.
func (b *Board) Validate() Error {
	var errs []Error

	for index, piece := range b.Pieces {
		fromBitboards, err := b.Bitboards.PieceAt(index)
		if !IsNil(err) {
			errs = append(errs, err)
		} else if fromBitboards != piece {
			errs = append(errs, Errorf("square %v holds '%v' but bitboards hold '%v'",
				StringFromBoardIndex(index), piece, fromBitboards))
		}
	}

	occupied := Bitboard(0)
	for player := White; player <= Black; player++ {
		playerOccupied := Bitboard(0)
		for _, pieces := range b.Bitboards.Players[player].Pieces {
			playerOccupied |= pieces
		}
		if playerOccupied != b.Bitboards.Players[player].Occupied {
			errs = append(errs, Errorf("%v occupancy out of date", player))
		}
		occupied |= playerOccupied
	}
	if occupied != b.Bitboards.Occupied {
		errs = append(errs, Errorf("occupancy out of date"))
	}

	if b.State.Enemy != b.State.Player.Other() {
		errs = append(errs, Errorf("enemy %v is not the opponent of %v", b.State.Enemy, b.State.Player))
	}
	if b.State.KingIndex != b.kingIndex(b.State.Player) {
		errs = append(errs, Errorf("king index %v but king is on %v", b.State.KingIndex, b.kingIndex(b.State.Player)))
	}
	if OnesCount(b.State.EnPassant) > 1 {
		errs = append(errs, Errorf("multiple en passant targets\n%v", b.State.EnPassant))
	}
	if hash := b.ComputeHash(); hash != b.State.Hash {
		errs = append(errs, Errorf("hash %x does not match recomputed %x", b.State.Hash, hash))
	}

	return Join(errs...)
}

func (b *Board) String() string {
	return fmt.Sprintf("%v\n%v", b.Pieces.Unicode(), FenStringForBoard(b))
}

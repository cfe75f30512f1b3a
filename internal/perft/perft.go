package perft

import (
	"context"

	. "github.com/cricklet/chesscore/internal/game"
	. "github.com/cricklet/chesscore/internal/helpers"
	. "github.com/cricklet/chesscore/internal/movegen"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Depth 0 counts the position itself.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := MoveList{}
	GenerateLegalMoves(b, &moves)
	if depth == 1 {
		return uint64(moves.Len())
	}

	count := uint64(0)
	for i := 0; i < moves.Len(); i++ {
		b.PerformMove(moves.At(i))
		count += Perft(b, depth-1)
		b.UndoMove()
	}
	return count
}

// Divide returns the perft count below each root move, keyed by the move in
// coordinate notation.
func Divide(b *Board, depth int) map[string]uint64 {
	return DivideWithProgress(b, depth, nil)
}

// DivideWithProgress is Divide, calling progress after each root move with
// the number of root moves done so far.
func DivideWithProgress(b *Board, depth int, progress func(done int, total int)) map[string]uint64 {
	result, _ := DivideContext(context.Background(), b, depth, progress)
	return result
}

// DivideContext stops between root moves once ctx is done, returning the
// counts finished so far with the context's error. The board is restored
// either way.
func DivideContext(ctx context.Context, b *Board, depth int, progress func(done int, total int)) (map[string]uint64, Error) {
	result := make(map[string]uint64)
	if depth == 0 {
		return result, NilError
	}

	moves := MoveList{}
	GenerateLegalMoves(b, &moves)
	for i := 0; i < moves.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return result, Wrap(err)
		}

		move := moves.At(i)
		b.PerformMove(move)
		result[move.String()] = Perft(b, depth-1)
		b.UndoMove()

		if progress != nil {
			progress(i+1, moves.Len())
		}
	}
	return result, NilError
}

// PerftContext is Perft with a cancellation check between root moves.
func PerftContext(ctx context.Context, b *Board, depth int) (uint64, Error) {
	if depth == 0 {
		return 1, Wrap(ctx.Err())
	}
	divide, err := DivideContext(ctx, b, depth, nil)
	return Total(divide), err
}

func Total(divide map[string]uint64) uint64 {
	total := uint64(0)
	for _, count := range divide {
		total += count
	}
	return total
}

// Result breaks down the leaves of a perft tree by the move that reached
// them, matching the columns of the usual published perft tables.
type Result struct {
	Leaves     uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

func (r *Result) Add(o Result) {
	r.Leaves += o.Leaves
	r.Captures += o.Captures
	r.EnPassants += o.EnPassants
	r.Castles += o.Castles
	r.Promotions += o.Promotions
	r.Checks += o.Checks
	r.Checkmates += o.Checkmates
}

func Detailed(b *Board, depth int) Result {
	if depth == 0 {
		return Result{Leaves: 1}
	}

	result := Result{}
	moves := MoveList{}
	GenerateLegalMoves(b, &moves)

	for i := 0; i < moves.Len(); i++ {
		move := moves.At(i)
		b.PerformMove(move)

		if depth > 1 {
			result.Add(Detailed(b, depth-1))
		} else {
			result.Add(leafResult(b, move))
		}

		b.UndoMove()
	}
	return result
}

// leafResult describes the position b reached by move.
func leafResult(b *Board, move Move) Result {
	result := Result{Leaves: 1}
	if move.IsCapture() {
		result.Captures++
	}
	if move.IsEnPassant() {
		result.EnPassants++
	}
	if move.IsCastle() {
		result.Castles++
	}
	if move.IsPromotion() {
		result.Promotions++
	}
	if b.KingIsInCheck() {
		result.Checks++
		if Status(b) == Checkmate {
			result.Checkmates++
		}
	}
	return result
}

package perft

import (
	"context"
	"fmt"
	"testing"

	. "github.com/cricklet/chesscore/internal/game"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pp(t any) string {
	return spew.Sdump(t)
}

const _kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
const _position3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"
const _position4 = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
const _position5 = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"

func boardFromFen(t *testing.T, fen string) *Board {
	b, err := BoardFromFenString(fen)
	require.True(t, IsNil(err), err)
	return b
}

func perftWithProgress(b *Board, depth int) uint64 {
	var progress *ProgressBar
	divide := DivideWithProgress(b, depth, func(done int, total int) {
		if progress == nil {
			p := CreateProgressBar(total, fmt.Sprint("depth ", depth))
			progress = &p
		}
		progress.Set(done)
	})
	if progress != nil {
		progress.Close()
	}
	return Total(divide)
}

func TestPerftDepthZero(t *testing.T) {
	b := NewStartingBoard()
	assert.Equal(t, uint64(1), Perft(b, 0))
	assert.Empty(t, Divide(b, 0))
	assert.Equal(t, Result{Leaves: 1}, Detailed(b, 0))
}

func TestMovesAtDepth(t *testing.T) {
	for _, c := range []struct {
		fen      string
		expected []uint64
		long     []uint64
	}{
		{StartingFen, []uint64{20, 400, 8902, 197281}, []uint64{4865609}},
		{_kiwipete, []uint64{48, 2039, 97862}, []uint64{4085603}},
		{_position3, []uint64{14, 191, 2812, 43238}, []uint64{674624}},
		{_position4, []uint64{6, 264, 9467}, []uint64{422333}},
		{_position5, []uint64{44, 1486, 62379}, []uint64{2103487}},
	} {
		expected := c.expected
		if !testing.Short() {
			expected = append(expected, c.long...)
		}

		for i, expectedCount := range expected {
			depth := i + 1
			b := boardFromFen(t, c.fen)
			before := b.Copy()

			actual := perftWithProgress(b, depth)
			assert.Equal(t, expectedCount, actual, "%v at depth %v", c.fen, depth)

			assert.Equal(t, before.Pieces, b.Pieces)
			assert.Equal(t, before.State, b.State)
		}
	}
}

func TestPerftMatchesDivide(t *testing.T) {
	b := boardFromFen(t, _kiwipete)
	assert.Equal(t, Perft(b, 3), Total(Divide(b, 3)))
}

func TestDivideContextCancelled(t *testing.T) {
	b := boardFromFen(t, _kiwipete)
	before := b.Copy()

	ctx, cancel := context.WithCancel(context.Background())
	divide, err := DivideContext(ctx, b, 2, func(done int, total int) {
		if done == 3 {
			cancel()
		}
	})
	assert.False(t, IsNil(err))
	assert.Len(t, divide, 3)
	assert.Equal(t, before.State, b.State)
	assert.Equal(t, before.Pieces, b.Pieces)

	nodes, err := PerftContext(ctx, b, 3)
	assert.False(t, IsNil(err))
	assert.Equal(t, uint64(0), nodes)

	nodes, err = PerftContext(context.Background(), b, 3)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, uint64(97862), nodes)
}

func TestDetailedStartingPosition(t *testing.T) {
	b := NewStartingBoard()

	assert.Equal(t, Result{Leaves: 20}, Detailed(b, 1))
	assert.Equal(t, Result{Leaves: 400}, Detailed(b, 2))
	assert.Equal(t, Result{Leaves: 8902, Captures: 34, Checks: 12}, Detailed(b, 3))
	assert.Equal(t, Result{Leaves: 197281, Captures: 1576, Checks: 469, Checkmates: 8}, Detailed(b, 4))
}

func TestDetailedKiwipete(t *testing.T) {
	b := boardFromFen(t, _kiwipete)

	assert.Equal(t, Result{Leaves: 48, Captures: 8, Castles: 2}, Detailed(b, 1))
	assert.Equal(t, Result{Leaves: 2039, Captures: 351, EnPassants: 1, Castles: 91, Checks: 3}, Detailed(b, 2))
	assert.Equal(t, Result{
		Leaves:     97862,
		Captures:   17102,
		EnPassants: 45,
		Castles:    3162,
		Checks:     993,
		Checkmates: 1,
	}, Detailed(b, 3))
}

func TestDetailedPromotions(t *testing.T) {
	b := boardFromFen(t, _position4)

	assert.Equal(t, Result{Leaves: 6}, Detailed(b, 1))
	assert.Equal(t, Result{Leaves: 264, Captures: 87, Castles: 6, Promotions: 48, Checks: 10, Checkmates: 0}, Detailed(b, 2))
}

// dragontoothDivide runs the same divide through an independent generator.
func dragontoothDivide(fen string, depth int) map[string]uint64 {
	board := dragontoothmg.ParseFen(fen)

	var count func(depth int) uint64
	count = func(depth int) uint64 {
		if depth == 0 {
			return 1
		}
		total := uint64(0)
		for _, move := range board.GenerateLegalMoves() {
			unapply := board.Apply(move)
			total += count(depth - 1)
			unapply()
		}
		return total
	}

	result := make(map[string]uint64)
	for _, move := range board.GenerateLegalMoves() {
		unapply := board.Apply(move)
		result[move.String()] = count(depth - 1)
		unapply()
	}
	return result
}

func TestDivideMatchesDragontooth(t *testing.T) {
	for _, fen := range []string{
		StartingFen,
		_kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		_position4,
		_position5,
		"rnbqkb1r/1ppppppp/5n2/p7/6PP/8/PPPPPP2/RNBQKBNR w KQkq a6 2 2",
		"rnbqkbnr/pp1p1ppp/2p5/4pP2/8/2P5/PP1PP1PP/RNBQKBNR w KQkq e6 0 3",
	} {
		b := boardFromFen(t, fen)
		// the oracle wants every field, so feed it our own rendering
		expected := dragontoothDivide(FenStringForBoard(b), 3)
		actual := Divide(b, 3)

		if !assert.Equal(t, expected, actual, fen) {
			for move, count := range actual {
				if expected[move] != count {
					t.Log(pp(struct {
						Fen      string
						Move     string
						Expected uint64
						Actual   uint64
					}{fen, move, expected[move], count}))
				}
			}
		}
	}
}

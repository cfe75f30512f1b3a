package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	. "github.com/cricklet/chesscore/internal/game"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/cricklet/chesscore/internal/perft"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func printDivide(logger Logger, b *Board, depth int) uint64 {
	var bar *progressbar.ProgressBar
	divide := perft.DivideWithProgress(b, depth, func(done int, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), fmt.Sprint("depth ", depth))
		}
		_ = bar.Set(done)
	})
	if bar != nil {
		_ = bar.Finish()
	}

	moves := maps.Keys(divide)
	slices.Sort(moves)
	for _, move := range moves {
		logger.Printf("%v: %v\n", move, divide[move])
	}
	return perft.Total(divide)
}

// countWithProgress prints plain progress lines to stderr instead of
// redrawing a bar.
func countWithProgress(b *Board, depth int) uint64 {
	if depth == 0 {
		return perft.Perft(b, depth)
	}
	var progress *ProgressBar
	divide := perft.DivideWithProgress(b, depth, func(done int, total int) {
		if progress == nil {
			p := CreateProgressBarTo(os.Stderr, total, fmt.Sprint("depth ", depth))
			progress = &p
		}
		progress.Set(done)
	})
	if progress != nil {
		progress.Close()
	}
	return perft.Total(divide)
}

func printDetailed(logger Logger, b *Board, depth int) uint64 {
	result := perft.Detailed(b, depth)
	logger.Printf("captures: %v\n", humanize.Comma(int64(result.Captures)))
	logger.Printf("en passants: %v\n", humanize.Comma(int64(result.EnPassants)))
	logger.Printf("castles: %v\n", humanize.Comma(int64(result.Castles)))
	logger.Printf("promotions: %v\n", humanize.Comma(int64(result.Promotions)))
	logger.Printf("checks: %v\n", humanize.Comma(int64(result.Checks)))
	logger.Printf("checkmates: %v\n", humanize.Comma(int64(result.Checkmates)))
	return result.Leaves
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
			os.Exit(1)
		}
	}()

	fen := flag.String("fen", StartingFen, "position to count from")
	depth := flag.Int("depth", 5, "depth in plies")
	divide := flag.Bool("divide", false, "print the count below each root move")
	detailed := flag.Bool("detailed", false, "break the leaves down by move kind")
	profilePath := flag.String("profile", "", "write a cpu profile to this directory")
	flag.Parse()

	logger := FuncLogger(func(s string) {
		fmt.Print(s)
	})

	if *profilePath != "" {
		p := profile.Start(profile.ProfilePath(*profilePath))
		defer p.Stop()
	}

	if *depth < 0 {
		fmt.Fprintln(os.Stderr, "depth must not be negative")
		os.Exit(2)
	}

	b, err := BoardFromFenString(*fen)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Println(b)

	start := time.Now()
	var nodes uint64
	if *divide {
		nodes = printDivide(logger, b, *depth)
	} else if *detailed {
		nodes = printDetailed(logger, b, *depth)
	} else {
		nodes = countWithProgress(b, *depth)
	}
	elapsed := time.Since(start)

	perSecond := int64(float64(nodes) / elapsed.Seconds())
	logger.Printf("nodes: %v\n", humanize.Comma(int64(nodes)))
	logger.Printf("time: %v @ %v/s\n", elapsed.Round(time.Millisecond), humanize.Comma(perSecond))
}

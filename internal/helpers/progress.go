package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if !IsNil(err) {
		return 80
	}
	return MaxInt(80, MinInt(120, width))
}

func runeCountIgnoringAnsi(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

func unitForDuration(d time.Duration) time.Duration {
	if d < time.Microsecond {
		return time.Nanosecond
	}
	if d < time.Millisecond {
		return time.Microsecond
	}
	if d < time.Second {
		return time.Millisecond
	}
	if d < time.Minute {
		return time.Second
	}
	return time.Minute
}

func CreateProgressBar(total int, label string) ProgressBar {
	return CreateProgressBarTo(os.Stdout, total, label)
}

// CreateProgressBarTo prints a line per update, backing off the update
// interval each time so long perft runs stay quiet.
func CreateProgressBarTo(out io.Writer, total int, label string) ProgressBar {
	value := int64(0)

	startTime := time.Now()
	updateDuration := time.Millisecond * 200

	var update = func(forceUpdate bool) {
		if time.Since(startTime) <= updateDuration && !forceUpdate {
			return
		}
		updateDuration *= 2

		current := atomic.LoadInt64(&value)
		if current > int64(total) {
			current = int64(total)
		} else if current == 0 || total <= 0 {
			return
		}

		elapsed := time.Since(startTime)
		perSecond := int64(float64(current) / elapsed.Seconds())

		percent := float64(current) / float64(total)
		expectedFinish := time.Duration(float64(elapsed) / percent)
		unit := unitForDuration(elapsed)

		prefix := fmt.Sprintf("%s %3d%% ", label, int(percent*100))
		suffix := fmt.Sprintf(" %v => %v @ %v/s", elapsed.Round(unit), expectedFinish.Round(unit), humanize.Comma(perSecond))

		totalProgressLen := MaxInt(termWidth()-runeCountIgnoringAnsi(prefix)-runeCountIgnoringAnsi(suffix), 0)
		currentProgressLen := MinInt(MaxInt(int(float64(totalProgressLen)*percent), 0), totalProgressLen)
		remainingProgressLen := totalProgressLen - currentProgressLen

		fmt.Fprintf(out, "%s%s%s%s\n", prefix, strings.Repeat("=", currentProgressLen), strings.Repeat(" ", remainingProgressLen), suffix)
	}
	return ProgressBar{
		func(i int) {
			atomic.StoreInt64(&value, int64(i))
			update(false)
		},
		func(i int) {
			atomic.AddInt64(&value, int64(i))
			update(false)
		}, func() {
			update(true)
		},
	}
}

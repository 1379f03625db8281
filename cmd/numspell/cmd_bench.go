package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"numspell/cmd/numspell/speller"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Spell a range concurrently and check it against a sequential pass",
	Long: "Spell every value in [--from, --to] with --workers goroutines per language,\n" +
		"then spell the range again on one goroutine and compare. Grammars are\n" +
		"shared between goroutines, so any difference is a bug.",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetInt64("from")
		to, _ := cmd.Flags().GetInt64("to")
		workers, _ := cmd.Flags().GetInt("workers")
		if to < from {
			return fmt.Errorf("--to (%d) is below --from (%d)", to, from)
		}
		if uint64(to)-uint64(from) >= maxBenchValues {
			return fmt.Errorf("range is too large (limit %s values)", humanize.Comma(maxBenchValues))
		}
		if workers < 1 {
			return fmt.Errorf("--workers must be at least 1")
		}

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		langs, err := resolveLanguages(s.registry, s.languages)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, l := range langs {
			res, err := benchLanguage(cmd.Context(), l.root, from, to, workers)
			if err != nil {
				return fmt.Errorf("%s: %w", l.tag, err)
			}
			printBench(w, l.tag, res, workers)
		}
		printMemory(w)
		return nil
	},
}

const maxBenchValues = 10_000_000

type benchResult struct {
	values   uint64
	bytes    uint64
	parallel time.Duration
}

// benchLanguage spells [from, to] on workers goroutines, then checks every
// result against a sequential pass.
func benchLanguage(ctx context.Context, root speller.Node, from, to int64, workers int) (benchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	count := uint64(to) - uint64(from) + 1
	out := make([]string, count)

	start := time.Now()
	var wg sync.WaitGroup
	chunk := (count + uint64(workers) - 1) / uint64(workers)
	for lo := uint64(0); lo < count; lo += chunk {
		hi := min(lo+chunk, count)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if i%4096 == 0 && ctx.Err() != nil {
					return
				}
				out[i] = speller.Spell(root, from+int64(i))
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return benchResult{}, err
	}
	res := benchResult{values: count, parallel: time.Since(start)}

	for i := uint64(0); i < count; i++ {
		want := speller.Spell(root, from+int64(i))
		if out[i] != want {
			return res, fmt.Errorf("value %d: parallel %q, sequential %q", from+int64(i), out[i], want)
		}
		res.bytes += uint64(len(want))
	}
	return res, nil
}

func printBench(w io.Writer, tag string, r benchResult, workers int) {
	rate := float64(r.values) / max(r.parallel, time.Nanosecond).Seconds()
	fmt.Fprintf(w, "%-4s %s values, %s of text in %s on %d workers (%s/s), parallel == sequential\n",
		tag, humanize.Comma(int64(r.values)), humanize.Bytes(r.bytes),
		r.parallel.Round(time.Microsecond), workers, humanize.Commaf(float64(int64(rate))))
}

// printMemory reports the resident set size of this process.
func printMemory(w io.Writer) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logf("process info: %v", err)
		return
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		logf("memory info: %v", err)
		return
	}
	fmt.Fprintf(w, "rss  %s\n", humanize.Bytes(mem.RSS))
}

func init() {
	benchCmd.Flags().Int64("from", 0, "first value")
	benchCmd.Flags().Int64("to", 99_999, "last value")
	benchCmd.Flags().Int("workers", runtime.NumCPU(), "goroutines per language")
}

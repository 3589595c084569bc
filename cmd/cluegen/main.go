// cluegen generates word-grid puzzles from a master clue list and prints
// them with their across/down clues.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"crosswarped.com/cluegen"
	"crosswarped.com/cluegen/internal/render"
	"crosswarped.com/cluegen/pkg/corpus"
)

func main() {
	count := flag.Int("count", 1, "Number of puzzles to generate")
	maxIterations := flag.Int("max-iterations", 0, "Total attempt budget (default 2000 per puzzle)")
	width := flag.Int("width", 5, "Grid width")
	height := flag.Int("height", 0, "Grid height (default: same as width)")
	cluesFile := flag.String("clues", "master_clues.json", "Master clue list file")
	archiveDir := flag.String("archive", "", "Archive puzzle directory; rebuilds the clue list when set")
	wordList := flag.String("wordlist", "", "Word list TSV for dictionary-tier clues (with -archive)")
	seed := flag.Uint64("seed", 0, "Random seed (default: time-based)")
	timeout := flag.Duration("timeout", 5*time.Minute, "Generation timeout")

	profile := flag.Bool("profile", false, "Profile the generator")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	if *height == 0 {
		*height = *width
	}
	if *maxIterations == 0 {
		*maxIterations = 2000 * *count
	}

	if *archiveDir != "" {
		fmt.Println("Extracting clue/answer pairs from archive puzzles...")
		records, err := corpus.BuildMaster(*archiveDir, *wordList)
		if err != nil {
			fmt.Println("Error building clue list:", err)
			os.Exit(1)
		}
		if err := corpus.SaveMaster(*cluesFile, records); err != nil {
			fmt.Println("Error saving clue list:", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %d clue/answer pairs to %s\n", len(records), *cluesFile)
	}

	records, err := corpus.LoadMaster(*cluesFile)
	if err != nil {
		fmt.Println("Error loading clue list:", err)
		os.Exit(1)
	}
	ix, err := corpus.NewIndex(records, max(*width, *height))
	if err != nil {
		fmt.Println("Error indexing clue list:", err)
		os.Exit(1)
	}
	printCorpusStats(records)

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	randSeed := *seed
	if randSeed == 0 {
		randSeed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(randSeed, randSeed>>32|1))

	gen := cluegen.NewGenerator(*width, *height, ix, rng)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Printf("Generating %d puzzles (%dx%d) with max %d attempts...\n", *count, *width, *height, *maxIterations)
	results, stats := gen.GenerateBatch(ctx, *count, *maxIterations)

	for i, r := range results {
		fmt.Println("--------------------------------")
		fmt.Printf("Puzzle #%d of %d (%s)\n", i+1, len(results), r.Tier)
		fmt.Println("--------------------------------")
		fmt.Println(render.Puzzle(r.Grid, ix))
		fmt.Printf("Stats: %d words, %d empty cells, quality %.2f\n", r.Words, r.EmptyCells, r.Score)
		if !r.Valid {
			fmt.Println("Constraint violations:", r.Reasons)
		}
	}

	fmt.Println("--------------------------------")
	fmt.Printf("Attempts: %d, perfect: %d, imperfect: %d, fallback: %d, returned: %d\n",
		stats.Attempts, stats.Perfect, stats.Imperfect, stats.Fallback, len(results))

	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}

	if ctx.Err() != nil {
		fmt.Println("Context error:", ctx.Err())
	}
}

func printCorpusStats(records []corpus.Answer) {
	fmt.Printf("Loaded %d clue/answer pairs\n", len(records))

	counts := make(map[int]int)
	for _, rec := range records {
		counts[rec.Quality]++
	}
	qualities := make([]int, 0, len(counts))
	for q := range counts {
		qualities = append(qualities, q)
	}
	sort.Ints(qualities)

	fmt.Println("Quality distribution:")
	for _, q := range qualities {
		fmt.Printf("  Quality %d: %d clues (%.1f%%)\n", q, counts[q], float64(counts[q])*100/float64(len(records)))
	}
}

//go:build ignore

// Package main generates a synthetic dictionary corpus for benchmarking.
// Usage: go run scripts/generate-test-corpus.go -entries 50000 -output testdata/bench/entries.jsonl
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/setia/htmldicts/internal/store"
	"github.com/setia/htmldicts/internal/translit"
)

var (
	numEntries = flag.Int("entries", 10000, "Number of entries to generate")
	output     = flag.String("output", "testdata/bench/entries.jsonl", "Output JSONL file")
	seed       = flag.Int64("seed", 42, "Random seed for reproducibility")
	cyrillic   = flag.Float64("cyrillic", 0.5, "Share of entries with a Cyrillic headword")
)

var (
	onsets  = []string{"b", "d", "dz", "dzh", "f", "g", "ğ", "k", "ḱ", "l", "m", "n", "q", "r", "s", "t", "x", "z", "c", "č"}
	nuclei  = []string{"a", "æ", "e", "i", "o", "u", "y", "ū"}
	codas   = []string{"", "", "n", "r", "s", "d", "g", "x", "m"}
	glosses = []string{
		"water", "river", "forest", "hare", "horse", "father", "mother", "stone",
		"mountain", "bread", "house", "village", "road", "song", "sun", "moon",
		"fire", "snow", "field", "wolf", "bear", "sword", "cup", "coat",
	}
	sources = []string{"Abaev.html", "Miller.html", "Ossetic-Russian.html", "Dialect notes.html"}
)

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))
	tr := translit.New()

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *output, err)
		os.Exit(1)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	fmt.Printf("Generating %d entries in %s...\n", *numEntries, *output)

	for i := 0; i < *numEntries; i++ {
		term := randomWord(rng)
		if rng.Float64() < *cyrillic {
			term = tr.LatinToCyrillic(term)
		}
		source := sources[rng.Intn(len(sources))]
		entry := store.Entry{
			ID:         fmt.Sprintf("doc_%d", i+1),
			Term:       term,
			Definition: randomDefinition(rng),
			Source:     source,
		}
		if rng.Intn(4) == 0 {
			entry.ExpandedContext = term + "\n" + entry.Definition + "\n" + randomDefinition(rng)
		}
		if err := enc.Encode(entry); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing entry %d: %v\n", i, err)
			os.Exit(1)
		}
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d entries successfully.\n", *numEntries)
}

func randomWord(rng *rand.Rand) string {
	var sb strings.Builder
	for n := 1 + rng.Intn(3); n > 0; n-- {
		sb.WriteString(onsets[rng.Intn(len(onsets))])
		sb.WriteString(nuclei[rng.Intn(len(nuclei))])
	}
	sb.WriteString(codas[rng.Intn(len(codas))])
	return sb.String()
}

func randomDefinition(rng *rand.Rand) string {
	words := make([]string, 1+rng.Intn(3))
	for i := range words {
		words[i] = glosses[rng.Intn(len(glosses))]
	}
	return strings.Join(words, ", ")
}

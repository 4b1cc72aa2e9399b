// Command qasmplay compiles and runs an OPENQASM 2.0 subset program
// against a pluggable simulator backend, printing the resulting
// measurement histogram.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/kegliz/qasmplay/internal/config"
	"github.com/kegliz/qasmplay/internal/logger"
	"github.com/kegliz/qasmplay/qasm/parser"
	"github.com/kegliz/qasmplay/qc/circuit"
	"github.com/kegliz/qasmplay/qc/executor"

	_ "github.com/kegliz/qasmplay/qc/simulator/itsu"
	_ "github.com/kegliz/qasmplay/qc/simulator/stabilizer"
	_ "github.com/kegliz/qasmplay/qc/simulator/statevector"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] != "run" {
		fmt.Fprintln(os.Stderr, "usage: qasmplay run <file.qasm> --backend statevector|clifford [--shots N] [--seed N] [--verbose]")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	backend := fs.String("backend", "", "simulator backend: statevector or clifford")
	shots := fs.Int("shots", 0, "number of shots")
	seed := fs.Int64("seed", 0, "PRNG seed")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	fs.Parse(os.Args[2:])

	// Flags may come before or after the file path: whatever follows the
	// path is parsed as a second round of flags.
	path := ""
	if fs.NArg() >= 1 {
		path = fs.Arg(0)
		fs.Parse(fs.Args()[1:])
	}
	if path == "" || fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "usage: qasmplay run <file.qasm> --backend statevector|clifford [--shots N] [--seed N] [--verbose]")
		os.Exit(1)
	}

	if *backend == "" {
		fmt.Fprintln(os.Stderr, "qasmplay: --backend is required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "qasmplay: loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Backend = *backend
	if *shots > 0 {
		cfg.Shots = *shots
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *verbose {
		cfg.Debug = true
	}

	log := logger.NewLogger(logger.LoggerOptions{Debug: cfg.Debug})

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qasmplay: reading %s: %v\n", path, err)
		os.Exit(1)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "qasmplay: parse error: %v\n", err)
		os.Exit(1)
	}

	compiled, err := circuit.Compile(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qasmplay: compile error: %v\n", err)
		os.Exit(1)
	}

	ex := executor.New(cfg.Backend, cfg.Shots, cfg.Workers, cfg.Seed, log.Logger)
	hist, _, err := ex.Run(compiled)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qasmplay: run error: %v\n", err)
		os.Exit(1)
	}

	printHistogram(hist, cfg.Shots)
}

func printHistogram(hist map[string]int, shots int) {
	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, state := range keys {
		count := hist[state]
		probability := float64(count) / float64(shots)
		fmt.Printf("%s: %d (%.2f%%)\n", state, count, probability*100)
	}
}

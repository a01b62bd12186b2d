// Command statetest drives the engine against Ethereum state-test JSON
// fixtures: it builds a pre-state database, runs the declared
// transaction under each listed hardfork, and reports whether the
// resulting account state matches what the fixture expects.
//
// Usage:
//
//	statetest [flags] <fixture.json> [more.json ...]
//
// Flags:
//
//	-v    verbose: print every case, not just failures
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the testable entry point: parse flags, load every fixture file,
// execute its cases, and print a pass/fail summary. Returns the process
// exit code (0 if every case passed).
func run(args []string) int {
	fs := flag.NewFlagSet("statetest", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "print every case, not just failures")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: statetest [flags] <fixture.json> [more.json ...]")
		return 2
	}

	failed := 0
	total := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fixtures, err := loadFixtures(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		for name, f := range fixtures {
			for _, r := range runFixture(name, f) {
				total++
				if !r.Passed {
					failed++
					fmt.Printf("FAIL %s/%s: %s: %s\n", path, r.Name, r.Fork, r.Message)
				} else if *verbose {
					fmt.Printf("PASS %s/%s: %s\n", path, r.Name, r.Fork)
				}
			}
		}
	}

	fmt.Printf("%d/%d cases passed\n", total-failed, total)
	if failed > 0 {
		return 1
	}
	return 0
}

// Command tablediff compares two master table CSVs. Reconciliation is
// deterministic, so two runs over identical inputs must produce byte-identical
// tables; this prints whatever differs. Exit code 1 means the tables diverge.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: tablediff <old.csv> <new.csv>")
		os.Exit(2)
	}

	oldData, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	newData, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(oldData), string(newData), true)
	dmp.DiffCleanupSemantic(diffs)

	changed := false
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			changed = true
			break
		}
	}

	if !changed {
		fmt.Println("tables identical")
		return
	}

	fmt.Print(dmp.DiffPrettyText(diffs))
	os.Exit(1)
}

// Command tossframe expands coin-toss count tables, stores them and fits
// models to their head rates.
//
//	tossframe expand inputs.csv --out tosses.xlsx --save run1
//	tossframe summary --table run1
//	tossframe fit inputs.csv
//	tossframe bench --rows 100000
//	tossframe tables
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

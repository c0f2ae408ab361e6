package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/seiflotfy/huff"
)

// symbolName renders printable ASCII as a quoted character and everything
// else as hex.
func symbolName(sym byte) string {
	if sym >= 0x21 && sym <= 0x7E {
		return strconv.QuoteRune(rune(sym))
	}
	return fmt.Sprintf("0x%02x", sym)
}

// writeTable prints one row per coded symbol, then a summary line.
// Counts are shown only when stats carries the frequency table.
func writeTable(w io.Writer, stats *huff.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tCOUNT\tBITS\tCODE")
	for _, sym := range stats.Table.Symbols() {
		code, _ := stats.Table.Lookup(sym)
		count := "-"
		if stats.Frequencies != nil {
			count = strconv.FormatUint(stats.Frequencies.Count(sym), 10)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", symbolName(sym), count, code.Len(), code)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d symbols, tree %d+%d bits, payload %d+%d bits\n",
		stats.Table.Len(), stats.TreeBits, stats.TreePadding, stats.PayloadBits, stats.PayloadPadding)
	return err
}

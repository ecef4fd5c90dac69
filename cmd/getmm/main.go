// SPDX-License-Identifier: MIT

// Command getmm normalizes RNA-seq count matrices with GeTMM.
//
//	getmm normalize --counts counts.csv --annotation genes.tsv -o normalized.csv
//	getmm lengths --annotation genes.gtf --format gtf
//	getmm config init
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kochabx/ecsig/core/crypto/ecsig"
	"github.com/kochabx/ecsig/log"
)

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Convert one signature per line",
		Flags: []cli.Flag{
			fileFlag("File with one signature per line, - or empty for stdin"),
			fromFlag(),
			toFlag(),
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "Worker pool size, 0 for GOMAXPROCS",
			},
		},
		Action: runBatch,
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	from, err := parseFormatFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := parseFormatFlag(cmd, "to")
	if err != nil {
		return err
	}

	r, closeFn, err := openInput(cmd, cmd.String("file"))
	if err != nil {
		return err
	}
	defer closeFn()

	var items []ecsig.BatchItem
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, ecsig.BatchItem{Input: line, From: from})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	results, err := newConverter(cmd).ConvertBatch(ctx, items, to, ecsig.WithConcurrency(cmd.Int("concurrency")))
	if err != nil {
		return err
	}

	w := writer(cmd)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Warn().Err(res.Err).Int("index", res.Index).Msg("conversion failed")
			fmt.Fprintf(w, "error: %v\n", res.Err)
			continue
		}
		fmt.Fprintln(w, res.Output)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
	return nil
}

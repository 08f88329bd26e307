package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kochabx/ecsig/core/crypto/ecsig"
)

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "Print the encoding of a signature",
		ArgsUsage: "[SIGNATURE]",
		Flags: []cli.Flag{
			inputFlag(),
			fileFlag("Read the signature from a file, - for stdin"),
		},
		Action: runDetect,
	}
}

func runDetect(ctx context.Context, cmd *cli.Command) error {
	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	if limit := cmd.Root().Int("max-input-size"); limit > 0 && len(input) > limit {
		return ecsig.ErrSizeLimit
	}

	format, err := ecsig.Detect(input)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(writer(cmd), format)
	return err
}

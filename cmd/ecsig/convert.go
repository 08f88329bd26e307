package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a signature to another encoding",
		ArgsUsage: "[SIGNATURE]",
		Flags: []cli.Flag{
			inputFlag(),
			fileFlag("Read the signature from a file, - for stdin"),
			fromFlag(),
			toFlag(),
		},
		Action: runConvert,
	}
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	from, err := parseFormatFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := parseFormatFlag(cmd, "to")
	if err != nil {
		return err
	}

	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	out, err := newConverter(cmd).Convert(input, from, to)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(writer(cmd), out)
	return err
}

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode a signature and print its integers and every encoding",
		ArgsUsage: "[SIGNATURE]",
		Flags: []cli.Flag{
			inputFlag(),
			fileFlag("Read the signature from a file, - for stdin"),
			fromFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output in JSON format",
			},
		},
		Action: runInspect,
	}
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	from, err := parseFormatFlag(cmd, "from")
	if err != nil {
		return err
	}

	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	report, err := newConverter(cmd).Inspect(input, from)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		_, err = fmt.Fprintln(writer(cmd), string(b))
		return err
	}

	tw := tabwriter.NewWriter(writer(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "format:\t%s\n", report.Format)
	fmt.Fprintf(tw, "r:\t%s (%d bits)\n", report.R, report.RBits)
	fmt.Fprintf(tw, "s:\t%s (%d bits)\n", report.S, report.SBits)
	if report.Width > 0 {
		fmt.Fprintf(tw, "width:\t%d bytes (%s)\n", report.Width, report.Curve)
	} else {
		fmt.Fprintf(tw, "width:\tnone\n")
	}
	fmt.Fprintf(tw, "asn1hex:\t%s\n", report.Encodings.ASN1Hex)
	if report.Encodings.P1363Hex != "" {
		fmt.Fprintf(tw, "p1363hex:\t%s\n", report.Encodings.P1363Hex)
		fmt.Fprintf(tw, "jws:\t%s\n", report.Encodings.JWS)
	}
	fmt.Fprintf(tw, "json:\t%s\n", report.Encodings.JSON)
	return tw.Flush()
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kochabx/ecsig/core/crypto/ecsig"
	"github.com/kochabx/ecsig/log"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ecsig:", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "ecsig",
		Usage:  "Convert ECDSA signatures between DER, P1363, JWS and JSON encodings",
		Reader: in,
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
				Value: "warn",
			},
			&cli.IntFlag{
				Name:  "max-input-size",
				Usage: "Maximum signature input size in bytes, 0 disables the check",
				Value: ecsig.DefaultMaxInputSize,
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			convertCommand(),
			detectCommand(),
			inspectCommand(),
			batchCommand(),
			serveCommand(),
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level, err := log.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return ctx, err
	}
	log.SetGlobalLevel(level)
	return ctx, nil
}

// newConverter 根据全局参数创建转换器
func newConverter(cmd *cli.Command) *ecsig.Converter {
	return ecsig.NewConverter(ecsig.WithMaxInputSize(cmd.Root().Int("max-input-size")))
}

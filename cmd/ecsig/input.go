package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kochabx/ecsig/core/crypto/ecsig"
)

func inputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Signature text",
	}
}

func fileFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   usage,
	}
}

func fromFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "from",
		Usage: "Input format: auto, asn1hex, p1363hex, jws, json",
		Value: "auto",
	}
}

func toFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "to",
		Usage:    "Output format: asn1hex, p1363hex, jws, json",
		Required: true,
	}
}

// readInput 依次取 --input、位置参数、--file、标准输入
func readInput(cmd *cli.Command) (string, error) {
	if text := cmd.String("input"); text != "" {
		return text, nil
	}
	if cmd.Args().Present() {
		return cmd.Args().First(), nil
	}

	r, closeFn, err := openInput(cmd, cmd.String("file"))
	if err != nil {
		return "", err
	}
	defer closeFn()

	// 多读一个字节以便交由转换器报告超限
	if limit := int64(cmd.Root().Int("max-input-size")); limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	text := strings.TrimRight(string(b), "\r\n")
	if strings.TrimSpace(text) == "" {
		return "", errEmptyInput
	}
	return text, nil
}

func openInput(cmd *cli.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		return r, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func parseFormatFlag(cmd *cli.Command, name string) (ecsig.Format, error) {
	f, err := ecsig.ParseFormat(cmd.String(name))
	if err != nil {
		return ecsig.FormatAuto, fmt.Errorf("--%s: %w", name, err)
	}
	return f, nil
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

var errEmptyInput = errors.New("no signature given, use --input, --file or stdin")

// Command brotlicat is a thin stdin/stdout wrapper around the brotli
// package, grounded on the flate package's gzip.go wrapper pattern: a
// minimal façade over a core codec, not a feature of the codec itself.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jncraton/brotli-polyfill"
)

func main() {
	decompress := flag.Bool("d", false, "decompress stdin instead of compressing it")
	lgwin := flag.Int("lgwin", 0, "window size (log2, 16-24) to use when compressing")
	flag.Parse()

	if err := run(*decompress, *lgwin); err != nil {
		fmt.Fprintln(os.Stderr, "brotlicat:", err)
		os.Exit(1)
	}
}

func run(decompress bool, lgwin int) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	var output []byte
	if decompress {
		output, err = brotli.Decompress(input)
	} else {
		output, err = brotli.CompressOptions{LGWin: lgwin}.Compress(input)
	}
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(output)
	return err
}

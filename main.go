// Command colangc translates a CO source file into portable C.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/colang-project/colang/cmd/colangc"
)

func main() {
	root := colangc.NewRoot()
	err := root.Execute()
	if err == nil {
		os.Exit(0)
	}

	var argErr interface{ Code() int }
	if errors.As(err, &argErr) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(argErr.Code())
	}

	fmt.Fprintln(os.Stderr, "colangc:", err)
	os.Exit(2)
}

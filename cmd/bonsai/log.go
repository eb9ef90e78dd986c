package main

import (
	"fmt"
	"os"
)

// logger writes lines to STDERR when true. It satisfies
// bonsai.Logger.
type logger bool

func (l logger) Logf(format string, a ...interface{}) {
	if !l {
		return
	}
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr, "")
}

// rctrace runs a script of handle operations and prints use counts and
// object lifecycles, for exploring how shared and weak handles interact.
//
// Usage:
//
//	rctrace [-v level] [script]   # reads stdin without a script file
//
// Script commands, one per line ('#' starts a comment):
//
//	new a          a = new object owned by a pointer block
//	make a         a = new object emplaced in its block
//	clone b a      b = copy of strong handle a
//	move b a       b = a, a becomes empty
//	weak w a       w = weak handle observing strong handle a
//	lock b w       b = w.Lock()
//	promote b w    b = promoted w, fails on a dead object
//	reset a        release a
//	swap a b       exchange two handles of the same strength
//	count a        print the use count
//	expired w      print whether w has expired
//
// Handles still alive at the end of the script are released in reverse
// order of creation.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/stdr"

	"github.com/dacapoday/rc"
	"github.com/dacapoday/rc/rclog"
)

func main() {
	verbosity := flag.Int("v", 0, "log verbosity (1 = block events)")
	flag.Parse()

	var input io.Reader = os.Stdin
	if flag.NArg() > 0 {
		file, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", 0))
	rc.SetObserver(rclog.New(logger))

	if err := run(input, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

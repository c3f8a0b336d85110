package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/apestrap/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// Every command opens the state stored in the home directory, runs a single
// operation and closes it again. Given args are the command line arguments
// without the program name and the command name.
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"init":           cmdInit,
	"create-pool":    cmdCreatePool,
	"set-allocation": cmdSetAllocation,
	"approve":        cmdApprove,
	"payout":         cmdPayout,
	"mint":           cmdMint,
	"send":           cmdSend,
	"allocations":    cmdAllocations,
	"balance":        cmdBalance,
	"pool-address":   cmdPoolAddress,
	"address":        cmdAddress,
	"query":          cmdQuery,
	"version":        cmdVersion,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s manages payout pools split between apes.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		reportError(os.Stderr, err, os.Getenv("APESTRAP_DEBUG") != "")
		os.Exit(1)
	}
}

// reportError writes err with the code and log a node would return to its
// client. Details of unregistered errors are only shown in debug mode.
func reportError(w io.Writer, err error, debug bool) {
	code, log := errors.ABCIInfo(err, debug)
	fmt.Fprintf(w, "error %d: %s\n", code, log)
	if !debug && errors.IsInternal(err) {
		fmt.Fprintln(w, "Set APESTRAP_DEBUG=1 to see the cause.")
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(input io.Reader, output io.Writer, args []string) error {
	fmt.Fprintln(output, gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash = "dev"

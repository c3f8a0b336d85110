package main

import (
	"fmt"
	"io"

	"github.com/iov-one/apestrap/app"
	"github.com/iov-one/apestrap/errors"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Load the genesis file into a new state. This can be done only once for a
home directory.`)
	e := envFlags(fl)
	genesisFl := fl.String("genesis", "genesis.json", "Path to the genesis file.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	h, err := e.openHost()
	if err != nil {
		return err
	}
	defer h.Close()
	if err := h.InitChain(gen); err != nil {
		return errors.Wrap(err, "init chain")
	}
	fmt.Fprintf(output, "initialized %s at height %d\n", h.ChainID(), h.Height())
	return nil
}

func cmdAddress(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Print the hex and bech32 form of an address. Use user:<name> for the address
of a command line user.`)
	addrFl := flAddress(fl, "addr", "Address to print.")
	hrpFl := fl.String("hrp", "ape", "Human readable part of the bech32 form.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	if len(addrFl.addr) == 0 {
		return errors.Wrap(errors.ErrEmpty, "addr")
	}
	b32, err := addrFl.addr.Bech32(*hrpFl)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	fmt.Fprintln(output, addrFl.addr)
	fmt.Fprintln(output, b32)
	return nil
}

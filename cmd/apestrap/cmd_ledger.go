package main

import (
	"fmt"
	"io"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/x/ledger"
	"github.com/iov-one/apestrap/x/splitter"
)

func cmdMint(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Create new tokens on the destination account. Must be run as the issuer.`)
	e := envFlags(fl)
	dstFl := flAddress(fl, "dst", "Destination account.")
	amountFl := fl.Uint64("amount", 0, "Amount of tokens to create.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	if _, err := e.run(&ledger.MintMsg{Destination: dstFl.addr, Amount: *amountFl}); err != nil {
		return err
	}
	fmt.Fprintf(output, "minted %d to %s\n", *amountFl, dstFl.addr)
	return nil
}

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Move tokens from the account of the -as user to the destination account.`)
	e := envFlags(fl)
	dstFl := flAddress(fl, "dst", "Destination account.")
	amountFl := fl.Uint64("amount", 0, "Amount of tokens to move.")
	memoFl := fl.String("memo", "", "A short message attached to the transfer.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	if *e.as == "" {
		return errors.Wrap(errors.ErrUnauthorized, "-as is required")
	}
	msg := &ledger.SendMsg{
		Source:      userCondition(*e.as).Address(),
		Destination: dstFl.addr,
		Amount:      *amountFl,
		Memo:        *memoFl,
	}
	if _, err := e.run(msg); err != nil {
		return err
	}
	fmt.Fprintf(output, "sent %d to %s\n", *amountFl, dstFl.addr)
	return nil
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Print the balance of an account or of a pool.`)
	e := envFlags(fl)
	addrFl := flAddress(fl, "addr", "Account address.")
	poolFl := fl.Uint64("pool", 0, "Pool number, used instead of -addr.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	addr := addrFl.addr
	if *poolFl != 0 {
		addr = splitter.PoolAccount(poolID(*poolFl))
	}
	if len(addr) == 0 {
		return errors.Wrap(errors.ErrEmpty, "either -addr or -pool is required")
	}

	h, err := e.openHost()
	if err != nil {
		return err
	}
	defer h.Close()
	ctrl := ledger.NewController()
	var balance uint64
	err = h.View(func(db apestrap.ReadOnlyKVStore) error {
		var err error
		balance, err = ctrl.Balance(db, addr)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(output, balance)
	return nil
}

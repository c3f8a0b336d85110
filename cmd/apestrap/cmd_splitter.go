package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/orm"
	"github.com/iov-one/apestrap/x/splitter"
)

func cmdCreatePool(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Create a new pool without payees and print its number. The administrator
defaults to the -as user.`)
	e := envFlags(fl)
	adminFl := flAddress(fl, "admin", "Pool administrator.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	admin := adminFl.addr
	if len(admin) == 0 && *e.as != "" {
		admin = userCondition(*e.as).Address()
	}
	res, err := e.run(&splitter.CreatePoolMsg{Admin: admin})
	if err != nil {
		return err
	}
	n, err := orm.DecodeID(res.Data)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, n)
	return nil
}

func cmdSetAllocation(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Replace the allocation table of a pool. Must be run as the pool administrator.
Every payee has to approve again afterwards. Repeat -payee for each payee, in
payout order.`)
	e := envFlags(fl)
	poolFl := fl.Uint64("pool", 0, "Pool number.")
	var payees payeesFlag
	fl.Var(&payees, "payee", "Payee and percentage as <address>=<percentage>.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	msg := &splitter.SetAllocationMsg{
		PoolID:      poolID(*poolFl),
		Payees:      payees.payees,
		Percentages: payees.percentages,
	}
	if _, err := e.run(msg); err != nil {
		return err
	}
	fmt.Fprintf(output, "pool %d has %d payees\n", *poolFl, len(payees.payees))
	return nil
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Approve the current allocation table of a pool as the -as user.`)
	e := envFlags(fl)
	poolFl := fl.Uint64("pool", 0, "Pool number.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	res, err := e.run(&splitter.ApproveMsg{PoolID: poolID(*poolFl)})
	if err != nil {
		return err
	}
	if res.Log != "" {
		fmt.Fprintln(output, res.Log)
		return nil
	}
	fmt.Fprintf(output, "approved pool %d\n", *poolFl)
	return nil
}

func cmdPayout(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Pay out the pool balance above the ledger reserve. All payees must have
approved the current allocation table. Prints the total amount paid.`)
	e := envFlags(fl)
	poolFl := fl.Uint64("pool", 0, "Pool number.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	res, err := e.run(&splitter.PayoutMsg{PoolID: poolID(*poolFl)})
	if err != nil {
		return err
	}
	if len(res.Data) != 8 {
		return errors.Wrapf(errors.ErrState, "unexpected payout result %X", res.Data)
	}
	fmt.Fprintln(output, binary.BigEndian.Uint64(res.Data))
	return nil
}

func cmdPoolAddress(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Print the ledger account of a pool. Tokens sent there are paid out.`)
	poolFl := fl.Uint64("pool", 0, "Pool number.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	fmt.Fprintln(output, splitter.PoolAccount(poolID(*poolFl)))
	return nil
}

func cmdAllocations(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Print the allocation table of a pool in payout order, together with the
approval state of each payee.`)
	e := envFlags(fl)
	poolFl := fl.Uint64("pool", 0, "Pool number.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}

	h, err := e.openHost()
	if err != nil {
		return err
	}
	defer h.Close()

	s := splitter.NewSplitter(nil, nil)
	id := poolID(*poolFl)
	type row struct {
		alloc    splitter.Allocation
		approved bool
	}
	var rows []row
	err = h.View(func(db apestrap.ReadOnlyKVStore) error {
		allocs, err := s.Allocations(db, id)
		if err != nil {
			return err
		}
		for _, a := range allocs {
			ok, err := s.IsApproved(db, id, a.Payee)
			if err != nil {
				return err
			}
			rows = append(rows, row{alloc: a, approved: ok})
		}
		return nil
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAYEE\tPERCENT\tAPPROVED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%t\n", r.alloc.Payee, splitter.FormatShare(r.alloc.Share), r.approved)
	}
	return tw.Flush()
}

package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/orm"
	"github.com/iov-one/apestrap/x/splitter"
)

// addressFlag is an address given in any format parseAddress accepts.
type addressFlag struct {
	raw  string
	addr apestrap.Address
}

var _ flag.Value = (*addressFlag)(nil)

func flAddress(fl *flag.FlagSet, name, usage string) *addressFlag {
	var a addressFlag
	fl.Var(&a, name, usage)
	return &a
}

func (a *addressFlag) String() string {
	return a.raw
}

func (a *addressFlag) Set(raw string) error {
	addr, err := parseAddress(raw)
	if err != nil {
		return err
	}
	a.raw = raw
	a.addr = addr
	return nil
}

// payeesFlag collects repeated "<address>=<percentage>" values in the
// order they were given.
type payeesFlag struct {
	payees      []apestrap.Address
	percentages []uint64
}

var _ flag.Value = (*payeesFlag)(nil)

func (p *payeesFlag) String() string {
	chunks := make([]string, len(p.payees))
	for i := range p.payees {
		chunks[i] = fmt.Sprintf("%s=%d", p.payees[i], p.percentages[i])
	}
	return strings.Join(chunks, ",")
}

func (p *payeesFlag) Set(raw string) error {
	chunks := strings.SplitN(raw, "=", 2)
	if len(chunks) != 2 {
		return fmt.Errorf("want <address>=<percentage>, got %q", raw)
	}
	addr, err := parseAddress(chunks[0])
	if err != nil {
		return err
	}
	pct, err := splitter.ParsePercentage(chunks[1])
	if err != nil {
		return err
	}
	p.payees = append(p.payees, addr)
	p.percentages = append(p.percentages, pct)
	return nil
}

// poolID returns the storage ID of the pool with the given number.
func poolID(n uint64) []byte {
	return orm.EncodeID(n)
}

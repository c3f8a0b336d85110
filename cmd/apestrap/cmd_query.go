package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/iov-one/apestrap/errors"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(output, `
Run a raw query and print every matching key and value in hex. Registered
paths are /accounts, /pools and /approvals. Append ?prefix to the path for a
prefix query.`)
	e := envFlags(fl)
	pathFl := fl.String("path", "/pools?prefix", "Query path.")
	dataFl := fl.String("data", "", "Hex encoded key or key prefix.")
	if err := parseFlags(fl, args); err != nil {
		return err
	}
	data, err := hex.DecodeString(*dataFl)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "data: %s", err)
	}

	h, err := e.openHost()
	if err != nil {
		return err
	}
	defer h.Close()
	models, err := h.Query(*pathFl, data)
	if err != nil {
		return err
	}
	for _, m := range models {
		fmt.Fprintf(output, "%X\t%X\n", m.Key, m.Value)
	}
	return nil
}

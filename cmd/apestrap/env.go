package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/app"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/store/bolt"
	"github.com/iov-one/apestrap/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	backendIavl = "iavl"
	backendBolt = "bolt"

	userPrefix = "user:"
)

// env holds the flags shared by all commands that open the state.
type env struct {
	home     *string
	backend  *string
	logLevel *string
	as       *string
	logOut   io.Writer
}

func envFlags(fl *flag.FlagSet) *env {
	return &env{
		home:     fl.String("home", defaultHome(), "Directory holding the application state."),
		backend:  fl.String("backend", backendIavl, "Storage backend, either iavl or bolt."),
		logLevel: fl.String("log-level", "error", "Log level, one of debug, info, error or none."),
		as:       fl.String("as", "", "Name of the signing user. The identity is trusted as given."),
		logOut:   os.Stderr,
	}
}

func defaultHome() string {
	if h := os.Getenv("APESTRAP_HOME"); h != "" {
		return h
	}
	return filepath.Join(os.Getenv("HOME"), ".apestrap")
}

// signers returns the conditions of the user given with -as, if any.
func (e *env) signers() []apestrap.Condition {
	if *e.as == "" {
		return nil
	}
	return []apestrap.Condition{userCondition(*e.as)}
}

func (e *env) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(e.logOut))
	opt, err := log.AllowLevel(*e.logLevel)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt).With("module", "apestrap"), nil
}

func (e *env) openStore() (apestrap.CommitKVStore, error) {
	if err := os.MkdirAll(*e.home, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "home directory: %s", err)
	}
	switch *e.backend {
	case backendIavl:
		return iavl.NewCommitStore(*e.home, "apestrap")
	case backendBolt:
		return bolt.NewCommitStore(filepath.Join(*e.home, "apestrap.bolt"))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown backend %q", *e.backend)
	}
}

// openHost returns a host running the application stack over the store in
// the home directory. Close it when done.
func (e *env) openHost() (*app.Host, error) {
	logger, err := e.logger()
	if err != nil {
		return nil, err
	}
	db, err := e.openStore()
	if err != nil {
		return nil, err
	}
	handler, queries, init := stack()
	h, err := app.NewHost(db, handler, queries, init, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return h, nil
}

// userCondition returns the condition representing a command line user.
func userCondition(name string) apestrap.Condition {
	return apestrap.NewCondition("cli", "user", []byte(name))
}

// parseAddress accepts every format apestrap.ParseAddress does, as well as
// "user:<name>" for command line users.
func parseAddress(s string) (apestrap.Address, error) {
	if strings.HasPrefix(s, userPrefix) {
		name := strings.TrimPrefix(s, userPrefix)
		if name == "" {
			return nil, errors.Wrap(errors.ErrInput, "empty user name")
		}
		return userCondition(name).Address(), nil
	}
	addr, err := apestrap.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// run delivers a single message signed by the -as user.
func (e *env) run(msg apestrap.Msg) (*apestrap.DeliverResult, error) {
	h, err := e.openHost()
	if err != nil {
		return nil, err
	}
	defer h.Close()
	return h.Deliver(context.Background(), &app.Tx{Signers: e.signers(), Msg: msg})
}

// parseFlags parses the arguments and rejects unexpected positional ones.
func parseFlags(fl *flag.FlagSet, args []string) error {
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if fl.NArg() != 0 {
		return errors.Wrapf(errors.ErrInput, "unexpected arguments: %s", strings.Join(fl.Args(), " "))
	}
	return nil
}

func newFlagSet(output io.Writer, usage string) *flag.FlagSet {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.SetOutput(output)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), usage)
		fl.PrintDefaults()
	}
	return fl
}

package ledger

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/x"
)

const (
	mintCost int64 = 50
	sendCost int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r apestrap.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathMintMsg, NewMintHandler(auth, control))
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr apestrap.QueryRouter) {
	NewAccountBucket().Register("accounts", qr)
}

// MintHandler creates new tokens. Only the configured issuer is allowed
// to mint.
type MintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ apestrap.Handler = MintHandler{}

// NewMintHandler creates a handler for MintMsg
func NewMintHandler(auth x.Authenticator, control Controller) MintHandler {
	return MintHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the issuer signature and returns the cost of minting.
func (h MintHandler) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &apestrap.CheckResult{GasAllocated: mintCost}, nil
}

// Deliver mints the tokens.
func (h MintHandler) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Mint(db, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &apestrap.DeliverResult{}, nil
}

func (h MintHandler) validate(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := apestrap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrUnauthorized, "no ledger configuration")
	case err != nil:
		return nil, err
	}
	if len(conf.Issuer) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no issuer configured")
	}
	if err := x.RequireSigner(ctx, h.auth, conf.Issuer, "issuer"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendHandler will handle sending tokens
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ apestrap.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &apestrap.CheckResult{GasAllocated: sendCost}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &apestrap.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx apestrap.Context, tx apestrap.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := apestrap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "account owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}

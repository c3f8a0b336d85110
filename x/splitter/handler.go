package splitter

import (
	"encoding/binary"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/x"
)

const (
	createPoolCost    int64 = 100
	setAllocationCost int64 = 50
	approveCost       int64 = 10
	payoutCost        int64 = 200

	// per payee costs on top of the base cost
	allocationPayeeCost int64 = 5
	payoutPayeeCost     int64 = 20
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r apestrap.Registry, auth x.Authenticator, s Splitter) {
	r.Handle(pathCreatePoolMsg, NewCreatePoolHandler(s))
	r.Handle(pathSetAllocationMsg, NewSetAllocationHandler(auth, s))
	r.Handle(pathApproveMsg, NewApproveHandler(auth, s))
	r.Handle(pathPayoutMsg, NewPayoutHandler(auth, s))
}

// RegisterQuery will register the pool bucket as "/pools" and the
// approval bucket as "/approvals"
func RegisterQuery(qr apestrap.QueryRouter) {
	NewPoolBucket().Register("pools", qr)
	NewApprovalBucket().Register("approvals", qr)
}

// collecting returns a splitter that additionally records all events, so
// that they can be returned as tags.
func collecting(s Splitter) (Splitter, *TagCollector) {
	tags := NewTagCollector()
	return s.WithSink(ChainSinks(s.sink, tags)), tags
}

// CreatePoolHandler creates new pools. Anyone can create a pool for any
// administrator.
type CreatePoolHandler struct {
	splitter Splitter
}

var _ apestrap.Handler = CreatePoolHandler{}

func NewCreatePoolHandler(s Splitter) CreatePoolHandler {
	return CreatePoolHandler{splitter: s}
}

func (h CreatePoolHandler) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &apestrap.CheckResult{GasAllocated: createPoolCost}, nil
}

// Deliver returns the ID of the created pool as data.
func (h CreatePoolHandler) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	id, err := h.splitter.CreatePool(db, msg.Admin)
	if err != nil {
		return nil, err
	}
	return &apestrap.DeliverResult{Data: id}, nil
}

func (h CreatePoolHandler) validate(tx apestrap.Tx) (*CreatePoolMsg, error) {
	var msg CreatePoolMsg
	if err := apestrap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// SetAllocationHandler replaces the allocation table. Only the pool
// administrator is allowed to do that.
type SetAllocationHandler struct {
	auth     x.Authenticator
	splitter Splitter
}

var _ apestrap.Handler = SetAllocationHandler{}

func NewSetAllocationHandler(auth x.Authenticator, s Splitter) SetAllocationHandler {
	return SetAllocationHandler{auth: auth, splitter: s}
}

func (h SetAllocationHandler) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	cost := setAllocationCost + allocationPayeeCost*int64(len(msg.Payees))
	return &apestrap.CheckResult{GasAllocated: cost}, nil
}

func (h SetAllocationHandler) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, tags := collecting(h.splitter)
	if err := s.SetAllocation(ctx, db, msg.PoolID, caller, msg.Payees, msg.Percentages); err != nil {
		return nil, err
	}
	return &apestrap.DeliverResult{Tags: tags.Tags()}, nil
}

// validate returns the message and the address of the signer setting the
// allocation.
func (h SetAllocationHandler) validate(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*SetAllocationMsg, apestrap.Address, error) {
	var msg SetAllocationMsg
	if err := apestrap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if len(msg.Payees) > int(conf.MaxPayees) {
		return nil, nil, errors.Wrapf(errors.ErrInput, "more than %d payees", conf.MaxPayees)
	}
	pool, err := h.splitter.Pool(db, msg.PoolID)
	if err != nil {
		return nil, nil, err
	}
	if err := x.RequireSigner(ctx, h.auth, pool.Admin, "admin"); err != nil {
		return nil, nil, err
	}
	return &msg, x.MainSignerAddress(ctx, h.auth), nil
}

// ApproveHandler approves the allocation table in the name of the main
// signer.
type ApproveHandler struct {
	auth     x.Authenticator
	splitter Splitter
}

var _ apestrap.Handler = ApproveHandler{}

func NewApproveHandler(auth x.Authenticator, s Splitter) ApproveHandler {
	return ApproveHandler{auth: auth, splitter: s}
}

func (h ApproveHandler) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &apestrap.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, tags := collecting(h.splitter)
	changed, err := s.Approve(ctx, db, msg.PoolID, caller)
	if err != nil {
		return nil, err
	}
	res := &apestrap.DeliverResult{Tags: tags.Tags()}
	if !changed {
		res.Log = "already approved"
	}
	return res, nil
}

func (h ApproveHandler) validate(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*ApproveMsg, apestrap.Address, error) {
	var msg ApproveMsg
	if err := apestrap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	if _, err := h.splitter.Pool(db, msg.PoolID); err != nil {
		return nil, nil, err
	}
	return &msg, signer.Address(), nil
}

// PayoutHandler executes the payout of a pool. Anyone is allowed to
// trigger it.
type PayoutHandler struct {
	auth     x.Authenticator
	splitter Splitter
}

var _ apestrap.Handler = PayoutHandler{}

func NewPayoutHandler(auth x.Authenticator, s Splitter) PayoutHandler {
	return PayoutHandler{auth: auth, splitter: s}
}

func (h PayoutHandler) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	_, pool, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	cost := payoutCost + payoutPayeeCost*int64(len(pool.Payees))
	return &apestrap.CheckResult{GasAllocated: cost}, nil
}

// Deliver returns the total paid amount as 8 byte big endian data.
func (h PayoutHandler) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	msg, _, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	caller := x.MainSignerAddress(ctx, h.auth)
	s, tags := collecting(h.splitter)
	total, err := s.Execute(ctx, db, msg.PoolID, caller)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, total)
	return &apestrap.DeliverResult{Data: data, Tags: tags.Tags()}, nil
}

func (h PayoutHandler) validate(db apestrap.KVStore, tx apestrap.Tx) (*PayoutMsg, *Pool, error) {
	var msg PayoutMsg
	if err := apestrap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	pool, err := h.splitter.Pool(db, msg.PoolID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, pool, nil
}

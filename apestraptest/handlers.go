package apestraptest

import "github.com/iov-one/apestrap"

// Call is a single invocation recorded by a mock.
type Call struct {
	// Deliver is false for a Check call.
	Deliver bool
	// Path of the message carried by the transaction, empty when the
	// transaction was nil.
	Path string
}

// recorder keeps the calls a mock received, in order.
type recorder struct {
	calls []Call
}

func (r *recorder) record(tx apestrap.Tx, deliver bool) {
	c := Call{Deliver: deliver}
	if tx != nil {
		c.Path = apestrap.GetPath(tx)
	}
	r.calls = append(r.calls, c)
}

// Calls returns a copy of all recorded calls.
func (r *recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}

// CallCount returns the number of Check and Deliver calls together.
func (r *recorder) CallCount() int {
	return len(r.calls)
}

// Handler is a mock apestrap.Handler returning fixed results. Set CheckErr
// or DeliverErr to fail the corresponding method instead.
type Handler struct {
	recorder

	CheckResult apestrap.CheckResult
	CheckErr    error

	DeliverResult apestrap.DeliverResult
	DeliverErr    error
}

var _ apestrap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	h.record(tx, false)
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	h.record(tx, true)
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

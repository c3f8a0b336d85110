package splitter

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// Splitter bundles the allocation table, the approval tracker and the
// payout engine working on the same buckets.
type Splitter struct {
	AllocationTable
	ApprovalTracker
	PayoutEngine

	pools PoolBucket
	sink  EventSink
}

// NewSplitter returns a splitter paying out through the given ledger.
// A nil sink drops all events.
func NewSplitter(ledger Ledger, sink EventSink) Splitter {
	if sink == nil {
		sink = NopSink{}
	}
	pools := NewPoolBucket()
	tracker := ApprovalTracker{
		pools:     pools,
		approvals: NewApprovalBucket(),
		sink:      sink,
	}
	return Splitter{
		AllocationTable: AllocationTable{
			pools:     pools,
			approvals: tracker,
			sink:      sink,
		},
		ApprovalTracker: tracker,
		PayoutEngine: PayoutEngine{
			pools:     pools,
			approvals: tracker,
			ledger:    ledger,
			sink:      sink,
		},
		pools: pools,
		sink:  sink,
	}
}

// WithSink returns a copy of the splitter emitting events to the sink.
func (s Splitter) WithSink(sink EventSink) Splitter {
	return NewSplitter(s.PayoutEngine.ledger, sink)
}

// CreatePool stores a new pool without payees and returns its ID.
func (s Splitter) CreatePool(db apestrap.KVStore, admin apestrap.Address) ([]byte, error) {
	if err := admin.Validate(); err != nil {
		return nil, errors.Wrap(err, "admin")
	}
	return s.pools.Create(db, &Pool{Admin: admin.Clone()})
}

// Pool returns the pool stored under the ID.
func (s Splitter) Pool(db apestrap.ReadOnlyKVStore, poolID []byte) (*Pool, error) {
	return s.pools.GetPool(db, poolID)
}

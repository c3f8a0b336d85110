package splitter

import (
	"encoding/json"
	"sync"

	"github.com/iov-one/apestrap"
	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification emitted after a successful state change.
type Event interface {
	EventName() string
}

// AllocationSet is emitted when an allocation table is replaced.
type AllocationSet struct {
	PoolID     []byte           `json:"pool_id"`
	Caller     apestrap.Address `json:"caller"`
	PayeeCount int              `json:"payee_count"`
}

func (AllocationSet) EventName() string { return "allocation_set" }

// ApeApproved is emitted when an address approves a pool for the first
// time since the last allocation change.
type ApeApproved struct {
	PoolID []byte           `json:"pool_id"`
	Payee  apestrap.Address `json:"payee"`
	Value  bool             `json:"value"`
}

func (ApeApproved) EventName() string { return "ape_approved" }

// PayoutExecuted is emitted after all transfers of a payout succeeded.
type PayoutExecuted struct {
	PoolID    []byte           `json:"pool_id"`
	Caller    apestrap.Address `json:"caller"`
	TotalPaid uint64           `json:"total_paid"`
}

func (PayoutExecuted) EventName() string { return "payout_executed" }

// EventSink receives emitted events. Emit must not fail the operation
// that produced the event.
type EventSink interface {
	Emit(ctx apestrap.Context, ev Event)
}

// NopSink drops all events.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) Emit(apestrap.Context, Event) {}

// LogSink writes every event to the context logger.
type LogSink struct{}

var _ EventSink = LogSink{}

func (LogSink) Emit(ctx apestrap.Context, ev Event) {
	apestrap.GetLogger(ctx).Info("event", "name", ev.EventName(), "event", ev)
}

// TagCollector keeps emitted events as key value tags, so that they can
// be returned with the delivery result.
type TagCollector struct {
	mu   sync.Mutex
	tags []common.KVPair
}

var _ EventSink = (*TagCollector)(nil)

// NewTagCollector returns an empty collector.
func NewTagCollector() *TagCollector {
	return &TagCollector{}
}

// Emit serializes the event to JSON. An event that cannot be serialized is
// recorded with an empty value.
func (c *TagCollector) Emit(_ apestrap.Context, ev Event) {
	raw, _ := json.Marshal(ev)
	c.mu.Lock()
	c.tags = append(c.tags, common.KVPair{
		Key:   []byte(confPkg + "/" + ev.EventName()),
		Value: raw,
	})
	c.mu.Unlock()
}

// Tags returns a copy of all collected tags in emission order.
func (c *TagCollector) Tags() []common.KVPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	cpy := make([]common.KVPair, len(c.tags))
	copy(cpy, c.tags)
	return cpy
}

type multiSink []EventSink

func (m multiSink) Emit(ctx apestrap.Context, ev Event) {
	for _, s := range m {
		s.Emit(ctx, ev)
	}
}

// ChainSinks returns a sink that forwards each event to all sinks in order.
func ChainSinks(sinks ...EventSink) EventSink {
	return multiSink(sinks)
}

package splitter

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/orm"
)

const (
	poolBucketName     = "pool"
	approvalBucketName = "approval"
)

// Pool holds the allocation table of a single payout pool. Payees and
// Shares are parallel lists in table order.
type Pool struct {
	Admin  apestrap.Address
	Payees []apestrap.Address
	Shares []uint64
}

var _ orm.Model = (*Pool)(nil)

// Validate makes sure the table is consistent.
func (p *Pool) Validate() error {
	if err := p.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if len(p.Payees) != len(p.Shares) {
		return errors.Wrapf(ErrArityMismatch, "%d payees, %d shares", len(p.Payees), len(p.Shares))
	}
	return validatePayees(p.Payees)
}

// ShareOf returns the share of the payee, zero for non members.
func (p *Pool) ShareOf(payee apestrap.Address) uint64 {
	for i, addr := range p.Payees {
		if addr.Equals(payee) {
			return p.Shares[i]
		}
	}
	return 0
}

// IsPayee returns true if the address is listed in the table.
func (p *Pool) IsPayee(addr apestrap.Address) bool {
	for _, payee := range p.Payees {
		if payee.Equals(addr) {
			return true
		}
	}
	return false
}

func validatePayees(payees []apestrap.Address) error {
	seen := make(map[string]struct{}, len(payees))
	for i, payee := range payees {
		if err := payee.Validate(); err != nil {
			return errors.Wrapf(err, "payee %d", i)
		}
		if _, ok := seen[string(payee)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "payee %s", payee)
		}
		seen[string(payee)] = struct{}{}
	}
	return nil
}

// PoolAccount returns the ledger account controlled by the pool.
func PoolAccount(poolID []byte) apestrap.Address {
	return apestrap.NewCondition("split", "pool", poolID).Address()
}

// PoolBucket stores pools under a sequence generated ID.
type PoolBucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewPoolBucket returns a bucket for storing pools.
func NewPoolBucket() PoolBucket {
	b := orm.NewBucket(poolBucketName, orm.NewSimpleObj(nil, &Pool{}))
	return PoolBucket{
		Bucket: b,
		idSeq:  b.Sequence(orm.SeqID),
	}
}

// Create saves a new pool under the next free ID and returns that ID.
func (b PoolBucket) Create(db apestrap.KVStore, pool *Pool) ([]byte, error) {
	id, err := b.idSeq.Next(db)
	if err != nil {
		return nil, errors.Wrap(err, "next id")
	}
	if err := b.Bucket.Save(db, orm.NewSimpleObj(id, pool)); err != nil {
		return nil, err
	}
	return id, nil
}

// GetPool returns the pool or ErrNotFound.
func (b PoolBucket) GetPool(db apestrap.ReadOnlyKVStore, id []byte) (*Pool, error) {
	obj, err := b.Get(db, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "pool %X", id)
	}
	return obj.Value().(*Pool), nil
}

// SavePool overwrites the pool stored under the ID.
func (b PoolBucket) SavePool(db apestrap.KVStore, id []byte, pool *Pool) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(id, pool))
}

// Approval is the approval flag of a single payee in a single pool.
type Approval struct {
	Approved bool
}

var _ orm.Model = (*Approval)(nil)

// Validate is a noop.
func (a *Approval) Validate() error {
	return nil
}

// ApprovalBucket stores approvals keyed by pool ID followed by the payee
// address, so that all approvals of a pool share a prefix.
type ApprovalBucket struct {
	orm.Bucket
}

// NewApprovalBucket returns a bucket for storing approvals.
func NewApprovalBucket() ApprovalBucket {
	return ApprovalBucket{
		Bucket: orm.NewBucket(approvalBucketName, orm.NewSimpleObj(nil, &Approval{})),
	}
}

func approvalKey(poolID []byte, payee apestrap.Address) []byte {
	key := make([]byte, 0, len(poolID)+len(payee))
	key = append(key, poolID...)
	return append(key, payee...)
}

// IsApproved returns the approval flag, false when never set.
func (b ApprovalBucket) IsApproved(db apestrap.ReadOnlyKVStore, poolID []byte, payee apestrap.Address) (bool, error) {
	obj, err := b.Get(db, approvalKey(poolID, payee))
	if err != nil {
		return false, err
	}
	if obj == nil {
		return false, nil
	}
	return obj.Value().(*Approval).Approved, nil
}

// SetApproved stores the approval flag. A false flag removes the entry.
func (b ApprovalBucket) SetApproved(db apestrap.KVStore, poolID []byte, payee apestrap.Address, approved bool) error {
	key := approvalKey(poolID, payee)
	if !approved {
		return b.Delete(db, key)
	}
	return b.Save(db, orm.NewSimpleObj(key, &Approval{Approved: true}))
}

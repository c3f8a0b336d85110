package app

import (
	"context"
	"sync"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Host executes transactions one by one against a commit store. Every
// delivered transaction runs in its own cache wrap that is written and
// committed only if the handler succeeds, so a failed transaction leaves
// no trace.
//
// Queries may run concurrently with each other, but never with a
// transaction.
type Host struct {
	mu sync.RWMutex

	store   apestrap.CommitKVStore
	handler apestrap.Handler
	queries *QueryRouter
	init    apestrap.Initializer
	logger  log.Logger

	chainID string
	height  int64
}

// NewHost loads the latest version of the store and returns a host ready
// to process transactions.
func NewHost(
	store apestrap.CommitKVStore,
	handler apestrap.Handler,
	queries *QueryRouter,
	init apestrap.Initializer,
	logger log.Logger,
) (*Host, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cid, err := store.LatestVersion()
	if err != nil {
		return nil, errors.Wrap(err, "latest version")
	}
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Host{
		store:   store,
		handler: handler,
		queries: queries,
		init:    init,
		logger:  logger.With("module", "host"),
		chainID: chainID,
		height:  cid.Version,
	}, nil
}

// InitChain stores the chain id and loads the genesis state. It can be
// called only once during the lifetime of the store.
func (h *Host) InitChain(gen Genesis) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for %q", h.chainID)
	}
	cache := h.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if h.init != nil {
		if err := h.init.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := h.commit(cache); err != nil {
		return err
	}
	h.chainID = gen.ChainID
	h.logger.Info("genesis loaded", "chain_id", gen.ChainID, "height", h.height)
	return nil
}

// Check runs the transaction without persisting any change.
func (h *Host) Check(ctx context.Context, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if err := h.ready(); err != nil {
		return nil, err
	}
	cache := h.store.CacheWrap()
	defer cache.Discard()
	return h.handler.Check(h.context(ctx, h.height+1), cache, tx)
}

// Deliver executes the transaction and commits its changes as the next
// version of the store.
func (h *Host) Deliver(ctx context.Context, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ready(); err != nil {
		return nil, err
	}
	cache := h.store.CacheWrap()
	res, err := h.handler.Deliver(h.context(ctx, h.height+1), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := h.commit(cache); err != nil {
		return nil, err
	}
	return res, nil
}

// DeliverRaw decodes the transaction with DecodeTx and delivers it.
func (h *Host) DeliverRaw(ctx context.Context, raw []byte) (*apestrap.DeliverResult, error) {
	tx, err := DecodeTx(raw)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, tx)
}

// Query runs a registered query against the last committed state.
func (h *Host) Query(path string, data []byte) ([]apestrap.Model, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.queries.Query(h.store, path, data)
}

// View calls fn with the last committed state. The store must not be
// used after fn returns.
func (h *Host) View(fn func(db apestrap.ReadOnlyKVStore) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return fn(h.store)
}

// Height returns the latest committed version.
func (h *Host) Height() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.height
}

// ChainID returns the chain id loaded from genesis, empty before InitChain.
func (h *Host) ChainID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.chainID
}

// Close releases the store.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Close()
}

func (h *Host) ready() error {
	if h.chainID == "" {
		return errors.Wrap(errors.ErrState, "genesis not loaded")
	}
	return nil
}

func (h *Host) context(ctx context.Context, height int64) apestrap.Context {
	ctx = apestrap.WithHeight(ctx, height)
	ctx = apestrap.WithChainID(ctx, h.chainID)
	return apestrap.WithLogger(ctx, h.logger.With("height", height))
}

// commit must be called while holding the write lock.
func (h *Host) commit(cache apestrap.KVCacheWrap) error {
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write cache")
	}
	cid, err := h.store.Commit()
	if err != nil {
		return errors.Wrap(err, "commit")
	}
	h.height = cid.Version
	return nil
}

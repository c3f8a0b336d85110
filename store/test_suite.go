package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreOpener returns a fresh, empty store together with a function that
// releases it.
type StoreOpener func() (base CacheableKVStore, cleanup func())

// RunBackendSuite runs the checks every KVStore backend has to pass. The
// in-memory btree store, the iavl tree and the bolt database all share it.
// Checks named in skip are not run.
func RunBackendSuite(t *testing.T, open StoreOpener, skip ...string) {
	checks := map[string]func(*testing.T, StoreOpener){
		"read write":        checkReadWrite,
		"cache overlay":     checkCacheOverlay,
		"ordered iteration": checkOrderedIteration,
		"random iteration":  checkRandomIteration,
	}
	for _, name := range skip {
		delete(checks, name)
	}
	for name, check := range checks {
		check := check
		t.Run(name, func(t *testing.T) { check(t, open) })
	}
}

// checkReadWrite follows a value through a cache layer into the base.
func checkReadWrite(t *testing.T, open StoreOpener) {
	base, cleanup := open()
	defer cleanup()

	expectValues(t, base, map[string]string{"acct/alice": ""})
	require.NoError(t, base.Set([]byte("acct/alice"), []byte("100")))
	expectValues(t, base, map[string]string{"acct/alice": "100"})

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("acct/bob"), []byte("50")))
	expectValues(t, cache, map[string]string{"acct/alice": "100", "acct/bob": "50"})
	expectValues(t, base, map[string]string{"acct/bob": ""})

	require.NoError(t, cache.Write())
	expectValues(t, base, map[string]string{"acct/alice": "100", "acct/bob": "50"})

	dropped := base.CacheWrap()
	require.NoError(t, dropped.Set([]byte("acct/charlie"), []byte("7")))
	dropped.Discard()
	expectValues(t, base, map[string]string{"acct/charlie": ""})

	drain := base.CacheWrap()
	require.NoError(t, drain.Delete([]byte("acct/alice")))
	expectValues(t, base, map[string]string{"acct/alice": "100"})
	require.NoError(t, drain.Write())
	expectValues(t, base, map[string]string{"acct/alice": "", "acct/bob": "50"})
}

// checkCacheOverlay makes sure a cache layer shadows its parent until it
// is written.
func checkCacheOverlay(t *testing.T, open StoreOpener) {
	k := func(s string) []byte { return []byte(s) }

	cases := map[string]struct {
		parent      []Op
		child       []Op
		wantParent  map[string]string
		wantChild   map[string]string
		wantWritten map[string]string
	}{
		"overwrite, delete and add": {
			parent:      []Op{SetOp(k("pool/1"), k("a")), SetOp(k("pool/2"), k("b"))},
			child:       []Op{SetOp(k("pool/1"), k("A")), DelOp(k("pool/2")), SetOp(k("pool/3"), k("c"))},
			wantParent:  map[string]string{"pool/1": "a", "pool/2": "b", "pool/3": ""},
			wantChild:   map[string]string{"pool/1": "A", "pool/2": "", "pool/3": "c"},
			wantWritten: map[string]string{"pool/1": "A", "pool/2": "", "pool/3": "c"},
		},
		"delete then set again": {
			parent:      []Op{SetOp(k("pool/1"), k("a"))},
			child:       []Op{DelOp(k("pool/1")), SetOp(k("pool/1"), k("z"))},
			wantParent:  map[string]string{"pool/1": "a"},
			wantChild:   map[string]string{"pool/1": "z"},
			wantWritten: map[string]string{"pool/1": "z"},
		},
		"set then delete": {
			child:       []Op{SetOp(k("pool/9"), k("x")), DelOp(k("pool/9"))},
			wantParent:  map[string]string{"pool/9": ""},
			wantChild:   map[string]string{"pool/9": ""},
			wantWritten: map[string]string{"pool/9": ""},
		},
		"delete missing key": {
			parent:      []Op{SetOp(k("pool/1"), k("a"))},
			child:       []Op{DelOp(k("pool/404"))},
			wantParent:  map[string]string{"pool/1": "a"},
			wantChild:   map[string]string{"pool/1": "a", "pool/404": ""},
			wantWritten: map[string]string{"pool/1": "a", "pool/404": ""},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := open()
			defer cleanup()

			applyOps(t, parent, tc.parent)
			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			expectValues(t, parent, tc.wantParent)
			expectValues(t, child, tc.wantChild)

			require.NoError(t, child.Write())
			expectValues(t, parent, tc.wantWritten)
		})
	}
}

// checkOrderedIteration walks fixed keys split between a parent and its
// cache layer.
func checkOrderedIteration(t *testing.T, open StoreOpener) {
	m := func(key, value string) Model { return Model{Key: []byte(key), Value: []byte(value)} }
	alice, bob, carol, dave := m("acct/alice", "1"), m("acct/bob", "2"), m("acct/carol", "3"), m("acct/dave", "4")
	pool := m("pool/1", "p")

	cases := map[string]iterCase{
		"parent only": {
			pre: makeSetOps(alice, carol, pool),
			queries: []rangeQuery{
				{nil, nil, false, []Model{alice, carol, pool}},
				{[]byte("acct/"), []byte("acct0"), false, []Model{alice, carol}},
				{[]byte("acct/"), []byte("acct0"), true, []Model{carol, alice}},
			},
		},
		"child fills gaps": {
			pre:   makeSetOps(alice, carol),
			child: makeSetOps(bob, dave, pool),
			queries: []rangeQuery{
				{nil, nil, false, []Model{alice, bob, carol, dave, pool}},
				{[]byte("acct/b"), []byte("acct/d"), false, []Model{bob, carol}},
				{[]byte("acct/b"), nil, true, []Model{pool, dave, carol, bob}},
			},
		},
		"child deletes and overwrites": {
			pre:   makeSetOps(alice, bob, carol),
			child: append(makeDelOps(bob), SetOp(carol.Key, []byte("30"))),
			queries: []rangeQuery{
				{nil, nil, false, []Model{alice, m("acct/carol", "30")}},
				{nil, carol.Key, false, []Model{alice}},
				{nil, nil, true, []Model{m("acct/carol", "30"), alice}},
			},
		},
		"empty range": {
			pre: makeSetOps(alice, bob),
			queries: []rangeQuery{
				{[]byte("pool/"), []byte("pool0"), false, nil},
				{[]byte("acct/x"), []byte("acct0"), true, nil},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := open()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// checkRandomIteration compares iteration over random keys, with random
// deletes, against a sorted copy of what was written.
func checkRandomIteration(t *testing.T, open StoreOpener) {
	const size = 40

	childSet := randModels(size, 8, 24)
	parentSet := randModels(size, 8, 24)
	child := append(makeSetOps(childSet...), makeDelOps(randModels(10, 8, 24)...)...)
	parent := append(makeSetOps(parentSet...), makeDelOps(randModels(10, 8, 24)...)...)

	only := sortModels(childSet)
	both := sortModels(append(childSet, parentSet...))

	cases := map[string]iterCase{
		"child with empty parent": {
			child:   child,
			queries: sampleQueries(only),
		},
		"child over parent": {
			pre:     parent,
			child:   child,
			queries: sampleQueries(both),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := open()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// sampleQueries returns bounded and unbounded queries in both directions.
func sampleQueries(sorted []Model) []rangeQuery {
	n := len(sorted)
	lo, hi := n/4, 3*n/4
	return []rangeQuery{
		{nil, nil, false, sorted},
		{sorted[lo].Key, nil, false, sorted[lo:]},
		{nil, sorted[hi].Key, false, sorted[:hi]},
		{sorted[lo].Key, sorted[hi].Key, false, sorted[lo:hi]},
		{nil, nil, true, reverse(sorted)},
		{sorted[lo].Key, sorted[hi].Key, true, reverse(sorted[lo:hi])},
	}
}

// expectValues checks every key against its wanted value. An empty value
// means the key must be absent.
func expectValues(t testing.TB, kv ReadOnlyKVStore, want map[string]string) {
	t.Helper()
	for key, value := range want {
		got, err := kv.Get([]byte(key))
		require.NoError(t, err)
		has, err := kv.Has([]byte(key))
		require.NoError(t, err)
		if value == "" {
			assert.Nil(t, got, "key %q", key)
			assert.False(t, has, "key %q", key)
			continue
		}
		assert.Equal(t, []byte(value), got, "key %q", key)
		assert.True(t, has, "key %q", key)
	}
}

func applyOps(t testing.TB, out SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		require.NoError(t, op.Apply(out))
	}
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}

// randModels produces count models with random keys and values.
func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Model{Key: randBytes(keySize), Value: randBytes(valueSize)}
	}
	return models
}

// iterCase writes pre to the base and child to a cache on top of it, then
// runs all queries against the cache.
type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

func (i iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	applyOps(t, base, i.pre)
	child := base.CacheWrap()
	applyOps(t, child, i.child)

	for _, q := range i.queries {
		var iter Iterator
		var err error
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		require.NoError(t, err)

		got, err := ReadAll(iter)
		require.NoError(t, err)
		require.Equal(t, len(q.expected), len(got), "range %X - %X", q.start, q.end)
		for n := range q.expected {
			if !bytes.Equal(q.expected[n].Key, got[n].Key) {
				t.Fatalf("range %X - %X: want key %d to be %X, got %X", q.start, q.end, n, q.expected[n].Key, got[n].Key)
			}
			assert.Equal(t, q.expected[n].Value, got[n].Value)
		}
	}
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}

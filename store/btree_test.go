package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, db ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	v, err := db.Get(key)
	require.NoError(t, err)
	return v
}

func mustHas(t *testing.T, db ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := db.Has(key)
	require.NoError(t, err)
	return ok
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, mustGet(t, base, k))
	assert.False(t, mustHas(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, mustGet(t, base, k))
	assert.True(t, mustHas(t, base, k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, cache, k))
	assert.True(t, mustHas(t, cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, mustGet(t, cache, k2))
	assert.False(t, mustHas(t, cache, k2))
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, mustGet(t, cache, k2))
	assert.Nil(t, mustGet(t, base, k2))
	assert.True(t, mustHas(t, cache, k2))
	assert.False(t, mustHas(t, base, k2))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
	assert.True(t, mustHas(t, base, k))
	assert.True(t, mustHas(t, base, k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, c2, k))
	assert.Equal(t, v2, mustGet(t, c2, k2))
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, c3, k))
	assert.Equal(t, v2, mustGet(t, c3, k2))
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assert.Nil(t, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
	assert.Nil(t, mustGet(t, base, k3))

	// and to test devnull....
	require.NoError(t, base.Write())
	assert.Nil(t, mustGet(t, devnull, k2))
}

type op struct {
	isSet bool
	key   []byte
	value []byte
}

func (o op) apply(db KVStore) error {
	if o.isSet {
		return db.Set(o.key, o.value)
	}
	return db.Delete(o.key)
}

func setOp(key, value []byte) op {
	return op{isSet: true, key: key, value: value}
}

func delOp(key []byte) op {
	return op{key: key}
}

func pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := [...]struct {
		parentOps     []op
		childOps      []op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		// overwrite one, delete another, add a third
		0: {
			[]op{setOp(ks[1], vs[1]), setOp(ks[2], vs[2])},
			[]op{setOp(ks[1], vs[11]), setOp(ks[3], vs[7]), delOp(ks[2])},
			[]Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			[]Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
	}

	for i, tc := range cases {
		parent := devnull.CacheWrap()
		for _, op := range tc.parentOps {
			require.NoError(t, op.apply(parent))
		}

		child := parent.CacheWrap()
		for _, op := range tc.childOps {
			require.NoError(t, op.apply(child))
		}

		// now check the parent is unaffected
		for j, q := range tc.parentQueries {
			res := mustGet(t, parent, q.Key)
			assert.Equal(t, q.Value, res, "%d / %d", i, j)
			has := mustHas(t, parent, q.Key)
			assert.Equal(t, q.Value != nil, has, "%d / %d", i, j)
		}

		// the child shows changes
		for j, q := range tc.childQueries {
			res := mustGet(t, child, q.Key)
			assert.Equal(t, q.Value, res, "%d / %d", i, j)
			has := mustHas(t, child, q.Key)
			assert.Equal(t, q.Value != nil, has, "%d / %d", i, j)
		}

		// write child to parent and make sure it also shows proper data
		require.NoError(t, child.Write())
		for j, q := range tc.childQueries {
			res := mustGet(t, parent, q.Key)
			assert.Equal(t, q.Value, res, "%d / %d", i, j)
			has := mustHas(t, parent, q.Key)
			assert.Equal(t, q.Value != nil, has, "%d / %d", i, j)
		}
	}
}

// TestSliceIterator makes sure the basic slice iterator works
func TestSliceIterator(t *testing.T) {
	const Size = 10

	ks := randKeys(Size, 8)
	vs := randKeys(Size, 40)

	models := make([]Model, Size)
	for i := 0; i < Size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}

	// make sure proper iteration works
	i := 0
	for iter := NewSliceIterator(models); iter.Valid(); require.NoError(t, iter.Next()) {
		assert.True(t, i < Size)
		assert.Equal(t, ks[i], iter.Key())
		assert.Equal(t, vs[i], iter.Value())
		i++
	}

	// iterator is invalid after close
	trash := NewSliceIterator(models)
	assert.True(t, trash.Valid())
	trash.Close()
	assert.False(t, trash.Valid())
}

// TestBTreeCacheBasicIterator makes sure the basic iterator
// works. Includes random deletes, but not nested iterators.
func TestBTreeCacheBasicIterator(t *testing.T) {
	const Size = 50
	const DeleteCount = 20
	const TotalSize = Size + DeleteCount

	models := make([]Model, TotalSize)
	for i := 0; i < TotalSize; i++ {
		models[i].Key = randBytes(8)
		models[i].Value = randBytes(40)
	}

	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()
	// add them all to the cache
	for i := 0; i < TotalSize; i++ {
		require.NoError(t, base.Set(models[i].Key, models[i].Value))
	}
	// delete the first chunk
	for i := 0; i < DeleteCount; i++ {
		require.NoError(t, base.Delete(models[i].Key))
	}
	models = models[DeleteCount:]

	// sort all remaining key/value pairs... this is our expected results
	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})

	// iterate over everything
	iter, err := base.Iterator(nil, nil)
	verifyIterator(t, models, iter, err)
	// iterate with lower end defined
	iter, err = base.Iterator(models[10].Key, nil)
	verifyIterator(t, models[10:], iter, err)
	// iterate with upper end defined
	iter, err = base.Iterator(nil, models[Size-8].Key)
	verifyIterator(t, models[:Size-8], iter, err)
	// iterate with both ends defined
	iter, err = base.Iterator(models[17].Key, models[28].Key)
	verifyIterator(t, models[17:28], iter, err)
}

// TestBTreeCacheLayeredIterator iterates over ranges that span both
// the parent and child caches, combining values, overwrites and
// deletes from both layers.
func TestBTreeCacheLayeredIterator(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	parent := devnull.CacheWrap()

	require.NoError(t, parent.Set([]byte("a"), []byte("1")))
	require.NoError(t, parent.Set([]byte("c"), []byte("3")))
	require.NoError(t, parent.Set([]byte("e"), []byte("5")))

	child := parent.CacheWrap()
	require.NoError(t, child.Set([]byte("b"), []byte("2")))
	require.NoError(t, child.Set([]byte("c"), []byte("33")))
	require.NoError(t, child.Delete([]byte("e")))

	want := []Model{
		pair([]byte("a"), []byte("1")),
		pair([]byte("b"), []byte("2")),
		pair([]byte("c"), []byte("33")),
	}
	iter, err := child.Iterator(nil, nil)
	verifyIterator(t, want, iter, err)

	// parent is not affected until write
	wantParent := []Model{
		pair([]byte("a"), []byte("1")),
		pair([]byte("c"), []byte("3")),
		pair([]byte("e"), []byte("5")),
	}
	iter, err = parent.Iterator(nil, nil)
	verifyIterator(t, wantParent, iter, err)

	require.NoError(t, child.Write())
	iter, err = parent.Iterator(nil, nil)
	verifyIterator(t, want, iter, err)
}

func verifyIterator(t *testing.T, models []Model, iter Iterator, err error) {
	t.Helper()
	require.NoError(t, err)
	// make sure proper iteration works
	for i := 0; i < len(models); i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
	iter.Close()
}

// randKeys returns a slice of count keys, all of length
func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}

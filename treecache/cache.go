package treecache

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto"

	"github.com/katalvlaran/barneshut/persist"
	"github.com/katalvlaran/barneshut/spatial"
	"github.com/katalvlaran/barneshut/tree"
)

// Cache is a size-bounded, concurrent-safe cache of built trees,
// backed by ristretto's cost-based eviction. The value stored per key
// is the persist-encoded tree, decoded lazily on a hit; this keeps
// the cache's memory cost an honest reflection of the bytes it holds
// rather than the live, pointer-heavy *tree.Tree.
type Cache struct {
	entries *ristretto.Cache
}

// New returns a Cache capped at maxCostBytes total encoded-tree bytes.
// maxEntries is a hint used to size ristretto's internal counters; it
// does not strictly bound the number of cached trees, since eviction
// is cost- (byte-) based, not count-based.
func New(maxCostBytes, maxEntries int64) (*Cache, error) {
	numCounters := maxEntries * 10
	if numCounters < 1000 {
		numCounters = 1000
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{entries: c}, nil
}

// GetOrBuild returns a tree equivalent to tree.Build(sources, bounds,
// cfg), serving a previously cached build when the structural key
// (sources, bounds, cfg) matches exactly, and populating the cache on
// a miss. Errors from tree.Build and from persist round-tripping
// propagate unchanged.
func (c *Cache) GetOrBuild(sources []spatial.Body, bounds spatial.Cube, cfg spatial.Config) (*tree.Tree, error) {
	key := structuralKey(sources, bounds, cfg)

	if v, ok := c.entries.Get(key); ok {
		if encoded, ok := v.([]byte); ok {
			if t, err := persist.Decode(encoded); err == nil {
				return t, nil
			}
			// A corrupt cache entry should never happen in
			// practice; fall through and rebuild rather than fail
			// the caller for a cache-layer bug.
			c.entries.Del(key)
		}
	}

	t, err := tree.Build(sources, bounds, cfg)
	if err != nil {
		return nil, err
	}
	encoded, err := persist.Encode(t)
	if err != nil {
		return nil, err
	}
	c.entries.Set(key, encoded, int64(len(encoded)))
	return t, nil
}

// Stats reports the underlying ristretto cache's hit/miss counters.
func (c *Cache) Stats() *ristretto.Metrics {
	return c.entries.Metrics
}

// Wait blocks until every Set call issued so far has been applied.
// ristretto applies writes through an internal buffer; callers (and
// tests) that need a just-written entry visible to an immediately
// following GetOrBuild should call Wait in between.
func (c *Cache) Wait() {
	c.entries.Wait()
}

// Close releases the cache's internal goroutines and buffers.
func (c *Cache) Close() {
	c.entries.Close()
}

// structuralKey hashes every field that affects the tree Build would
// produce: every source's id/mass/position, the bounds, and the
// config. Changing any of them — including just Config.Theta, which
// does not affect the tree's shape but does affect what Evaluate
// would later do with it — is intentionally part of the key, so a
// caller swapping theta between calls through the cache still gets a
// tree cached under its own key rather than silently reusing one
// built for a different theta.
func structuralKey(sources []spatial.Body, bounds spatial.Cube, cfg spatial.Config) uint64 {
	h := xxhash.New()
	var buf [8]byte

	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	writeUint32 := func(u uint32) {
		binary.LittleEndian.PutUint32(buf[:4], u)
		h.Write(buf[:4])
	}
	writeInt64 := func(i int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		h.Write(buf[:])
	}

	writeFloat(bounds.Center.X)
	writeFloat(bounds.Center.Y)
	writeFloat(bounds.Center.Z)
	writeFloat(bounds.Size)
	writeFloat(cfg.Theta)
	writeUint32(cfg.MaxBodiesPerLeaf)
	writeUint32(cfg.MaxTreeDepth)

	for _, s := range sources {
		p := s.Position()
		writeFloat(p.X)
		writeFloat(p.Y)
		writeFloat(p.Z)
		writeFloat(s.Mass())
		writeInt64(s.ID())
	}

	return h.Sum64()
}

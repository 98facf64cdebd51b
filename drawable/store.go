package drawable

import (
	"image"
	"sync"
	"sync/atomic"
)

const (
	// shardCount must be a power of 2 for shard selection by mask.
	shardCount = 16
	shardMask  = shardCount - 1
)

// store is a sharded, mutex-guarded map of decoded images. It never
// evicts.
type store struct {
	shards [shardCount]*storeShard
	size   atomic.Int64

	hits   atomic.Uint64
	misses atomic.Uint64
}

type storeShard struct {
	mu      sync.RWMutex
	entries map[Handle]image.Image
}

func newStore() *store {
	s := &store{}
	for i := range s.shards {
		s.shards[i] = &storeShard{entries: make(map[Handle]image.Image)}
	}
	return s
}

// shard spreads sequential handles over the shards (Fibonacci hashing).
func (s *store) shard(h Handle) *storeShard {
	const golden = 0x9E3779B97F4A7C15
	return s.shards[(uint64(h)*golden)>>60&shardMask]
}

func (s *store) get(h Handle) (image.Image, bool) {
	shard := s.shard(h)
	shard.mu.RLock()
	img, ok := shard.entries[h]
	shard.mu.RUnlock()
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return img, ok
}

// set stores img under h, replacing any previous image.
func (s *store) set(h Handle, img image.Image) {
	shard := s.shard(h)
	shard.mu.Lock()
	if _, ok := shard.entries[h]; !ok {
		s.size.Add(1)
	}
	shard.entries[h] = img
	shard.mu.Unlock()
}

func (s *store) len() int {
	return int(s.size.Load())
}

// Stats holds lookup statistics.
type Stats struct {
	Len     int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

func (s *store) stats() Stats {
	hits, misses := s.hits.Load(), s.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{Len: s.len(), Hits: hits, Misses: misses, HitRate: rate}
}

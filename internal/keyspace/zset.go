package keyspace

import "github.com/arnavsood/lumendb/internal/zset"

// ScoreMember is one (score, member) pair as accepted by ZAdd.
type ScoreMember struct {
	Score  float64
	Member string
}

// ZAdd upserts each pair into the sorted set named key, creating it if
// absent. Returns the count of newly inserted members (score-only updates
// of existing members don't count, spec.md §4.4).
func (k *Keyspace) ZAdd(key string, pairs []ScoreMember) (int64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, err := k.zsetEntryForWriteLocked(key)
	if err != nil {
		return 0, err
	}

	var added int64
	for _, p := range pairs {
		if e.zset.Add(p.Member, p.Score) {
			added++
		}
	}
	return added, nil
}

// ZRem removes each named member from the sorted set key. If the set
// becomes empty it is deleted from the keyspace (spec.md invariant 4).
// Returns the count of members actually removed.
func (k *Keyspace) ZRem(key string, members []string) (int64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return 0, nil
	}
	e := k.data[key]
	if e.kind != kindZSet {
		return 0, ErrWrongType
	}

	var removed int64
	for _, m := range members {
		if e.zset.Remove(m) {
			removed++
		}
	}
	if e.zset.Len() == 0 {
		k.evictLocked(key)
	}
	return removed, nil
}

// ZScore returns member's score in the sorted set key, and whether it was
// found (false if the set or member is absent).
func (k *Keyspace) ZScore(key, member string) (float64, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return 0, false, nil
	}
	e := k.data[key]
	if e.kind != kindZSet {
		return 0, false, ErrWrongType
	}
	score, ok := e.zset.Score(member)
	return score, ok, nil
}

// ZCard returns the sorted set's cardinality, 0 if absent.
func (k *Keyspace) ZCard(key string) (int64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return 0, nil
	}
	e := k.data[key]
	if e.kind != kindZSet {
		return 0, ErrWrongType
	}
	return int64(e.zset.Len()), nil
}

// ZRank returns member's 0-based ascending (score, member) rank, and
// whether it was found.
func (k *Keyspace) ZRank(key, member string) (int64, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return 0, false, nil
	}
	e := k.data[key]
	if e.kind != kindZSet {
		return 0, false, ErrWrongType
	}
	rank := e.zset.Rank(member)
	if rank < 0 {
		return 0, false, nil
	}
	return rank, true, nil
}

// ZRange returns members (ascending) in the closed index interval
// [start, stop], supporting Redis-style negative indices (-1 is last).
// The returned slice is empty (not an error) when the set is absent or the
// normalized range is empty.
func (k *Keyspace) ZRange(key string, start, stop int64) ([]zset.Member, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return nil, nil
	}
	e := k.data[key]
	if e.kind != kindZSet {
		return nil, ErrWrongType
	}

	n := int64(e.zset.Len())
	start, stop, ok := normalizeIndexRange(start, stop, n)
	if !ok {
		return nil, nil
	}
	return e.zset.RangeByIndex(start, stop), nil
}

// ZRangeByScore returns every member with min <= score <= max, ascending.
func (k *Keyspace) ZRangeByScore(key string, min, max float64) ([]zset.Member, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return nil, nil
	}
	e := k.data[key]
	if e.kind != kindZSet {
		return nil, ErrWrongType
	}
	return e.zset.RangeByScore(min, max), nil
}

// zsetEntryForWriteLocked returns (creating if absent) the entry for key as
// a sorted-set, or ErrWrongType if it exists with a different variant.
// Caller must hold the write lock.
func (k *Keyspace) zsetEntryForWriteLocked(key string) (*entry, error) {
	if k.reapLocked(key) {
		e := &entry{kind: kindZSet, zset: zset.New()}
		k.data[key] = e
		return e, nil
	}
	e := k.data[key]
	if e.kind != kindZSet {
		return nil, ErrWrongType
	}
	return e, nil
}

// normalizeIndexRange resolves negative indices and clamps the range
// against length n, per spec.md §4.4's ZRANGE semantics. ok is false when
// the resulting range is empty.
func normalizeIndexRange(start, stop, n int64) (normStart, normStop int64, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if start >= n {
		return 0, 0, false
	}
	if stop >= n {
		stop = n - 1
	}
	if stop < 0 || start > stop {
		return 0, 0, false
	}
	return start, stop, true
}

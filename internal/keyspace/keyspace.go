// Package keyspace implements the single flat top-level mapping from key to
// a tagged {string, sorted-set} value (spec.md §3), its shared expiry index
// (spec.md §4.2), and the string (§4.3) and sorted-set key-lifecycle (§4.4)
// operations.
//
// Grounded on the teacher's internal/storage.MapStorage: one sync.RWMutex
// guards both the value map and the expiry map, lazy expiry is checked on
// every access, and active expiry samples a bounded slice of the expiry
// index per call. Unlike the teacher's ShardedMapStorage, this keyspace is
// never partitioned — spec.md §5 requires multi-key commands (DEL, EXISTS)
// to observe one atomic snapshot of the whole keyspace, which sharded
// per-key locks cannot give without a defined lock-acquisition order.
package keyspace

import (
	"sync"
	"time"

	"github.com/arnavsood/lumendb/internal/zset"
)

// kind tags which variant a key's value holds.
type kind int

const (
	kindString kind = iota + 1
	kindZSet
)

type entry struct {
	kind kind
	str  string
	zset *zset.Set
}

// StringSetOptions configures SET's optional tokens (spec.md §4.3).
type StringSetOptions struct {
	TTL time.Duration // 0 means "no expiry, and clear any existing expiry"
	NX  bool          // only write if the key does not currently exist (any variant)
}

// Keyspace is the process-wide key/value/expiry store. The zero value is
// not usable; construct with New.
type Keyspace struct {
	mu      sync.RWMutex
	data    map[string]*entry
	expires map[string]int64 // key -> absolute expiry instant, UnixNano
	now     func() time.Time
}

// New creates an empty Keyspace. now defaults to time.Now; tests may
// substitute a deterministic clock.
func New() *Keyspace {
	return &Keyspace{
		data:    make(map[string]*entry),
		expires: make(map[string]int64),
		now:     time.Now,
	}
}

// isExpiredLocked reports whether key is past its expiry instant. Caller
// must hold at least a read lock.
func (k *Keyspace) isExpiredLocked(key string) bool {
	exp, ok := k.expires[key]
	if !ok {
		return false
	}
	return k.now().UnixNano() > exp
}

// evictLocked removes key and its expiry entry. Caller must hold the write
// lock.
func (k *Keyspace) evictLocked(key string) {
	delete(k.data, key)
	delete(k.expires, key)
}

// reapLocked performs lazy expiry for key if it is past due, returning
// whether the key was (or already was) absent after the check. Caller must
// hold the write lock.
func (k *Keyspace) reapLocked(key string) (absent bool) {
	if _, ok := k.data[key]; !ok {
		return true
	}
	if k.isExpiredLocked(key) {
		k.evictLocked(key)
		return true
	}
	return false
}

// --- String store (spec.md §4.3) ---

// GetString returns the string value and true if key exists as a live
// string. Returns ErrWrongType if key exists with a different variant.
func (k *Keyspace) GetString(key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return "", false, nil
	}
	e := k.data[key]
	if e.kind != kindString {
		return "", false, ErrWrongType
	}
	return e.str, true, nil
}

// SetString writes key=value per opts. Returns true if the write was
// performed (false only when NX aborted it because key already exists with
// any variant).
func (k *Keyspace) SetString(key, value string, opts StringSetOptions) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	exists := !k.reapLocked(key)

	if opts.NX && exists {
		return false
	}

	k.data[key] = &entry{kind: kindString, str: value}

	if opts.TTL > 0 {
		k.expires[key] = k.now().Add(opts.TTL).UnixNano()
	} else {
		// spec.md §4.3: a SET without EX always clears any existing expiry.
		delete(k.expires, key)
	}
	return true
}

// --- Keyspace-wide operations (spec.md §4.3) ---

// Del deletes each named key (regardless of variant) and returns the count
// actually removed; duplicates in keys count once per live occurrence.
func (k *Keyspace) Del(keys ...string) int64 {
	k.mu.Lock()
	defer k.mu.Unlock()

	var n int64
	for _, key := range keys {
		if k.reapLocked(key) {
			continue
		}
		k.evictLocked(key)
		n++
	}
	return n
}

// Exists returns how many of the given names currently resolve to a live
// key; duplicates counted for each live occurrence.
func (k *Keyspace) Exists(keys ...string) int64 {
	k.mu.Lock()
	defer k.mu.Unlock()

	var n int64
	for _, key := range keys {
		if !k.reapLocked(key) {
			n++
		}
	}
	return n
}

// DBSize returns the count of live top-level keys.
func (k *Keyspace) DBSize() int64 {
	k.mu.Lock()
	defer k.mu.Unlock()

	// Lazily reap everything so DBSIZE never over-reports expired keys
	// that happen to still be in the map.
	now := k.now().UnixNano()
	for key, exp := range k.expires {
		if now > exp {
			k.evictLocked(key)
		}
	}
	return int64(len(k.data))
}

// FlushDB removes every key and expiry entry.
func (k *Keyspace) FlushDB() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.data = make(map[string]*entry)
	k.expires = make(map[string]int64)
}

// --- Expiration clock (spec.md §4.2) ---

// Expire sets key's expiry to now+seconds. seconds <= 0 deletes the key
// immediately. Returns true if key existed (and so the expiry, or
// deletion, took effect).
func (k *Keyspace) Expire(key string, seconds int64) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return false
	}
	if seconds <= 0 {
		k.evictLocked(key)
		return true
	}
	k.expires[key] = k.now().Add(time.Duration(seconds) * time.Second).UnixNano()
	return true
}

// TTL returns -2 if key doesn't exist, -1 if it exists with no expiry, or
// the remaining whole seconds (floor, minimum 0) otherwise.
func (k *Keyspace) TTL(key string) int64 {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.reapLocked(key) {
		return -2
	}
	exp, ok := k.expires[key]
	if !ok {
		return -1
	}
	remaining := time.Duration(exp - k.now().UnixNano())
	secs := int64(remaining / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs
}

// DeleteExpired samples up to limit entries from the expiry index (relying
// on Go's randomized map iteration order, the same technique as the
// teacher's MapStorage.DeleteExpired) and evicts those past due. Returns
// the number evicted, for GC-loop logging.
func (k *Keyspace) DeleteExpired(limit int) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	if limit <= 0 || len(k.expires) == 0 {
		return 0
	}

	now := k.now().UnixNano()
	checked := 0
	evicted := 0
	for key, exp := range k.expires {
		checked++
		if now > exp {
			k.evictLocked(key)
			evicted++
		}
		if checked >= limit {
			break
		}
	}
	return evicted
}

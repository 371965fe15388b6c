package collision

// Tracker records the run keys written into a table blob and detects xxHash64
// collisions between distinct keys.
//
// The same key may be tracked many times: a table can hold several runs of one
// id. Only two different keys sharing a hash count as a collision, in which case
// the blob is flagged so readers verify keys on lookup.
type Tracker struct {
	keys         map[uint64]string // hash -> first key seen with that hash
	order        []string          // distinct keys in first-seen order
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		keys:  make(map[uint64]string),
		order: make([]string, 0),
	}
}

// Track records key under hash h and reports whether key was seen for the first time.
func (t *Tracker) Track(key string, h uint64) bool {
	existing, ok := t.keys[h]
	if !ok {
		t.keys[h] = key
		t.order = append(t.order, key)

		return true
	}

	if existing != key {
		t.hasCollision = true
		t.order = append(t.order, key)

		return true
	}

	return false
}

// HasCollision returns true once two distinct keys produced the same hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Keys returns the distinct keys in first-seen order.
func (t *Tracker) Keys() []string {
	return t.order
}

// Count returns the number of distinct keys tracked.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked keys and the collision state, keeping map capacity.
func (t *Tracker) Reset() {
	for k := range t.keys {
		delete(t.keys, k)
	}
	t.order = t.order[:0]
	t.hasCollision = false
}

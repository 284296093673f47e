package edit

import (
	"github.com/zeebo/xxh3"

	"github.com/ardnew/utcalc/lang"
)

// memoSize bounds the number of documents a model remembers.
const memoSize = 64

type memoKey struct {
	sum xxh3.Uint128
	now int64
}

// memo maps recently evaluated documents to their records so that undoing
// an edit, or a tick within the same second, does not re-parse. Entries are
// evicted oldest first.
type memo struct {
	records map[memoKey]lang.Records
	order   []memoKey
	size    int
}

func newMemo(size int) *memo {
	return &memo{records: make(map[memoKey]lang.Records, size), size: size}
}

func keyOf(document string, now int64) memoKey {
	return memoKey{sum: xxh3.HashString128(document), now: now}
}

func (c *memo) get(document string, now int64) (lang.Records, bool) {
	rs, ok := c.records[keyOf(document, now)]

	return rs, ok
}

func (c *memo) put(document string, now int64, rs lang.Records) {
	k := keyOf(document, now)
	if _, ok := c.records[k]; ok {
		return
	}

	if len(c.order) >= c.size {
		delete(c.records, c.order[0])
		c.order = c.order[1:]
	}

	c.order = append(c.order, k)
	c.records[k] = rs
}

func (c *memo) len() int { return len(c.order) }

// Package querycache deduplicates reads by query key and exposes each read as a single
// observable entry moving through idle, pending, success and error.
package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query.
type Key string

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is the observable state of one query.
type Entry struct {
	Key       Key
	Status    Status
	Data      any
	Err       error
	UpdatedAt time.Time
}

func (e Entry) Loading() bool { return e.Status == StatusPending }

// Fetcher performs the remote read for a key.
type Fetcher func(ctx context.Context) (any, error)

// Listener is notified on every state transition of the key it subscribed to.
type Listener func(Entry)

// Observer receives cache effectiveness signals; *metrics.QueryCacheMetrics satisfies it.
type Observer interface {
	Hit(query string)
	Miss(query string)
	Failure(query string)
	ObserveDuration(query string, d time.Duration)
}

type Options struct {
	// StaleTime bounds how long a successful read is reused. Zero reuses it until Invalidate.
	StaleTime time.Duration
	Observer  Observer
	Now       func() time.Time
}

type Cache struct {
	mu        sync.Mutex
	entries   map[Key]Entry
	gens      map[Key]uint64
	listeners map[Key]map[uint64]Listener
	nextID    uint64

	group     singleflight.Group
	staleTime time.Duration
	observer  Observer
	now       func() time.Time
}

func New(opts Options) *Cache {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries:   map[Key]Entry{},
		gens:      map[Key]uint64{},
		listeners: map[Key]map[uint64]Listener{},
		staleTime: opts.StaleTime,
		observer:  opts.Observer,
		now:       now,
	}
}

// Fetch returns the entry for key. When enabled is false fn is never called and an idle entry
// is returned, even if another caller populated the key. Fresh successful entries are served
// without calling fn; otherwise concurrent callers share a single call to fn. A failed read
// carries Err and no data.
func (c *Cache) Fetch(ctx context.Context, key Key, enabled bool, fn Fetcher) Entry {
	if !enabled || fn == nil {
		return Entry{Key: key, Status: StatusIdle}
	}

	if entry, ok := c.fresh(key); ok {
		c.hit(key)
		return entry
	}
	c.miss(key)

	ch := c.group.DoChan(string(key), func() (any, error) {
		return c.load(context.WithoutCancel(ctx), key, fn)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Entry{Key: key, Status: StatusError, Err: res.Err, UpdatedAt: c.now()}
		}
		return res.Val.(Entry)
	case <-ctx.Done():
		return Entry{Key: key, Status: StatusError, Err: ctx.Err(), UpdatedAt: c.now()}
	}
}

// Get returns the last stored entry for key.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Subscribe registers fn for state transitions of key and returns its cancel func.
func (c *Cache) Subscribe(key Key, fn Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	if c.listeners[key] == nil {
		c.listeners[key] = map[uint64]Listener{}
	}
	c.listeners[key][id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners[key], id)
		if len(c.listeners[key]) == 0 {
			delete(c.listeners, key)
		}
	}
}

// Invalidate drops the stored entry so the next enabled Fetch reads remotely. A read already in
// flight when Invalidate runs does not repopulate the key.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.gens[key]++
	c.mu.Unlock()
	c.group.Forget(string(key))
	c.notify(Entry{Key: key, Status: StatusIdle, UpdatedAt: c.now()})
}

func (c *Cache) load(ctx context.Context, key Key, fn Fetcher) (any, error) {
	c.mu.Lock()
	gen := c.gens[key]
	c.mu.Unlock()

	c.store(key, gen, Entry{Key: key, Status: StatusPending, UpdatedAt: c.now()})

	start := c.now()
	data, err := call(ctx, fn)
	if c.observer != nil {
		c.observer.ObserveDuration(string(key), c.now().Sub(start))
	}

	if err != nil {
		if c.observer != nil {
			c.observer.Failure(string(key))
		}
		failed := Entry{Key: key, Status: StatusError, Err: err, UpdatedAt: c.now()}
		c.store(key, gen, failed)
		return failed, nil
	}

	done := Entry{Key: key, Status: StatusSuccess, Data: data, UpdatedAt: c.now()}
	c.store(key, gen, done)
	return done, nil
}

// call runs fn, reporting a panic as an error.
func call(ctx context.Context, fn Fetcher) (data any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data, err = nil, fmt.Errorf("querycache: fetcher panicked: %v", rec)
		}
	}()
	return fn(ctx)
}

func (c *Cache) store(key Key, gen uint64, entry Entry) {
	c.mu.Lock()
	if c.gens[key] != gen {
		c.mu.Unlock()
		return
	}
	c.entries[key] = entry
	c.mu.Unlock()
	c.notify(entry)
}

func (c *Cache) notify(entry Entry) {
	c.mu.Lock()
	subs := make([]Listener, 0, len(c.listeners[entry.Key]))
	for _, fn := range c.listeners[entry.Key] {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(entry)
	}
}

func (c *Cache) fresh(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || entry.Status != StatusSuccess {
		return Entry{}, false
	}
	if c.staleTime > 0 && c.now().Sub(entry.UpdatedAt) >= c.staleTime {
		return Entry{}, false
	}
	return entry, true
}

func (c *Cache) hit(key Key) {
	if c.observer != nil {
		c.observer.Hit(string(key))
	}
}

func (c *Cache) miss(key Key) {
	if c.observer != nil {
		c.observer.Miss(string(key))
	}
}

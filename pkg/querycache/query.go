package querycache

import (
	"context"
	"fmt"
	"time"
)

// Result is the typed view of an Entry.
type Result[T any] struct {
	Status    Status
	Data      T
	Err       error
	UpdatedAt time.Time
}

func (r Result[T]) Loading() bool { return r.Status == StatusPending }

// Query binds a key and a typed fetch function to a Cache.
type Query[T any] struct {
	cache *Cache
	key   Key
	fetch func(ctx context.Context) (T, error)
}

func NewQuery[T any](cache *Cache, key Key, fetch func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{cache: cache, key: key, fetch: fetch}
}

func (q *Query[T]) Key() Key { return q.key }

// Fetch runs the query through the cache; see Cache.Fetch for the enabled contract.
func (q *Query[T]) Fetch(ctx context.Context, enabled bool) Result[T] {
	entry := q.cache.Fetch(ctx, q.key, enabled, func(ctx context.Context) (any, error) {
		return q.fetch(ctx)
	})
	return typed[T](entry)
}

// Subscribe forwards typed transitions for the query key.
func (q *Query[T]) Subscribe(fn func(Result[T])) func() {
	return q.cache.Subscribe(q.key, func(entry Entry) {
		fn(typed[T](entry))
	})
}

func (q *Query[T]) Invalidate() {
	q.cache.Invalidate(q.key)
}

func typed[T any](entry Entry) Result[T] {
	res := Result[T]{Status: entry.Status, Err: entry.Err, UpdatedAt: entry.UpdatedAt}
	if entry.Data == nil {
		return res
	}
	data, ok := entry.Data.(T)
	if !ok {
		res.Status = StatusError
		res.Err = fmt.Errorf("query %s: cached value has type %T", entry.Key, entry.Data)
		return res
	}
	res.Data = data
	return res
}
